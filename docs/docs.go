// Package docs holds the OpenAPI description served by gin-swagger.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/auth/register": {
            "post": {
                "description": "Acepta JSON o multipart/form-data con el archivo opcional profileImage (máx. 2 MB).",
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Registro de usuario",
                "parameters": [
                    {"description": "Datos del usuario", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegistroRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.RegistroResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.APIError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "description": "Devuelve el token Bearer (1 h) y el x-token usado por la API de órdenes.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login de usuario",
                "parameters": [
                    {"description": "Credenciales", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            }
        },
        "/api/auth/profile-image": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Reemplaza la imagen de perfil del usuario autenticado",
                "parameters": [
                    {"type": "file", "description": "Imagen (máx. 2 MB)", "name": "profileImage", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ImagenPerfilResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            }
        },
        "/api/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Lista productos filtrados, ordenados por precio ascendente",
                "parameters": [
                    {"type": "string", "description": "Categoría exacta", "name": "categoria", "in": "query"},
                    {"type": "string", "description": "Marca exacta", "name": "marca", "in": "query"},
                    {"type": "number", "description": "Precio mínimo (inclusive)", "name": "minPrice", "in": "query"},
                    {"type": "number", "description": "Precio máximo (inclusive)", "name": "maxPrice", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductoResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Crea un producto",
                "parameters": [
                    {"description": "Producto", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CrearProductoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ProductoResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.APIError"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            }
        },
        "/api/products/search/advanced": {
            "get": {
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Búsqueda paginada con orden configurable",
                "parameters": [
                    {"type": "string", "name": "categoria", "in": "query"},
                    {"type": "string", "name": "marca", "in": "query"},
                    {"type": "string", "name": "modelo", "in": "query"},
                    {"type": "number", "name": "minPrice", "in": "query"},
                    {"type": "number", "name": "maxPrice", "in": "query"},
                    {"type": "string", "description": "precio|marca|modelo|categoria|stock|createdAt", "name": "sortBy", "in": "query"},
                    {"type": "string", "description": "asc|desc", "name": "sortOrder", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "description": "máx. 100", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BusquedaAvanzadaResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            }
        },
        "/api/products/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["productos"],
                "summary": "Exporta el catálogo a Excel",
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/api/products/images": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Devuelve las rutas públicas para usar en el campo imagenes.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Sube hasta 5 imágenes de producto",
                "parameters": [
                    {"type": "file", "description": "Imágenes (máx. 5 MB c/u)", "name": "imagenes", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ImagenesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            }
        },
        "/api/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Obtiene un producto",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductoResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Actualiza parcialmente un producto",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ActualizarProductoRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ProductoResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["productos"],
                "summary": "Elimina un producto",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MensajeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            }
        },
        "/api/orders": {
            "get": {
                "security": [{"BearerAuth": []}, {"XToken": []}],
                "produces": ["application/json"],
                "tags": ["ordenes"],
                "summary": "Lista las órdenes propias, más recientes primero",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListarOrdenesResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}, {"XToken": []}],
                "description": "Items y total se guardan tal como llegan.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ordenes"],
                "summary": "Crea una orden del usuario del x-token",
                "parameters": [
                    {"description": "Orden", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CrearOrdenRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CrearOrdenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.APIError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            }
        },
        "/api/orders/{id}/receipt": {
            "get": {
                "security": [{"BearerAuth": []}, {"XToken": []}],
                "produces": ["application/pdf"],
                "tags": ["ordenes"],
                "summary": "Descarga el recibo PDF de una orden propia",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.APIError"}}
                }
            }
        },
        "/api/admin/orders/ws": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Feed en vivo de órdenes nuevas (websocket)",
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        },
        "/api/health": {
            "get": {
                "description": "Verifica la conexión a la base de datos y a Redis.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Estado de la API",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "apierror.APIError": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "error": {"type": "string"},
                "stack": {"type": "string"}
            }
        },
        "dto.RegistroRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["admin", "user"]}
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.UsuarioResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "profileImage": {"type": "string"}
            }
        },
        "dto.RegistroResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/dto.UsuarioResponse"}
            }
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "xToken": {"type": "string"},
                "user": {"$ref": "#/definitions/dto.UsuarioResponse"}
            }
        },
        "dto.ImagenPerfilResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "profileImage": {"type": "string"}
            }
        },
        "dto.CrearProductoRequest": {
            "type": "object",
            "required": ["categoria", "descripcion", "imagenes", "marca", "modelo", "precio"],
            "properties": {
                "categoria": {"type": "string"},
                "marca": {"type": "string"},
                "modelo": {"type": "string"},
                "precio": {"type": "number"},
                "descripcion": {"type": "string"},
                "imagenes": {"type": "array", "maxItems": 5, "minItems": 1, "items": {"type": "string"}},
                "stock": {"type": "integer"},
                "disponible": {"type": "boolean"},
                "destacado": {"type": "boolean"},
                "caracteristicas": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.ActualizarProductoRequest": {
            "type": "object",
            "properties": {
                "categoria": {"type": "string"},
                "marca": {"type": "string"},
                "modelo": {"type": "string"},
                "precio": {"type": "number"},
                "descripcion": {"type": "string"},
                "imagenes": {"type": "array", "items": {"type": "string"}},
                "stock": {"type": "integer"},
                "disponible": {"type": "boolean"},
                "destacado": {"type": "boolean"},
                "caracteristicas": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.ProductoResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "categoria": {"type": "string"},
                "marca": {"type": "string"},
                "modelo": {"type": "string"},
                "nombreCompleto": {"type": "string"},
                "precio": {"type": "number"},
                "descripcion": {"type": "string"},
                "imagenes": {"type": "array", "items": {"type": "string"}},
                "stock": {"type": "integer"},
                "disponible": {"type": "boolean"},
                "destacado": {"type": "boolean"},
                "caracteristicas": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "dto.BusquedaAvanzadaResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "products": {"type": "array", "items": {"$ref": "#/definitions/dto.ProductoResponse"}}
            }
        },
        "dto.ImagenesResponse": {
            "type": "object",
            "properties": {
                "imagenes": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.MensajeResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "dto.OrdenItemRequest": {
            "type": "object",
            "required": ["productId"],
            "properties": {
                "productId": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "quantity": {"type": "integer"}
            }
        },
        "dto.CrearOrdenRequest": {
            "type": "object",
            "required": ["items", "paymentMethod", "total"],
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.OrdenItemRequest"}},
                "total": {"type": "number"},
                "paymentMethod": {"type": "string", "enum": ["paypal", "mercadopago", "wompi"]}
            }
        },
        "dto.OrdenResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.OrdenItemRequest"}},
                "total": {"type": "number"},
                "paymentMethod": {"type": "string"},
                "isPaid": {"type": "boolean"},
                "paidAt": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "dto.CrearOrdenResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "order": {"$ref": "#/definitions/dto.OrdenResponse"}
            }
        },
        "dto.ListarOrdenesResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "orders": {"type": "array", "items": {"$ref": "#/definitions/dto.OrdenResponse"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"},
        "XToken": {"type": "apiKey", "name": "x-token", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Trasera API",
	Description:      "API REST del e-commerce: catálogo, usuarios y órdenes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
