package handler

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/Bastianbone18/trasera/internal/apierror"
	"github.com/Bastianbone18/trasera/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func productoBody(precio any) map[string]any {
	return map[string]any{
		"categoria":   "Laptops",
		"marca":       "Lenovo",
		"modelo":      "ThinkPad E14",
		"precio":      precio,
		"descripcion": "Portátil empresarial de 14 pulgadas con buen teclado",
		"imagenes":    []string{"/uploads/products/e14.jpg"},
	}
}

func crearProducto(t *testing.T, api *testAPI, precio any) dto.ProductoResponse {
	t.Helper()
	w := api.doJSON(t, http.MethodPost, "/products", productoBody(precio), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.ProductoResponse](t, w)
}

func TestCrearProducto(t *testing.T) {
	api := newTestAPI(t)

	p := crearProducto(t, api, "3899000.50")
	assert.Equal(t, "Lenovo ThinkPad E14", p.NombreCompleto)
	assert.Equal(t, "3899000.5", p.Precio.String())
	assert.Equal(t, 5, p.Stock)
	assert.True(t, p.Disponible)
}

func TestCrearProducto_SinImagenes(t *testing.T) {
	api := newTestAPI(t)
	body := productoBody(100)
	delete(body, "imagenes")

	w := api.doJSON(t, http.MethodPost, "/products", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, strings.Join(decode[apierror.APIError](t, w).Errors, "|"), "imagenes:")
	assert.Equal(t, 0, api.productos.Len())
}

func TestCrearProducto_PrecioNegativo(t *testing.T) {
	api := newTestAPI(t)
	w := api.doJSON(t, http.MethodPost, "/products", productoBody(-1), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCrearProducto_JSONInvalido(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodPost, "/products", strings.NewReader("{"), "application/json", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestObtenerProducto(t *testing.T) {
	api := newTestAPI(t)
	p := crearProducto(t, api, 100)

	w := api.do(http.MethodGet, "/products/"+p.ID, nil, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodGet, "/products/no-es-uuid", nil, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/products/"+uuid.NewString(), nil, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Producto no encontrado", decode[apierror.APIError](t, w).Message)
}

func TestActualizarYEliminarProducto(t *testing.T) {
	api := newTestAPI(t)
	p := crearProducto(t, api, 100)

	w := api.doJSON(t, http.MethodPut, "/products/"+p.ID, map[string]any{"precio": 80, "destacado": true}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	upd := decode[dto.ProductoResponse](t, w)
	assert.Equal(t, "80", upd.Precio.String())
	assert.True(t, upd.Destacado)
	assert.Equal(t, p.Modelo, upd.Modelo)

	w = api.do(http.MethodDelete, "/products/"+p.ID, nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Producto eliminado correctamente", decode[dto.MensajeResponse](t, w).Message)

	w = api.do(http.MethodDelete, "/products/"+p.ID, nil, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListarProductos(t *testing.T) {
	api := newTestAPI(t)
	for _, precio := range []int{300, 100, 200} {
		crearProducto(t, api, precio)
	}

	w := api.do(http.MethodGet, "/products?minPrice=100&maxPrice=200", nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]dto.ProductoResponse](t, w)
	require.Len(t, got, 2)
	assert.Equal(t, "100", got[0].Precio.String())
	assert.Equal(t, "200", got[1].Precio.String())

	w = api.do(http.MethodGet, "/products?minPrice=abc", nil, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBusquedaAvanzada(t *testing.T) {
	api := newTestAPI(t)
	for i := 1; i <= 7; i++ {
		crearProducto(t, api, i*10)
	}

	w := api.do(http.MethodGet, "/products/search/advanced?page=2&limit=5", nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[dto.BusquedaAvanzadaResponse](t, w)
	assert.Equal(t, int64(7), resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Products, 2)

	for _, q := range []string{"sortBy=nombre", "sortOrder=up", "limit=101", "page=0"} {
		w = api.do(http.MethodGet, "/products/search/advanced?"+q, nil, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestSubirImagenes(t *testing.T) {
	api := newTestAPI(t)

	body, ct := multipartBody(t, nil,
		formFile{field: "imagenes", name: "a.jpg", contentType: "image/jpeg", size: 10},
		formFile{field: "imagenes", name: "b.webp", contentType: "image/webp", size: 10},
	)
	w := api.do(http.MethodPost, "/products/images", body, ct, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[dto.ImagenesResponse](t, w)
	require.Len(t, resp.Imagenes, 2)
	for _, p := range resp.Imagenes {
		assert.True(t, strings.HasPrefix(p, "/uploads/products/imagenes-"), p)
	}

	files := make([]formFile, 6)
	for i := range files {
		files[i] = formFile{field: "imagenes", name: "x.png", contentType: "image/png", size: 1}
	}
	body, ct = multipartBody(t, nil, files...)
	w = api.do(http.MethodPost, "/products/images", body, ct, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body, ct = multipartBody(t, nil, formFile{field: "imagenes", name: "x.txt", contentType: "text/plain", size: 1})
	w = api.do(http.MethodPost, "/products/images", body, ct, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Solo se permiten archivos de imagen", decode[apierror.APIError](t, w).Message)

	body, ct = multipartBody(t, nil)
	w = api.do(http.MethodPost, "/products/images", body, ct, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportarProductos(t *testing.T) {
	api := newTestAPI(t)
	crearProducto(t, api, 100)
	crearProducto(t, api, 200)

	w := api.do(http.MethodGet, "/products/export", nil, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")

	file, err := xlsx.OpenBinary(bytes.Clone(w.Body.Bytes()))
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	assert.Equal(t, "Productos", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Categoria", sheet.Rows[0].Cells[1].Value)
	assert.Equal(t, "Lenovo", sheet.Rows[1].Cells[2].Value)
}
