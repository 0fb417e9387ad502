package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Bastianbone18/trasera/internal/apierror"
	"github.com/Bastianbone18/trasera/internal/dto"
	"github.com/Bastianbone18/trasera/internal/infra"
	"github.com/Bastianbone18/trasera/internal/model"
	"github.com/Bastianbone18/trasera/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

const campoImagenes = "imagenes"

type ProductosHandler struct {
	svc     service.ProductoService
	uploads *infra.Uploads
}

func NewProductosHandler(svc service.ProductoService, uploads *infra.Uploads) *ProductosHandler {
	return &ProductosHandler{svc: svc, uploads: uploads}
}

// Listar godoc
// @Summary Lista productos filtrados, ordenados por precio ascendente
// @Tags productos
// @Produce json
// @Param categoria query string false "Categoría exacta"
// @Param marca query string false "Marca exacta"
// @Param minPrice query number false "Precio mínimo (inclusive)"
// @Param maxPrice query number false "Precio máximo (inclusive)"
// @Success 200 {array} dto.ProductoResponse
// @Router /api/products [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BusquedaAvanzada godoc
// @Summary Búsqueda paginada con orden configurable
// @Tags productos
// @Produce json
// @Param categoria query string false "Categoría exacta"
// @Param marca query string false "Marca (contiene, sin distinguir mayúsculas)"
// @Param modelo query string false "Modelo (contiene, sin distinguir mayúsculas)"
// @Param minPrice query number false "Precio mínimo"
// @Param maxPrice query number false "Precio máximo"
// @Param sortBy query string false "precio|marca|modelo|categoria|stock|createdAt"
// @Param sortOrder query string false "asc|desc"
// @Param page query int false "Página (desde 1)"
// @Param limit query int false "Tamaño de página (máx. 100)"
// @Success 200 {object} dto.BusquedaAvanzadaResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/products/search/advanced [get]
func (h *ProductosHandler) BusquedaAvanzada(c *gin.Context) {
	var filter dto.BusquedaAvanzadaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.BusquedaAvanzada(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID godoc
// @Summary Obtiene un producto
// @Tags productos
// @Produce json
// @Param id path string true "ID del producto"
// @Success 200 {object} dto.ProductoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /api/products/{id} [get]
func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Crea un producto
// @Tags productos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearProductoRequest true "Producto"
// @Success 201 {object} dto.ProductoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Router /api/products [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary Actualiza parcialmente un producto
// @Tags productos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Param body body dto.ActualizarProductoRequest true "Campos a modificar"
// @Success 200 {object} dto.ProductoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /api/products/{id} [put]
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Elimina un producto
// @Tags productos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Success 200 {object} dto.MensajeResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/products/{id} [delete]
func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MensajeResponse{Message: "Producto eliminado correctamente"})
}

// SubirImagenes godoc
// @Summary Sube hasta 5 imágenes de producto
// @Description Devuelve las rutas públicas para usar en el campo imagenes.
// @Tags productos
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param imagenes formData file true "Imágenes (máx. 5 MB c/u)"
// @Success 201 {object} dto.ImagenesResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/products/images [post]
func (h *ProductosHandler) SubirImagenes(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Se esperaba multipart/form-data"))
		return
	}
	files := form.File[campoImagenes]
	switch {
	case len(files) == 0:
		c.JSON(http.StatusBadRequest, apierror.New("No se han subido imágenes"))
		return
	case len(files) > model.MaxImagenesProducto:
		c.JSON(http.StatusBadRequest, apierror.New(fmt.Sprintf("Máximo %d imágenes por producto", model.MaxImagenesProducto)))
		return
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		path, err := saveUpload(c, h.uploads, fh, infra.UploadProductos, campoImagenes)
		if err != nil {
			respondError(c, err)
			return
		}
		paths = append(paths, path)
	}
	c.JSON(http.StatusCreated, dto.ImagenesResponse{Imagenes: paths})
}

var exportHeaders = []string{
	"ID", "Categoria", "Marca", "Modelo", "Precio", "Stock",
	"Disponible", "Destacado", "Imagenes", "Caracteristicas", "CreatedAt", "UpdatedAt",
}

// Exportar godoc
// @Summary Exporta el catálogo a Excel
// @Tags productos
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router /api/products/export [get]
func (h *ProductosHandler) Exportar(c *gin.Context) {
	productos, err := h.svc.Exportar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := catalogoXLSX(productos)
	if err != nil {
		_ = c.Error(fmt.Errorf("armar xlsx: %w", err))
		return
	}

	c.Header("Content-Disposition", "attachment; filename=productos.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		_ = c.Error(fmt.Errorf("escribir xlsx: %w", err))
	}
}

func catalogoXLSX(productos []model.Producto) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Productos")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range productos {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID.String())
		row.AddCell().SetString(p.Categoria)
		row.AddCell().SetString(p.Marca)
		row.AddCell().SetString(p.Modelo)
		precio, _ := p.Precio.Float64()
		row.AddCell().SetFloat(precio)
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetBool(p.Disponible)
		row.AddCell().SetBool(p.Destacado)
		row.AddCell().SetString(strings.Join(p.Imagenes, ","))
		row.AddCell().SetString(strings.Join(p.Caracteristicas, "; "))
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}
