package handler

import (
	"net/http"

	"github.com/Bastianbone18/trasera/internal/apierror"
	"github.com/Bastianbone18/trasera/internal/dto"
	"github.com/Bastianbone18/trasera/internal/middleware"
	"github.com/Bastianbone18/trasera/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdenesHandler struct{ svc service.OrdenService }

func NewOrdenesHandler(svc service.OrdenService) *OrdenesHandler {
	return &OrdenesHandler{svc: svc}
}

// usuarioDeToken returns the owner carried by the x-token header.
func usuarioDeToken(c *gin.Context) (uuid.UUID, bool) {
	uid, ok := middleware.GetUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("No token provided"))
	}
	return uid, ok
}

// Crear godoc
// @Summary Crea una orden del usuario del x-token
// @Description Items y total se guardan tal como llegan.
// @Tags ordenes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Security XToken
// @Param body body dto.CrearOrdenRequest true "Orden"
// @Success 201 {object} dto.CrearOrdenResponse
// @Failure 400 {object} apierror.APIError
// @Failure 401 {object} apierror.APIError
// @Router /api/orders [post]
func (h *OrdenesHandler) Crear(c *gin.Context) {
	uid, ok := usuarioDeToken(c)
	if !ok {
		return
	}
	var req dto.CrearOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	orden, err := h.svc.Crear(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CrearOrdenResponse{Ok: true, Order: *orden})
}

// Listar godoc
// @Summary Lista las órdenes propias, más recientes primero
// @Tags ordenes
// @Produce json
// @Security BearerAuth
// @Security XToken
// @Success 200 {object} dto.ListarOrdenesResponse
// @Failure 401 {object} apierror.APIError
// @Router /api/orders [get]
func (h *OrdenesHandler) Listar(c *gin.Context) {
	uid, ok := usuarioDeToken(c)
	if !ok {
		return
	}
	ordenes, err := h.svc.ListarPorUsuario(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListarOrdenesResponse{Ok: true, Orders: ordenes})
}

// Recibo godoc
// @Summary Descarga el recibo PDF de una orden propia
// @Tags ordenes
// @Produce application/pdf
// @Security BearerAuth
// @Security XToken
// @Param id path string true "ID de la orden"
// @Success 200 {file} file
// @Failure 404 {object} apierror.APIError
// @Router /api/orders/{id}/receipt [get]
func (h *OrdenesHandler) Recibo(c *gin.Context) {
	uid, ok := usuarioDeToken(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	path, err := h.svc.Recibo(c.Request.Context(), uid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "recibo_"+id.String()+".pdf")
}
