package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Bastianbone18/trasera/internal/apierror"
	"github.com/Bastianbone18/trasera/internal/dto"
	"github.com/Bastianbone18/trasera/internal/infra"
	"github.com/Bastianbone18/trasera/internal/middleware"
	"github.com/Bastianbone18/trasera/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const campoImagenPerfil = "profileImage"

type AuthHandler struct {
	svc     service.AuthService
	uploads *infra.Uploads
}

func NewAuthHandler(svc service.AuthService, uploads *infra.Uploads) *AuthHandler {
	return &AuthHandler{svc: svc, uploads: uploads}
}

// Register godoc
// @Summary Registro de usuario
// @Description Acepta JSON o multipart/form-data con el archivo opcional profileImage (máx. 2 MB).
// @Tags auth
// @Accept json,mpfd
// @Produce json
// @Param body body dto.RegistroRequest true "Datos del usuario"
// @Success 201 {object} dto.RegistroResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegistroRequest
	multipartBody := strings.HasPrefix(c.ContentType(), "multipart/")
	if multipartBody {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Formulario inválido: "+err.Error()))
			return
		}
		if !checkStruct(c, &req) {
			return
		}
	} else if !bindAndValidate(c, &req) {
		return
	}

	var imagen *string
	if multipartBody {
		fh, err := c.FormFile(campoImagenPerfil)
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			c.JSON(http.StatusBadRequest, apierror.New("Formulario inválido: "+err.Error()))
			return
		default:
			path, err := saveUpload(c, h.uploads, fh, infra.UploadUsuarios, campoImagenPerfil)
			if err != nil {
				respondError(c, err)
				return
			}
			imagen = &path
		}
	}

	user, err := h.svc.Registrar(c.Request.Context(), req, imagen)
	if err != nil {
		if imagen != nil {
			discardUpload(h.uploads, *imagen)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.RegistroResponse{Message: "Usuario Registrado con éxito", User: *user})
}

// Login godoc
// @Summary Login de usuario
// @Description Devuelve el token Bearer (1 h) y el x-token usado por la API de órdenes.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarImagenPerfil godoc
// @Summary Reemplaza la imagen de perfil del usuario autenticado
// @Tags auth
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param profileImage formData file true "Imagen (máx. 2 MB)"
// @Success 200 {object} dto.ImagenPerfilResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /api/auth/profile-image [put]
func (h *AuthHandler) ActualizarImagenPerfil(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Acceso denegado. Token no proporcionado"))
		return
	}
	id, err := uuid.Parse(claims.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido"))
		return
	}

	var path string
	if fh, err := c.FormFile(campoImagenPerfil); err == nil {
		path, err = saveUpload(c, h.uploads, fh, infra.UploadUsuarios, campoImagenPerfil)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	if _, err := h.svc.ActualizarImagenPerfil(c.Request.Context(), id, path); err != nil {
		if path != "" {
			discardUpload(h.uploads, path)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ImagenPerfilResponse{
		Message:      "Imagen de perfil actualizada",
		ProfileImage: path,
	})
}
