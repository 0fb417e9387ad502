package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"

	"github.com/Bastianbone18/trasera/internal/apierror"
	"github.com/Bastianbone18/trasera/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Report fields by their wire name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
}

// fieldMessages renders one readable line per failed field.
func fieldMessages(verrs validator.ValidationErrors) []string {
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "es obligatorio"
		case "email":
			msg = "debe ser un email válido"
		case "uuid":
			msg = "debe ser un id válido"
		case "oneof":
			msg = "debe ser uno de: " + fe.Param()
		case "min":
			msg = "debe ser al menos " + fe.Param()
		case "max":
			msg = "debe ser como máximo " + fe.Param()
		case "gt":
			msg = "debe ser mayor que " + fe.Param()
		default:
			msg = "no es válido (" + fe.Tag() + ")"
		}
		out = append(out, fe.Field()+": "+msg)
	}
	return out
}

// checkStruct runs the validator and writes the 400 response on failure.
func checkStruct(c *gin.Context, req interface{}) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fieldMessages(verrs)))
		return false
	}
	_ = c.Error(err)
	return false
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	return checkStruct(c, req)
}

// bindQuery is bindAndValidate for query strings.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parámetros inválidos: "+err.Error()))
		return false
	}
	return checkStruct(c, req)
}

// respondError writes typed service errors directly; anything else goes to
// the ErrorHandler middleware.
func respondError(c *gin.Context, err error) {
	var typed *apierror.Error
	if errors.As(err, &typed) {
		c.JSON(typed.Status, apierror.New(typed.Message))
		return
	}
	_ = c.Error(err)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// saveUpload stores fh under kind and returns its public path.
func saveUpload(c *gin.Context, uploads *infra.Uploads, fh *multipart.FileHeader, kind, field string) (string, error) {
	dst, public, err := uploads.Prepare(fh, kind, field)
	switch {
	case errors.Is(err, infra.ErrNoEsImagen):
		return "", apierror.BadRequest("Solo se permiten archivos de imagen", err)
	case errors.Is(err, infra.ErrImagenGrande):
		return "", apierror.BadRequest(fmt.Sprintf("La imagen %s excede el tamaño permitido", fh.Filename), err)
	case err != nil:
		return "", err
	}
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", fmt.Errorf("guardar imagen: %w", err)
	}
	return public, nil
}

// discardUpload removes a saved upload whose request failed afterwards.
func discardUpload(uploads *infra.Uploads, public string) {
	if err := uploads.Remove(public); err != nil {
		log.Warn().Err(err).Str("path", public).Msg("could not remove orphaned upload")
	}
}
