package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/Bastianbone18/trasera/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestID tags every request with an id, reusing the caller's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// ErrorHandler turns the last error pushed with c.Error into the JSON envelope.
// Error detail and stack are only exposed when dev is true.
func ErrorHandler(dev bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := classify(err)

		evt := log.Warn()
		if status >= http.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Str("request_id", c.GetString(RequestIDKey)).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Int("status", status).
			Err(err).
			Msg("request failed")

		if dev && status >= http.StatusInternalServerError {
			body.Error = err.Error()
			body.Stack = fmt.Sprintf("%+v", err)
		}
		c.AbortWithStatusJSON(status, body)
	}
}

func classify(err error) (int, *apierror.APIError) {
	var typed *apierror.Error
	if errors.As(err, &typed) {
		return typed.Status, apierror.New(typed.Message)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Field() + ": " + fe.Tag()
		}
		return http.StatusBadRequest, apierror.NewValidation(fields)
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return http.StatusUnauthorized, apierror.New("Token expirado")
	case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return http.StatusUnauthorized, apierror.New("Token inválido")
	}

	return http.StatusInternalServerError, apierror.New("Error interno del servidor")
}

// Recovery handles panics and converts them into 500 responses.
func Recovery(dev bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("panic", r).
					Bytes("stack", stack).
					Msg("panic recovered")
				body := apierror.New("Error interno del servidor")
				if dev {
					body.Error = fmt.Sprint(r)
					body.Stack = string(stack)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, body)
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency, and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
