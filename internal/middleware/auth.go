package middleware

import (
	"errors"
	"strings"

	"github.com/Bastianbone18/trasera/internal/apierror"
	"github.com/Bastianbone18/trasera/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ClaimsKey = "claims"
	UIDKey    = "uid"

	XTokenHeader = "x-token"
)

var (
	ErrTokenFaltante = errors.New("token faltante")
	ErrTokenInvalido = errors.New("token inválido")
	ErrSinPermisos   = errors.New("rol sin permisos")
)

// abort answers with the status and message carried by e.
func abort(c *gin.Context, e *apierror.Error) {
	c.AbortWithStatusJSON(e.Status, apierror.New(e.Message))
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abort(c, apierror.Unauthorized("Acceso denegado. Token no proporcionado", ErrTokenFaltante))
			return
		}

		claims, err := tokens.Verificar(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abort(c, apierror.Unauthorized("Token inválido", ErrTokenInvalido))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose JWT role is not in the allowed list.
// It must run after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			abort(c, apierror.Unauthorized("Acceso denegado. Token no proporcionado", ErrTokenFaltante))
			return
		}
		if !allowed[claims.Role] {
			abort(c, apierror.Forbidden("Acceso denegado, No tienes permisos", ErrSinPermisos))
			return
		}
		c.Next()
	}
}

// UIDToken validates the x-token header and stores the user id it carries.
func UIDToken(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(XTokenHeader)
		if raw == "" {
			abort(c, apierror.Unauthorized("No token provided", ErrTokenFaltante))
			return
		}
		uid, err := tokens.VerificarUID(raw)
		if err != nil {
			abort(c, apierror.Unauthorized("token no valido", ErrTokenInvalido))
			return
		}
		c.Set(UIDKey, uid)
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.Claims)
	return claims
}

// GetUID returns the user id set by UIDToken.
func GetUID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UIDKey)
	if !ok {
		return uuid.Nil, false
	}
	uid, ok := v.(uuid.UUID)
	return uid, ok
}
