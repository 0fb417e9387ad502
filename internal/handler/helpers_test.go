package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/Bastianbone18/trasera/internal/infra"
	"github.com/Bastianbone18/trasera/internal/middleware"
	"github.com/Bastianbone18/trasera/internal/model"
	"github.com/Bastianbone18/trasera/internal/repository/repotest"
	"github.com/Bastianbone18/trasera/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

// testAPI mounts the handlers over in-memory repositories.
type testAPI struct {
	engine    *gin.Engine
	tokens    service.TokenService
	usuarios  *repotest.Usuarios
	productos *repotest.Productos
	ordenes   *repotest.Ordenes
	uploads   string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	uploads, err := infra.NewUploads(dir)
	require.NoError(t, err)

	api := &testAPI{
		tokens:    service.NewTokenService(testSecret, time.Hour),
		usuarios:  repotest.NewUsuarios(),
		productos: repotest.NewProductos(),
		ordenes:   repotest.NewOrdenes(),
		uploads:   dir,
	}
	authH := NewAuthHandler(service.NewAuthService(api.usuarios, api.tokens, bcrypt.MinCost), uploads)
	productosH := NewProductosHandler(service.NewProductoService(api.productos, nil), uploads)
	ordenesH := NewOrdenesHandler(service.NewOrdenService(api.ordenes, api.usuarios, t.TempDir()))

	r := gin.New()
	r.Use(middleware.ErrorHandler(false))
	jwtMW := middleware.JWTAuth(api.tokens)
	r.POST("/register", authH.Register)
	r.POST("/login", authH.Login)
	r.PUT("/profile-image", jwtMW, authH.ActualizarImagenPerfil)
	r.GET("/products", productosH.Listar)
	r.GET("/products/search/advanced", productosH.BusquedaAvanzada)
	r.GET("/products/export", productosH.Exportar)
	r.POST("/products/images", productosH.SubirImagenes)
	r.GET("/products/:id", productosH.ObtenerPorID)
	r.POST("/products", productosH.Crear)
	r.PUT("/products/:id", productosH.Actualizar)
	r.DELETE("/products/:id", productosH.Eliminar)
	orders := r.Group("/orders", jwtMW, middleware.UIDToken(api.tokens))
	orders.POST("", ordenesH.Crear)
	orders.GET("", ordenesH.Listar)
	orders.GET("/:id/receipt", ordenesH.Recibo)
	api.engine = r
	return api
}

// seedUsuario stores a user and returns its bearer and x-token headers.
func (a *testAPI) seedUsuario(t *testing.T, email, rol string) (*model.Usuario, map[string]string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{Nombre: "Test User", Email: email, PasswordHash: string(hash), Rol: rol}
	require.NoError(t, a.usuarios.Create(context.Background(), u))

	tok, err := a.tokens.Emitir(u)
	require.NoError(t, err)
	xTok, err := a.tokens.EmitirUID(u.ID)
	require.NoError(t, err)
	return u, map[string]string{"Authorization": "Bearer " + tok, middleware.XTokenHeader: xTok}
}

func (a *testAPI) do(method, path string, body io.Reader, contentType string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testAPI) doJSON(t *testing.T, method, path string, v any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return a.do(method, path, body, "application/json", headers)
}

type formFile struct {
	field, name, contentType string
	size                     int
}

// multipartBody builds a form; files get an explicit Content-Type part header
// because CreateFormFile always sends application/octet-stream.
func multipartBody(t *testing.T, fields map[string]string, files ...formFile) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte{0xFF}, f.size))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}
