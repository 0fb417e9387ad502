package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Bastianbone18/trasera/internal/config"
	"github.com/Bastianbone18/trasera/internal/handler"
	"github.com/Bastianbone18/trasera/internal/infra"
	"github.com/Bastianbone18/trasera/internal/model"
	"github.com/Bastianbone18/trasera/internal/repository/repotest"
	"github.com/Bastianbone18/trasera/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testRouter struct {
	engine   *gin.Engine
	tokens   service.TokenService
	usuarios *repotest.Usuarios
}

func newTestRouter(t *testing.T) *testRouter {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{Env: "test", FrontendURL: "http://localhost:3000"}
	uploads, err := infra.NewUploads(t.TempDir())
	require.NoError(t, err)

	tokens := service.NewTokenService("router_test_secret", time.Hour)
	usuarios := repotest.NewUsuarios()
	s := Services{
		Tokens:    tokens,
		Auth:      service.NewAuthService(usuarios, tokens, bcrypt.MinCost),
		Productos: service.NewProductoService(repotest.NewProductos(), nil),
		Ordenes:   service.NewOrdenService(repotest.NewOrdenes(), usuarios, t.TempDir()),
		Feed:      handler.NewOrdenFeed(cfg.FrontendURL),
		Uploads:   uploads,
	}
	return &testRouter{engine: Engine(cfg, s), tokens: tokens, usuarios: usuarios}
}

func (tr *testRouter) bearer(t *testing.T, rol string) string {
	t.Helper()
	u := &model.Usuario{Nombre: "Test", Email: rol + "@example.com", PasswordHash: "x", Rol: rol}
	require.NoError(t, tr.usuarios.Create(context.Background(), u))
	tok, err := tr.tokens.Emitir(u)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (tr *testRouter) do(t *testing.T, method, path string, body any, auth string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)
	return w
}

var nuevoProducto = map[string]any{
	"categoria":   "Monitores",
	"marca":       "LG",
	"modelo":      "27UL500",
	"precio":      1299000,
	"descripcion": "Monitor 4K de 27 pulgadas con HDR10",
	"imagenes":    []string{"/uploads/products/lg.jpg"},
}

func TestRoot_RedirigeADocs(t *testing.T) {
	tr := newTestRouter(t)
	w := tr.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/swagger/index.html", w.Header().Get("Location"))
}

func TestProductos_EscrituraSoloAdmin(t *testing.T) {
	tr := newTestRouter(t)
	usuario := tr.bearer(t, model.RolUsuario)
	admin := tr.bearer(t, model.RolAdmin)

	w := tr.do(t, http.MethodPost, "/api/products", nuevoProducto, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = tr.do(t, http.MethodPost, "/api/products", nuevoProducto, usuario)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = tr.do(t, http.MethodPost, "/api/products", nuevoProducto, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		w = tr.do(t, method, "/api/products/"+p.ID, map[string]any{"stock": 1}, usuario)
		assert.Equal(t, http.StatusForbidden, w.Code, method)
	}
	w = tr.do(t, http.MethodGet, "/api/products/export", nil, usuario)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = tr.do(t, http.MethodGet, "/api/products/"+p.ID, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = tr.do(t, http.MethodPut, "/api/products/"+p.ID, map[string]any{"stock": 1}, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	w = tr.do(t, http.MethodDelete, "/api/products/"+p.ID, nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrdenes_RequierenAmbosTokens(t *testing.T) {
	tr := newTestRouter(t)
	w := tr.do(t, http.MethodGet, "/api/orders", nil, tr.bearer(t, model.RolUsuario))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFeed_SoloAdmin(t *testing.T) {
	tr := newTestRouter(t)
	w := tr.do(t, http.MethodGet, "/api/admin/orders/ws", nil, tr.bearer(t, model.RolUsuario))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealth_NoMontadoSinDB(t *testing.T) {
	tr := newTestRouter(t)
	w := tr.do(t, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
