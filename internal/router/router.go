package router

import (
	"net/http"
	"time"

	_ "github.com/Bastianbone18/trasera/docs"
	"github.com/Bastianbone18/trasera/internal/config"
	"github.com/Bastianbone18/trasera/internal/handler"
	"github.com/Bastianbone18/trasera/internal/infra"
	"github.com/Bastianbone18/trasera/internal/middleware"
	"github.com/Bastianbone18/trasera/internal/model"
	"github.com/Bastianbone18/trasera/internal/repository"
	"github.com/Bastianbone18/trasera/internal/service"
	"github.com/Bastianbone18/trasera/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services is everything the HTTP layer depends on. New builds it from the
// store handles; tests build it from stubs.
type Services struct {
	Tokens    service.TokenService
	Auth      service.AuthService
	Productos service.ProductoService
	Ordenes   service.OrdenService
	Feed      *handler.OrdenFeed
	Uploads   *infra.Uploads

	// Health checks; DB may be nil in tests and then /api/health is not mounted.
	DB    *gorm.DB
	Redis *redis.Client
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// rdb may be nil: the product cache and mail notifications are then off.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	uploads, err := infra.NewUploads(cfg.UploadsDir)
	if err != nil {
		return nil, err
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	tokens := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpirationMinutes)*time.Minute)
	feed := handler.NewOrdenFeed(cfg.FrontendURL)

	// Notifiers run after every stored order: the admin feed always, the
	// mail queue only when Redis is available.
	notifiers := []service.OrdenNotifier{feed}
	if rdb != nil {
		notifiers = append(notifiers, worker.NewDispatcher(rdb))
	}

	return Engine(cfg, Services{
		Tokens:    tokens,
		Auth:      service.NewAuthService(usuarioRepo, tokens, cfg.BcryptCost),
		Productos: service.NewProductoService(productoRepo, rdb),
		Ordenes:   service.NewOrdenService(ordenRepo, usuarioRepo, cfg.PDFStoragePath, notifiers...),
		Feed:      feed,
		Uploads:   uploads,
		DB:        db,
		Redis:     rdb,
	}), nil
}

// Engine mounts middleware and routes over already built services.
func Engine(cfg *config.Config, s Services) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery(cfg.IsDevelopment()))
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.ErrorHandler(cfg.IsDevelopment()))
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	authH := handler.NewAuthHandler(s.Auth, s.Uploads)
	productosH := handler.NewProductosHandler(s.Productos, s.Uploads)
	ordenesH := handler.NewOrdenesHandler(s.Ordenes)

	jwtMW := middleware.JWTAuth(s.Tokens)
	soloAdmin := middleware.RequireRole(model.RolAdmin)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Docs
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusMovedPermanently, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded images
	if s.Uploads != nil {
		r.Static("/uploads/"+infra.UploadProductos, s.Uploads.Dir(infra.UploadProductos))
		r.Static("/uploads/"+infra.UploadUsuarios, s.Uploads.Dir(infra.UploadUsuarios))
	}

	api := r.Group("/api")

	if s.DB != nil {
		api.GET("/health", handler.Health(s.DB, s.Redis, cfg.Env))
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.PUT("/profile-image", jwtMW, authH.ActualizarImagenPerfil)
	}

	productos := api.Group("/products")
	{
		productos.GET("", productosH.Listar)
		productos.GET("/search/advanced", productosH.BusquedaAvanzada)
		productos.GET("/:id", productosH.ObtenerPorID)

		// Write operations: admin only
		admin := productos.Group("", jwtMW, soloAdmin)
		admin.GET("/export", productosH.Exportar)
		admin.POST("/images", productosH.SubirImagenes)
		admin.POST("", productosH.Crear)
		admin.PUT("/:id", productosH.Actualizar)
		admin.DELETE("/:id", productosH.Eliminar)
	}

	// Orders need both credentials; the owner is the x-token uid.
	ordenes := api.Group("/orders", jwtMW, middleware.UIDToken(s.Tokens))
	{
		ordenes.POST("", ordenesH.Crear)
		ordenes.GET("", ordenesH.Listar)
		ordenes.GET("/:id/receipt", ordenesH.Recibo)
	}

	if s.Feed != nil {
		api.GET("/admin/orders/ws", jwtMW, soloAdmin, s.Feed.Handle)
	}

	return r
}
