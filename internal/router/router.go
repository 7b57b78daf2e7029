package router

import (
	"time"

	"cataldo/internal/config"
	"cataldo/internal/handler"
	"cataldo/internal/middleware"
	"cataldo/internal/model"
	"cataldo/internal/repository"
	"cataldo/internal/service"
	"cataldo/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer service.Mailer, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	operacionRepo := repository.NewOperacionRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	encuestaRepo := repository.NewEncuestaRepository(db)
	correoRepo := repository.NewCorreoRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	geografiaRepo := repository.NewGeografiaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	auditSvc := service.NewAuditService(auditRepo)
	authSvc := service.NewAuthService(usuarioRepo, auditSvc, cfg.JWTSecret, cfg.JWTExpirationHours)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, auditSvc)
	operacionSvc := service.NewOperacionService(operacionRepo, usuarioRepo, productoRepo, auditSvc)
	materialSvc := service.NewMaterialService(materialRepo, productoRepo, auditSvc)
	productoSvc := service.NewProductoService(productoRepo, materialRepo, auditSvc)
	proveedorSvc := service.NewProveedorService(proveedorRepo, auditSvc)
	encuestaSvc := service.NewEncuestaService(encuestaRepo, operacionRepo, auditSvc)
	postventaSvc := service.NewPostventaService(correoRepo, operacionRepo, usuarioRepo, dispatcher, auditSvc)
	cumpleanosSvc := service.NewCumpleanosService(usuarioRepo, correoRepo, mailer, auditSvc, cfg.CumpleanosTZ)
	dashboardSvc := service.NewDashboardService(dashboardRepo, materialRepo, correoRepo, rdb)
	geografiaSvc := service.NewGeografiaService(geografiaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, cfg)
	usuariosH := handler.NewUsuariosHandler(usuarioSvc)
	auditH := handler.NewAuditHandler(auditSvc)
	operacionesH := handler.NewOperacionesHandler(operacionSvc)
	materialesH := handler.NewMaterialesHandler(materialSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)
	encuestasH := handler.NewEncuestasHandler(encuestaSvc)
	postventaH := handler.NewPostventaHandler(postventaSvc)
	cumpleanosH := handler.NewCumpleanosHandler(cumpleanosSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc, encuestaSvc)
	geografiaH := handler.NewGeografiaHandler(geografiaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")

	// Auth (public)
	auth := api.Group("/auth")
	{
		auth.POST("/verify", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/create", authH.Registro)
		auth.POST("/end", authH.Logout)
	}

	// Geography tree — public, feeds the registration form
	geo := api.Group("/geografia")
	{
		geo.GET("/paises", geografiaH.Paises)
		geo.GET("/paises/:pais_id/regiones", geografiaH.Regiones)
		geo.GET("/regiones/:region_id/provincias", geografiaH.Provincias)
		geo.GET("/provincias/:provincia_id/comunas", geografiaH.Comunas)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	priv := api.Group("", jwtMW)
	{
		// Own profile — any authenticated role
		priv.GET("/perfil", usuariosH.Perfil)

		// User administration + audit — administrador only
		admin := priv.Group("/admin", middleware.RequireRole(model.RolAdministrador))
		{
			admin.POST("/users", usuariosH.Crear)
			admin.GET("/users", usuariosH.Listar)
			admin.GET("/users/:id", usuariosH.Obtener)
			admin.PUT("/users/:id", usuariosH.Actualizar)
			admin.DELETE("/users/:id", usuariosH.Eliminar)

			admin.GET("/audit/logs", auditH.Logs)
			admin.GET("/audit/user/:email", auditH.ActividadUsuario)
			admin.GET("/audit/failed-logins", auditH.LoginsFallidos)
			admin.GET("/audit/entity/:entidad/:id", auditH.HistorialEntidad)
		}

		// Orders — gated on the permission matrix; staff manages every
		// order, customers only reach their own
		staffMW := middleware.RequireMinimumRole(model.RolTrabajadorTienda)
		priv.GET("/operaciones/mias", middleware.RequireRole(model.RolCliente), operacionesH.MisOperaciones)
		ops := priv.Group("/operaciones")
		{
			ops.POST("", middleware.RequirePermiso(middleware.RecursoOperaciones, middleware.AccionCrear), operacionesH.Crear)
			ops.GET("", staffMW, operacionesH.Listar) // list-all is staff only; clientes use /mias
			ops.GET("/:id", middleware.RequirePermiso(middleware.RecursoOperaciones, middleware.AccionVer), operacionesH.Obtener) // ownership enforced in the service
			ops.PATCH("/:id/estado", middleware.RequirePermiso(middleware.RecursoOperaciones, middleware.AccionEditar), operacionesH.CambiarEstado)
			ops.POST("/:id/abono", middleware.RequirePermiso(middleware.RecursoOperaciones, middleware.AccionEditar), operacionesH.RegistrarAbono)
			ops.DELETE("/:id", middleware.RequirePermiso(middleware.RecursoOperaciones, middleware.AccionEliminar), operacionesH.Anular)
		}

		// Catalogs — staff and above
		mat := priv.Group("/materiales", staffMW)
		{
			mat.POST("", materialesH.Crear)
			mat.GET("", materialesH.Listar)
			mat.GET("/alertas", materialesH.Alertas)
			mat.GET("/:id", materialesH.Obtener)
			mat.PUT("/:id", materialesH.Actualizar)
			mat.PATCH("/:id/stock", materialesH.ActualizarStock)
			mat.DELETE("/:id", materialesH.Eliminar)
		}

		prods := priv.Group("/productos", staffMW)
		{
			prods.POST("", productosH.Crear)
			prods.GET("", productosH.Listar)
			prods.GET("/:id", productosH.Obtener)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
			prods.POST("/:id/costos-terceros", productosH.CrearCostoTerceros)
			prods.GET("/:id/costos-terceros", productosH.ListarCostosTerceros)
		}

		prov := priv.Group("/proveedores", staffMW)
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.Obtener)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Desactivar)
		}

		// Surveys — customers submit, staff reads the aggregate
		enc := priv.Group("/encuestas")
		{
			enc.POST("", middleware.RequirePermiso(middleware.RecursoEncuestas, middleware.AccionCrear), encuestasH.Crear) // ownership enforced in the service
			enc.GET("", staffMW, encuestasH.Listar)
			enc.GET("/operacion/:operacion_id", middleware.RequirePermiso(middleware.RecursoEncuestas, middleware.AccionVer), encuestasH.ObtenerPorOperacion)
		}

		// Post-sale mail + birthday greetings — staff tooling
		correosVer := middleware.RequirePermiso(middleware.RecursoCorreos, middleware.AccionVer)
		correosCrear := middleware.RequirePermiso(middleware.RecursoCorreos, middleware.AccionCrear)
		post := priv.Group("/postventa")
		{
			post.POST("/enviar", correosCrear, postventaH.Enviar)
			post.POST("/operacion/:operacion_id", correosCrear, postventaH.EnviarPostventa)
			post.GET("/historial", correosVer, postventaH.Historial)
			post.GET("/estadisticas", correosVer, postventaH.Estadisticas)
			post.POST("/reintentar/:id", middleware.RequirePermiso(middleware.RecursoCorreos, middleware.AccionEditar), postventaH.Reintentar)
		}

		cumple := priv.Group("/cumpleanos")
		{
			cumple.GET("/hoy", correosVer, cumpleanosH.Hoy)
			cumple.GET("/proximos", correosVer, cumpleanosH.Proximos)
			cumple.POST("/enviar", correosCrear, cumpleanosH.Enviar)
		}

		// Dashboards — gerente and administrador
		dash := priv.Group("/dashboard", middleware.RequirePermiso(middleware.RecursoDashboard, middleware.AccionVer))
		{
			dash.GET("/resumen", dashboardH.Resumen)
			dash.GET("/ventas", dashboardH.Ventas)
			dash.GET("/inventario", dashboardH.Inventario)
			dash.GET("/clientes", dashboardH.Clientes)
			dash.GET("/operaciones", dashboardH.Operaciones)
			dash.GET("/satisfaccion", dashboardH.Satisfaccion)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
