package router

import (
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/config"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/handler"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/infra"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/middleware"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the router wires together. Built once in main.
type Deps struct {
	Cfg      *config.Config
	Health   *infra.HealthState
	Recorder *service.AuditRecorder

	Auth           *service.AuthService
	Permisos       *service.PermisosService
	Pedidos        *service.PedidoService
	Clientes       *service.ClienteService
	Vendedores     *service.VendedorService
	Notificaciones *service.NotificacionService

	Usuarios   repository.UsuarioRepository
	Grants     repository.PermisoRepository
	Audit      repository.AuditRepository
	Materiales repository.MaterialRepository
}

// New assembles the gin engine: ambient middleware, route groups and the
// permission gate on every protected operation.
func New(d Deps) *gin.Engine {
	if d.Cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	general := middleware.NewRateLimiter(300, time.Minute)
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	authHandler := handler.NewAuthHandler(d.Auth, d.Recorder)
	usuarioHandler := handler.NewUsuarioHandler(d.Auth, d.Permisos, d.Grants, d.Usuarios)
	pedidoHandler := handler.NewPedidoHandler(d.Pedidos)
	clienteHandler := handler.NewClienteHandler(d.Clientes)
	vendedorHandler := handler.NewVendedorHandler(d.Vendedores)
	materialHandler := handler.NewMaterialHandler(d.Materiales)
	notificacionHandler := handler.NewNotificacionHandler(d.Notificaciones)
	auditoriaHandler := handler.NewAuditoriaHandler(d.Audit)
	healthHandler := handler.NewHealthHandler(d.Health)

	auth := middleware.Auth(d.Auth, d.Usuarios, d.Health, d.Cfg.Env)
	requiere := func(id string) gin.HandlerFunc {
		return middleware.RequirePermission(d.Permisos, d.Recorder, id)
	}
	audita := func(action, module string) gin.HandlerFunc {
		return middleware.Audit(d.Recorder, action, module)
	}

	r.GET("/health", healthHandler.Check)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", loginLimiter.Middleware(), authHandler.Login)
		authGroup.GET("/verify", auth, authHandler.Verify)
		authGroup.POST("/logout", auth, authHandler.Logout)
		authGroup.PUT("/change-password", auth, authHandler.ChangePassword)
	}

	api := r.Group("/api", general.Middleware(), auth, middleware.RequireHealthyStore(d.Health))

	pedidos := api.Group("/pedidos")
	{
		pedidos.GET("", requiere("pedidos.view"), pedidoHandler.Listar)
		pedidos.GET("/all", requiere("pedidos.view"), pedidoHandler.ListarTodos)
		pedidos.GET("/search", requiere("pedidos.view"), pedidoHandler.Buscar)
		pedidos.GET("/:id", requiere("pedidos.view"), pedidoHandler.Obtener)
		pedidos.POST("", requiere("pedidos.create"), audita("CREAR_PEDIDO", "pedidos"), pedidoHandler.Crear)
		pedidos.PUT("/:id", requiere("pedidos.edit"), audita("ACTUALIZAR_PEDIDO", "pedidos"), pedidoHandler.Actualizar)
		pedidos.DELETE("/:id", requiere("pedidos.delete"), audita("ELIMINAR_PEDIDO", "pedidos"), pedidoHandler.Eliminar)
		pedidos.POST("/bulk",
			middleware.RequireAllPermissions(d.Permisos, d.Recorder, "datos.import", "pedidos.create"),
			audita("IMPORTAR_PEDIDOS", "pedidos"), pedidoHandler.BulkImport)
	}

	clientes := api.Group("/clientes")
	{
		clientes.GET("", requiere("clientes.view"), clienteHandler.Listar)
		clientes.GET("/stats", requiere("clientes.view"), clienteHandler.Stats)
		clientes.GET("/:id", requiere("clientes.view"), clienteHandler.Obtener)
		clientes.GET("/:id/pedidos",
			middleware.RequireAllPermissions(d.Permisos, d.Recorder, "clientes.view", "pedidos.view"),
			clienteHandler.Historial)
		clientes.POST("", requiere("clientes.create"), audita("CREAR_CLIENTE", "clientes"), clienteHandler.Crear)
		clientes.PUT("/:id", requiere("clientes.edit"), audita("ACTUALIZAR_CLIENTE", "clientes"), clienteHandler.Actualizar)
		clientes.DELETE("/:id", requiere("clientes.delete"), audita("ELIMINAR_CLIENTE", "clientes"), clienteHandler.Eliminar)
	}

	vendedores := api.Group("/vendedores")
	{
		vendedores.GET("",
			middleware.RequireAnyPermission(d.Permisos, d.Recorder, "clientes.view", "pedidos.view"),
			vendedorHandler.Listar)
		vendedores.GET("/:id",
			middleware.RequireAnyPermission(d.Permisos, d.Recorder, "clientes.view", "pedidos.view"),
			vendedorHandler.Obtener)
		vendedores.POST("", requiere("clientes.create"), audita("CREAR_VENDEDOR", "vendedores"), vendedorHandler.Crear)
		vendedores.PUT("/:id", requiere("clientes.edit"), audita("ACTUALIZAR_VENDEDOR", "vendedores"), vendedorHandler.Actualizar)
		vendedores.DELETE("/:id", requiere("clientes.delete"), audita("ELIMINAR_VENDEDOR", "vendedores"), vendedorHandler.Eliminar)
	}

	materiales := api.Group("/materiales")
	{
		materiales.GET("", requiere("inventario.view"), materialHandler.Listar)
		materiales.POST("", requiere("inventario.admin"), audita("CREAR_MATERIAL", "inventario"), materialHandler.Crear)
		materiales.PUT("/:id", requiere("inventario.admin"), audita("ACTUALIZAR_MATERIAL", "inventario"), materialHandler.Actualizar)
		materiales.DELETE("/:id", requiere("inventario.admin"), audita("ELIMINAR_MATERIAL", "inventario"), materialHandler.Eliminar)
	}

	notificaciones := api.Group("/notificaciones")
	{
		notificaciones.GET("", requiere("notificaciones.view"), notificacionHandler.Listar)
		notificaciones.POST("", requiere("notificaciones.admin"), notificacionHandler.Crear)
		notificaciones.PATCH("/leidas", requiere("notificaciones.view"), notificacionHandler.MarcarTodasLeidas)
		notificaciones.PATCH("/:id/leida", requiere("notificaciones.view"), notificacionHandler.MarcarLeida)
	}

	api.GET("/auditoria", requiere("auditoria.view"), auditoriaHandler.Listar)

	admin := api.Group("/admin/users")
	{
		admin.GET("", requiere("usuarios.view"), usuarioHandler.Listar)
		admin.GET("/:id", requiere("usuarios.view"), usuarioHandler.Obtener)
		admin.POST("", requiere("usuarios.admin"), audita("CREAR_USUARIO", "usuarios"), usuarioHandler.Crear)
		admin.PUT("/:id", requiere("usuarios.admin"), audita("ACTUALIZAR_USUARIO", "usuarios"), usuarioHandler.Actualizar)
		admin.DELETE("/:id", requiere("usuarios.delete"), audita("ELIMINAR_USUARIO", "usuarios"), usuarioHandler.Eliminar)
		admin.POST("/bulk-delete", requiere("usuarios.delete"), audita("ELIMINAR_USUARIOS", "usuarios"), usuarioHandler.EliminarVarios)
		admin.POST("/:id/reset-password", requiere("usuarios.admin"), audita("RESET_PASSWORD", "usuarios"), usuarioHandler.ResetPassword)
		admin.PATCH("/:id/activate", requiere("usuarios.admin"), audita("ACTIVAR_USUARIO", "usuarios"), usuarioHandler.Activar)
		admin.PATCH("/:id/deactivate", requiere("usuarios.admin"), audita("DESACTIVAR_USUARIO", "usuarios"), usuarioHandler.Desactivar)
		admin.GET("/:id/permisos", requiere("permisos.admin"), usuarioHandler.ObtenerPermisos)
		admin.PUT("/:id/permisos", requiere("permisos.admin"), audita("ACTUALIZAR_PERMISOS", "permisos"), usuarioHandler.ActualizarPermisos)
	}

	// Legacy user-table surface, kept so old clients get an explicit 501.
	legacy := api.Group("/users")
	{
		legacy.POST("", usuarioHandler.NoImplementado)
		legacy.PUT("/:id", usuarioHandler.NoImplementado)
		legacy.DELETE("/:id", usuarioHandler.NoImplementado)
	}

	return r
}
