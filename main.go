package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ambientefest-api/clients/xano"
	"ambientefest-api/config"
	"ambientefest-api/controllers"
	"ambientefest-api/events"
	"ambientefest-api/middleware"
	"ambientefest-api/repositories"
	"ambientefest-api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No se encontró archivo .env, usando variables de entorno del sistema")
	}

	cfg := config.LoadConfig()

	// Cliente hacia las dos APIs remotas de Xano
	cliente := xano.New(cfg.XanoStoreBase, cfg.XanoAuthBase, cfg.XanoTimeout, cfg.XanoTimeoutFile)

	// Cache de lecturas con deduplicación
	cache := repositories.NewCacheRepository(cliente)

	// Publicador de eventos de invalidación. Si RabbitMQ no está, la
	// invalidación local sigue funcionando igual.
	publisher, err := events.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
	if err != nil {
		log.Printf("RabbitMQ no disponible, se sigue sin eventos de invalidación: %v", err)
		publisher = nil
	}

	// Repositorios
	servicioRepo := repositories.NewServicioRepository(cliente, cache, publisher, cfg.CacheTTL)
	blogRepo := repositories.NewBlogRepository(cliente, cache, publisher, cfg.CacheTTL)
	usuarioRepo := repositories.NewUsuarioRepository(cliente, cache, publisher, cfg.CacheTTL)
	carritoRepo := repositories.NewCarritoRepository(cliente, cache, publisher)
	pagoRepo := repositories.NewPagoRepository(cliente, cache, publisher, cfg.CacheTTL)
	categoriaRepo := repositories.NewCategoriaRepository(cliente, cache)
	sesionRepo := repositories.NewSessionRepository(cfg.MemcachedHost, cfg.SessionTTL)

	// Servicios
	authService := services.NewAuthService(cliente, usuarioRepo, sesionRepo, cfg.AdminPasswordHash)
	servicioService := services.NewServicioService(servicioRepo)
	blogService := services.NewBlogService(blogRepo)
	usuarioService := services.NewUsuarioService(usuarioRepo)
	carritoService := services.NewCarritoService(carritoRepo, servicioRepo)
	pagoService := services.NewPagoService(pagoRepo, carritoService)
	categoriaService := services.NewCategoriaService(categoriaRepo)

	// Controladores
	authController := controllers.NewAuthController(authService)
	servicioController := controllers.NewServicioController(servicioService)
	blogController := controllers.NewBlogController(blogService)
	usuarioController := controllers.NewUsuarioController(usuarioService)
	carritoController := controllers.NewCarritoController(carritoService)
	pagoController := controllers.NewPagoController(pagoService)
	categoriaController := controllers.NewCategoriaController(categoriaService)
	uploadController := controllers.NewUploadController(cliente)
	saludController := controllers.NewSaludController(cliente)

	// Consumidor de eventos de las otras réplicas
	consumer := events.NewConsumer(cfg.RabbitMQURL, cfg.RabbitMQQueue, cache)
	go func() {
		if err := consumer.Iniciar(); err != nil {
			log.Printf("Consumidor de eventos detenido: %v", err)
		}
	}()

	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/health", saludController.Estado)

	// Rutas públicas
	router.POST("/auth/login", authController.Login)
	router.POST("/auth/registro", authController.Registro)
	router.GET("/servicios", servicioController.GetAll)
	router.GET("/servicios/:id", servicioController.GetByID)
	router.GET("/blogs", blogController.GetAll)
	router.GET("/blogs/:id", blogController.GetByID)
	router.GET("/blogs/:id/comentarios", blogController.GetComentarios)
	router.GET("/categorias/servicios", categoriaController.CategoriasServicios)
	router.GET("/categorias/blogs", categoriaController.CategoriasBlogs)
	router.GET("/roles", categoriaController.Roles)

	// Rutas autenticadas
	autenticado := router.Group("/")
	autenticado.Use(middleware.AuthMiddleware())
	{
		autenticado.GET("/auth/me", authController.Me)
		autenticado.POST("/auth/logout", authController.Logout)
		autenticado.GET("/carrito", carritoController.Ver)
		autenticado.POST("/carrito/items", carritoController.Agregar)
		autenticado.PATCH("/carrito/items/:id", carritoController.Actualizar)
		autenticado.DELETE("/carrito/items/:id", carritoController.Quitar)
		autenticado.DELETE("/carrito", carritoController.Vaciar)
		autenticado.POST("/blogs", blogController.Create)
		autenticado.POST("/blogs/:id/comentarios", blogController.Comentar)
		autenticado.POST("/pagos", pagoController.Pagar)
		autenticado.GET("/pagos/mis", pagoController.MisPagos)
	}

	// Rutas de administración
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/usuarios", usuarioController.GetAll)
		admin.GET("/usuarios/:id", usuarioController.GetByID)
		admin.POST("/usuarios", usuarioController.Create)
		admin.PATCH("/usuarios/:id", usuarioController.Update)
		admin.DELETE("/usuarios/:id", usuarioController.Delete)
		admin.POST("/servicios", servicioController.Create)
		admin.PATCH("/servicios/:id", servicioController.Update)
		admin.DELETE("/servicios/:id", servicioController.Delete)
		admin.GET("/blogs", blogController.GetAllAdmin)
		admin.PATCH("/blogs/:id/estado", blogController.CambiarEstado)
		admin.DELETE("/blogs/:id", blogController.Delete)
		admin.GET("/pagos", pagoController.GetAll)
		admin.PATCH("/pagos/:id/estado", pagoController.CambiarEstado)
		admin.POST("/uploads", uploadController.Subir)
	}

	servidor := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("ambientefest-api escuchando en puerto %s", cfg.Port)
		if err := servidor.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error al iniciar servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Apagando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := servidor.Shutdown(ctx); err != nil {
		log.Fatalf("Apagado forzado: %v", err)
	}
	log.Println("Servidor detenido")
}

// corsMiddleware habilita CORS para el frontend
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
