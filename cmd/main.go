package main

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"amazonia/database"
	"amazonia/docs"
	"amazonia/internal/cache"
	"amazonia/internal/controllers"
	"amazonia/internal/middleware"
	"amazonia/internal/repository"
	"amazonia/internal/session"
	"amazonia/internal/storage"
	"amazonia/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			sugar.Warnf("No .env file found: %v", err)
		}
	}

	// Swagger Documentation
	docs.SwaggerInfo.Title = "Amazonia CMS API"
	docs.SwaggerInfo.Description = "Content management and publication API for Amazonia environmental journalism."
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		sugar.Fatalf("Failed to run database migrations: %v", err)
	}
	database.MonitorDBConnections()

	// Redis is optional; without it the published listing and session
	// lookups go straight to the database.
	var redisClient *redis.Client
	if client, err := cache.NewRedisClient(); err != nil {
		sugar.Warnf("Redis unavailable, running without cache: %v", err)
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	// Initialize repositories
	var articleRepo repository.ArticleRepository
	if redisClient != nil {
		articleRepo = repository.NewCachedArticleRepository(database.DB, redisClient)
	} else {
		articleRepo = repository.NewArticleRepository(database.DB)
	}
	userRepo := repository.NewUserRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)

	resolver := session.NewResolver(userRepo, redisClient)
	guard := middleware.NewGuard(resolver)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	uploadBase := os.Getenv("PUBLIC_UPLOAD_BASE")
	if uploadBase == "" {
		uploadBase = "/uploads"
	}
	imageStore := storage.NewDiskStore(uploadDir, uploadBase)

	// Initialize controllers
	authController := controllers.NewAuthController(userRepo, resolver)
	articleController := controllers.NewArticleController(articleRepo, categoryRepo, userRepo)
	categoryController := controllers.NewCategoryController(categoryRepo)
	adminController := controllers.NewAdminController(articleRepo, userRepo, categoryRepo, resolver)
	uploadController := controllers.NewUploadController(imageStore)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Amazonia CMS API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	routes.RegisterAuthRoutes(router, authController)
	routes.RegisterPublicRoutes(router, articleController, categoryController)
	routes.RegisterCMSRoutes(router, guard, articleController, uploadController)
	routes.RegisterAdminRoutes(router, guard, adminController, categoryController)
	routes.RegisterSwaggerRoutes(router)

	// Stored images are served directly from disk
	router.Static(uploadBase, uploadDir)

	// Debug endpoints
	router.GET("/debug/stats", func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		c.JSON(200, gin.H{
			"goroutines":         runtime.NumGoroutine(),
			"memory_mb":          m.Alloc / 1024 / 1024,
			"articles_in_flight": articleRepo.InFlight(),
			"cache":              redisClient != nil,
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	sugar.Infof("Server starting on port %s", port)
	sugar.Infof("API Documentation: http://localhost:%s/swagger/index.html", port)

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	if err := server.ListenAndServe(); err != nil {
		sugar.Fatalf("Failed to start server: %v", err)
	}
}
