package main

import (
	"context"
	"log"
	"lost-found/controllers"
	"lost-found/dto"
	"lost-found/infra"
	"lost-found/middlewares"
	"lost-found/repositories"
	"lost-found/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func corsMiddleware(cfg *infra.Config) gin.HandlerFunc {
	if len(cfg.CORSOrigins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func setupRouter(db *infra.Database, cfg *infra.Config, sessionService services.ISessionService) *gin.Engine {
	dto.RegisterValidators()

	itemRepository := repositories.NewItemRepository(db)
	itemService := services.NewItemService(itemRepository)
	itemController := controllers.NewItemController(itemService)

	userRepository := repositories.NewUserRepository(db)
	userService := services.NewUserService(userRepository)
	userController := controllers.NewUserController(userService)

	cookie := middlewares.SessionCookie{Secure: cfg.CookieSecure}
	authController := controllers.NewAuthController(userService, sessionService, cookie)
	pageController := controllers.NewPageController(db, cfg.PublicDir)

	r := gin.New()
	// Outermost, so requests that panic are still logged after Recovery.
	r.Use(middlewares.RequestIDMiddleware())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg))
	r.Use(middlewares.SessionMiddleware(sessionService, userService, cookie))

	r.GET("/health", pageController.Health)
	r.GET("/", middlewares.RequireAuth(), pageController.Home)
	r.GET("/login", middlewares.RequireGuest(), pageController.Login)

	authRouter := r.Group("/api/auth")
	authRouter.POST("/register", middlewares.RequireGuest(), authController.Register)
	authRouter.POST("/login", middlewares.RequireGuest(), authController.Login)
	authRouter.POST("/logout", authController.Logout)
	authRouter.GET("/me", middlewares.RequireAuth(), authController.Me)

	itemRouterWithAuth := r.Group("/api/items", middlewares.RequireAuth())
	itemRouterWithAuth.GET("", itemController.List)
	itemRouterWithAuth.GET("/:id", itemController.FindById)
	itemRouterWithAuth.POST("", itemController.Create)
	itemRouterWithAuth.PUT("/:id", itemController.Update)
	itemRouterWithAuth.PATCH("/:id/resolve", itemController.Resolve)
	itemRouterWithAuth.DELETE("/:id", itemController.Delete)

	userRouterWithAuth := r.Group("/api/users", middlewares.RequireAuth())
	userRouterWithAuth.PATCH("/me", userController.UpdateProfile)

	r.NoRoute(pageController.NotFound)

	return r
}

// newSessionRepository picks the session store. The returned func releases
// whatever the store holds open.
func newSessionRepository(ctx context.Context, cfg *infra.Config, db *infra.Database) (repositories.ISessionRepository, func() error, error) {
	if cfg.SessionStore != infra.SessionStoreRedis {
		return repositories.NewSessionRepository(db), func() error { return nil }, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	log.Printf("Using redis session store at %s", cfg.RedisAddr)
	return repositories.NewRedisSessionRepository(rdb), rdb.Close, nil
}

func main() {
	infra.Initialize()
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	db := infra.NewDatabase(cfg)
	if err := db.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	sessionRepository, closeSessions, err := newSessionRepository(ctx, cfg, db)
	if err != nil {
		log.Fatalf("Failed to connect to session store: %v", err)
	}
	sessionService := services.NewSessionService(sessionRepository, cfg.SessionSecret, cfg.SessionTTL)
	if swept, err := sessionService.Sweep(ctx); err != nil {
		log.Printf("Failed to sweep expired sessions: %v", err)
	} else if swept > 0 {
		log.Printf("Swept %d expired sessions", swept)
	}

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := setupRouter(db, cfg, sessionService)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s (%s environment)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := closeSessions(); err != nil {
		log.Printf("Failed to close session store: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
	log.Println("Server exited")
}
