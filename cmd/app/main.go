package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo_webapp/internal/config"
	"todo_webapp/internal/db"
	httpServer "todo_webapp/internal/http"
	"todo_webapp/internal/http/handlers"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/surrealdb/surrealdb.go"
)

const version = "1.0.0"

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")
	cfg := config.Load()

	var (
		pgPool  *pgxpool.Pool
		surreal *surrealdb.DB

		docTasks, relTasks service.TaskStore
		docUsers, relUsers service.UserStore
	)

	if cfg.DatabaseMode != config.ModeDocument {
		if err := db.RunMigrations(cfg.PostgresURL); err != nil {
			logger.Fatal("migrations failed", "error", err)
		}
		pgPool = db.ConnectPostgres(cfg.PostgresURL)
		defer pgPool.Close()
		relTasks = repository.NewTaskPgRepository(pgPool)
		relUsers = repository.NewUserPgRepository(pgPool)
	}

	if cfg.DatabaseMode != config.ModeRelational {
		surreal = db.ConnectSurreal(db.SurrealConfig{
			URL:       cfg.SurrealURL,
			Namespace: cfg.SurrealNamespace,
			Database:  cfg.SurrealDatabase,
			User:      cfg.SurrealUser,
			Pass:      cfg.SurrealPass,
		})
		defer surreal.Close(context.Background())
		docTasks = repository.NewTaskDocRepository(surreal)
		docUsers = repository.NewUserDocRepository(surreal)
	}

	creds := service.NewCredentials(cfg.JWTSecret, cfg.JWTTTL)
	denylist := service.NewDenylist(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	coord := service.NewCoordinator(cfg.DatabaseMode, docTasks, relTasks, docUsers, relUsers, creds)
	google := service.NewGoogleOAuthProvider(service.GoogleOAuthConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	h := handlers.NewHandler(coord, docTasks, relTasks, creds, denylist, google)
	httpServer.RegisterRoutes(r, h, cfg, pgPool, surreal, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "mode", cfg.DatabaseMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
