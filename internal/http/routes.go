package http

import (
	"todo_webapp/internal/config"
	"todo_webapp/internal/http/handlers"
	"todo_webapp/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/surrealdb/surrealdb.go"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config, pg *pgxpool.Pool, doc *surrealdb.DB, version string) {
	healthHandler := handlers.NewHealthHandler(pg, doc, version)
	r.SetHTMLTemplate(handlers.Templates())

	// Health checks and metrics (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/api-docs.json", h.OpenAPI)

	generalRL := middleware.RateLimit("general", cfg.GeneralLimit.Max, cfg.GeneralLimit.Window)
	authRL := middleware.RateLimit("auth", cfg.AuthLimit.Max, cfg.AuthLimit.Window)
	tokenRL := middleware.RateLimit("token", cfg.TokenLimit.Max, cfg.TokenLimit.Window)
	crudRL := middleware.RateLimit("crud", cfg.CRUDLimit.Max, cfg.CRUDLimit.Window)
	strictRL := middleware.RateLimit("strict", cfg.StrictLimit.Max, cfg.StrictLimit.Window)

	bearer := middleware.JWT(h.Creds, h.Denylist)

	// HTML views
	r.GET("/", generalRL, h.Index)
	r.GET("/login", generalRL, h.LoginPage)
	r.POST("/tasks/add", generalRL, h.AddTask)
	r.POST("/tasks/delete/:id", generalRL, h.RemoveTask)

	// Adapter routes exist only for the stores the mode activates; an
	// inactive store has no adapter to call.
	if cfg.DatabaseMode != config.ModeRelational {
		r.GET("/tasks", crudRL, h.ListTasks)
		r.POST("/tasks", crudRL, h.CreateTask)
		r.DELETE("/tasks/:id", crudRL, h.DeleteTask)
	}
	if cfg.DatabaseMode != config.ModeDocument {
		r.GET("/tasks-pg", crudRL, h.ListTasksPg)
		r.POST("/tasks-pg", crudRL, h.CreateTaskPg)
		r.DELETE("/tasks-pg/:id", crudRL, h.DeleteTaskPg)
	}

	// Auth
	auth := r.Group("/auth")
	{
		auth.POST("/register", authRL, h.Register)
		auth.POST("/login", authRL, h.Login)
		auth.GET("/profile", generalRL, bearer, h.Profile)
		auth.POST("/logout", strictRL, bearer, h.Logout)
	}

	// Token issuance
	token := r.Group("/token")
	token.Use(tokenRL)
	{
		token.POST("/generate", h.GenerateToken)
		token.POST("/user", h.CreateUser)
	}

	// Google OAuth
	oauth := r.Group("/oauth")
	{
		oauth.GET("/google", authRL, h.GoogleLogin)
		oauth.GET("/google/callback", authRL, h.GoogleCallback)
		oauth.GET("/status", generalRL, h.OAuthStatus)
		oauth.GET("/logout", generalRL, h.OAuthLogout)
	}
}
