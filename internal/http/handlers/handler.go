package handlers

import (
	"errors"
	"net/http"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler bundles the coordinator, the two store adapters and the credential
// service for the HTTP surface. The single-store routes talk to an adapter
// directly; everything dual goes through the coordinator.
type Handler struct {
	Coord    *service.Coordinator
	DocTasks service.TaskStore
	RelTasks service.TaskStore
	Creds    *service.Credentials
	Denylist *service.Denylist
	Google   *service.GoogleOAuthProvider
}

func NewHandler(coord *service.Coordinator, docTasks, relTasks service.TaskStore, creds *service.Credentials, denylist *service.Denylist, google *service.GoogleOAuthProvider) *Handler {
	return &Handler{
		Coord:    coord,
		DocTasks: docTasks,
		RelTasks: relTasks,
		Creds:    creds,
		Denylist: denylist,
		Google:   google,
	}
}

// getClaims extracts verified token claims set by the JWT middleware.
func getClaims(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(middleware.CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}

// logSoftError records a failure the client flow deliberately swallows,
// such as form redirects and best-effort revocation.
func logSoftError(c *gin.Context, msg string, err error) {
	logger.Component("http").Warn(msg, "path", c.Request.URL.Path, "error", err)
}

// writeError maps the domain error taxonomy onto HTTP statuses and renders
// the message as the sole body field.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAuthentication), errors.Is(err, domain.ErrInvalidToken):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
