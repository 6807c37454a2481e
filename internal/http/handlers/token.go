package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ttlLabel renders a duration the way clients expect in expiresIn, dropping
// zero-valued units ("1h0m0s" reads as "1h", "30s" stays "30s").
func ttlLabel(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	var b strings.Builder
	if h > 0 {
		fmt.Fprintf(&b, "%dh", h)
	}
	if m > 0 {
		fmt.Fprintf(&b, "%dm", m)
	}
	if s > 0 || b.Len() == 0 {
		fmt.Fprintf(&b, "%ds", s)
	}
	return b.String()
}

// GenerateToken issues a fresh token for existing credentials without the
// login response shape.
func (h *Handler) GenerateToken(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	res, err := h.Coord.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Token generated successfully",
		"token":     res.Token,
		"expiresIn": ttlLabel(h.Creds.TTL()),
		"user":      res.User.Public(),
	})
}

// CreateUser registers and issues a token in one call.
func (h *Handler) CreateUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email and password are required"})
		return
	}

	res, err := h.Coord.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "User created successfully",
		"token":     res.Token,
		"expiresIn": ttlLabel(h.Creds.TTL()),
		"user":      res.User.Public(),
	})
}
