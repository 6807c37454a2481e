package handlers

import (
	"net/http"

	"todo_webapp/internal/domain"

	"github.com/gin-gonic/gin"
)

const tokenCookie = "token"

// GoogleLogin redirects to Google's consent screen. The optional ?db=
// selector picks which store the callback upserts into and rides along as
// the OAuth state parameter.
func (h *Handler) GoogleLogin(c *gin.Context) {
	if !h.Google.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google OAuth is not configured"})
		return
	}

	store := c.Query("db")
	switch store {
	case "", domain.StoreDocument, domain.StoreRelational:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown store"})
		return
	}
	c.Redirect(http.StatusFound, h.Google.LoginURL(store))
}

// GoogleCallback finishes the flow: exchange the code, upsert the user into
// the store named by the state parameter, set the session cookie. Any
// provider failure lands back on the login page.
func (h *Handler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" || c.Query("error") != "" {
		c.Redirect(http.StatusFound, "/login?error=oauth_failed")
		return
	}

	info, err := h.Google.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		logSoftError(c, "oauth code exchange failed", err)
		c.Redirect(http.StatusFound, "/login?error=oauth_failed")
		return
	}

	res, err := h.Coord.OAuthLogin(c.Request.Context(), info, c.Query("state"))
	if err != nil {
		logSoftError(c, "oauth login failed", err)
		c.Redirect(http.StatusFound, "/login?error=token_generation_failed")
		return
	}

	c.SetCookie(tokenCookie, res.Token, int(h.Creds.TTL().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusFound, "/?oauth_success=true")
}

// OAuthStatus reports whether the session cookie holds a live token.
func (h *Handler) OAuthStatus(c *gin.Context) {
	token, err := c.Cookie(tokenCookie)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	claims, err := h.Creds.VerifyToken(token)
	if err != nil || h.Denylist.Revoked(c.Request.Context(), claims.JTI) {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":       claims.Subject,
			"username": claims.Username,
			"email":    claims.Email,
			"db":       claims.Store,
		},
	})
}

// OAuthLogout clears the cookie, denylists the token and sends the user back
// to the login page.
func (h *Handler) OAuthLogout(c *gin.Context) {
	if token, err := c.Cookie(tokenCookie); err == nil && token != "" {
		if claims, err := h.Creds.VerifyToken(token); err == nil {
			h.Denylist.Revoke(c.Request.Context(), claims.JTI, claims.ExpiresAt)
		}
	}
	c.SetCookie(tokenCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login?message=logged_out")
}
