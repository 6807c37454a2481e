package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded view templates for gin's SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// Index renders the task lists from every active store.
func (h *Handler) Index(c *gin.Context) {
	doc, rel, err := h.Coord.ListTasks(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{
			"Error": "Could not load tasks",
			"Mode":  h.Coord.Mode(),
		})
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"DocTasks":     doc,
		"RelTasks":     rel,
		"Mode":         h.Coord.Mode(),
		"OAuthSuccess": c.Query("oauth_success") == "true",
	})
}

// AddTask handles the index form. The form flow never shows a raw error
// page, so validation failures and store errors alike redirect home.
func (h *Handler) AddTask(c *gin.Context) {
	title := c.PostForm("title")
	if _, err := h.Coord.CreateTask(c.Request.Context(), title); err != nil {
		logSoftError(c, "task create failed", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// RemoveTask handles the per-task delete form, addressing the primary store.
func (h *Handler) RemoveTask(c *gin.Context) {
	if _, err := h.Coord.DeleteTask(c.Request.Context(), c.Param("id"), c.PostForm("store")); err != nil {
		logSoftError(c, "task delete failed", err)
	}
	c.Redirect(http.StatusFound, "/")
}

// LoginPage carries OAuth redirect outcomes back to the user.
func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Error":   c.Query("error"),
		"Message": c.Query("message"),
	})
}
