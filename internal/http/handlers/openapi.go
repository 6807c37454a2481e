package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OpenAPI serves the API description document. Kept as a literal rather
// than generated: the surface is small and stable.
func (h *Handler) OpenAPI(c *gin.Context) {
	c.JSON(http.StatusOK, openAPIDoc)
}

var openAPIDoc = gin.H{
	"openapi": "3.0.3",
	"info": gin.H{
		"title":       "Todo Webapp API",
		"description": "Task list with dual persistence (document and relational stores), JWT auth and Google OAuth.",
		"version":     "1.0.0",
	},
	"components": gin.H{
		"securitySchemes": gin.H{
			"bearerAuth": gin.H{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
		},
		"schemas": gin.H{
			"Task": gin.H{
				"type": "object",
				"properties": gin.H{
					"id":             gin.H{"type": "string"},
					"title":          gin.H{"type": "string"},
					"correlation_id": gin.H{"type": "string"},
					"created_at":     gin.H{"type": "string", "format": "date-time"},
				},
			},
			"User": gin.H{
				"type": "object",
				"properties": gin.H{
					"username": gin.H{"type": "string"},
					"email":    gin.H{"type": "string"},
				},
			},
			"Error": gin.H{
				"type":       "object",
				"properties": gin.H{"error": gin.H{"type": "string"}},
			},
		},
	},
	"paths": gin.H{
		"/tasks": gin.H{
			"get": gin.H{
				"summary":   "List tasks from the document store",
				"responses": gin.H{"200": gin.H{"description": "Task list"}},
			},
			"post": gin.H{
				"summary": "Create a task in the document store",
				"requestBody": gin.H{
					"required": true,
					"content": gin.H{"application/json": gin.H{"schema": gin.H{
						"type":       "object",
						"required":   []string{"title"},
						"properties": gin.H{"title": gin.H{"type": "string"}},
					}}},
				},
				"responses": gin.H{
					"201": gin.H{"description": "Created"},
					"400": gin.H{"description": "Title is required"},
				},
			},
		},
		"/tasks/{id}": gin.H{
			"delete": gin.H{
				"summary":    "Delete a document-store task",
				"parameters": []gin.H{{"name": "id", "in": "path", "required": true, "schema": gin.H{"type": "string"}}},
				"responses": gin.H{
					"200": gin.H{"description": "Task removed"},
					"404": gin.H{"description": "Task not found"},
				},
			},
		},
		"/tasks-pg": gin.H{
			"get":  gin.H{"summary": "List tasks from the relational store", "responses": gin.H{"200": gin.H{"description": "Task list"}}},
			"post": gin.H{"summary": "Create a task in the relational store", "responses": gin.H{"201": gin.H{"description": "Created"}}},
		},
		"/tasks-pg/{id}": gin.H{
			"delete": gin.H{
				"summary":    "Delete a relational-store task",
				"parameters": []gin.H{{"name": "id", "in": "path", "required": true, "schema": gin.H{"type": "string"}}},
				"responses":  gin.H{"200": gin.H{"description": "Task removed"}, "404": gin.H{"description": "Task not found"}},
			},
		},
		"/auth/register": gin.H{
			"post": gin.H{
				"summary": "Register a user in every active store",
				"responses": gin.H{
					"201": gin.H{"description": "User registered successfully"},
					"400": gin.H{"description": "Validation failure or duplicate user"},
				},
			},
		},
		"/auth/login": gin.H{
			"post": gin.H{
				"summary": "Authenticate and receive a JWT",
				"responses": gin.H{
					"200": gin.H{"description": "Login successful"},
					"401": gin.H{"description": "Invalid credentials"},
				},
			},
		},
		"/auth/profile": gin.H{
			"get": gin.H{
				"summary":   "Current user's profile",
				"security":  []gin.H{{"bearerAuth": []string{}}},
				"responses": gin.H{"200": gin.H{"description": "Profile"}, "401": gin.H{"description": "Invalid or expired token"}},
			},
		},
		"/auth/logout": gin.H{
			"post": gin.H{
				"summary":   "Revoke the presented token",
				"security":  []gin.H{{"bearerAuth": []string{}}},
				"responses": gin.H{"200": gin.H{"description": "Logged out"}},
			},
		},
		"/token/generate": gin.H{
			"post": gin.H{
				"summary":   "Issue a token for existing credentials",
				"responses": gin.H{"200": gin.H{"description": "Token generated successfully"}},
			},
		},
		"/token/user": gin.H{
			"post": gin.H{
				"summary":   "Register and issue a token in one call",
				"responses": gin.H{"201": gin.H{"description": "User created successfully"}},
			},
		},
		"/oauth/google": gin.H{
			"get": gin.H{
				"summary":    "Start the Google OAuth flow",
				"parameters": []gin.H{{"name": "db", "in": "query", "schema": gin.H{"type": "string", "enum": []string{"document", "relational"}}}},
				"responses":  gin.H{"302": gin.H{"description": "Redirect to Google"}},
			},
		},
		"/oauth/google/callback": gin.H{
			"get": gin.H{"summary": "OAuth callback", "responses": gin.H{"302": gin.H{"description": "Redirect home or back to login"}}},
		},
		"/oauth/status": gin.H{
			"get": gin.H{"summary": "Session cookie status", "responses": gin.H{"200": gin.H{"description": "Authentication state"}}},
		},
		"/oauth/logout": gin.H{
			"get": gin.H{"summary": "Clear the session cookie", "responses": gin.H{"302": gin.H{"description": "Redirect to login"}}},
		},
		"/health": gin.H{
			"get": gin.H{"summary": "Health report", "responses": gin.H{"200": gin.H{"description": "Store connectivity"}}},
		},
	},
}
