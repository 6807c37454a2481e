package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limitedRouter(max int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimit("test", max, window), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func hit(r *gin.Engine) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitBlocksOverMax(t *testing.T) {
	// redis not initialized in tests: the in-memory window serves
	r := limitedRouter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if code := hit(r); code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, code)
		}
	}
	if code := hit(r); code != http.StatusTooManyRequests {
		t.Fatalf("over-limit request: status = %d, want 429", code)
	}
}

func TestRateLimitWindowResets(t *testing.T) {
	r := limitedRouter(1, 50*time.Millisecond)

	if code := hit(r); code != http.StatusOK {
		t.Fatalf("first request: status = %d", code)
	}
	if code := hit(r); code != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d, want 429", code)
	}

	time.Sleep(60 * time.Millisecond)
	if code := hit(r); code != http.StatusOK {
		t.Fatalf("post-window request: status = %d", code)
	}
}

func TestRateLimitersCountIndependently(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/a", RateLimit("class-a", 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/b", RateLimit("class-b", 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := get("/a"); code != http.StatusOK {
		t.Fatalf("/a: status = %d", code)
	}
	if code := get("/a"); code != http.StatusTooManyRequests {
		t.Fatalf("/a second: status = %d, want 429", code)
	}
	// exhausting /a must not count against /b
	if code := get("/b"); code != http.StatusOK {
		t.Fatalf("/b: status = %d", code)
	}
}
