package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"todo_webapp/internal/service"
)

// googleFake stands in for Google's token and userinfo endpoints.
func googleFake(t *testing.T) *service.GoogleOAuthProvider {
	t.Helper()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fake-access-token",
			"token_type":   "Bearer",
		})
	}))
	t.Cleanup(tokenSrv.Close)

	userSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"sub":   "google-1",
			"email": "oauth@example.com",
			"name":  "OAuth User",
		})
	}))
	t.Cleanup(userSrv.Close)

	return service.NewGoogleOAuthProvider(service.GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/oauth/google/callback",
		TokenURL:     tokenSrv.URL,
		UserInfoURL:  userSrv.URL,
	})
}

func TestGoogleLoginUnconfigured(t *testing.T) {
	app := newTestApp(nil)

	w := doJSON(t, app, http.MethodGet, "/oauth/google", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGoogleLoginRedirects(t *testing.T) {
	app := newTestApp(googleFake(t))

	w := doJSON(t, app, http.MethodGet, "/oauth/google?db=relational", "")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if loc.Query().Get("state") != "relational" {
		t.Fatalf("state = %q", loc.Query().Get("state"))
	}
}

func TestGoogleLoginUnknownStore(t *testing.T) {
	app := newTestApp(googleFake(t))

	w := doJSON(t, app, http.MethodGet, "/oauth/google?db=mongo", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGoogleCallback(t *testing.T) {
	app := newTestApp(googleFake(t))

	w := doJSON(t, app, http.MethodGet, "/oauth/google/callback?code=abc&state=document", "")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/?oauth_success=true" {
		t.Fatalf("location = %q", loc)
	}

	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("no token cookie set")
	}
	claims, err := app.creds.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Email != "oauth@example.com" {
		t.Fatalf("email claim = %q", claims.Email)
	}
}

func TestGoogleCallbackMissingCode(t *testing.T) {
	app := newTestApp(googleFake(t))

	w := doJSON(t, app, http.MethodGet, "/oauth/google/callback", "")
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?error=oauth_failed" {
		t.Fatalf("location = %q", loc)
	}
}

func TestOAuthStatus(t *testing.T) {
	app := newTestApp(googleFake(t))

	// no cookie
	w := doJSON(t, app, http.MethodGet, "/oauth/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if decodeBody(t, w)["authenticated"] != false {
		t.Fatal("authenticated without a cookie")
	}

	// with the cookie from a completed callback
	cb := doJSON(t, app, http.MethodGet, "/oauth/google/callback?code=abc&state=document", "")
	req := httptest.NewRequest(http.MethodGet, "/oauth/status", strings.NewReader(""))
	for _, c := range cb.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	body := decodeBody(t, rec)
	if body["authenticated"] != true {
		t.Fatalf("body = %v", body)
	}
	user, ok := body["user"].(map[string]any)
	if !ok || user["email"] != "oauth@example.com" {
		t.Fatalf("user = %v", body["user"])
	}
}

func TestOAuthLogout(t *testing.T) {
	app := newTestApp(googleFake(t))

	cb := doJSON(t, app, http.MethodGet, "/oauth/google/callback?code=abc&state=document", "")
	req := httptest.NewRequest(http.MethodGet, "/oauth/logout", strings.NewReader(""))
	for _, c := range cb.Result().Cookies() {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?message=logged_out" {
		t.Fatalf("location = %q", loc)
	}

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("token cookie not cleared")
	}
}
