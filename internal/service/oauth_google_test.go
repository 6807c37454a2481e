package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"todo_webapp/internal/domain"
)

func googleTestProvider(t *testing.T, tokenStatus int, userInfo map[string]any) *GoogleOAuthProvider {
	t.Helper()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("token endpoint method = %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm: %v", err)
		}
		if r.PostForm.Get("grant_type") != "authorization_code" {
			t.Errorf("grant_type = %q", r.PostForm.Get("grant_type"))
		}
		if r.PostForm.Get("code") != "test-code" {
			t.Errorf("code = %q", r.PostForm.Get("code"))
		}
		w.WriteHeader(tokenStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-access-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(tokenSrv.Close)

	userSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-access-token" {
			t.Errorf("Authorization = %q", got)
		}
		json.NewEncoder(w).Encode(userInfo)
	}))
	t.Cleanup(userSrv.Close)

	return NewGoogleOAuthProvider(GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/oauth/google/callback",
		TokenURL:     tokenSrv.URL,
		UserInfoURL:  userSrv.URL,
	})
}

func TestGoogleLoginURL(t *testing.T) {
	p := NewGoogleOAuthProvider(GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/oauth/google/callback",
	})

	raw := p.LoginURL(domain.StoreRelational)
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse login url: %v", err)
	}
	if !strings.HasPrefix(raw, "https://accounts.google.com/") {
		t.Fatalf("unexpected auth host in %q", raw)
	}
	q := u.Query()
	if q.Get("client_id") != "client-id" {
		t.Errorf("client_id = %q", q.Get("client_id"))
	}
	if q.Get("state") != domain.StoreRelational {
		t.Errorf("state = %q", q.Get("state"))
	}
	if q.Get("response_type") != "code" {
		t.Errorf("response_type = %q", q.Get("response_type"))
	}
	if !strings.Contains(q.Get("scope"), "email") {
		t.Errorf("scope = %q", q.Get("scope"))
	}
}

func TestGoogleExchangeCode(t *testing.T) {
	p := googleTestProvider(t, http.StatusOK, map[string]any{
		"sub":   "google-user-1",
		"email": "user@example.com",
		"name":  "Test User",
	})

	info, err := p.ExchangeCode(context.Background(), "test-code")
	if err != nil {
		t.Fatalf("ExchangeCode: %v", err)
	}
	if info.ProviderUserID != "google-user-1" {
		t.Errorf("provider user id = %q", info.ProviderUserID)
	}
	if info.Email != "user@example.com" || info.Name != "Test User" {
		t.Errorf("info = %+v", info)
	}
	if info.Provider != domain.ProviderGoogle {
		t.Errorf("provider = %q", info.Provider)
	}
}

func TestGoogleExchangeCodeTokenFailure(t *testing.T) {
	p := googleTestProvider(t, http.StatusBadRequest, nil)

	if _, err := p.ExchangeCode(context.Background(), "test-code"); err == nil {
		t.Fatal("expected error on token endpoint failure")
	}
}

func TestGoogleExchangeCodeMissingSub(t *testing.T) {
	p := googleTestProvider(t, http.StatusOK, map[string]any{"email": "user@example.com"})

	if _, err := p.ExchangeCode(context.Background(), "test-code"); err == nil {
		t.Fatal("expected error on user info without sub")
	}
}

func TestGoogleConfigured(t *testing.T) {
	if NewGoogleOAuthProvider(GoogleOAuthConfig{}).Configured() {
		t.Fatal("empty config reported configured")
	}
	if !NewGoogleOAuthProvider(GoogleOAuthConfig{ClientID: "a", ClientSecret: "b"}).Configured() {
		t.Fatal("full config reported unconfigured")
	}
}
