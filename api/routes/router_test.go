package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/balasre/pharmacare-backend/pkg/config"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "pharmacare"
	cfg.JWT.ExpirationMinutes = 15
	return NewRouter(Deps{Config: cfg})
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env := rec.Header().Get("X-PharmaCare-Env"); env != "test" {
		t.Fatalf("expected env header, got %q", env)
	}
	if rid := rec.Header().Get("X-Request-Id"); rid == "" {
		t.Fatal("expected a generated request id header")
	}
}

func TestRouterProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodPost, "/api/v1/orders"},
		{http.MethodGet, "/api/v1/prescriptions"},
		{http.MethodGet, "/api/v1/prescriptions/archives"},
		{http.MethodGet, "/api/v1/prescriptions/5/download"},
		{http.MethodGet, "/api/v1/addresses"},
		{http.MethodGet, "/api/admin/v1/orders"},
		{http.MethodGet, "/api/admin/v1/products"},
	}
	for _, tt := range paths {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tt.method, tt.path, rec.Code)
		}
		var payload struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("%s %s: decode error: %v", tt.method, tt.path, err)
		}
		if payload.Error.Code != "UNAUTHORIZED" {
			t.Fatalf("%s %s: unexpected code %q", tt.method, tt.path, payload.Error.Code)
		}
	}
}

func TestRouterCatalogIsPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// No service wired, but the route must not demand credentials.
	if rec.Code == http.StatusUnauthorized {
		t.Fatal("public catalog should not require auth")
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics, got %d", rec.Code)
	}
}
