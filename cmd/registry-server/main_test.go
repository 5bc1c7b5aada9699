package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/config"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/platform/db"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/platform/session"
)

func newTestServer() *server {
	return &server{
		cfg: &config.Config{
			Env:           "development",
			SessionSecret: "test-secret",
			SessionTTL:    time.Hour,
			SessionCookie: "registry_session",
			CORSOrigins:   []string{"http://localhost:3000"},
		},
		logger:   zerolog.Nop(),
		catalog:  catalog.Default(),
		store:    session.NewMemoryStore(),
		registry: prometheus.NewRegistry(),
		checks:   []db.Check{{Name: "sessions", Pinger: session.NewMemoryStore()}},
	}
}

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	e := newTestServer().router()

	rec := serve(t, e, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}

	rec = serve(t, e, http.MethodGet, "/health/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "sessions") {
		t.Errorf("expected the sessions check in %s", rec.Body.String())
	}
}

func TestRouter_Catalog(t *testing.T) {
	e := newTestServer().router()

	rec := serve(t, e, http.MethodGet, "/api/v1/catalog/clinicians?q=4567890")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "McIntyre") {
		t.Errorf("expected Sarah McIntyre, got %s", rec.Body.String())
	}

	rec = serve(t, e, http.MethodGet, "/api/v1/catalog/diagnoses?q=cataract")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "H25.9") {
		t.Errorf("unexpected diagnoses response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_WorkflowAndMetrics(t *testing.T) {
	e := newTestServer().router()

	rec := serve(t, e, http.MethodGet, "/start-prototype?journey=addProcedure")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/record-procedure" {
		t.Errorf("unexpected redirect %s", loc)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}

	rec = serve(t, e, http.MethodGet, "/start-prototype?journey=nope")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}

	rec = serve(t, e, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"registry_sessions_started_total 1", "registry_http_request_duration_seconds"} {
		if !strings.Contains(body, name) {
			t.Errorf("expected %q in metrics output", name)
		}
	}
}

func TestCatalogLoader_WithoutDatabase(t *testing.T) {
	loader, closeFn, err := catalogLoader(context.Background(), &config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	cat, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Stats().Clinicians == 0 {
		t.Error("expected the built-in clinicians")
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, catalog.Stats{Clinicians: 10, Devices: 7})

	out := buf.String()
	if !strings.Contains(out, "clinicians     10") || !strings.Contains(out, "devices        7") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPrintStatus(t *testing.T) {
	applied := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var buf bytes.Buffer
	printStatus(&buf, []db.MigrationStatus{
		{Version: 1, Name: "reference_tables", Applied: true, AppliedAt: &applied},
		{Version: 2, Name: "device_indexes"},
	})

	out := buf.String()
	if !strings.Contains(out, "2026-01-02 03:04:05") || !strings.Contains(out, "pending") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestNewLogger_Level(t *testing.T) {
	l := newLogger(&config.Config{Env: "production", LogLevel: "warn"})
	if l.GetLevel() != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %s", l.GetLevel())
	}
	l = newLogger(&config.Config{Env: "production", LogLevel: "bogus"})
	if l.GetLevel() != zerolog.InfoLevel {
		t.Errorf("expected info level, got %s", l.GetLevel())
	}
}
