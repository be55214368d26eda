package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anvil-web/reqkit/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
		Lang:           "en",
		ProbeMethod:    "GET",
		ProbePath:      "/health",
	}
}

func TestProbeRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"status":"0","data":{"healthy":true}}`))
	}))
	defer srv.Close()

	probe, err := NewProbe(testConfig(srv.URL), nil)
	if err != nil {
		t.Fatalf("NewProbe: %v", err)
	}

	payload, err := probe.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(payload) != `{"healthy":true}` {
		t.Fatalf("unexpected payload %q", payload)
	}
}

func TestProbeRejectsUnsupportedMethod(t *testing.T) {
	cfg := testConfig("http://localhost:9090")
	cfg.ProbeMethod = "PATCH"

	probe, err := NewProbe(cfg, nil)
	if err != nil {
		t.Fatalf("NewProbe: %v", err)
	}
	if _, err := probe.Run(context.Background()); err == nil {
		t.Fatalf("expected error for unsupported method")
	}
}

func TestProbeRejectsMissingOverlay(t *testing.T) {
	cfg := testConfig("http://localhost:9090")
	cfg.CatalogOverlay = "/does/not/exist.yaml"

	if _, err := NewProbe(cfg, nil); err == nil {
		t.Fatalf("expected error for missing overlay file")
	}
}
