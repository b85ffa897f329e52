package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"atlas_travel/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample so counters are non-zero
	observability.ObserveAPI("/bookings", "POST", 201, 12*time.Millisecond)
	observability.ObserveFlow("booking", "ok")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	if !strings.Contains(out, "atlas_api_requests_total") {
		t.Fatalf("expected atlas_api_requests_total in output")
	}
	if !strings.Contains(out, "atlas_flow_submissions_total") {
		t.Fatalf("expected atlas_flow_submissions_total in output")
	}
}
