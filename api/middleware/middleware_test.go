package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler = RequestID(newTestLogger())(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a generated request id header")
	}
}

func TestRequestID_PropagatesExisting(t *testing.T) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler = RequestID(newTestLogger())(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("expected propagated id, got %q", got)
	}
}

func TestRecoverer_ConvertsPanicTo500(t *testing.T) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler = Recoverer(newTestLogger())(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}
}

func TestMetrics_RecordsRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(registry)

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	handler = Metrics(m)(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	var requests *dto.MetricFamily
	for _, fam := range families {
		if fam.GetName() == "http_requests_total" {
			requests = fam
		}
	}
	if requests == nil {
		t.Fatal("expected http_requests_total family")
	}
	if len(requests.Metric) != 1 || requests.Metric[0].GetCounter().GetValue() != 1 {
		t.Fatalf("unexpected metric %+v", requests.Metric)
	}

	labels := map[string]string{}
	for _, pair := range requests.Metric[0].Label {
		labels[pair.GetName()] = pair.GetValue()
	}
	if labels["method"] != "POST" || labels["status"] != "201" {
		t.Fatalf("unexpected labels %v", labels)
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler = CORS(config.CORSConfig{AllowedOrigins: []string{"https://stockroom.example"}})(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://stockroom.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://stockroom.example" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}
