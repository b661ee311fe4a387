package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/volseason/internal/domain/dto"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockVolumeService{table: sampleTable()}
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics")) })
	r := NewRouter(NewHandler(svc, testHandlerConfig()), RouterConfig{
		RequestTimeout:  time.Second,
		RateLimit:       100,
		RateLimitWindow: time.Minute,
		MetricsHandler:  metrics,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/volume/SPY?start_date=2025-09-01&end_date=2025-09-05", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	var out dto.VolumeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if out.From != "2025-09-01" || out.To != "2025-09-05" || len(out.Intervals) != 2 {
		t.Fatalf("unexpected body: %+v", out)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || w.Body.String() != "# metrics" {
		t.Fatalf("metrics not mounted: %d %q", w.Code, w.Body.String())
	}
}

func TestNewRouter_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(&mockVolumeService{}, testHandlerConfig()), RouterConfig{RateLimit: 1, RateLimitWindow: time.Minute})

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/test-access", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}
}
