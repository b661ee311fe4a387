package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guttosm/volseason/internal/logger"
)

func TestRequestID_InboundHeader(t *testing.T) {
	cases := []struct {
		name    string
		inbound string
		keep    bool
	}{
		{name: "no header", inbound: "", keep: false},
		{name: "upstream id kept", inbound: "lb-7f3a9c", keep: true},
		{name: "too long", inbound: strings.Repeat("a", 129), keep: false},
		{name: "control characters", inbound: "bad\x01id", keep: false},
		{name: "spaces", inbound: "two words", keep: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RequestID())
			var fromGin, fromCtx string
			r.GET("/", func(c *gin.Context) {
				fromGin = c.GetString(RequestIDKey)
				fromCtx = RequestIDFrom(c.Request.Context())
				c.String(200, "ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.inbound != "" {
				req.Header.Set(RequestIDHeader, tc.inbound)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got == "" || got != fromGin || got != fromCtx {
				t.Fatalf("header=%q gin=%q ctx=%q must match", got, fromGin, fromCtx)
			}
			if tc.keep && got != tc.inbound {
				t.Fatalf("inbound id %q replaced by %q", tc.inbound, got)
			}
			if !tc.keep {
				if _, err := uuid.Parse(got); err != nil {
					t.Fatalf("generated id %q is not a uuid", got)
				}
			}
		})
	}
}

func TestRequestIDFrom_Missing(t *testing.T) {
	if id := RequestIDFrom(httptest.NewRequest(http.MethodGet, "/", nil).Context()); id != "" {
		t.Fatalf("want empty id, got %q", id)
	}
}

func TestRecoveryMiddleware_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout); logger.Init("info", false) })
	logger.Init("info", false)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RecoveryMiddleware())
	r.GET("/volume/:ticker", func(c *gin.Context) { panic("nil table") })

	req := httptest.NewRequest(http.MethodGet, "/volume/SPY", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("code=%d", w.Code)
	}
	if strings.Contains(w.Body.String(), "nil table") {
		t.Fatalf("panic value leaked to client: %s", w.Body.String())
	}

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if line["request_id"] != "req-42" || line["component"] != "http" ||
		line["panic"] != "nil table" || line["path"] != "/volume/:ticker" || line["level"] != "error" {
		t.Fatalf("unexpected log fields: %v", line)
	}
}
