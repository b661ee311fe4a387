package polygon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestFetchBars_RequestShapeAndPagination(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []*http.Request
	)
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r)
		mu.Unlock()
		if r.URL.Query().Get("cursor") == "" {
			fmt.Fprintf(w, `{"status":"OK","ticker":"SPY","resultsCount":2,
				"results":[{"t":1726493400000,"v":100},{"t":1726495200000,"v":200}],
				"next_url":"%s/v2/aggs/ticker/SPY/range/30/minute/next?cursor=abc"}`, srv.URL)
			return
		}
		fmt.Fprint(w, `{"status":"OK","results":[{"t":1726497000000,"v":300}]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	bars, err := c.FetchBars(context.Background(), "spy", day("2025-01-01"), day("2025-05-11"))
	if err != nil {
		t.Fatalf("FetchBars: %v", err)
	}
	if len(bars) != 3 || bars[2].Volume != 300 || bars[0].Timestamp != 1726493400000 {
		t.Fatalf("unexpected bars: %+v", bars)
	}

	if len(seen) != 2 {
		t.Fatalf("want 2 requests, got %d", len(seen))
	}
	first := seen[0]
	if first.URL.Path != "/v2/aggs/ticker/SPY/range/30/minute/2025-01-01/2025-05-11" {
		t.Fatalf("unexpected path %s", first.URL.Path)
	}
	q := first.URL.Query()
	if q.Get("adjusted") != "true" || q.Get("sort") != "asc" || q.Get("limit") != "50000" {
		t.Fatalf("unexpected query %v", q)
	}
	for i, r := range seen {
		if r.URL.Query().Get("apiKey") != "secret" {
			t.Fatalf("request %d missing apiKey", i)
		}
	}
}

func TestAggregates_StatusHandling(t *testing.T) {
	cases := []struct {
		name      string
		code      int
		body      string
		wantErr   bool
		wantCount int
	}{
		{name: "ok", code: 200, body: `{"status":"OK","results":[{"t":1,"v":1}]}`, wantCount: 1},
		{name: "delayed", code: 200, body: `{"status":"DELAYED","results":[{"t":1,"v":1},{"t":2,"v":2}]}`, wantCount: 2},
		{name: "ok without results", code: 200, body: `{"status":"OK","resultsCount":0}`, wantCount: 0},
		{name: "error status", code: 200, body: `{"status":"ERROR","error":"bad ticker"}`, wantErr: true},
		{name: "not authorized", code: 403, body: `{"status":"NOT_AUTHORIZED","message":"plan"}`, wantErr: true},
		{name: "server error", code: 500, body: `oops`, wantErr: true},
		{name: "malformed json", code: 200, body: `{"status":`, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "k", time.Second)
			res, err := c.Aggregates(context.Background(), AggregatesRequest{
				Ticker: "SPY", Multiplier: 1, Timespan: "day", From: day("2024-01-01"), To: day("2024-12-31"),
			})
			if tc.wantErr {
				if !errors.Is(err, ErrInputUnavailable) {
					t.Fatalf("want ErrInputUnavailable, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(res.Bars) != tc.wantCount || res.Pages != 1 {
				t.Fatalf("bars=%d pages=%d", len(res.Bars), res.Pages)
			}
		})
	}
}

func TestAggregates_InvalidRequest(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "k", time.Second)
	_, err := c.Aggregates(context.Background(), AggregatesRequest{Ticker: " ", Multiplier: 30, Timespan: "minute"})
	if !errors.Is(err, ErrInputUnavailable) {
		t.Fatalf("want ErrInputUnavailable, got %v", err)
	}
	_, err = c.Aggregates(context.Background(), AggregatesRequest{Ticker: "SPY"})
	if !errors.Is(err, ErrInputUnavailable) {
		t.Fatalf("want ErrInputUnavailable for zero bar size, got %v", err)
	}
}

func TestFetchBars_TransportErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url, "topsecret", time.Second)
	_, err := c.FetchBars(context.Background(), "SPY", day("2025-01-01"), day("2025-01-02"))
	if !errors.Is(err, ErrInputUnavailable) {
		t.Fatalf("want ErrInputUnavailable, got %v", err)
	}
	if strings.Contains(err.Error(), "topsecret") {
		t.Fatalf("api key leaked in error: %v", err)
	}
}

func TestFetchBars_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, "k", time.Second).FetchBars(ctx, "SPY", day("2025-01-01"), day("2025-01-02"))
	if !errors.Is(err, ErrInputUnavailable) {
		t.Fatalf("want ErrInputUnavailable, got %v", err)
	}
}

func TestFlexVolume(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{raw: `1520344`, want: 1520344},
		{raw: `1.5e3`, want: 1500},
		{raw: `99.9`, want: 99},
		{raw: `"200"`, want: 200},
		{raw: `" 2.5e2 "`, want: 250},
		{raw: `null`, want: 0},
		{raw: `"abc"`, want: 0},
		{raw: `-5`, want: 0},
		{raw: `true`, want: 0},
		{raw: `{}`, want: 0},
	}
	for _, tc := range cases {
		var b barRaw
		if err := json.Unmarshal([]byte(`{"t":1,"v":`+tc.raw+`}`), &b); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.raw, err)
		}
		if int64(b.Volume) != tc.want {
			t.Fatalf("%s: got %d want %d", tc.raw, b.Volume, tc.want)
		}
	}

	var missing barRaw
	if err := json.Unmarshal([]byte(`{"t":1}`), &missing); err != nil || missing.Volume != 0 {
		t.Fatalf("missing volume: %v %d", err, missing.Volume)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "", 0)
	if c.baseURL != DefaultBaseURL || c.http.Timeout != 30*time.Second {
		t.Fatalf("unexpected defaults: %s %s", c.baseURL, c.http.Timeout)
	}
	if c.HasAPIKey() {
		t.Fatalf("HasAPIKey should be false")
	}
}
