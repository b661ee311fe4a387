// Package polygon fetches aggregate bars from the Polygon.io REST API.
package polygon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/volseason/internal/domain/models"
	"github.com/guttosm/volseason/internal/logger"
)

// ErrInputUnavailable reports that bars could not be obtained: the request
// failed, the API answered with a non-success HTTP status, or the payload
// status was not usable.
var ErrInputUnavailable = errors.New("input unavailable")

const (
	DefaultBaseURL = "https://api.polygon.io"

	// maxLimit is the largest page the aggregates endpoint serves.
	maxLimit = 50000
	maxPages = 100

	dateLayout = "2006-01-02"
)

// Client is a minimal Polygon aggregates client. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// HasAPIKey reports whether an API key is configured.
func (c *Client) HasAPIKey() bool { return c.apiKey != "" }

// AggregatesRequest selects a bar series.
//
// Fields:
//   - Ticker: symbol, e.g. "SPY".
//   - Multiplier, Timespan: bar size, e.g. 30 and "minute".
//   - From, To: inclusive calendar dates.
type AggregatesRequest struct {
	Ticker     string
	Multiplier int
	Timespan   string
	From       time.Time
	To         time.Time
}

// AggregatesResult is the outcome of one logical aggregates query,
// all pages merged.
type AggregatesResult struct {
	Status string
	Bars   []models.Bar
	Pages  int
}

// FetchBars returns the 30-minute bars of ticker between from and to.
func (c *Client) FetchBars(ctx context.Context, ticker string, from, to time.Time) ([]models.Bar, error) {
	res, err := c.Aggregates(ctx, AggregatesRequest{
		Ticker:     ticker,
		Multiplier: 30,
		Timespan:   "minute",
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, err
	}
	return res.Bars, nil
}

// Aggregates runs an aggregates query, following next_url until the series
// is complete. Every failure wraps ErrInputUnavailable.
func (c *Client) Aggregates(ctx context.Context, req AggregatesRequest) (*AggregatesResult, error) {
	u, err := c.aggregatesURL(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}

	log := logger.With("polygon")
	res := &AggregatesResult{}
	for next := u; next != ""; {
		if res.Pages == maxPages {
			return nil, fmt.Errorf("%w: more than %d pages for %s", ErrInputUnavailable, maxPages, req.Ticker)
		}
		page, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}
		res.Pages++
		res.Status = page.Status
		for _, b := range page.Results {
			res.Bars = append(res.Bars, b.toBar())
		}
		log.Debug().
			Str("ticker", req.Ticker).
			Int("page", res.Pages).
			Int("results", len(page.Results)).
			Str("status", page.Status).
			Msg("aggregates page")

		next = ""
		if page.NextURL != "" {
			if next, err = c.withKey(page.NextURL); err != nil {
				return nil, fmt.Errorf("%w: next_url: %v", ErrInputUnavailable, err)
			}
		}
	}
	return res, nil
}

func (c *Client) aggregatesURL(req AggregatesRequest) (string, error) {
	if strings.TrimSpace(req.Ticker) == "" {
		return "", errors.New("ticker is required")
	}
	if req.Multiplier <= 0 || req.Timespan == "" {
		return "", fmt.Errorf("invalid bar size %d/%s", req.Multiplier, req.Timespan)
	}
	raw := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/%d/%s/%s/%s",
		c.baseURL,
		url.PathEscape(strings.ToUpper(req.Ticker)),
		req.Multiplier,
		req.Timespan,
		req.From.Format(dateLayout),
		req.To.Format(dateLayout),
	)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	q := u.Query()
	q.Set("adjusted", "true")
	q.Set("sort", "asc")
	q.Set("limit", strconv.Itoa(maxLimit))
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// withKey re-attaches the API key, which Polygon strips from next_url.
func (c *Client) withKey(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) get(ctx context.Context, rawURL string) (*aggregatesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrInputUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, redact(err, c.apiKey))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: polygon status %d: %s", ErrInputUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var page aggregatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrInputUnavailable, err)
	}
	switch page.Status {
	case "OK", "DELAYED":
	default:
		detail := page.Error
		if detail == "" {
			detail = page.Message
		}
		return nil, fmt.Errorf("%w: polygon status %q: %s", ErrInputUnavailable, page.Status, detail)
	}
	return &page, nil
}

// redact strips the API key from transport errors, which embed the URL.
func redact(err error, key string) string {
	msg := err.Error()
	if key == "" {
		return msg
	}
	return strings.ReplaceAll(msg, key, "REDACTED")
}
