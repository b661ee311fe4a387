package api

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/volseason/internal/domain/dto"
	"github.com/guttosm/volseason/internal/logger"
	"github.com/guttosm/volseason/internal/middleware"
	"github.com/guttosm/volseason/internal/render"
	"github.com/guttosm/volseason/internal/service"
)

// HandlerConfig carries the request defaults the handlers need.
//
// Fields:
//   - DefaultTicker: ticker shown by the HTML page when none is given.
//   - Location: exchange time zone; "today" is computed there.
//   - Range: lookback and delay applied to missing dates.
//   - RetentionDays: shown in the page title.
//   - APIKeyPresent: reported by the access probe endpoint.
//   - Now: clock, defaults to time.Now.
type HandlerConfig struct {
	DefaultTicker string
	Location      *time.Location
	Range         service.RangeDefaults
	RetentionDays int
	APIKeyPresent bool
	Now           func() time.Time
}

// Handler provides HTTP handlers for the volume distribution endpoints.
//
// Responsibilities:
//   - Validate path and query parameters
//   - Resolve the date range against the configured defaults
//   - Call the volume service and map its errors to status codes
//   - Shape results into response DTOs or the HTML view
type Handler struct {
	svc service.VolumeService
	cfg HandlerConfig
}

// NewHandler constructs a Handler. A nil Location means UTC.
func NewHandler(svc service.VolumeService, cfg HandlerConfig) *Handler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Handler{svc: svc, cfg: cfg}
}

// GetVolume godoc
// @Summary      Intraday volume distribution
// @Description  Percentage of daily volume traded in each session interval, per day, with rolling and overall averages
// @Tags         volume
// @Produce      json
// @Param        ticker      path      string  true   "Ticker symbol" example(SPY)
// @Param        start_date  query     string  false  "First date, YYYY-MM-DD" example(2025-05-12)
// @Param        end_date    query     string  false  "Last date, YYYY-MM-DD" example(2025-09-04)
// @Success      200         {object}  dto.VolumeResponse  "Success"
// @Failure      400         {object}  dto.ErrorResponse   "Bad Request"
// @Failure      502         {object}  dto.ErrorResponse   "Market data unavailable"
// @Failure      500         {object}  dto.ErrorResponse   "Internal Error"
// @Router       /api/v1/volume/{ticker} [get]
func (h *Handler) GetVolume(c *gin.Context) {
	ticker, r, ok := h.parseRequest(c, c.Param("ticker"))
	if !ok {
		return
	}

	table, err := h.svc.Distribution(c.Request.Context(), ticker, r)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewVolumeResponse(ticker, r.FromString(), r.ToString(), h.cfg.Location.String(), *table))
}

// GetBars godoc
// @Summary      Raw 30-minute volume bars
// @Description  Bars as fetched from the market-data provider, before aggregation
// @Tags         volume
// @Produce      json
// @Param        ticker      path      string  true   "Ticker symbol" example(SPY)
// @Param        start_date  query     string  false  "First date, YYYY-MM-DD"
// @Param        end_date    query     string  false  "Last date, YYYY-MM-DD"
// @Success      200         {object}  dto.BarsResponse   "Success"
// @Failure      400         {object}  dto.ErrorResponse  "Bad Request"
// @Failure      502         {object}  dto.ErrorResponse  "Market data unavailable"
// @Router       /api/v1/volume/{ticker}/bars [get]
func (h *Handler) GetBars(c *gin.Context) {
	ticker, r, ok := h.parseRequest(c, c.Param("ticker"))
	if !ok {
		return
	}

	bars, err := h.svc.Bars(c.Request.Context(), ticker, r)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BarsResponse{
		Ticker:       ticker,
		From:         r.FromString(),
		To:           r.ToString(),
		ResultsCount: len(bars),
		Results:      bars,
	})
}

// TestAccess godoc
// @Summary      Probe market-data access
// @Description  Runs a few small aggregate queries to show which series the configured API key can read
// @Tags         volume
// @Produce      json
// @Success      200  {object}  dto.AccessResponse
// @Router       /api/v1/test-access [get]
func (h *Handler) TestAccess(c *gin.Context) {
	results := h.svc.ProbeAccess(c.Request.Context())
	resp := dto.AccessResponse{APIKeyPresent: h.cfg.APIKeyPresent, Tests: make([]dto.AccessProbe, 0, len(results))}
	for _, r := range results {
		resp.Tests = append(resp.Tests, dto.AccessProbe{
			Test:         r.Test,
			Status:       r.Status,
			ResultsCount: r.ResultsCount,
			Error:        r.Error,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Page renders the color-coded distribution table as HTML. It accepts
// the same date parameters as GetVolume and an optional ticker.
func (h *Handler) Page(c *gin.Context) {
	raw := c.Query("ticker")
	if raw == "" {
		raw = h.cfg.DefaultTicker
	}
	ticker, r, ok := h.parseRequest(c, raw)
	if !ok {
		return
	}

	table, err := h.svc.Distribution(c.Request.Context(), ticker, r)
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	err = render.HTML(&buf, render.Page{
		Ticker:      ticker,
		From:        r.FromString(),
		To:          r.ToString(),
		Timezone:    h.cfg.Location.String(),
		Retention:   h.cfg.RetentionDays,
		Table:       *table,
		GeneratedAt: h.cfg.Now(),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// parseRequest validates the ticker and resolves the date range. On
// failure it has already written a 400 response.
func (h *Handler) parseRequest(c *gin.Context, rawTicker string) (string, service.DateRange, bool) {
	ticker, err := service.NormalizeTicker(rawTicker)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid ticker", err)
		return "", service.DateRange{}, false
	}

	from, err := service.ParseDate(query(c, "start_date", "startDate"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid start_date", err)
		return "", service.DateRange{}, false
	}
	to, err := service.ParseDate(query(c, "end_date", "endDate"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid end_date", err)
		return "", service.DateRange{}, false
	}

	r, err := service.ResolveRange(h.cfg.Now(), h.cfg.Location, from, to, h.cfg.Range)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid date range", err)
		return "", service.DateRange{}, false
	}
	return ticker, r, true
}

// fail maps service errors to status codes.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTicker), errors.Is(err, service.ErrInvalidRange):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, service.ErrInputUnavailable):
		middleware.AbortWithError(c, http.StatusBadGateway, "market data unavailable", err)
	default:
		logger.With("api").Error().Err(err).
			Str("request_id", middleware.RequestIDFrom(c.Request.Context())).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		middleware.AbortWithError(c, http.StatusInternalServerError, "internal error", err)
	}
}

// query returns the first non-empty value among the given keys.
func query(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			return v
		}
	}
	return ""
}
