package dto

import "github.com/guttosm/volseason/internal/domain/models"

// VolumeResponse is returned by GET /api/v1/volume/{ticker}.
//
// Rows follow table order: rolling averages (largest window first), day
// rows (newest first), then the overall AVERAGE. Cells without data are
// null.
type VolumeResponse struct {
	Ticker    string       `json:"ticker" example:"SPY"`
	From      string       `json:"from" example:"2025-05-12"`
	To        string       `json:"to" example:"2025-09-04"`
	Timezone  string       `json:"timezone" example:"America/New_York"`
	Intervals []string     `json:"intervals" example:"09:30,10:00,10:30"`
	Rows      []models.Row `json:"rows"`
}

// BarsResponse is returned by GET /api/v1/volume/{ticker}/bars.
type BarsResponse struct {
	Ticker       string       `json:"ticker" example:"SPY"`
	From         string       `json:"from" example:"2025-05-12"`
	To           string       `json:"to" example:"2025-09-04"`
	ResultsCount int          `json:"resultsCount" example:"1040"`
	Results      []models.Bar `json:"results"`
}

// AccessResponse is returned by GET /api/v1/test-access.
type AccessResponse struct {
	APIKeyPresent bool          `json:"apiKeyPresent"`
	Tests         []AccessProbe `json:"tests"`
}

// AccessProbe mirrors one access probe outcome.
type AccessProbe struct {
	Test         string `json:"test" example:"Daily bars"`
	Status       string `json:"status,omitempty" example:"OK"`
	ResultsCount int    `json:"resultsCount" example:"250"`
	Error        string `json:"error,omitempty"`
}

// NewVolumeResponse copies a table into its response shape.
func NewVolumeResponse(ticker, from, to, tz string, t models.Table) VolumeResponse {
	rows := t.Rows
	if rows == nil {
		rows = []models.Row{}
	}
	return VolumeResponse{
		Ticker:    ticker,
		From:      from,
		To:        to,
		Timezone:  tz,
		Intervals: t.Intervals,
		Rows:      rows,
	}
}
