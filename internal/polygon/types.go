package polygon

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/guttosm/volseason/internal/domain/models"
)

// aggregatesResponse is the body of GET /v2/aggs/ticker/{ticker}/range/...
type aggregatesResponse struct {
	Ticker       string   `json:"ticker"`
	QueryCount   int      `json:"queryCount"`
	ResultsCount int      `json:"resultsCount"`
	Adjusted     bool     `json:"adjusted"`
	Results      []barRaw `json:"results"`
	Status       string   `json:"status"`
	RequestID    string   `json:"request_id"`
	Count        int      `json:"count"`
	NextURL      string   `json:"next_url,omitempty"`
	Message      string   `json:"message,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// barRaw is one entry of results. Only time and volume are consumed.
type barRaw struct {
	Timestamp int64      `json:"t"`
	Volume    flexVolume `json:"v"`
}

func (b barRaw) toBar() models.Bar {
	return models.Bar{Timestamp: b.Timestamp, Volume: int64(b.Volume)}
}

// flexVolume decodes a volume that may arrive as an integer, a float in
// scientific notation or a quoted number. Anything else, including null
// and negative values, decodes to 0 instead of failing the whole response.
type flexVolume int64

func (f *flexVolume) UnmarshalJSON(data []byte) error {
	*f = 0
	s := string(bytes.TrimSpace(data))
	if s == "null" || s == "" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v > 0 {
			*f = flexVolume(v)
		}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil
	}
	if v >= math.MaxInt64 {
		*f = flexVolume(math.MaxInt64)
		return nil
	}
	*f = flexVolume(int64(v))
	return nil
}
