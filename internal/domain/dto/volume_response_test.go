package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/guttosm/volseason/internal/domain/models"
	"github.com/shopspring/decimal"
)

func TestNewVolumeResponse(t *testing.T) {
	tbl := models.Table{
		Intervals: []string{"09:30", "10:00"},
		Rows: []models.Row{{
			Label: "2025-09-12",
			Percentages: map[string]models.Percent{
				"09:30": models.NewPercent(decimal.NewFromInt(100), 1),
				"10:00": models.NoData(),
			},
		}},
	}
	resp := NewVolumeResponse("SPY", "2025-09-01", "2025-09-12", "America/New_York", tbl)
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(raw)
	for _, want := range []string{`"ticker":"SPY"`, `"09:30":"100.0"`, `"10:00":null`, `"intervals":["09:30","10:00"]`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body %s missing %s", body, want)
		}
	}
}

func TestNewVolumeResponse_EmptyRowsIsArray(t *testing.T) {
	resp := NewVolumeResponse("SPY", "a", "b", "UTC", models.Table{Intervals: []string{}})
	raw, _ := json.Marshal(resp)
	if !strings.Contains(string(raw), `"rows":[]`) {
		t.Fatalf("rows should encode as [], got %s", raw)
	}
}
