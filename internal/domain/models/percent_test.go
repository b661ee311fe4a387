package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPercent_ZeroValueIsNoData(t *testing.T) {
	var p Percent
	if p.Valid() {
		t.Fatalf("zero value must be no data")
	}
	if p.String() != "" {
		t.Fatalf("no data renders as empty, got %q", p.String())
	}
	if _, ok := p.Float64(); ok {
		t.Fatalf("Float64 must report absence")
	}
}

func TestPercent_Rounding(t *testing.T) {
	cases := []struct {
		in     string
		places int32
		want   string
	}{
		{in: "33.333333", places: 1, want: "33.3"},
		{in: "66.666666", places: 1, want: "66.7"},
		{in: "100", places: 1, want: "100.0"},
		{in: "0.04", places: 1, want: "0.0"},
		{in: "50", places: 2, want: "50.00"},
		{in: "7.456", places: 2, want: "7.46"},
	}
	for _, tc := range cases {
		p := NewPercent(decimal.RequireFromString(tc.in), tc.places)
		if got := p.String(); got != tc.want {
			t.Fatalf("NewPercent(%s,%d)=%q, want %q", tc.in, tc.places, got, tc.want)
		}
	}
}

func TestPercent_JSON(t *testing.T) {
	row := Row{
		Label: "2025-09-12",
		Percentages: map[string]Percent{
			"09:30": NewPercent(decimal.RequireFromString("12.34"), 1),
			"10:00": NoData(),
		},
	}
	b, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"label":"2025-09-12","percentages":{"09:30":"12.3","10:00":null},"is_average":false}`
	if string(b) != want {
		t.Fatalf("json:\n got %s\nwant %s", b, want)
	}

	var back Row
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Percentages["09:30"].String() != "12.3" || back.Percentages["10:00"].Valid() {
		t.Fatalf("unexpected decode: %+v", back.Percentages)
	}
}

func TestPercent_UnmarshalRejectsGarbage(t *testing.T) {
	var p Percent
	if err := json.Unmarshal([]byte(`"abc"`), &p); err == nil {
		t.Fatalf("expected error for non-numeric percent")
	}
	if err := json.Unmarshal([]byte(`12`), &p); err == nil {
		t.Fatalf("expected error for bare number")
	}
}

func TestTable_Helpers(t *testing.T) {
	tbl := Table{
		Intervals: []string{"09:30"},
		Rows: []Row{
			{Label: "5 Day Avg", IsAverage: true, Window: 5},
			{Label: "2025-09-12"},
			{Label: "AVERAGE", IsAverage: true},
		},
	}
	if d := tbl.DayRows(); len(d) != 1 || d[0].Label != "2025-09-12" {
		t.Fatalf("DayRows=%+v", d)
	}
	if o, ok := tbl.Overall(); !ok || o.Label != "AVERAGE" {
		t.Fatalf("Overall=%+v ok=%v", o, ok)
	}
	if _, ok := (Table{}).Overall(); ok {
		t.Fatalf("empty table has no overall row")
	}
	cells := tbl.Rows[0].Cells(tbl.Intervals)
	if len(cells) != 1 || cells[0].Valid() {
		t.Fatalf("Cells=%v", cells)
	}
}
