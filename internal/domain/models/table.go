package models

// Row is one line of the volume distribution table.
//
// Day rows carry the trading date in Label ("2025-09-12") with
// one-decimal percentages. Average rows carry "<N> Day Avg" or "AVERAGE"
// with two-decimal percentages and IsAverage set; Window is the number of
// trading days of a rolling row and 0 for the overall average.
//
// Percentages always holds every interval of the table, with explicit
// "no data" cells.
type Row struct {
	Label       string             `json:"label" example:"2025-09-12"`
	Percentages map[string]Percent `json:"percentages" swaggertype:"object,string"`
	IsAverage   bool               `json:"is_average"`
	Window      int                `json:"window,omitempty"`
}

// Cells returns the row values ordered by intervals.
func (r Row) Cells(intervals []string) []Percent {
	out := make([]Percent, len(intervals))
	for i, iv := range intervals {
		out[i] = r.Percentages[iv]
	}
	return out
}

// Table is the assembled distribution: rolling averages (largest window
// first), day rows (newest first) and the overall average as the last row.
type Table struct {
	Intervals []string `json:"intervals"`
	Rows      []Row    `json:"rows"`
}

// DayRows returns the per-day rows in table order.
func (t Table) DayRows() []Row {
	var out []Row
	for _, r := range t.Rows {
		if !r.IsAverage {
			out = append(out, r)
		}
	}
	return out
}

// Overall returns the overall average row, which is always last.
func (t Table) Overall() (Row, bool) {
	if len(t.Rows) == 0 {
		return Row{}, false
	}
	last := t.Rows[len(t.Rows)-1]
	if !last.IsAverage || last.Window != 0 {
		return Row{}, false
	}
	return last, true
}
