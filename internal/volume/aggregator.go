// Package volume turns intraday volume bars into a percentage-of-day
// distribution table with rolling and overall averages.
//
// Aggregation is a pure function of its input: an Aggregator holds only
// immutable configuration and may be shared between goroutines.
package volume

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/guttosm/volseason/internal/domain/models"
	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the trading-day key used for day rows.
	DateLayout = "2006-01-02"

	// OverallLabel labels the average over every retained day.
	OverallLabel = "AVERAGE"

	dayPlaces     = 1
	averagePlaces = 2
)

var hundred = decimal.NewFromInt(100)

// Aggregator builds distribution tables for one market calendar.
type Aggregator struct {
	loc       *time.Location
	session   Session
	intervals []string
	retention int
	windows   []int
}

// NewAggregator validates opts and binds them to the exchange time zone
// used to derive trading dates and minutes of day.
func NewAggregator(loc *time.Location, opts Options) (*Aggregator, error) {
	if loc == nil {
		return nil, errors.New("nil exchange location")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Aggregator{
		loc:       loc,
		session:   opts.Session,
		intervals: opts.Session.Labels(),
		retention: opts.RetentionDays,
		windows:   opts.sortedWindows(),
	}, nil
}

// Intervals returns the column labels of every table this aggregator builds.
func (a *Aggregator) Intervals() []string {
	return append([]string(nil), a.intervals...)
}

// Location returns the exchange time zone.
func (a *Aggregator) Location() *time.Location { return a.loc }

// Aggregate builds the distribution table for bars, in any order.
//
// Bars outside the session are ignored and negative volumes count as 0.
// The result never omits rows: an empty input yields every average row
// filled with "no data" and no day rows.
func (a *Aggregator) Aggregate(bars []models.Bar) models.Table {
	days := a.normalize(a.bucket(bars))

	rows := make([]models.Row, 0, len(a.windows)+len(days)+1)
	for i := len(a.windows) - 1; i >= 0; i-- {
		w := a.windows[i]
		rows = append(rows, a.average(fmt.Sprintf("%d Day Avg", w), w, days[:min(w, len(days))]))
	}
	rows = append(rows, days...)
	rows = append(rows, a.average(OverallLabel, 0, days))

	return models.Table{Intervals: a.Intervals(), Rows: rows}
}

// bucket folds bars into per-day interval volume totals. An interval with
// no bar has no map entry. Sums are exact decimals so very large volumes
// cannot wrap around.
func (a *Aggregator) bucket(bars []models.Bar) map[string]map[int]decimal.Decimal {
	acc := make(map[string]map[int]decimal.Decimal)
	for _, b := range bars {
		t := b.Time(a.loc)
		idx, ok := a.session.Index(minuteOfDay(t))
		if !ok {
			continue
		}
		date := t.Format(DateLayout)
		day, ok := acc[date]
		if !ok {
			day = make(map[int]decimal.Decimal, len(a.intervals))
			acc[date] = day
		}
		day[idx] = day[idx].Add(decimal.NewFromInt(max(b.Volume, 0)))
	}
	return acc
}

// normalize converts per-day volumes into one-decimal percentages, newest
// day first, truncated to the retention limit.
func (a *Aggregator) normalize(acc map[string]map[int]decimal.Decimal) []models.Row {
	dates := make([]string, 0, len(acc))
	for d := range acc {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > a.retention {
		dates = dates[:a.retention]
	}

	rows := make([]models.Row, 0, len(dates))
	for _, date := range dates {
		vols := acc[date]
		total := decimal.Zero
		for _, v := range vols {
			total = total.Add(v)
		}

		pcts := make(map[string]models.Percent, len(a.intervals))
		for i, label := range a.intervals {
			v, ok := vols[i]
			if total.Sign() <= 0 || !ok || v.Sign() <= 0 {
				pcts[label] = models.NoData()
				continue
			}
			share := v.Mul(hundred).Div(total)
			pcts[label] = models.NewPercent(share, dayPlaces)
		}
		rows = append(rows, models.Row{Label: date, Percentages: pcts})
	}
	return rows
}

// average computes the mean of the non-empty cells of days per interval.
func (a *Aggregator) average(label string, window int, days []models.Row) models.Row {
	pcts := make(map[string]models.Percent, len(a.intervals))
	for _, iv := range a.intervals {
		sum := decimal.Zero
		n := 0
		for _, d := range days {
			if v, ok := d.Percentages[iv].Decimal(); ok {
				sum = sum.Add(v)
				n++
			}
		}
		if n == 0 {
			pcts[iv] = models.NoData()
			continue
		}
		// Half away from zero on the exact mean; a float-based toFixed can
		// land one hundredth lower on ties such as 1.025.
		pcts[iv] = models.NewPercent(sum.Div(decimal.NewFromInt(int64(n))), averagePlaces)
	}
	return models.Row{Label: label, Percentages: pcts, IsAverage: true, Window: window}
}
