package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Percent is a percentage cell of the distribution table.
//
// A Percent is either a rounded decimal value or the "no data" marker.
// The zero value is "no data", so a missing observation can never be
// mistaken for 0%.
//
// JSON form: a fixed-point string ("12.3", "7.45") or null.
type Percent struct {
	value  decimal.Decimal
	places int32
	valid  bool
}

// NoData returns the "no data" marker.
func NoData() Percent { return Percent{} }

// NewPercent rounds v to the given number of decimal places.
func NewPercent(v decimal.Decimal, places int32) Percent {
	return Percent{value: v.Round(places), places: places, valid: true}
}

// Valid reports whether the cell holds a value.
func (p Percent) Valid() bool { return p.valid }

// Decimal returns the rounded value and whether it is present.
func (p Percent) Decimal() (decimal.Decimal, bool) {
	return p.value, p.valid
}

// Float64 returns the rounded value as a float and whether it is present.
func (p Percent) Float64() (float64, bool) {
	if !p.valid {
		return 0, false
	}
	f, _ := p.value.Float64()
	return f, true
}

// Places is the number of decimals the value was rounded to.
func (p Percent) Places() int32 { return p.places }

// String renders the value with its fixed precision, or "" for no data.
func (p Percent) String() string {
	if !p.valid {
		return ""
	}
	return p.value.StringFixed(p.places)
}

func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.String())
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = NoData()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("percent: %w", err)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("percent %q: %w", s, err)
	}
	var places int32
	if i := strings.IndexByte(s, '.'); i >= 0 {
		places = int32(len(s) - i - 1)
	}
	*p = NewPercent(v, places)
	return nil
}
