// Package render presents a volume distribution table as an HTML page or
// as a fixed-column terminal table.
package render

import (
	"strconv"

	"github.com/guttosm/volseason/internal/domain/models"
)

const (
	noDataColor = "#000000"
	lightText   = "#FFFFFF"
	darkText    = "#000000"
)

type threshold struct {
	min   float64
	color string
}

var (
	dayScale = []threshold{
		{15, "#F9D662"},
		{12, "#E8C652"},
		{10, "#C4A968"},
		{8, "#9B8B7A"},
		{6, "#7B8EBF"},
		{4, "#5B6FA5"},
	}
	dayFloor = "#3B508B"

	averageScale = []threshold{
		{12, "#FDB750"},
		{9, "#C89F5F"},
		{7, "#9B8B7A"},
		{5, "#6B7DB5"},
	}
	averageFloor = "#4A5F8F"
)

// Style is the background and text color of one table cell.
type Style struct {
	Background string
	Foreground string
}

// CellStyle picks the colors for a cell. Average rows use a separate,
// coarser scale than day rows.
func CellStyle(p models.Percent, average bool) Style {
	v, ok := p.Float64()
	if !ok {
		return Style{Background: noDataColor, Foreground: lightText}
	}

	scale, floor := dayScale, dayFloor
	if average {
		scale, floor = averageScale, averageFloor
	}
	bg := floor
	for _, t := range scale {
		if v >= t.min {
			bg = t.color
			break
		}
	}

	fg := lightText
	if v > 10 {
		fg = darkText
	}
	return Style{Background: bg, Foreground: fg}
}

// rgb splits "#RRGGBB" into its components. Malformed input yields black.
func rgb(hex string) (r, g, b uint8) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	n, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(n >> 16), uint8(n >> 8), uint8(n)
}
