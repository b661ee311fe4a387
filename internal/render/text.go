package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/volseason/internal/domain/models"
)

const (
	cellWidth  = 7
	noDataText = "-"
)

// Text writes t as an aligned table. With color set, cells get 24-bit ANSI
// background colors from CellStyle.
func Text(w io.Writer, t models.Table, color bool) error {
	labelWidth := len("Date")
	for _, r := range t.Rows {
		labelWidth = max(labelWidth, len(r.Label))
	}

	var b strings.Builder
	b.WriteString(pad("Date", labelWidth, false))
	for _, iv := range t.Intervals {
		b.WriteByte(' ')
		b.WriteString(pad(iv, cellWidth, true))
	}
	b.WriteByte('\n')

	for _, r := range t.Rows {
		b.WriteString(pad(r.Label, labelWidth, false))
		for _, p := range r.Cells(t.Intervals) {
			b.WriteByte(' ')
			text := p.String()
			if text == "" {
				text = noDataText
			}
			cell := pad(text, cellWidth, true)
			if color {
				cell = ansi(CellStyle(p, r.IsAverage), cell)
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func pad(s string, width int, right bool) string {
	if len(s) >= width {
		return s
	}
	fill := strings.Repeat(" ", width-len(s))
	if right {
		return fill + s
	}
	return s + fill
}

func ansi(st Style, s string) string {
	br, bg, bb := rgb(st.Background)
	fr, fg, fb := rgb(st.Foreground)
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm\x1b[38;2;%d;%d;%dm%s\x1b[0m", br, bg, bb, fr, fg, fb, s)
}
