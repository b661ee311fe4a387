package render

import (
	"html/template"
	"io"
	"time"

	"github.com/guttosm/volseason/internal/domain/models"
)

// Page is the data behind the HTML view.
type Page struct {
	Ticker      string
	From        string
	To          string
	Timezone    string
	Retention   int
	Table       models.Table
	GeneratedAt time.Time
}

type htmlCell struct {
	Text  string
	Style Style
}

type htmlRow struct {
	Label     string
	IsAverage bool
	Cells     []htmlCell
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Ticker}} Intraday Volume Seasonality</title>
<style>
body { background: #1a202c; color: #fff; font-family: sans-serif; padding: 24px; }
h1 { font-size: 24px; text-align: center; }
table { border-collapse: collapse; margin: 0 auto; font-size: 13px; }
th, td { border: 1px solid #4a5568; padding: 8px; text-align: center; min-width: 48px; }
th { background: #2d3748; }
td.label { text-align: left; white-space: nowrap; min-width: 80px; }
tr.avg td.label { background: #2d3748; font-weight: bold; }
p.note { text-align: center; font-size: 14px; }
</style>
</head>
<body>
<h1>{{.Ticker}} Intraday Volume Seasonality - Past {{.Retention}} Trading Days</h1>
<table>
<thead><tr><th>Date</th>{{range .Intervals}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr{{if .IsAverage}} class="avg"{{end}}><td class="label">{{.Label}}</td>{{range .Cells}}<td style="background-color: {{.Style.Background}}; color: {{.Style.Foreground}}">{{.Text}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
<p class="note">Volume Distribution (%) - Each row sums to 100%<br>{{.From}} to {{.To}} ({{.Timezone}}), generated {{.Generated}}</p>
</body>
</html>
`))

// HTML writes the page as a standalone HTML document.
func HTML(w io.Writer, p Page) error {
	rows := make([]htmlRow, 0, len(p.Table.Rows))
	for _, r := range p.Table.Rows {
		hr := htmlRow{Label: r.Label, IsAverage: r.IsAverage}
		for _, c := range r.Cells(p.Table.Intervals) {
			hr.Cells = append(hr.Cells, htmlCell{Text: c.String(), Style: CellStyle(c, r.IsAverage)})
		}
		rows = append(rows, hr)
	}

	return pageTmpl.Execute(w, struct {
		Ticker, From, To, Timezone, Generated string
		Retention                             int
		Intervals                             []string
		Rows                                  []htmlRow
	}{
		Ticker:    p.Ticker,
		From:      p.From,
		To:        p.To,
		Timezone:  p.Timezone,
		Generated: p.GeneratedAt.UTC().Format(time.RFC3339),
		Retention: p.Retention,
		Intervals: p.Table.Intervals,
		Rows:      rows,
	})
}
