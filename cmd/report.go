package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/guttosm/volseason/config"
	"github.com/guttosm/volseason/internal/app"
	"github.com/guttosm/volseason/internal/domain/dto"
	"github.com/guttosm/volseason/internal/render"
	"github.com/guttosm/volseason/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type reportOptions struct {
	ticker string
	from   string
	to     string
	format string
	color  bool
	now    func() time.Time
}

func newReportCmd() *cobra.Command {
	opts := reportOptions{now: time.Now}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the volume distribution table for one ticker",
		Example: `  volseason report --ticker SPY
  volseason report --ticker QQQ --from 2025-01-02 --to 2025-03-31 --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), cmd.OutOrStdout(), config.AppConfig, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.ticker, "ticker", "", "ticker symbol (default MARKET_TICKER)")
	f.StringVar(&opts.from, "from", "", "first date, YYYY-MM-DD")
	f.StringVar(&opts.to, "to", "", "last date, YYYY-MM-DD")
	f.StringVar(&opts.format, "format", formatText, "output format: text or json")
	f.BoolVar(&opts.color, "color", isatty.IsTerminal(os.Stdout.Fd()), "color cells in text output")
	return cmd
}

// runReport builds one table and writes it to w.
func runReport(ctx context.Context, w io.Writer, cfg config.Config, opts reportOptions) error {
	if opts.format != formatText && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q, want %s or %s", opts.format, formatText, formatJSON)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	raw := opts.ticker
	if raw == "" {
		raw = cfg.Market.Ticker
	}
	ticker, err := service.NormalizeTicker(raw)
	if err != nil {
		return err
	}
	from, err := service.ParseDate(opts.from)
	if err != nil {
		return err
	}
	to, err := service.ParseDate(opts.to)
	if err != nil {
		return err
	}

	c, cleanup, err := app.Build(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	now := opts.now
	if now == nil {
		now = time.Now
	}
	r, err := service.ResolveRange(now(), c.Location, from, to, c.Range)
	if err != nil {
		return err
	}

	table, err := c.Service.Distribution(ctx, ticker, r)
	if err != nil {
		return err
	}

	if opts.format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.NewVolumeResponse(ticker, r.FromString(), r.ToString(), c.Location.String(), *table))
	}

	if _, err := fmt.Fprintf(w, "%s %s..%s (%s)\n", ticker, r.FromString(), r.ToString(), c.Location); err != nil {
		return err
	}
	return render.Text(w, *table, opts.color)
}
