package volume

import (
	"fmt"
	"sort"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Options configures an Aggregator.
//
// Fields:
//   - Session: trading window and interval width.
//   - RetentionDays: how many of the most recent trading days are kept;
//     averages are computed over the retained days only.
//   - Windows: rolling-average sizes in trading days.
type Options struct {
	Session       Session
	RetentionDays int   `default:"90" validate:"gt=0"`
	Windows       []int `default:"[5,10,20,30,40]" validate:"dive,gt=0"`
}

var validate = validator.New()

// DefaultOptions returns the U.S. equities configuration: 09:30–16:00 in
// 30-minute intervals, 90 retained days, windows of 5/10/20/30/40 days.
func DefaultOptions() Options {
	var o Options
	_ = defaults.Set(&o)
	return o
}

// WithDefaults fills every zero-valued field of o from DefaultOptions.
func (o Options) WithDefaults() (Options, error) {
	if err := defaults.Set(&o); err != nil {
		return o, fmt.Errorf("apply defaults: %w", err)
	}
	return o, nil
}

// Validate checks the options are internally consistent.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid aggregator options: %w", err)
	}
	if o.Session.Len() == 0 {
		return fmt.Errorf("invalid aggregator options: session has no intervals")
	}
	return nil
}

// sortedWindows returns a sorted copy of the configured windows.
func (o Options) sortedWindows() []int {
	out := append([]int(nil), o.Windows...)
	sort.Ints(out)
	return out
}
