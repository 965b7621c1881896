package fold

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/soxofaan/jsonfold/pkg/logging"
)

// DefaultMaxWidth is the width budget used when none is configured
const DefaultMaxWidth = 80

// MeasureFunc returns the width of a line in the unit the budget is expressed in
type MeasureFunc func(line string) int

// RuneWidth counts characters. This is the default measure.
func RuneWidth(line string) int {
	return utf8.RuneCountInString(line)
}

// CellWidth counts terminal cells, so wide East-Asian characters and emoji count double
func CellWidth(line string) int {
	return runewidth.StringWidth(line)
}

// Options holds the settings of a folding pass
type Options struct {
	// MaxWidth is the inclusive width budget for a folded line
	MaxWidth int

	// Measure computes line widths, RuneWidth if nil
	Measure MeasureFunc

	// Strict turns unbalanced input into errors instead of passing lines through
	Strict bool

	Logger logging.Logger
}

// Option is a function that configures Options
type Option func(*Options)

// WithMaxWidth sets the width budget. Values below the narrowest line are honoured
// best-effort: such lines are emitted as they are.
func WithMaxWidth(width int) Option {
	return func(opts *Options) {
		opts.MaxWidth = width
	}
}

// WithMeasure replaces the width metric
//
// Example:
//
//	out := fold.Fold(lines, fold.WithMaxWidth(60), fold.WithMeasure(fold.CellWidth))
func WithMeasure(measure MeasureFunc) Option {
	return func(opts *Options) {
		opts.Measure = measure
	}
}

// WithStrict enables or disables balance checking (enabled by default)
func WithStrict(strict bool) Option {
	return func(opts *Options) {
		opts.Strict = strict
	}
}

// WithLogger sets the logger that traces fold decisions at debug level
func WithLogger(logger logging.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

func applyOptions(opts ...Option) *Options {
	options := &Options{
		MaxWidth: DefaultMaxWidth,
		Strict:   true,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Measure == nil {
		options.Measure = RuneWidth
	}
	if options.Logger == nil {
		options.Logger = logging.NewComponentLogger("fold")
	}
	return options
}
