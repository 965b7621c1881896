package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/soxofaan/jsonfold/pkg/config"
	"github.com/soxofaan/jsonfold/pkg/diff"
	"github.com/soxofaan/jsonfold/pkg/fold"
	"github.com/soxofaan/jsonfold/pkg/jsonfold"
	"github.com/soxofaan/jsonfold/pkg/logging"
	"github.com/soxofaan/jsonfold/pkg/version"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// rootOptions holds the flag values of one command tree
type rootOptions struct {
	verbose  bool
	quiet    bool
	width    int
	cells    bool
	noStrict bool
	from     string
	showDiff bool
	copy     bool

	settings config.Settings
	logger   logging.Logger
}

// RootCmd is the jsonfold command used by main
var RootCmd = NewRootCommand()

// NewRootCommand builds the jsonfold command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "jsonfold [file...]",
		Short: "Fold pretty-printed JSON into width-bounded lines",
		Long: `jsonfold re-lays out JSON so that every nested object or array that fits
within the width budget is rendered on a single line.

Input is read from the given files, or from stdin when it is piped.
Use "-" to read stdin explicitly.

Examples:
  kubectl get pod web -o json | jsonfold -w 100
  jsonfold --from yaml config.yaml
  jq . data.json | jsonfold --from lines
  jsonfold --diff data.json`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFold(cmd, args, opts)
		},
	}
	cmd.SetVersionTemplate(version.GetInfo().String() + "\n")

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (debug level)")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "quiet output (errors only)")
	cmd.PersistentFlags().IntVarP(&opts.width, "width", "w", fold.DefaultMaxWidth, "maximum width of a folded line (default: terminal width or 80)")
	cmd.PersistentFlags().BoolVar(&opts.cells, "cells", false, "measure width in terminal cells instead of characters")
	cmd.PersistentFlags().BoolVar(&opts.noStrict, "no-strict", false, "pass unbalanced input through instead of failing")
	cmd.PersistentFlags().StringVarP(&opts.from, "from", "f", "", "input format: json, yaml or lines")

	cmd.Flags().BoolVar(&opts.showDiff, "diff", false, "print a unified diff of the canonical and folded layout")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "also copy the folded output to the clipboard")

	cmd.AddCommand(newStatsCommand(opts))
	cmd.AddCommand(newVersionCommand())
	cmd.AddCommand(newUpdateCommand())

	return cmd
}

// setup configures logging and resolves settings before any command runs
func (o *rootOptions) setup() error {
	var logger logging.Logger
	if fileLogger, ok := logging.NewFileLoggerFromEnv(); ok {
		logger = fileLogger
	} else if o.quiet {
		logger = logging.NewQuietLogger()
	} else if o.verbose {
		logger = logging.NewVerboseLogger()
	} else {
		logger = logging.NewDefaultLogger()
	}
	logging.SetGlobalLogger(logger)
	o.logger = logging.NewComponentLogger("cli")

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	o.settings = settings
	o.logger.Debug("settings loaded", "max_width", settings.MaxWidth, "measure", settings.Measure, "strict", settings.Strict, "input", settings.Input)
	return nil
}

// inputFormat resolves the --from flag against the configured default
func (o *rootOptions) inputFormat() (jsonfold.InputFormat, error) {
	name := o.settings.Input
	if o.from != "" {
		name = o.from
	}
	return jsonfold.ParseInputFormat(name)
}

// foldOptions turns flags and settings into engine options for output written to out
func (o *rootOptions) foldOptions(cmd *cobra.Command, out io.Writer) []fold.Option {
	width := o.settings.MaxWidth
	if cmd.Flags().Changed("width") {
		width = o.width
	} else if width == 0 {
		width = terminalWidth(out)
	}

	measure := fold.RuneWidth
	if o.cells || o.settings.Measure == config.MeasureCells {
		measure = fold.CellWidth
	}

	o.logger.Debug("folding", "max_width", width, "cells", o.cells, "strict", o.settings.Strict && !o.noStrict)
	return []fold.Option{
		fold.WithMaxWidth(width),
		fold.WithMeasure(measure),
		fold.WithStrict(o.settings.Strict && !o.noStrict),
		fold.WithLogger(logging.NewComponentLogger("fold")),
	}
}

// terminalWidth is the width of out when it is a terminal, otherwise the default width
func terminalWidth(out io.Writer) int {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return fold.DefaultMaxWidth
}

func runFold(cmd *cobra.Command, args []string, opts *rootOptions) error {
	format, err := opts.inputFormat()
	if err != nil {
		return err
	}
	inputs, err := openInputs(cmd, args)
	if err != nil {
		return err
	}
	defer inputs.Close()

	out := cmd.OutOrStdout()
	foldOpts := opts.foldOptions(cmd, out)

	if opts.showDiff {
		return writeDiffs(out, inputs, format, foldOpts)
	}

	var copied bytes.Buffer
	if opts.copy {
		out = io.MultiWriter(out, &copied)
	}
	for _, in := range inputs {
		opts.logger.Debug("formatting input", "name", in.name, "format", format)
		if err := jsonfold.Format(in.reader, out, jsonfold.Options{Input: format, Fold: foldOpts}); err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
	}

	if opts.copy {
		if err := copyToClipboard(strings.TrimRight(copied.String(), "\n")); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		opts.logger.Info("copied output to clipboard", "bytes", copied.Len())
	}
	return nil
}

func writeDiffs(out io.Writer, inputs inputList, format jsonfold.InputFormat, foldOpts []fold.Option) error {
	for _, in := range inputs {
		data, err := io.ReadAll(in.reader)
		if err != nil {
			return fmt.Errorf("%s: failed to read input: %w", in.name, err)
		}
		before, after, err := jsonfold.Layouts(data, format, foldOpts...)
		if err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
		text, err := diff.Unified(before, after, in.name)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(out, text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
