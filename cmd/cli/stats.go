package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/soxofaan/jsonfold/pkg/jsonfold"
	"github.com/soxofaan/jsonfold/pkg/stats"
	"github.com/spf13/cobra"
)

func newStatsCommand(opts *rootOptions) *cobra.Command {
	var (
		asJSON   bool
		encoding string
	)

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Compare size and token count of the canonical and folded layout",
		Long: `Report lines, bytes, widest line and token count before and after folding.

Tokens are counted with the given tiktoken encoding; when it cannot be loaded
a chars/4 estimate is reported instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.inputFormat()
			if err != nil {
				return err
			}
			inputs, err := openInputs(cmd, args)
			if err != nil {
				return err
			}
			defer inputs.Close()

			in := inputs[0]
			data, err := io.ReadAll(in.reader)
			if err != nil {
				return fmt.Errorf("%s: failed to read input: %w", in.name, err)
			}
			out := cmd.OutOrStdout()
			before, after, err := jsonfold.Layouts(data, format, opts.foldOptions(cmd, out)...)
			if err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}

			if encoding == "" {
				encoding = opts.settings.Encoding
			}
			report := stats.Measure(before, after, encoding)
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return writeReport(out, in.name, report)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&encoding, "encoding", "", "tiktoken encoding used to count tokens (default from config, cl100k_base)")

	return cmd
}

func writeReport(w io.Writer, name string, report stats.Report) error {
	lines, bytes, tokens := report.Savings()
	tokenLabel := "tokens"
	if report.Estimated {
		tokenLabel = "tokens~"
	}

	_, err := fmt.Fprintf(w, "%s (%s)\n%-10s %10s %10s %8s\n%-10s %10d %10d %7.1f%%\n%-10s %10d %10d %7.1f%%\n%-10s %10d %10d %7.1f%%\n%-10s %10d %10d\n",
		name, report.Encoding,
		"", "canonical", "folded", "saved",
		"lines", report.Before.Lines, report.After.Lines, lines*100,
		"bytes", report.Before.Bytes, report.After.Bytes, bytes*100,
		tokenLabel, report.Before.Tokens, report.After.Tokens, tokens*100,
		"widest", report.Before.MaxWidth, report.After.MaxWidth,
	)
	return err
}
