package jsonfold

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/soxofaan/jsonfold/pkg/fold"
	"github.com/soxofaan/jsonfold/pkg/pretty"
)

// Render pretty-prints value and folds it within maxWidth
func Render(value any, maxWidth int) (string, error) {
	return Dumps(value, fold.WithMaxWidth(maxWidth))
}

// Dumps pretty-prints value and folds it with the given options (width 80 by default)
func Dumps(value any, opts ...fold.Option) (string, error) {
	lines, err := pretty.Marshal(value)
	if err != nil {
		return "", err
	}
	return foldJoined(lines, opts...)
}

// RenderJSON folds raw JSON text within maxWidth, keeping its key order
func RenderJSON(data []byte, maxWidth int) (string, error) {
	lines, err := pretty.Indent(data)
	if err != nil {
		return "", err
	}
	return foldJoined(lines, fold.WithMaxWidth(maxWidth))
}

func foldJoined(lines []string, opts ...fold.Option) (string, error) {
	folded, err := fold.FoldStrings(lines, opts...)
	if err != nil {
		return "", err
	}
	return strings.Join(folded, "\n"), nil
}

// InputFormat selects how Format interprets its input
type InputFormat string

const (
	// FormatJSON accepts one or more JSON documents in any layout
	FormatJSON InputFormat = "json"
	// FormatYAML accepts a single YAML document
	FormatYAML InputFormat = "yaml"
	// FormatLines streams input that is already in the canonical layout
	FormatLines InputFormat = "lines"
)

// ParseInputFormat validates a format name
func ParseInputFormat(name string) (InputFormat, error) {
	switch f := InputFormat(strings.ToLower(name)); f {
	case FormatJSON, FormatYAML, FormatLines:
		return f, nil
	}
	return "", fmt.Errorf("unknown input format %q (want json, yaml or lines)", name)
}

// Options configures Format
type Options struct {
	Input InputFormat
	Fold  []fold.Option
}

// Format reads r, folds every document and writes the result to w, one line per
// output line. FormatLines streams: each line is written as soon as it is decided.
func Format(r io.Reader, w io.Writer, opts Options) error {
	out := bufio.NewWriter(w)

	switch opts.Input {
	case FormatLines:
		if err := writeFolded(out, fold.Fold(fold.Lines(r), opts.Fold...)); err != nil {
			return err
		}
	case FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		converted, err := pretty.FromYAML(data)
		if err != nil {
			return err
		}
		if err := writeDocument(out, converted, opts.Fold); err != nil {
			return err
		}
	case FormatJSON, "":
		for doc, err := range pretty.Documents(r) {
			if err != nil {
				return err
			}
			if err := writeDocument(out, doc, opts.Fold); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown input format %q", opts.Input)
	}

	return out.Flush()
}

func writeDocument(out *bufio.Writer, doc []byte, opts []fold.Option) error {
	lines, err := pretty.Indent(doc)
	if err != nil {
		return err
	}
	return writeFolded(out, fold.Fold(fold.FromSlice(lines), opts...))
}

func writeFolded(out *bufio.Writer, folded iter.Seq2[string, error]) error {
	for line, err := range folded {
		if err != nil {
			return err
		}
		out.WriteString(line)
		if err := out.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// Layouts returns the canonical and folded layouts of a single document,
// for reports and diffs
func Layouts(data []byte, input InputFormat, opts ...fold.Option) (before, after []string, err error) {
	if input == FormatYAML {
		if data, err = pretty.FromYAML(data); err != nil {
			return nil, nil, err
		}
	}
	if input == FormatLines {
		for line, lineErr := range fold.Lines(bytes.NewReader(data)) {
			if lineErr != nil {
				return nil, nil, lineErr
			}
			before = append(before, line)
		}
	} else if before, err = pretty.Indent(data); err != nil {
		return nil, nil, err
	}
	after, err = fold.FoldStrings(before, opts...)
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}
