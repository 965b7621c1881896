// Package fold re-lays out canonical, one-token-per-line JSON so that every nested
// structure whose one-line rendering fits the width budget is collapsed onto a
// single line.
//
// The engine works on raw lines only. It never parses JSON: it trims and rejoins
// lines, and it releases buffered lines untouched when a structure cannot be folded.
// Output is produced lazily and consumes no more input than needed to decide the
// next line.
package fold

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

var (
	// ErrUnmatchedCloser is returned for a closing delimiter with no open structure
	ErrUnmatchedCloser = errors.New("closing delimiter without matching opener")
	// ErrUnclosed is returned when the input ends inside an open structure
	ErrUnclosed        = errors.New("input ended inside an open structure")
)

// Fold returns the folded layout of lines as a lazy, one-shot sequence.
//
// Each pull on the result reads upstream lines one at a time, only until an output
// line is determined. An upstream error is yielded unchanged and ends the sequence.
func Fold(lines iter.Seq2[string, error], opts ...Option) iter.Seq2[string, error] {
	o := applyOptions(opts...)

	return func(yield func(string, error) bool) {
		var (
			stack  levels
			depth  int
			lineNo int
		)

		emit := func(out ...string) bool {
			for _, line := range out {
				if !yield(line, nil) {
					return false
				}
			}
			return true
		}

		for line, err := range lines {
			if err != nil {
				yield("", err)
				return
			}
			lineNo++

			role := Classify(line)
			switch role {
			case Opener:
				depth++
				stack.push()
				stack.file(line)
				continue
			case Closer:
				if depth == 0 && o.Strict {
					yield("", fmt.Errorf("line %d: %w", lineNo, ErrUnmatchedCloser))
					return
				}
				if depth > 0 {
					depth--
				}
			}

			if !stack.file(line) {
				if !emit(line) {
					return
				}
				continue
			}
			if role != Closer {
				continue
			}

			closed := stack.pop()
			candidate := joinLevel(closed)
			width := o.Measure(candidate)
			if width <= o.MaxWidth {
				o.Logger.Debug("folded level", "line", lineNo, "width", width, "depth", stack.depth())
				if !stack.file(candidate) && !emit(candidate) {
					return
				}
				continue
			}

			o.Logger.Debug("flushing levels", "line", lineNo, "width", width, "max_width", o.MaxWidth, "open_levels", stack.depth())
			if !emit(stack.drain()...) || !emit(closed...) {
				return
			}
		}

		if depth > 0 {
			if o.Strict {
				yield("", fmt.Errorf("%w: %d level(s) open after line %d", ErrUnclosed, depth, lineNo))
				return
			}
			emit(stack.drain()...)
		}
	}
}

// joinLevel builds the one-line rendering of a closed level: the opener verbatim,
// the trimmed interior lines separated by single spaces, and the trimmed closer.
func joinLevel(closed []string) string {
	var b strings.Builder
	b.WriteString(closed[0])
	last := len(closed) - 1
	for i := 1; i < last; i++ {
		if i > 1 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSpace(closed[i]))
	}
	if last > 0 {
		b.WriteString(strings.TrimSpace(closed[last]))
	}
	return b.String()
}

// FoldStrings folds a materialized slice of lines
func FoldStrings(lines []string, opts ...Option) ([]string, error) {
	var out []string
	for line, err := range Fold(FromSlice(lines), opts...) {
		if err != nil {
			return out, err
		}
		out = append(out, line)
	}
	return out, nil
}

// FromSlice adapts a slice to the sequence type Fold consumes
func FromSlice(lines []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, line := range lines {
			if !yield(line, nil) {
				return
			}
		}
	}
}

// Lines reads r line by line. Line terminators (\n or \r\n) are stripped.
func Lines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		reader := bufio.NewReader(r)
		for {
			line, err := reader.ReadString('\n')
			if len(line) > 0 {
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				if !yield(line, nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("failed to read input: %w", err))
				return
			}
		}
	}
}
