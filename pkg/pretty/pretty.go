package pretty

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// IndentStep is the indentation unit of the canonical layout
const IndentStep = "  "

// Indent re-renders raw JSON text in the canonical layout: one token per line,
// two-space indentation, empty containers kept as {} and []. Key order is preserved.
func Indent(data []byte) ([]string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", IndentStep); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return splitLines(buf.String()), nil
}

// Marshal renders a Go value in the canonical layout. HTML characters are not escaped.
func Marshal(value any) ([]string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", IndentStep)
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	return splitLines(buf.String()), nil
}

// Compact removes all insignificant whitespace from JSON text
func Compact(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, bytes.TrimSpace(data)); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return buf.Bytes(), nil
}

// Documents splits a stream of concatenated or newline-delimited JSON values
func Documents(r io.Reader) iter.Seq2[json.RawMessage, error] {
	return func(yield func(json.RawMessage, error) bool) {
		dec := json.NewDecoder(r)
		for {
			var doc json.RawMessage
			err := dec.Decode(&doc)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("invalid JSON: %w", err))
				return
			}
			if !yield(doc, nil) {
				return
			}
		}
	}
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
