package stats

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/soxofaan/jsonfold/pkg/fold"
	"github.com/soxofaan/jsonfold/pkg/logging"
)

// DefaultEncoding is the tokenizer used when none is configured
const DefaultEncoding = "cl100k_base"

// Layout summarises one rendering of a document
type Layout struct {
	Lines    int `json:"lines"`
	Bytes    int `json:"bytes"`
	MaxWidth int `json:"max_width"`
	Tokens   int `json:"tokens"`
}

// Report compares the canonical layout with the folded one
type Report struct {
	Encoding  string `json:"encoding"`
	Estimated bool   `json:"estimated"`
	Before    Layout `json:"before"`
	After     Layout `json:"after"`
}

// Savings returns the relative reduction of lines, bytes and tokens (0.25 = 25% smaller)
func (r Report) Savings() (lines, bytes, tokens float64) {
	return ratio(r.Before.Lines, r.After.Lines), ratio(r.Before.Bytes, r.After.Bytes), ratio(r.Before.Tokens, r.After.Tokens)
}

func ratio(before, after int) float64 {
	if before == 0 {
		return 0
	}
	return float64(before-after) / float64(before)
}

var (
	encodersMu sync.Mutex
	encoders   = map[string]*tiktoken.Tiktoken{}
)

func encoderFor(encoding string) (*tiktoken.Tiktoken, error) {
	encodersMu.Lock()
	defer encodersMu.Unlock()

	if enc, ok := encoders[encoding]; ok {
		return enc, nil
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("get encoding %s: %w", encoding, err)
	}
	encoders[encoding] = enc
	return enc, nil
}

// EstimateTokens is the chars/4 heuristic used when no tokenizer is available
func EstimateTokens(content string) int {
	if len(content) == 0 {
		return 0
	}
	return (len(content) + 3) / 4
}

// Measure builds a report for the two layouts of a document. Token counts fall back
// to EstimateTokens when the encoding cannot be loaded.
func Measure(before, after []string, encoding string) Report {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	report := Report{Encoding: encoding}

	count := EstimateTokens
	enc, err := encoderFor(encoding)
	if err != nil {
		logging.NewComponentLogger("stats").Warn("falling back to token estimate", "encoding", encoding, "error", err)
		report.Estimated = true
	} else {
		count = func(s string) int {
			return len(enc.Encode(s, nil, nil))
		}
	}

	report.Before = measureLayout(before, count)
	report.After = measureLayout(after, count)
	return report
}

func measureLayout(lines []string, count func(string) int) Layout {
	text := strings.Join(lines, "\n")
	layout := Layout{Lines: len(lines), Bytes: len(text), Tokens: count(text)}
	for _, line := range lines {
		layout.MaxWidth = max(layout.MaxWidth, fold.RuneWidth(line))
	}
	return layout
}
