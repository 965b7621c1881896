package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Unified returns a unified diff from the canonical layout to the folded one,
// or an empty string when folding changed nothing
func Unified(before, after []string, name string) (string, error) {
	if name == "" {
		name = "stdin"
	}
	a := withNewlines(before)
	b := withNewlines(after)
	if strings.Join(a, "") == strings.Join(b, "") {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: name + " (canonical)",
		ToFile:   name + " (folded)",
		Context:  3,
		Eol:      "\n",
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("error generating diff: %w", err)
	}
	return text, nil
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line + "\n"
	}
	return out
}
