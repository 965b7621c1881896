package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnified(t *testing.T) {
	before := []string{`{`, `  "a": [`, `    1`, `  ]`, `}`}
	after := []string{`{"a": [1]}`}

	text, err := Unified(before, after, "data.json")
	require.NoError(t, err)

	assert.Contains(t, text, "--- data.json (canonical)\n")
	assert.Contains(t, text, "+++ data.json (folded)\n")
	assert.Contains(t, text, "@@ -1,5 +1 @@\n")
	assert.Contains(t, text, "-  \"a\": [\n")
	assert.Contains(t, text, "+{\"a\": [1]}\n")
}

func TestUnifiedNoChanges(t *testing.T) {
	lines := []string{`{`, `  "a": 1`, `}`}

	text, err := Unified(lines, lines, "")
	require.NoError(t, err)
	assert.Empty(t, text)
}
