package fold

import (
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var colorShape = []string{
	`{`,
	`  "color": "green",`,
	`  "shape": "square"`,
	`}`,
}

var threeFiveTen = []string{
	`{`,
	`  "three": [`,
	`    0,`,
	`    1,`,
	`    2`,
	`  ],`,
	`  "five": [`,
	`    0,`,
	`    1,`,
	`    2,`,
	`    3,`,
	`    4`,
	`  ],`,
	`  "ten": [`,
	`    0,`,
	`    1,`,
	`    2,`,
	`    3,`,
	`    4,`,
	`    5,`,
	`    6,`,
	`    7,`,
	`    8,`,
	`    9`,
	`  ]`,
	`}`,
}

var nested = []string{
	`{`,
	`  "a": [`,
	`    {`,
	`      "b": 1`,
	`    },`,
	`    {`,
	`      "c": [`,
	`        1,`,
	`        2`,
	`      ]`,
	`    }`,
	`  ],`,
	`  "d": {}`,
	`}`,
}

// counter records how many upstream lines have been pulled
type counter struct {
	consumed int
}

func (c *counter) seq(lines []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, line := range lines {
			c.consumed++
			if !yield(line, nil) {
				return
			}
		}
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		width int
		want  []string
	}{
		{
			name:  "fits on one line",
			lines: colorShape,
			width: 80,
			want:  []string{`{"color": "green", "shape": "square"}`},
		},
		{
			name:  "too narrow stays multi-line",
			lines: colorShape,
			width: 20,
			want:  colorShape,
		},
		{
			name:  "width boundary is inclusive",
			lines: colorShape,
			width: 37,
			want:  []string{`{"color": "green", "shape": "square"}`},
		},
		{
			name:  "one below the boundary",
			lines: colorShape,
			width: 36,
			want:  colorShape,
		},
		{
			name:  "children fold independently",
			lines: threeFiveTen,
			width: 25,
			want: append(append([]string{
				`{`,
				`  "three": [0, 1, 2],`,
			}, threeFiveTen[6:25]...), `}`),
		},
		{
			name:  "folded children bubble into parent",
			lines: nested,
			width: 80,
			want:  []string{`{"a": [{"b": 1}, {"c": [1, 2]}], "d": {}}`},
		},
		{
			name:  "folded children kept inside flushed parent",
			lines: nested,
			width: 20,
			want: []string{
				`{`,
				`  "a": [`,
				`    {"b": 1},`,
				`    {"c": [1, 2]}`,
				`  ],`,
				`  "d": {}`,
				`}`,
			},
		},
		{
			name:  "nothing fits",
			lines: []string{`[`, `  1,`, `  2,`, `  3,`, `  4,`, `  5`, `]`},
			width: 1,
			want:  []string{`[`, `  1,`, `  2,`, `  3,`, `  4,`, `  5`, `]`},
		},
		{
			name:  "negative width is best-effort",
			lines: []string{`[`, `  1`, `]`},
			width: -5,
			want:  []string{`[`, `  1`, `]`},
		},
		{
			name:  "empty containers pass through",
			lines: []string{`{}`},
			width: 80,
			want:  []string{`{}`},
		},
		{
			name:  "scalar document",
			lines: []string{`"a rather long string value"`},
			width: 5,
			want:  []string{`"a rather long string value"`},
		},
		{
			name:  "opener immediately closed",
			lines: []string{`[`, `]`},
			width: 80,
			want:  []string{`[]`},
		},
		{
			name:  "no trailing space before closer",
			lines: []string{`[`, `  "x"   `, `  ]`},
			width: 80,
			want:  []string{`["x"]`},
		},
		{
			name:  "empty input",
			lines: nil,
			width: 80,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FoldStrings(tt.lines, WithMaxWidth(tt.width))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFoldMinimalConsumption(t *testing.T) {
	c := &counter{}
	next, stop := iter.Pull2(Fold(c.seq(threeFiveTen), WithMaxWidth(25)))
	defer stop()

	assert.Equal(t, 0, c.consumed, "nothing is read before the first pull")

	type step struct {
		line     string
		consumed int
	}
	var want []step
	want = append(want, step{`{`, 13}, step{`  "three": [0, 1, 2],`, 13})
	for _, line := range threeFiveTen[6:13] {
		want = append(want, step{line, 13})
	}
	for _, line := range threeFiveTen[13:25] {
		want = append(want, step{line, 25})
	}
	want = append(want, step{`}`, 26})

	for i, s := range want {
		line, err, ok := next()
		require.True(t, ok, "output %d missing", i)
		require.NoError(t, err)
		assert.Equal(t, s.line, line, "output %d", i)
		assert.Equal(t, s.consumed, c.consumed, "consumed before output %d", i)
	}

	_, _, ok := next()
	assert.False(t, ok)
	assert.Equal(t, len(threeFiveTen), c.consumed)
}

func TestFoldPassThroughWhileIdle(t *testing.T) {
	c := &counter{}
	next, stop := iter.Pull2(Fold(c.seq([]string{`1`, `2`, `3`}), WithStrict(false)))
	defer stop()

	for i := 1; i <= 3; i++ {
		_, _, ok := next()
		require.True(t, ok)
		assert.Equal(t, i, c.consumed)
	}
}

func TestFoldStopsPullingWhenConsumerStops(t *testing.T) {
	c := &counter{}
	for range Fold(c.seq(threeFiveTen), WithMaxWidth(25)) {
		break
	}
	assert.Equal(t, 13, c.consumed)
}

func TestFoldUpstreamError(t *testing.T) {
	boom := errors.New("boom")
	upstream := func(yield func(string, error) bool) {
		if !yield("{", nil) {
			return
		}
		if !yield(`  "a": 1`, nil) {
			return
		}
		yield("", boom)
	}

	var got []string
	var gotErr error
	for line, err := range Fold(upstream) {
		if err != nil {
			gotErr = err
			break
		}
		got = append(got, line)
	}

	assert.Empty(t, got)
	assert.Same(t, boom, gotErr)
}

func TestFoldStrict(t *testing.T) {
	t.Run("unmatched closer", func(t *testing.T) {
		got, err := FoldStrings([]string{`1`, `]`})
		assert.ErrorIs(t, err, ErrUnmatchedCloser)
		assert.Contains(t, err.Error(), "line 2")
		assert.Equal(t, []string{`1`}, got)
	})

	t.Run("unclosed structure", func(t *testing.T) {
		got, err := FoldStrings([]string{`{`, `  "a": [`, `    1`})
		assert.ErrorIs(t, err, ErrUnclosed)
		assert.Empty(t, got)
	})

	t.Run("permissive mode passes closers through", func(t *testing.T) {
		got, err := FoldStrings([]string{`1`, `]`}, WithStrict(false))
		require.NoError(t, err)
		assert.Equal(t, []string{`1`, `]`}, got)
	})

	t.Run("permissive mode flushes unclosed levels", func(t *testing.T) {
		lines := []string{`{`, `  "a": [`, `    1`}
		got, err := FoldStrings(lines, WithStrict(false))
		require.NoError(t, err)
		assert.Equal(t, lines, got)
	})
}

func TestFoldWidthMonotonic(t *testing.T) {
	inputs := [][]string{colorShape, threeFiveTen, nested}
	for _, lines := range inputs {
		prev := -1
		for width := 0; width <= 120; width++ {
			got, err := FoldStrings(lines, WithMaxWidth(width))
			require.NoError(t, err)
			if prev >= 0 {
				assert.LessOrEqual(t, len(got), prev, "width %d", width)
			}
			prev = len(got)
		}
	}
}

func TestFoldPreservesContent(t *testing.T) {
	strip := func(lines []string) string {
		return strings.Join(strings.Fields(strings.Join(lines, "\n")), "")
	}
	for _, lines := range [][]string{colorShape, threeFiveTen, nested} {
		for _, width := range []int{1, 10, 25, 40, 80} {
			got, err := FoldStrings(lines, WithMaxWidth(width))
			require.NoError(t, err)
			assert.Equal(t, strip(lines), strip(got), "width %d", width)
		}
	}
}

func TestFoldMeasure(t *testing.T) {
	lines := []string{`[`, `  "日本語",`, `  "テキスト"`, `]`}

	got, err := FoldStrings(lines, WithMaxWidth(16))
	require.NoError(t, err)
	assert.Equal(t, []string{`["日本語", "テキスト"]`}, got)

	got, err = FoldStrings(lines, WithMaxWidth(16), WithMeasure(CellWidth))
	require.NoError(t, err)
	assert.Equal(t, lines, got)
}

func TestLines(t *testing.T) {
	input := "{\r\n  \"a\": 1\n}"

	var got []string
	for line, err := range Lines(strings.NewReader(input)) {
		require.NoError(t, err)
		got = append(got, line)
	}
	assert.Equal(t, []string{`{`, `  "a": 1`, `}`}, got)
}
