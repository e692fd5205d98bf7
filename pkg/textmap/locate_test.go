package textmap_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/varlayer/pkg/textmap"
)

func TestLocate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		selected   string
		occurrence int
		want       textmap.Span
	}{
		{
			name:     "single word",
			raw:      "<p>Hello World</p>",
			selected: "World",
			want:     textmap.Span{Start: 9, End: 14},
		},
		{
			name:       "middle occurrence",
			raw:        "<p>cat cat cat</p>",
			selected:   "cat",
			occurrence: 1,
			want:       textmap.Span{Start: 7, End: 10},
		},
		{
			name:       "occurrence clamped to last",
			raw:        "<p>cat cat cat</p>",
			selected:   "cat",
			occurrence: 5,
			want:       textmap.Span{Start: 11, End: 14},
		},
		{
			name:       "negative occurrence clamped to first",
			raw:        "<p>cat cat cat</p>",
			selected:   "cat",
			occurrence: -3,
			want:       textmap.Span{Start: 3, End: 6},
		},
		{
			name:     "span includes trailing entity",
			raw:      "Caf&#233; ok",
			selected: "Café",
			want:     textmap.Span{Start: 0, End: 9},
		},
		{
			name:     "span starts at entity",
			raw:      "x &amp; y",
			selected: "& y",
			want:     textmap.Span{Start: 2, End: 9},
		},
		{
			name:     "whitespace insensitive",
			raw:      "<p>Hello\n    World</p>",
			selected: "Hello World",
			want:     textmap.Span{Start: 3, End: 18},
		},
		{
			name:     "selection whitespace is normalized",
			raw:      "<p>Hello World</p>",
			selected: "Hello\t\n World",
			want:     textmap.Span{Start: 3, End: 14},
		},
		{
			name:     "across block boundary",
			raw:      "<p>Hello</p><p>World</p>",
			selected: "Hello World",
			want:     textmap.Span{Start: 3, End: 20},
		},
		{
			name:     "trailing boundary space keeps the tag",
			raw:      "<p>Hello</p>World",
			selected: "Hello ",
			want:     textmap.Span{Start: 3, End: 8},
		},
		{
			name:     "multibyte text",
			raw:      "<p>naïve café</p>",
			selected: "café",
			want:     textmap.Span{Start: 10, End: 15},
		},
		{
			name:     "inline markup inside selection",
			raw:      "Say <b>hi</b> there",
			selected: "hi there",
			want:     textmap.Span{Start: 7, End: 19},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			span, ok := textmap.Locate(textmap.Build(tt.raw), tt.selected, tt.occurrence)
			require.True(t, ok)
			assert.Equal(t, tt.want, span)
		})
	}
}

func TestLocate_NotFound(t *testing.T) {
	t.Parallel()

	m := textmap.Build("<p>Hello World</p><style>.hidden{}</style>")

	tests := []struct {
		name     string
		selected string
	}{
		{"empty", ""},
		{"whitespace only", " \n\t "},
		{"absent", "Goodbye"},
		{"invisible content", "hidden"},
		{"markup is not text", "<p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, ok := textmap.Locate(m, tt.selected, 0)
			assert.False(t, ok)
		})
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	t.Run("overlapping", func(t *testing.T) {
		t.Parallel()

		spans := textmap.Matches(textmap.Build("aaa"), "aa")
		assert.Equal(t, []textmap.Span{{Start: 0, End: 2}, {Start: 1, End: 3}}, spans)
	})

	t.Run("distinct occurrences do not overlap", func(t *testing.T) {
		t.Parallel()

		spans := textmap.Matches(textmap.Build("<p>cat</p><p>cat</p> cat"), "cat")
		require.Len(t, spans, 3)
		for i := 1; i < len(spans); i++ {
			assert.LessOrEqual(t, spans[i-1].End, spans[i].Start)
			assert.Equal(t, 3, spans[i].Len())
		}
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, textmap.Matches(textmap.Build("abc"), "x"))
	})
}

func TestOccurrenceIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		visible  string
		selected string
		start    int
		want     int
	}{
		{"first", "cat cat cat", "cat", 0, 0},
		{"second", "cat cat cat", "cat", 4, 1},
		{"third", "cat cat cat", "cat", 8, 2},
		{"whitespace runs collapse", "a  cat\n\ncat", "cat", 8, 1},
		{"start past end is clamped", "cat cat", "cat", 100, 2},
		{"negative start", "cat cat", "cat", -1, 0},
		{"blank selection", "cat cat", " ", 4, 0},
		{"multibyte prefix", "é cat é cat", "cat", 8, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, textmap.OccurrenceIndex(tt.visible, tt.selected, tt.start))
		})
	}
}

var markerPattern = regexp.MustCompile(`\[\[[0-9a-f]+\]\]`)

func TestMatches_Opaque(t *testing.T) {
	t.Parallel()

	raw := "<p>[[0f8fad]] was here 8 days</p>"
	m := textmap.Build(raw, textmap.WithOpaque(markerPattern))

	t.Run("text stays visible", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "[[0f8fad]] was here 8 days", m.Text())
		assert.True(t, m.Opaque(2))
		assert.False(t, m.Opaque(11))
	})

	t.Run("matches inside are dropped", func(t *testing.T) {
		t.Parallel()

		spans := textmap.Matches(m, "8")
		require.Len(t, spans, 1)
		assert.Equal(t, "8", raw[spans[0].Start:spans[0].End])

		span, ok := textmap.Locate(m, "8", 0)
		require.True(t, ok)
		assert.Equal(t, spans[0], span)
	})

	t.Run("matches across are dropped", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, textmap.Matches(m, "]] was"))
		assert.Empty(t, textmap.Matches(m, "fad"))
	})

	t.Run("without the option the marker is searchable", func(t *testing.T) {
		t.Parallel()

		assert.Len(t, textmap.Matches(textmap.Build(raw), "8"), 2)
	})
}

func TestMap_OccurrenceBefore(t *testing.T) {
	t.Parallel()

	m := textmap.Build("cat [[ca7]] cat [[cat]] cat", textmap.WithOpaque(regexp.MustCompile(`\[\[[a-z0-9]+\]\]`)))

	tests := []struct {
		name  string
		start int
		want  int
	}{
		{"first", 0, 0},
		{"second skips the marker", 12, 1},
		{"third skips the marker", 24, 2},
		{"past the end", 100, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.OccurrenceBefore("cat", tt.start))
		})
	}
}

func TestLocate_UnknownEntityKeepsOffsets(t *testing.T) {
	t.Parallel()

	raw := "x &foo; y"
	span, ok := textmap.Locate(textmap.Build(raw), "foo", 0)
	require.True(t, ok)
	assert.Equal(t, textmap.Span{Start: 3, End: 6}, span)
	assert.Equal(t, "x &X; y", raw[:span.Start]+"X"+raw[span.End:])
}
