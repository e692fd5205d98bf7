package textmap

import (
	"strings"
	"unicode"
)

// Span is a half-open byte range [Start, End) in a raw document.
type Span struct {
	Start int
	End   int
}

// Len returns the number of raw bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Locate returns the raw span of the occurrence-th match of selected in the
// visible text of m. The occurrence index is clamped into the range of
// available matches. It reports false when selected is blank or does not
// occur at all.
func Locate(m *Map, selected string, occurrence int) (Span, bool) {
	spans := Matches(m, selected)
	if len(spans) == 0 {
		return Span{}, false
	}

	occurrence = max(0, min(occurrence, len(spans)-1))
	return spans[occurrence], true
}

// Matches returns the raw spans of every match of selected in the visible
// text of m, left to right. Matches may overlap. Matches covering an opaque
// rune are dropped.
func Matches(m *Map, selected string) []Span {
	needle, _ := normalize([]rune(selected))
	if isBlank(needle) {
		return nil
	}

	hay, index := normalize(m.runes)
	starts := search(hay, needle)
	if len(starts) == 0 {
		return nil
	}

	spans := make([]Span, 0, len(starts))
	for _, s := range starts {
		first := index[s]
		last := index[s+len(needle)-1]
		if m.covers(first, last) {
			continue
		}
		spans = append(spans, Span{Start: m.raw[first], End: m.ends[last]})
	}
	return spans
}

// OccurrenceBefore counts the matches of selected that start before
// selectionStart, a rune position in m.Text(). Matches covering an opaque
// rune are not counted, as in Matches.
func (m *Map) OccurrenceBefore(selected string, selectionStart int) int {
	needle, _ := normalize([]rune(selected))
	if isBlank(needle) {
		return 0
	}

	hay, index := normalize(m.runes)
	count := 0
	for _, s := range search(hay, needle) {
		first := index[s]
		if first >= selectionStart {
			break
		}
		if m.covers(first, index[s+len(needle)-1]) {
			continue
		}
		count++
	}
	return count
}

// OccurrenceIndex counts the matches of selected in visible that start
// before selectionStart, a rune offset into visible. The result is the
// occurrence index to pass to Locate for a selection made at that position.
func OccurrenceIndex(visible, selected string, selectionStart int) int {
	needle, _ := normalize([]rune(selected))
	if isBlank(needle) {
		return 0
	}

	runes := []rune(visible)
	selectionStart = max(0, min(selectionStart, len(runes)))

	prefix, _ := normalize(runes[:selectionStart])
	hay, _ := normalize(runes)

	count := 0
	for _, s := range search(hay, needle) {
		if s >= len(prefix) {
			break
		}
		count++
	}
	return count
}

// normalize collapses each run of whitespace into a single space. index[i]
// is the position in runes of the rune that produced out[i]; a collapsed run
// maps to its first rune.
func normalize(runes []rune) (out []rune, index []int) {
	out = make([]rune, 0, len(runes))
	index = make([]int, 0, len(runes))

	inSpace := false
	for i, r := range runes {
		if unicode.IsSpace(r) {
			if inSpace {
				continue
			}
			inSpace = true
			r = ' '
		} else {
			inSpace = false
		}
		out = append(out, r)
		index = append(index, i)
	}
	return out, index
}

func isBlank(needle []rune) bool {
	return strings.TrimSpace(string(needle)) == ""
}

// search returns every start position of needle in hay, resuming one rune
// after each match so overlapping matches are reported.
func search(hay, needle []rune) []int {
	var starts []int
	for i := 0; i+len(needle) <= len(hay); i++ {
		if hasPrefix(hay[i:], needle) {
			starts = append(starts, i)
		}
	}
	return starts
}

func hasPrefix(s, prefix []rune) bool {
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}
