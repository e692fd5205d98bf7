package textmap

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxEntityLen bounds the distance between '&' and its terminating ';'.
const maxEntityLen = 10

var invisibleTags = map[string]bool{
	"head":   true,
	"title":  true,
	"style":  true,
	"script": true,
}

var blockTags = map[string]bool{
	"br": true, "p": true, "div": true, "table": true, "tr": true, "td": true,
	"th": true, "li": true, "ul": true, "ol": true, "hr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "section": true, "article": true, "header": true, "footer": true,
}

// Map is the visible text of a raw HTML document together with the raw
// byte offset behind every visible rune.
type Map struct {
	runes  []rune
	raw    []int  // raw byte offset that produced runes[i]
	ends   []int  // exclusive end of the raw source of runes[i]
	opaque []bool // runes[i] came from an opaque region

	opaquePatterns []*regexp.Regexp
	regions        [][]int
}

// Option configures Build.
type Option func(*Map)

// WithOpaque marks the runes produced from raw bytes matched by re as
// opaque. They stay in the visible text, but no match may cover them.
func WithOpaque(re *regexp.Regexp) Option {
	return func(m *Map) { m.opaquePatterns = append(m.opaquePatterns, re) }
}

// Build scans raw once and returns its visible text map.
func Build(raw string, opts ...Option) *Map {
	m := &Map{
		runes:  make([]rune, 0, len(raw)),
		raw:    make([]int, 0, len(raw)),
		ends:   make([]int, 0, len(raw)),
		opaque: make([]bool, 0, len(raw)),
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, re := range m.opaquePatterns {
		m.regions = append(m.regions, re.FindAllStringIndex(raw, -1)...)
	}
	sort.Slice(m.regions, func(i, j int) bool { return m.regions[i][0] < m.regions[j][0] })

	depth := 0
	for i := 0; i < len(raw); {
		c := raw[i]

		if c == '<' {
			gt := strings.IndexByte(raw[i+1:], '>')
			if gt < 0 {
				if depth == 0 {
					m.push('<', i, i+1)
				}
				i++
				continue
			}

			closeAt := i + 1 + gt
			name, closing := tagName(raw[i+1 : closeAt])
			next := closeAt + 1

			switch {
			case invisibleTags[name] && closing:
				if depth > 0 {
					depth--
				}
			case invisibleTags[name]:
				depth++
			case depth == 0 && blockTags[name] && m.needsBoundary():
				// Boundary spaces own no raw bytes: a span ending on one
				// stops before the tag instead of swallowing it.
				m.push(' ', next, i)
			}

			i = next
			continue
		}

		if depth > 0 {
			_, w := utf8.DecodeRuneInString(raw[i:])
			i += w
			continue
		}

		if c == '&' {
			// Unknown entities fall through, so their characters keep
			// their own offsets.
			if semi := entityEnd(raw, i); semi > 0 {
				if entity := raw[i : semi+1]; DecodeEntity(entity) != entity {
					for _, r := range DecodeEntity(entity) {
						m.push(r, i, semi+1)
					}
					i = semi + 1
					continue
				}
			}
			m.push('&', i, i+1)
			i++
			continue
		}

		r, w := utf8.DecodeRuneInString(raw[i:])
		m.push(r, i, i+w)
		i += w
	}

	return m
}

// Text returns the visible text.
func (m *Map) Text() string {
	return string(m.runes)
}

// Len returns the number of visible runes.
func (m *Map) Len() int {
	return len(m.runes)
}

// Runes returns the visible text as runes. The slice must not be modified.
func (m *Map) Runes() []rune {
	return m.runes
}

// RawIndices returns, for every visible rune, the raw byte offset that
// produced it. The slice is monotonically non-decreasing and must not be
// modified.
func (m *Map) RawIndices() []int {
	return m.raw
}

// RawSpan returns the raw byte range behind the visible rune at position i.
// Boundary spaces report an empty range.
func (m *Map) RawSpan(i int) (start, end int) {
	if m.ends[i] < m.raw[i] {
		return m.raw[i], m.raw[i]
	}
	return m.raw[i], m.ends[i]
}

// Opaque reports whether the visible rune at position i is opaque.
func (m *Map) Opaque(i int) bool {
	return m.opaque[i]
}

// covers reports whether any rune in [first, last] is opaque.
func (m *Map) covers(first, last int) bool {
	for i := first; i <= last; i++ {
		if m.opaque[i] {
			return true
		}
	}
	return false
}

func (m *Map) push(r rune, offset, end int) {
	m.runes = append(m.runes, r)
	m.raw = append(m.raw, offset)
	m.ends = append(m.ends, end)
	// A boundary space sits where its tag starts.
	m.opaque = append(m.opaque, m.inRegion(min(offset, end)))
}

func (m *Map) inRegion(offset int) bool {
	i := sort.Search(len(m.regions), func(i int) bool { return m.regions[i][0] > offset })
	return i > 0 && offset < m.regions[i-1][1]
}

func (m *Map) needsBoundary() bool {
	n := len(m.runes)
	return n > 0 && !unicode.IsSpace(m.runes[n-1])
}

// tagName extracts the lowercased element name from the inside of a tag,
// reporting whether it is a closing tag.
func tagName(inner string) (string, bool) {
	closing := strings.HasPrefix(inner, "/")
	if closing {
		inner = inner[1:]
	}

	n := 0
	for n < len(inner) && isWordByte(inner[n]) {
		n++
	}
	return strings.ToLower(inner[:n]), closing
}

// entityEnd returns the offset of the ';' terminating the entity that starts
// at i, or -1 when raw[i:] does not start an entity.
func entityEnd(raw string, i int) int {
	rel := strings.IndexByte(raw[i+1:], ';')
	if rel < 0 {
		return -1
	}
	semi := i + 1 + rel
	if semi-i >= maxEntityLen || semi == i+1 {
		return -1
	}
	for j := i + 1; j < semi; j++ {
		if !isWordByte(raw[j]) && raw[j] != '#' {
			return -1
		}
	}
	return semi
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
