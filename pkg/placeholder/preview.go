package placeholder

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/varlayer/pkg/textmap"
)

// previewEscaper escapes a default value for use as element content.
// '{' is escaped too so a value can never reassemble a token.
var previewEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"{", "&#123;",
)

// previewSpanPattern matches a rendered text variable. Escaped default
// values never contain '<'.
var previewSpanPattern = regexp.MustCompile(`<span ` + MarkerAttr + `="[0-9a-fA-F-]+">[^<]*</span>`)

// Preview renders raw for display. Every text variable's token becomes an
// inline span carrying its identifier and escaped default value, image
// markers are left as they are and unclaimed tokens are removed.
func Preview(raw string, vars []Variable) string {
	out := raw
	for _, v := range vars {
		if v.Kind != KindText {
			continue
		}
		out = strings.ReplaceAll(out, Token(v.ID), previewSpan(v))
	}
	return StripOrphans(out)
}

// StripOrphans removes every text token left in raw.
func StripOrphans(raw string) string {
	if !strings.Contains(raw, tokenPrefix) {
		return raw
	}
	return tokenPattern.ReplaceAllLiteralString(raw, "")
}

func previewSpan(v Variable) string {
	return `<span ` + Attribute(v.ID) + `>` + previewEscaper.Replace(v.DefaultValue) + `</span>`
}

// PreviewOccurrence converts a selection made at offset, a rune position in
// the visible text of preview, into the occurrence index InsertText expects
// for the raw document. Text shown for variables is skipped here just as
// tokens are skipped in the raw document.
func PreviewOccurrence(preview, selected string, offset int) int {
	m := textmap.Build(preview, textmap.WithOpaque(previewSpanPattern))
	return m.OccurrenceBefore(selected, offset)
}
