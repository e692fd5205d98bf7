package placeholder

import (
	"regexp"
	"strings"
)

// imagePattern matches every <img> tag whose src equals src exactly.
// Group 1 is everything up to the tag close, group 2 the close itself.
func imagePattern(src string) *regexp.Regexp {
	q := regexp.QuoteMeta(src)
	return regexp.MustCompile(
		`(<(?i:img)\b[^>]*?\s(?i:src)\s*=\s*(?:"` + q + `"|'` + q + `')[^>]*?)(\s*/?>)`,
	)
}

// InsertImage appends the marker attribute for id to the first <img> tag
// whose src attribute equals src and that is not yet marked. The default
// value is src. It reports false when no such tag exists.
func InsertImage(raw, src, id string) (Result, bool) {
	if src == "" {
		return Result{}, false
	}

	for _, loc := range imagePattern(src).FindAllStringSubmatchIndex(raw, -1) {
		if marked(raw[loc[2]:loc[3]]) {
			continue
		}
		at := loc[3]
		return Result{
			DefaultValue: src,
			HTML:         raw[:at] + " " + Attribute(id) + raw[at:],
		}, true
	}
	return Result{}, false
}

// marked reports whether the tag text already carries a marker attribute.
func marked(tag string) bool {
	return strings.Contains(strings.ToLower(tag), MarkerAttr+"=")
}

// RemoveImage strips every marker attribute for id, together with the
// whitespace in front of it.
func RemoveImage(raw, id string) string {
	re := regexp.MustCompile(`\s*` + regexp.QuoteMeta(Attribute(id)))
	return re.ReplaceAllLiteralString(raw, "")
}

// HasImage reports whether raw carries the marker attribute for id.
func HasImage(raw, id string) bool {
	return strings.Contains(raw, Attribute(id))
}
