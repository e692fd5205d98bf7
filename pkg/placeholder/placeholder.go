package placeholder

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/varlayer/pkg/textmap"
)

// MarkerAttr is the attribute that identifies marked elements.
const MarkerAttr = "data-vl-var"

const (
	tokenPrefix = "{{vl:"
	tokenSuffix = "}}"
)

// tokenPattern matches any text token, claimed or not.
var tokenPattern = regexp.MustCompile(`\{\{vl:([0-9a-fA-F-]+)\}\}`)

// Kind is the kind of variable a marker stands for.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindText || k == KindImage
}

// Variable is the minimum a renderer needs to know about a variable.
type Variable struct {
	ID           string
	Kind         Kind
	DefaultValue string
}

// Result is the outcome of a successful insertion.
type Result struct {
	DefaultValue string
	HTML         string
}

// Token returns the text token for id.
func Token(id string) string {
	return tokenPrefix + id + tokenSuffix
}

// Attribute returns the marker attribute for id.
func Attribute(id string) string {
	return MarkerAttr + `="` + id + `"`
}

// Visible maps raw with every text token opaque, so no selection can land
// inside or across an existing token.
func Visible(raw string) *textmap.Map {
	return textmap.Build(raw, textmap.WithOpaque(tokenPattern))
}

// InsertText replaces the occurrence-th visible match of selected in raw
// with the text token for id. The default value is selected exactly as
// given. It reports false when the selection cannot be located.
func InsertText(raw, selected, id string, occurrence int) (Result, bool) {
	span, ok := textmap.Locate(Visible(raw), selected, occurrence)
	if !ok {
		return Result{}, false
	}

	return Result{
		DefaultValue: selected,
		HTML:         raw[:span.Start] + Token(id) + raw[span.End:],
	}, true
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;")

// RemoveText replaces every token for id with defaultValue. The value is
// written back as text, so '&' and '<' are escaped. A document without the
// token is returned unchanged.
func RemoveText(raw, id, defaultValue string) string {
	token := Token(id)
	if !strings.Contains(raw, token) {
		return raw
	}
	return strings.ReplaceAll(raw, token, textEscaper.Replace(defaultValue))
}

// HasText reports whether raw contains the token for id.
func HasText(raw, id string) bool {
	return strings.Contains(raw, Token(id))
}
