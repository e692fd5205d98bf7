package textmap

import (
	"strconv"
	"unicode/utf8"
)

var namedEntities = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
	"nbsp": " ",
}

// DecodeEntity decodes a single "&...;" entity into the text a reader sees.
// Non-breaking spaces decode to a plain space and zero-width spaces to
// nothing. Anything it does not recognise is returned unchanged.
func DecodeEntity(entity string) string {
	if len(entity) < 3 || entity[0] != '&' || entity[len(entity)-1] != ';' {
		return entity
	}

	body := entity[1 : len(entity)-1]
	if s, ok := namedEntities[body]; ok {
		return s
	}
	if body[0] != '#' {
		return entity
	}

	r, ok := parseCodePoint(body[1:])
	if !ok {
		return entity
	}

	switch r {
	case 0xA0:
		return " "
	case 0x200B:
		return ""
	}
	return string(r)
}

func parseCodePoint(s string) (rune, bool) {
	base := 10
	if len(s) > 0 && (s[0] == 'x' || s[0] == 'X') {
		base = 16
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}

	n, err := strconv.ParseUint(s, base, 32)
	if err != nil || n == 0 || n > utf8.MaxRune {
		return 0, false
	}

	r := rune(n)
	if !utf8.ValidRune(r) {
		return 0, false
	}
	return r, true
}
