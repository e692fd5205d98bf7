package placeholder

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Inventory lists the variable identifiers a document refers to, in
// document order. An identifier referenced twice appears twice.
type Inventory struct {
	Tokens []string // identifiers of text tokens
	Marked []string // identifiers carried by marker attributes
}

// Scan collects the markers present in raw. Marker attributes are read with
// an HTML tokenizer, so attributes inside comments or scripts are ignored
// while attribute values are unescaped.
func Scan(raw string) Inventory {
	var inv Inventory

	for _, m := range tokenPattern.FindAllStringSubmatch(raw, -1) {
		inv.Tokens = append(inv.Tokens, strings.ToLower(m[1]))
	}

	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or a malformed tail; either way there is nothing more to read.
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		_, hasAttr := z.TagName()
		for hasAttr {
			var key, val []byte
			key, val, hasAttr = z.TagAttr()
			if string(key) == MarkerAttr {
				inv.Marked = append(inv.Marked, strings.ToLower(string(val)))
			}
		}
	}

	return inv
}

// IDs returns every identifier referenced by the document, deduplicated and
// sorted.
func (inv Inventory) IDs() []string {
	ids := make([]string, 0, len(inv.Tokens)+len(inv.Marked))
	ids = append(ids, inv.Tokens...)
	ids = append(ids, inv.Marked...)
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Orphans returns the referenced identifiers that are not in known.
func (inv Inventory) Orphans(known []string) []string {
	set := make(map[string]struct{}, len(known))
	for _, id := range known {
		set[strings.ToLower(id)] = struct{}{}
	}

	var orphans []string
	for _, id := range inv.IDs() {
		if _, ok := set[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	return orphans
}

// Missing returns the variables whose marker is absent from the document.
// Text variables need a token, image variables a marker attribute.
func (inv Inventory) Missing(vars []Variable) []Variable {
	var missing []Variable
	for _, v := range vars {
		id := strings.ToLower(v.ID)
		var found bool
		switch v.Kind {
		case KindImage:
			found = slices.Contains(inv.Marked, id)
		default:
			found = slices.Contains(inv.Tokens, id)
		}
		if !found {
			missing = append(missing, v)
		}
	}
	return missing
}

// Duplicates returns identifiers referenced more than once, sorted.
func (inv Inventory) Duplicates() []string {
	seen := make(map[string]int)
	for _, id := range inv.Tokens {
		seen[id]++
	}
	for _, id := range inv.Marked {
		seen[id]++
	}

	var dups []string
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	slices.Sort(dups)
	return dups
}
