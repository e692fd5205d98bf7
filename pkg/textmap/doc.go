// Package textmap maps the visible text of an HTML document back to byte
// offsets in its raw source.
//
// The package never builds a DOM. A Map is a flat index over the raw string:
// one entry per visible rune, each pointing at the raw byte offset that
// produced it. Everything else (locating a selection, counting occurrences)
// is computed from those arrays.
//
// # Building a map
//
//	m := textmap.Build(`<p>Caf&#233; au lait</p><p>Menu</p>`)
//	m.Text()       // "Café au lait Menu "
//	m.RawIndices() // [3 4 5 6 12 13 ...]
//
// The scan rules are deliberately small:
//
//   - Tags are skipped. The contents of head, title, style and script
//     elements are skipped too, including nested tags.
//   - Block-level tags (p, div, br, li, td, h1..h6 and friends) produce a
//     single boundary space when the text before them does not already end
//     in whitespace. Boundary spaces map to the offset just past the tag.
//   - Entities are decoded when a terminating ';' appears within ten bytes.
//     Every rune an entity produces maps to the entity's '&'. Unknown or
//     malformed entities are kept as their literal characters.
//   - A '<' without a closing '>' is treated as text.
//
// # Locating a selection
//
// Locate finds the raw byte span behind a piece of visible text. Matching
// is whitespace-insensitive: runs of whitespace on both sides collapse to a
// single space before comparison. When the text occurs more than once the
// occurrence index picks one of the matches, counted left to right with
// overlapping starts allowed.
//
//	span, ok := textmap.Locate(m, "au lait", 0)
//	if ok {
//		replaced := raw[:span.Start] + "X" + raw[span.End:]
//	}
//
// A span never splits an entity: when the last matched rune came from an
// entity the span ends after its ';'.
//
// OccurrenceIndex is the companion used by callers that only know where a
// selection starts inside rendered text. It counts how many matches of the
// selection start before that position.
//
// All functions are pure and safe for concurrent use.
package textmap
