// Package placeholder marks spans of a raw HTML document as template
// variables and renders documents carrying those marks as previews.
//
// Two marker forms are used and both are stable across versions:
//
//	{{vl:<id>}}          text token, replaces the selected text in place
//	data-vl-var="<id>"   attribute appended to an <img> tag
//
// The identifier is a lowercase UUID. Tokens never look like prose and never
// collide with HTML entities, so they do not disturb occurrence counting in
// surrounding text.
//
// # Editing
//
// InsertText locates a visible-text selection through package textmap and
// replaces its raw span with a token. RemoveText puts the default value
// back. InsertImage and RemoveImage do the same for image attributes.
// All four are pure string functions. A selection or image that cannot be
// found is reported with a false result, never an error:
//
//	res, ok := placeholder.InsertText(raw, "World", id, 0)
//	if !ok {
//		// nothing to mark; do not create a variable
//	}
//	raw = res.HTML
//
// # Preview
//
// Preview swaps every text token for an inline span holding the escaped
// default value and silently drops tokens that no variable claims:
//
//	<span data-vl-var="<id>">World</span>
//
// Preview is idempotent: running it on its own output changes nothing.
//
// # Inventory
//
// Scan lists the identifiers referenced by a document so callers can audit
// it against their variable records and find orphans or missing markers.
package placeholder
