// Package sanitizer cleans user supplied names and image sources before
// they are validated and stored.
//
// Every helper is a plain func(string) string, or can be wrapped into one, so
// helpers chain with Apply and Compose:
//
//	clean := sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.SingleLine)
//	name := clean("  Welcome\n  email ") // "Welcome email"
package sanitizer
