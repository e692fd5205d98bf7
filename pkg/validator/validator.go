// Package validator expresses input checks as a list of rules and collects
// every failure into a single error.
//
//	err := validator.Apply(
//		validator.RequiredString("name", req.Name),
//		validator.MaxLenString("name", req.Name, 64),
//		validator.OneOfString("kind", req.Kind, []string{"text", "image"}),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		// errs.Get("name")
//	}
//
// Lengths are counted in runes. Optional fields pass when empty; combine a
// rule with RequiredString to make a field mandatory.
package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes a single failed rule.
type ValidationError struct {
	Field          string
	Message        string
	TranslationKey string
}

// ValidationErrors collects failed rules in the order they were applied.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed any rule.
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field.
func (ve ValidationErrors) Get(field string) []string {
	var msgs []string
	for _, e := range ve {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Map groups the messages by field.
func (ve ValidationErrors) Map() map[string][]string {
	m := make(map[string][]string, len(ve))
	for _, e := range ve {
		m[e.Field] = append(m[e.Field], e.Message)
	}
	return m
}

// Rule is one check and the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs every rule and returns ValidationErrors when any fails.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.Check() {
			errs = append(errs, r.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ExtractValidationErrors unwraps ValidationErrors from err, or returns nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// IsValidationError reports whether err wraps ValidationErrors.
func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}
