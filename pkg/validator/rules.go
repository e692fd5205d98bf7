package validator

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// RequiredString fails when value is empty or only whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: "field is required", TranslationKey: "validation.required"},
	}
}

// MaxLenString fails when value has more than max runes.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: "validation.max_length",
		},
	}
}

// MaxBytes fails when value is longer than max bytes.
func MaxBytes(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return len(value) <= max },
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %d bytes", max),
			TranslationKey: "validation.max_bytes",
		},
	}
}

// ValidUUID fails when a non-empty value is not a canonical UUID.
func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			if len(value) != 36 {
				return false
			}
			_, err := uuid.Parse(value)
			return err == nil
		},
		Error: ValidationError{Field: field, Message: "must be a valid UUID", TranslationKey: "validation.uuid"},
	}
}

// OneOfString fails when value is not one of options.
func OneOfString(field, value string, options []string) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(options, value) },
		Error: ValidationError{
			Field:          field,
			Message:        "must be one of: " + strings.Join(options, ", "),
			TranslationKey: "validation.one_of",
		},
	}
}

// MinInt fails when value is below min.
func MinInt(field string, value, min int) Rule {
	return Rule{
		Check: func() bool { return value >= min },
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at least %d", min),
			TranslationKey: "validation.min",
		},
	}
}

// When applies rule only if cond holds.
func When(cond bool, rule Rule) Rule {
	if cond {
		return rule
	}
	return Rule{Check: func() bool { return true }}
}
