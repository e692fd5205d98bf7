package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return Group("errors", as...)
}

func id(key string, v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	if s, ok := v.(string); ok && s == "" {
		return slog.Attr{}
	}
	return slog.Any(key, v)
}

// AccountID records the account identifier under "account_id".
func AccountID(v any) slog.Attr { return id("account_id", v) }

// ProjectID records the project identifier under "project_id".
func ProjectID(v any) slog.Attr { return id("project_id", v) }

// AudienceID records the audience identifier under "audience_id".
func AudienceID(v any) slog.Attr { return id("audience_id", v) }

// TemplateID records the template identifier under "template_id".
func TemplateID(v any) slog.Attr { return id("template_id", v) }

// SectionID records the section identifier under "section_id".
func SectionID(v any) slog.Attr { return id("section_id", v) }

// VariableID records the variable identifier under "variable_id".
func VariableID(v any) slog.Attr { return id("variable_id", v) }

// RequestID records the request identifier under "request_id".
func RequestID(v any) slog.Attr { return id("request_id", v) }

// VariableKind records the variable kind under "variable_kind".
func VariableKind(kind string) slog.Attr {
	return slog.String("variable_kind", kind)
}

// Occurrence records an occurrence index under "occurrence".
func Occurrence(n int) slog.Attr {
	return slog.Int("occurrence", n)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Handler records the HTTP handler name under "handler".
func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}

// Duration records a duration under "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
