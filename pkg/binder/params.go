package binder

import (
	"encoding"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// Path binds fields tagged `path:"name"` using extractor, typically
// chi.URLParam. Fields implementing encoding.TextUnmarshaler, such as
// uuid.UUID, parse themselves.
func Path(extractor func(r *http.Request, key string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindTagged(v, "path", ErrFailedToParsePath, func(key string) (string, bool) {
			val := extractor(r, key)
			return val, val != ""
		})
	}
}

// Query binds fields tagged `query:"name"` from the URL query string.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindTagged(v, "query", ErrFailedToParseQuery, func(key string) (string, bool) {
			if !q.Has(key) {
				return "", false
			}
			return q.Get(key), true
		})
	}
}

func bindTagged(v any, tag string, errKind error, lookup func(key string) (string, bool)) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		key, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
		if key == "" || key == "-" || !sf.IsExported() {
			continue
		}

		raw, ok := lookup(key)
		if !ok {
			continue
		}
		if err := setValue(rv.Field(i), raw); err != nil {
			return fmt.Errorf("%w: %s: %w", errKind, key, err)
		}
	}
	return nil
}

func setValue(field reflect.Value, raw string) error {
	if field.Kind() == reflect.Pointer {
		ptr := reflect.New(field.Type().Elem())
		if err := setValue(ptr.Elem(), raw); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}

	if field.CanAddr() {
		if u, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(raw))
		}
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}
