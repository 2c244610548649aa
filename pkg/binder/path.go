package binder

import (
	"encoding"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// Path binds URL path parameters into the exported fields of a struct:
//
//	type TransitionRequest struct {
//		ID string `path:"id"`
//	}
//
//	r.Post("/articles/{id}/status/publish", handler.Wrap(h,
//		handler.WithBinders[handler.Context, TransitionRequest](binder.Path(chi.URLParam)),
//	))
//
// Untagged fields use their lowercased name and `path:"-"` skips a field.
// Empty parameters leave the field untouched. Besides strings, numbers and
// bools, any type implementing encoding.TextUnmarshaler can be bound, which
// covers uuid.UUID.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: nil extractor", ErrFailedToParsePath)
		}

		target := reflect.ValueOf(v)
		if target.Kind() != reflect.Pointer || target.IsNil() || target.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a non-nil pointer to a struct", ErrFailedToParsePath)
		}
		target = target.Elem()

		for _, sf := range reflect.VisibleFields(target.Type()) {
			if !sf.IsExported() || sf.Anonymous {
				continue
			}
			name := paramName(sf)
			if name == "" {
				continue
			}
			raw := extractor(r, name)
			if raw == "" {
				continue
			}
			field, err := target.FieldByIndexErr(sf.Index)
			if err != nil {
				continue
			}
			if err := assign(field, raw); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrFailedToParsePath, name, err)
			}
		}
		return nil
	}
}

func paramName(sf reflect.StructField) string {
	tag, ok := sf.Tag.Lookup("path")
	if !ok || tag == "" {
		return strings.ToLower(sf.Name)
	}
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

var textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

// assign parses raw into field, allocating pointers as needed.
func assign(field reflect.Value, raw string) error {
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return assign(field.Elem(), raw)
	}

	if field.CanAddr() && field.Addr().Type().Implements(textUnmarshaler) {
		return field.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("not an integer: %q", raw)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("not an unsigned integer: %q", raw)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("not a number: %q", raw)
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("not a boolean: %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
