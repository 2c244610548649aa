package binder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20 // 1 MB

// JSON creates a JSON binder function. The body must be present and sent as
// application/json; decoding is strict and string fields are sanitized.
//
// Example:
//
//	r.Post("/articles", handler.Wrap(create,
//		handler.WithBinder[handler.Context, CreateArticleRequest](binder.JSON()),
//	))
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		body, err := ReadJSON(r)
		if err != nil {
			return err
		}
		if len(body) == 0 {
			return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}
		return DecodeJSON(body, v)
	}
}

// ReadJSON reads a JSON request body up to DefaultMaxJSONSize bytes.
// A blank body yields (nil, nil) whatever the content type, so callers can
// treat "no payload" separately; a non-blank body must be application/json.
func ReadJSON(r *http.Request) ([]byte, error) {
	if ctx := r.Context(); ctx != nil {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: context timeout", ErrFailedToParseJSON)
		default:
		}
	}

	if r.Body == nil {
		return nil, nil
	}

	limitedReader := io.LimitReader(r.Body, DefaultMaxJSONSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if len(body) > DefaultMaxJSONSize {
		return nil, fmt.Errorf("%w: max %d bytes", ErrRequestTooLarge, DefaultMaxJSONSize)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, ErrMissingContentType
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedMediaType, contentType)
	}

	return body, nil
}

// DecodeJSON strictly decodes a single JSON value into v: unknown fields and
// trailing data are rejected. String fields are sanitized afterwards.
func DecodeJSON(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}
		return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	// Ensure entire body was consumed
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
	}

	sanitizeReflectValue(reflect.ValueOf(v))
	return nil
}

// sanitizeStringValue drops control characters other than tab and newlines.
func sanitizeStringValue(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// sanitizeReflectValue recursively sanitizes settable string values.
func sanitizeReflectValue(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(sanitizeStringValue(rv.String()))
		}

	case reflect.Struct:
		for i := range rv.NumField() {
			if field := rv.Field(i); field.CanSet() {
				sanitizeReflectValue(field)
			}
		}

	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			sanitizeReflectValue(rv.Index(i))
		}

	case reflect.Map:
		// Map values are not addressable; rebuild string entries in place.
		if rv.Type().Elem().Kind() != reflect.String {
			return
		}
		for _, key := range rv.MapKeys() {
			rv.SetMapIndex(key, reflect.ValueOf(sanitizeStringValue(rv.MapIndex(key).String())).Convert(rv.Type().Elem()))
		}

	case reflect.Ptr, reflect.Interface:
		if !rv.IsNil() {
			sanitizeReflectValue(rv.Elem())
		}
	}
}
