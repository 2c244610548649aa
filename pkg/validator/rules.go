package validator

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Numeric is any built-in integer or float type.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func newRule(field, key, msg string, params map[string]any, check func() bool) Rule {
	if params == nil {
		params = map[string]any{}
	}
	params["field"] = field
	return Rule{
		Check: check,
		Error: ValidationError{Field: field, Message: msg, Key: "validation." + key, Params: params},
	}
}

// Required fails for strings that are empty after trimming whitespace.
func Required(field, value string) Rule {
	return newRule(field, "required", "field is required", nil, func() bool {
		return strings.TrimSpace(value) != ""
	})
}

// MinLen counts runes, not bytes.
func MinLen(field, value string, n int) Rule {
	return newRule(field, "min_length", fmt.Sprintf("must be at least %d characters long", n),
		map[string]any{"min": n},
		func() bool { return utf8.RuneCountInString(value) >= n })
}

// MaxLen counts runes, not bytes.
func MaxLen(field, value string, n int) Rule {
	return newRule(field, "max_length", fmt.Sprintf("must be at most %d characters long", n),
		map[string]any{"max": n},
		func() bool { return utf8.RuneCountInString(value) <= n })
}

func InList[T comparable](field string, value T, allowed []T) Rule {
	return newRule(field, "in_list", fmt.Sprintf("must be one of: %v", allowed),
		map[string]any{"allowed_values": allowed},
		func() bool { return slices.Contains(allowed, value) })
}

// Between is inclusive on both ends.
func Between[T Numeric](field string, value, lo, hi T) Rule {
	return newRule(field, "between", fmt.Sprintf("must be between %v and %v", lo, hi),
		map[string]any{"min": lo, "max": hi},
		func() bool { return value >= lo && value <= hi })
}
