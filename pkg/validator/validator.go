package validator

import (
	"errors"
	"slices"
	"strings"
)

// ValidationError is one failed rule. Key and Params let callers render a
// localised message instead of Message.
type ValidationError struct {
	Field   string
	Message string
	Key     string
	Params  map[string]any
}

// ValidationErrors is what Apply returns when at least one rule fails.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	for i, e := range ve {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(e.Field)
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (ve ValidationErrors) Has(field string) bool {
	return slices.ContainsFunc(ve, func(e ValidationError) bool { return e.Field == field })
}

// Get returns the messages for field in rule order.
func (ve ValidationErrors) Get(field string) []string {
	var out []string
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

// Fields lists failing fields in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var out []string
	for _, e := range ve {
		if !slices.Contains(out, e.Field) {
			out = append(out, e.Field)
		}
	}
	return out
}

// Rule is a deferred check and the error it reports.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs every rule. It returns nil or a ValidationErrors holding each
// failure in rule order.
func Apply(rules ...Rule) error {
	var failed ValidationErrors
	for _, r := range rules {
		if !r.Check() {
			failed = append(failed, r.Error)
		}
	}
	if failed == nil {
		return nil
	}
	return failed
}

// When keeps rules only if cond holds. Use it for optional fields:
//
//	validator.Apply(validator.When(p.Note != "", validator.MinLen("note", p.Note, 5))...)
func When(cond bool, rules ...Rule) []Rule {
	if cond {
		return rules
	}
	return nil
}

// IsValidationError reports whether err wraps ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}
