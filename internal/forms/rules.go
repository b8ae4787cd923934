package forms

import (
	"fmt"
	"html"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance backing the field rules.
// Rules validate single values via Var tags rather than whole structs, since
// form input arrives as named strings.
var validate = validator.New()

// Rule checks one named raw value and reports at most one violation.
// Rules compose left-to-right under Check.
type Rule func(field, value string) *Violation

// Check applies every rule to the value and collects all violations.
// There is no short-circuit on the first failing rule.
func Check(field, value string, rules ...Rule) Violations {
	var out Violations
	for _, rule := range rules {
		if v := rule(field, value); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// Required fails when the trimmed value is empty.
func Required(message string) Rule {
	return func(field, value string) *Violation {
		if err := validate.Var(value, "required"); err != nil {
			return &Violation{Field: field, Message: message}
		}
		return nil
	}
}

// MaxLength fails when the value exceeds n characters.
// Empty values pass; pair with Required when the field is mandatory.
func MaxLength(n int, message string) Rule {
	tag := fmt.Sprintf("omitempty,max=%d", n)
	return func(field, value string) *Violation {
		if err := validate.Var(value, tag); err != nil {
			return &Violation{Field: field, Message: message}
		}
		return nil
	}
}

// Alphanumeric fails when the value contains characters outside [a-zA-Z0-9].
// Empty values pass; pair with Required when the field is mandatory.
func Alphanumeric(message string) Rule {
	return func(field, value string) *Violation {
		if err := validate.Var(value, "omitempty,alphanum"); err != nil {
			return &Violation{Field: field, Message: message}
		}
		return nil
	}
}

// ValidDate fails when a non-empty value is not an ISO calendar date.
// Empty values pass: absent optional dates are "no value", not an error.
func ValidDate(message string) Rule {
	return func(field, value string) *Violation {
		if err := validate.Var(value, "omitempty,datetime=2006-01-02"); err != nil {
			return &Violation{Field: field, Message: message}
		}
		return nil
	}
}

// ParseOptionalDate parses an ISO calendar date, returning nil for empty input
// and a violation for unparseable input.
func ParseOptionalDate(field, value, message string) (*time.Time, *Violation) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, &Violation{Field: field, Message: message}
	}
	return &t, nil
}

// Escape neutralizes markup-significant characters so free-text input is safe
// to store and redisplay.
func Escape(value string) string {
	return html.EscapeString(value)
}
