// Package validate is a small combinator library for request validation.
// Each operation builds its checks from reusable field rules and gets back a
// structured list of field/message pairs suitable for a 400 response.
package validate

import (
	"fmt"
	"regexp"
	"unicode"
)

var (
	// emailPattern matches the login-handle format accepted at registration.
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	// phonePattern accepts an optional + followed by up to 16 digits,
	// no leading zero.
	phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)
)

// Error is a single field-level validation failure.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the result of validating one request.
type Errors []Error

// Rule checks a single string value and returns a message on failure.
// Rules other than Required treat the empty string as valid so optional
// fields compose naturally.
type Rule func(value string) string

// Validation collects field errors for one request.
type Validation struct {
	errs Errors
}

func New() *Validation {
	return &Validation{}
}

// Field runs the given rules against a value, recording the first failure.
func (v *Validation) Field(field, value string, rules ...Rule) {
	for _, rule := range rules {
		if msg := rule(value); msg != "" {
			v.errs = append(v.errs, Error{Field: field, Message: msg})
			return
		}
	}
}

// Check records a failure for non-string conditions (dates, list shapes).
func (v *Validation) Check(field string, ok bool, message string) {
	if !ok {
		v.errs = append(v.errs, Error{Field: field, Message: message})
	}
}

// Errors returns the collected failures, nil when the request is valid.
func (v *Validation) Errors() Errors {
	return v.errs
}

// Valid reports whether no rule failed.
func (v *Validation) Valid() bool {
	return len(v.errs) == 0
}

// Required fails on the empty string.
func Required(message string) Rule {
	return func(value string) string {
		if value == "" {
			return message
		}
		return ""
	}
}

// MaxLen fails when the value exceeds max characters.
func MaxLen(max int, message string) Rule {
	return func(value string) string {
		if len([]rune(value)) > max {
			return message
		}
		return ""
	}
}

// Match fails when a non-empty value does not match the pattern.
func Match(pattern *regexp.Regexp, message string) Rule {
	return func(value string) string {
		if value == "" {
			return ""
		}
		if !pattern.MatchString(value) {
			return message
		}
		return ""
	}
}

// Email validates the login-handle format.
func Email() Rule {
	return Match(emailPattern, "Please provide a valid email address")
}

// Phone validates the optional phone number format.
func Phone() Rule {
	return Match(phonePattern, "Please provide a valid phone number")
}

// Password enforces the complexity floor: at least 6 characters with one
// uppercase letter, one lowercase letter, and one digit.
func Password() Rule {
	return func(value string) string {
		if value == "" {
			return ""
		}
		if len(value) < 6 {
			return "Password must be at least 6 characters long"
		}
		var upper, lower, digit bool
		for _, r := range value {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		if !upper || !lower || !digit {
			return "Password must contain at least one uppercase letter, one lowercase letter, and one number"
		}
		return ""
	}
}

// StringList applies a per-item max length to every entry of a list.
func (v *Validation) StringList(field string, values []string, max int, message string) {
	for i, item := range values {
		v.Field(fmt.Sprintf("%s[%d]", field, i), item, MaxLen(max, message))
	}
}
