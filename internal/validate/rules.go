package validate

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Errors maps a field name to its first failing message.
type Errors map[string]string

func (e Errors) Any() bool { return len(e) > 0 }

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Rule checks one value and returns an error message, or "" when it passes.
type Rule func(v string) string

// Table is a declarative rule set keyed by field name. Rules for a field run in
// order and stop at the first failure.
type Table map[string][]Rule

// Check runs every rule against the values returned by get.
func (t Table) Check(get func(field string) string) Errors {
	errs := Errors{}
	for field, rules := range t {
		v := get(field)
		for _, r := range rules {
			if msg := r(v); msg != "" {
				errs[field] = msg
				break
			}
		}
	}
	return errs
}

// Merge returns a table holding the rules of t followed by those of o.
func (t Table) Merge(o Table) Table {
	out := Table{}
	for k, v := range t {
		out[k] = append(out[k], v...)
	}
	for k, v := range o {
		out[k] = append(out[k], v...)
	}
	return out
}

func Required(label string) Rule {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return label + " is required"
		}
		return ""
	}
}

func EmailRule(v string) string {
	if _, ok := Email(v); !ok {
		return "Please enter a valid email address"
	}
	return ""
}

func PhoneRule(v string) string {
	if _, ok := Phone(v); !ok {
		return "Please enter a valid phone number (10-15 digits)"
	}
	return ""
}

func MinLen(label string, n int) Rule {
	return func(v string) string {
		if utf8.RuneCountInString(strings.TrimSpace(v)) < n {
			return fmt.Sprintf("%s must be at least %d characters", label, n)
		}
		return ""
	}
}

func OneOf(label string, allowed []string) Rule {
	return func(v string) string {
		for _, a := range allowed {
			if v == a {
				return ""
			}
		}
		return "Please select a valid " + strings.ToLower(label)
	}
}

// NonNegative accepts a plain decimal number >= 0.
func NonNegative(label string) Rule {
	return func(v string) string {
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return label + " must be a number"
		}
		if d.IsNegative() {
			return label + " cannot be negative"
		}
		return ""
	}
}

func GSTRule(v string) string {
	if _, ok := GST(v); !ok {
		return "Please enter a valid 15 character GST number"
	}
	return ""
}
