// Package validation checks browser form input before it reaches a service.
// Services validate again; these messages exist so forms can point at the
// offending field.
package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule inspects a raw form value and returns a user-facing message, or ""
// when the value is acceptable.
type Rule func(v string) string

func required(label string) string { return label + " is required." }

func tooLong(label string, limit int, unit string) string {
	return fmt.Sprintf("%s cannot exceed %d %s.", label, limit, unit)
}

// Required rejects blank values and values longer than maxLen runes.
func Required(label string, maxLen int) Rule {
	limit := Optional(label, maxLen)
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return required(label)
		}
		return limit(v)
	}
}

// Optional accepts blanks but caps the trimmed value at maxLen runes.
func Optional(label string, maxLen int) Rule {
	return func(v string) string {
		if utf8.RuneCountInString(strings.TrimSpace(v)) > maxLen {
			return tooLong(label, maxLen, "characters")
		}
		return ""
	}
}

// MinBytes bounds an untrimmed secret, such as a password, by byte length.
func MinBytes(label string, minLen, maxLen int) Rule {
	return func(v string) string {
		switch n := len(v); {
		case n == 0:
			return required(label)
		case n < minLen:
			return fmt.Sprintf("%s must be at least %d characters.", label, minLen)
		case n > maxLen:
			return tooLong(label, maxLen, "bytes")
		}
		return ""
	}
}

// Email accepts one bare address. Display-name forms like
// "Jane <jane@company.com>" are rejected.
func Email(label string) Rule {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return required(label)
		}
		if addr, err := mail.ParseAddress(v); err != nil || addr.Address != v {
			return "Enter a valid email address."
		}
		return ""
	}
}

// IntRange requires an integer in [lo, hi].
func IntRange(label string, lo, hi int) Rule {
	return func(v string) string {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		switch {
		case err != nil:
			return label + " must be a number."
		case n < lo || n > hi:
			return fmt.Sprintf("%s must be between %d and %d.", label, lo, hi)
		}
		return ""
	}
}

// OptionalURL accepts blanks or an absolute http(s) URL of at most maxLen bytes.
func OptionalURL(label string, maxLen int) Rule {
	return func(v string) string {
		v = strings.TrimSpace(v)
		switch {
		case v == "":
			return ""
		case len(v) > maxLen:
			return tooLong(label, maxLen, "characters")
		}
		u, err := url.Parse(v)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return "Enter a valid http(s) URL."
		}
		return ""
	}
}

// LineCount requires between lo and hi distinct non-blank lines.
func LineCount(label string, lo, hi int) Rule {
	return func(v string) string {
		lines := SplitLines(v)
		seen := make(map[string]bool, len(lines))
		for _, l := range lines {
			if seen[l] {
				return fmt.Sprintf("%s must not repeat %q.", label, l)
			}
			seen[l] = true
		}
		if n := len(lines); n < lo || n > hi {
			return fmt.Sprintf("%s needs between %d and %d entries, one per line.", label, lo, hi)
		}
		return ""
	}
}

// SplitLines returns the trimmed non-blank lines of v.
func SplitLines(v string) []string {
	var out []string
	for _, l := range strings.Split(strings.ReplaceAll(v, "\r\n", "\n"), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Form collects at most one message per field. The first failure recorded
// for a field wins.
type Form struct {
	errs map[string]string
}

// New returns an empty Form.
func New() *Form {
	return &Form{errs: map[string]string{}}
}

func (f *Form) record(field, msg string) {
	if _, seen := f.errs[field]; !seen && msg != "" {
		f.errs[field] = msg
	}
}

// Validate runs rules against value in order and records the first failure.
func (f *Form) Validate(field, value string, rules ...Rule) *Form {
	if _, seen := f.errs[field]; seen {
		return f
	}
	for _, rule := range rules {
		if msg := rule(value); msg != "" {
			f.record(field, msg)
			break
		}
	}
	return f
}

// Check records msg against field unless ok holds.
func (f *Form) Check(ok bool, field, msg string) *Form {
	if !ok {
		f.record(field, msg)
	}
	return f
}

// Valid reports whether nothing has been recorded.
func (f *Form) Valid() bool { return len(f.errs) == 0 }

// Errors returns field name to message.
func (f *Form) Errors() map[string]string { return f.errs }
