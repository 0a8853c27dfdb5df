package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

func rule(field, message, key string, check func() bool) Rule {
	return Rule{Check: check, Error: ValidationError{Field: field, Message: message, Key: key}}
}

// Required fails for empty or whitespace-only values.
func Required(field, value string) Rule {
	return rule(field, "field is required", "validation.required", func() bool {
		return strings.TrimSpace(value) != ""
	})
}

// MinLen counts characters, not bytes.
func MinLen(field, value string, min int) Rule {
	return rule(field, fmt.Sprintf("must be at least %d characters long", min), "validation.min_length", func() bool {
		return utf8.RuneCountInString(value) >= min
	})
}

// MaxLen counts characters, not bytes.
func MaxLen(field, value string, max int) Rule {
	return rule(field, fmt.Sprintf("must be at most %d characters long", max), "validation.max_length", func() bool {
		return utf8.RuneCountInString(value) <= max
	})
}

func Min[T Numeric](field string, value, min T) Rule {
	return rule(field, fmt.Sprintf("must be at least %v", min), "validation.min", func() bool {
		return value >= min
	})
}

func Max[T Numeric](field string, value, max T) Rule {
	return rule(field, fmt.Sprintf("must be at most %v", max), "validation.max", func() bool {
		return value <= max
	})
}

// ValidEmail accepts a bare address whose domain has at least two labels.
func ValidEmail(field, value string) Rule {
	return rule(field, "must be a valid email address", "validation.email", func() bool {
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return false
		}
		local, domain, ok := strings.Cut(value, "@")
		if !ok || local == "" || !strings.Contains(domain, ".") {
			return false
		}
		for part := range strings.SplitSeq(domain, ".") {
			if part == "" {
				return false
			}
		}
		return true
	})
}

const passwordSpecials = "!@#$%^&*"

// StrongPassword requires at least one digit and one of !@#$%^&*, and allows
// only letters, numbers, underscore and those specials. Letters and digits
// are matched in any script.
func StrongPassword(field, value string) Rule {
	return rule(field, "must contain a digit and one of "+passwordSpecials+" and no other symbols", "validation.password_strength", func() bool {
		var digit, special bool
		for _, r := range value {
			switch {
			case unicode.IsDigit(r):
				digit = true
			case strings.ContainsRune(passwordSpecials, r):
				special = true
			case r == '_', unicode.IsLetter(r), unicode.IsNumber(r):
			default:
				return false
			}
		}
		return digit && special
	})
}
