package sanitizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	dotRun     = regexp.MustCompile(`\.{2,}`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	for _, transform := range transforms {
		value = transform(value)
	}
	return value
}

// Compose returns a reusable pipeline of transforms.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail trims, lowercases and collapses repeated dots in the local
// part. Values without exactly one @ are only trimmed and lowercased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = strings.Trim(dotRun.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}

// NormalizeWhitespace collapses whitespace runs into single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// StripControl removes control characters.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// NFC converts s to Unicode normalization form C so that visually equal
// names compare and count equally.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// DisplayName prepares a user supplied name for storage.
var DisplayName = Compose(StripControl, NFC, NormalizeWhitespace)

// SearchQuery prepares a search box value. Case is preserved.
var SearchQuery = Compose(StripControl, NFC, Trim)
