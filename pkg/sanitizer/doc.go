// Package sanitizer cleans user input before validation: e-mail
// normalization, whitespace collapsing and Unicode NFC normalization through
// golang.org/x/text. Transforms compose with Apply and Compose.
package sanitizer
