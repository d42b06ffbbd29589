// Package naming derives the identifiers that generated code introduces.
// Every function is pure and total.
package naming

import (
	"strings"
	"unicode"
)

// ValidationErrorSuffix is appended to a value object's type name to name its
// validation error type.
const ValidationErrorSuffix = "ValidationError"

// initialisms are spelled in upper case when they form a whole word of a
// generated method name, following the Go naming conventions.
var initialisms = map[string]bool{
	"API":  true,
	"DNS":  true,
	"HTTP": true,
	"ID":   true,
	"IP":   true,
	"JSON": true,
	"SQL":  true,
	"URI":  true,
	"URL":  true,
	"UUID": true,
	"XML":  true,
}

// Getter pairs a struct field with the accessor method generated for it.
type Getter struct {
	Field  string
	Method string
}

// Names is the set of identifiers one generation request introduces.
type Names struct {
	// Receiver is the receiver variable used in generated methods.
	Receiver string
	// ValidationError is the value object error type, if any.
	ValidationError string
	// Constructor is the value object constructor, if any.
	Constructor string
	// Seal is the sealing method added to union variants, if any.
	Seal string
	// Getters lists accessors for plain record fields, in field order.
	Getters []Getter
	// Methods lists every method added to the host type, in output order.
	Methods []string
	// Idents lists every package-level identifier introduced.
	Idents []string
}

// ValidationErrorName returns the validation error type name for a value
// object: "Email" -> "EmailValidationError".
func ValidationErrorName(host string) string {
	return host + ValidationErrorSuffix
}

// ConstructorName returns the validating constructor name: "Email" -> "NewEmail".
func ConstructorName(host string) string {
	return "New" + host
}

// SealName returns the unexported method that marks a type as a member of
// the union: "UserEvents" -> "isUserEvents".
func SealName(union string) string {
	return "is" + union
}

// ReceiverName returns the receiver variable for methods on host.
func ReceiverName(host string) string {
	for _, r := range host {
		return string(unicode.ToLower(r))
	}
	return "x"
}

// GetterName returns the exported accessor name for a field:
// "firstName" -> "FirstName", "aggregateID" -> "AggregateID",
// "created_at" -> "CreatedAt", "url" -> "URL".
func GetterName(field string) string {
	var b strings.Builder
	for _, w := range words(field) {
		upper := strings.ToUpper(w)
		if initialisms[upper] {
			b.WriteString(upper)
			continue
		}
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// words splits an identifier on underscores and case boundaries.
// Handles consecutive capitals (e.g., "APIKey" -> "API", "Key").
func words(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "_") {
		runes := []rune(part)
		start := 0
		for i := 1; i < len(runes); i++ {
			if !unicode.IsUpper(runes[i]) {
				continue
			}
			prevLower := !unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				out = append(out, string(runes[start:i]))
				start = i
			}
		}
		if start < len(runes) {
			out = append(out, string(runes[start:]))
		}
	}
	return out
}

// IsExported reports whether name starts with an upper case letter.
func IsExported(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}
