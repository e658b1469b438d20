package validators

import (
	"strings"
	"unicode"
)

// SanitizeString drops control characters and caps input at maxLen runes.
// Surrounding whitespace is preserved; blank-value handling belongs to the caller.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)
	if maxLen <= 0 {
		return cleaned
	}
	runes := []rune(cleaned)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return cleaned
}
