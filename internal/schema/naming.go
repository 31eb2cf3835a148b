package schema

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	spaceThenChar   = regexp.MustCompile(`\s.`)
)

// HeaderToField converts a sheet header into its camelCase record field name:
// Country_of_Origin becomes countryOfOrigin and ABV becomes abv.
func HeaderToField(header string) string {
	value := strings.ToLower(header)
	value = nonAlphanumeric.ReplaceAllString(value, " ")
	value = strings.TrimSpace(value)
	value = spaceThenChar.ReplaceAllStringFunc(value, func(match string) string {
		return strings.ToUpper(match[1:])
	})
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
