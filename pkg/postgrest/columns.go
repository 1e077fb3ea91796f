package postgrest

import (
	"strings"
	"unicode"
)

// cleanColumns removes whitespace from a comma separated column list,
// except inside double quoted identifiers. Quote balance is not validated:
// an unterminated quote keeps the remainder of the string verbatim.
func cleanColumns(columns string) string {
	var b strings.Builder
	b.Grow(len(columns))

	quoted := false
	for _, char := range columns {
		if unicode.IsSpace(char) && !quoted {
			continue
		}
		if char == '"' {
			quoted = !quoted
		}
		b.WriteRune(char)
	}

	return b.String()
}
