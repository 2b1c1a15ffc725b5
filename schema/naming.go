package schema

import (
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
)

// pluralizeClient is a singleton for consistent pluralization behavior.
var pluralizeClient = pluralizer.NewClient()

// ColumnName converts a Go field name to its snake_case column name.
func ColumnName(fieldName string) string {
	return toSnakeCase(fieldName)
}

// tableNameFor converts a struct type name to a pluralized snake_case table
// name: BlogPost -> blog_posts.
func tableNameFor(typeName string) string {
	return pluralizeClient.Plural(toSnakeCase(typeName))
}

func toSnakeCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				next := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				// Break before an upper that follows a lower/digit, or that
				// starts a new word after an acronym run (HTTPServer).
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && next) {
					sb.WriteByte('_')
				}
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
