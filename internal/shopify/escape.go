package shopify

import "regexp"

var searchSyntax = regexp.MustCompile(`([:()'"])`)

// EscapeSearchTerm backslash-escapes the characters that carry meaning in the
// Storefront search syntax so free text can be embedded in a query filter.
func EscapeSearchTerm(term string) string {
	return searchSyntax.ReplaceAllString(term, `\${1}`)
}
