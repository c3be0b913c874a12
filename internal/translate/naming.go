package translate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize converts an underscore separated schema name into a Go
// identifier. Every segment is re-cased to an upper-case first letter
// followed by lower-case letters, which flattens acronyms ("LLRP_STATUS"
// and "LLRPSTATUS" become "LlrpStatus" and "Llrpstatus"). A CamelCase name
// (no underscores, not starting lower-case, holding a lower-case letter)
// is already an identifier and is returned unchanged, so "ROSpec" keeps
// linking to the ROSpec declaration.
func Normalize(raw string) string {
	if isCamel(raw) {
		return raw
	}

	// Casers are stateful, so each call gets its own.
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	var b strings.Builder
	b.Grow(len(raw))
	for _, seg := range strings.Split(raw, "_") {
		if seg == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(seg)
		b.WriteString(upper.String(seg[:size]))
		b.WriteString(lower.String(seg[size:]))
	}
	return b.String()
}

func isCamel(s string) bool {
	if s == "" || strings.Contains(s, "_") {
		return false
	}
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsLower(r) {
		return false
	}
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}
