package generator

import (
	"strconv"
	"text/template"

	"ltkgen/internal/model"
	"ltkgen/internal/translate"
)

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"goType":    goType,
		"tag":       structTag,
		"quote":     strconv.Quote,
		"normalize": translate.Normalize,
	}
}

// goType returns the member's Go type, widened to a slice when repeated.
func goType(m model.Member) string {
	return m.GoType()
}

// structTag renders a single-key struct tag.
func structTag(key, value string) string {
	return "`" + key + ":" + strconv.Quote(value) + "`"
}
