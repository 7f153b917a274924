package relation

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/lucasefe/typescriptify/schema"
)

// CaseStyle selects how property names are rendered.
type CaseStyle string

// Supported case styles. CaseDefault leaves column names untouched.
const (
	CaseDefault CaseStyle = "default"
	CaseCamel   CaseStyle = "camel"
	CaseKebab   CaseStyle = "kebab"
	CaseSnake   CaseStyle = "snake"
	CasePascal  CaseStyle = "pascal"
)

// CaseStyles returns every supported case style.
func CaseStyles() []CaseStyle {
	return []CaseStyle{CaseDefault, CaseCamel, CaseKebab, CaseSnake, CasePascal}
}

// ParseCaseStyle parses a case style name. The empty string is CaseDefault.
func ParseCaseStyle(s string) (CaseStyle, error) {
	if s == "" {
		return CaseDefault, nil
	}

	for _, style := range CaseStyles() {
		if strings.EqualFold(s, string(style)) {
			return style, nil
		}
	}

	return "", fmt.Errorf("%w: %q", schema.ErrInvalidCaseStyle, s)
}

// FormatName renders name in the given style.
func FormatName(name string, style CaseStyle) string {
	switch style {
	case CaseCamel:
		return camelizeDownFirst(name)
	case CasePascal:
		return inflect.Camelize(name)
	case CaseSnake:
		return inflect.Underscore(name)
	case CaseKebab:
		return inflect.Dasherize(name)
	default:
		return name
	}
}

// camelizeDownFirst is inflect.CamelizeDownFirst without the panic on names
// that contain only separators.
func camelizeDownFirst(name string) string {
	camel := inflect.Camelize(name)
	if camel == "" {
		return name
	}
	return strings.ToLower(camel[:1]) + camel[1:]
}
