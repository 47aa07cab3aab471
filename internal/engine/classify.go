package engine

import "strings"

// Classification is the verdict for one attribute value expression.
type Classification int

const (
	// ClassStatic is a plain string literal, used verbatim.
	ClassStatic Classification = iota
	// ClassSimpleTemplate is a template literal with no interpolation;
	// its literal text is used verbatim.
	ClassSimpleTemplate
	// ClassDynamic is anything else: interpolation, conditionals, calls,
	// variable references. Dynamic values are never rewritten.
	ClassDynamic
)

// ClassifyExpr inspects the text between the braces of a component
// attribute value (className={...}) and classifies it. When the value is
// safe the extracted literal text and its delimiter convention are
// returned alongside. Classification is conservative: anything that is
// not provably a bare string literal comes back ClassDynamic.
func ClassifyExpr(expr string) (Classification, string, WrapKind) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return ClassDynamic, "", WrapBare
	}

	switch s[0] {
	case '"':
		if lit, ok := wholeStringLiteral(s, '"'); ok {
			return ClassStatic, lit, WrapExprDouble
		}
	case '\'':
		if lit, ok := wholeStringLiteral(s, '\''); ok {
			return ClassStatic, lit, WrapExprSingle
		}
	case '`':
		if lit, ok := wholeStringLiteral(s, '`'); ok && !strings.Contains(lit, "${") {
			return ClassSimpleTemplate, lit, WrapExprTemplate
		}
	}

	return ClassDynamic, "", WrapBare
}

// wholeStringLiteral reports whether s is exactly one string literal
// delimited by quote, and returns its unquoted content. A literal followed
// by anything else (concatenation, a method call) does not qualify.
func wholeStringLiteral(s string, quote byte) (string, bool) {
	if len(s) < 2 || s[0] != quote {
		return "", false
	}
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			if i != len(s)-1 {
				return "", false
			}
			return s[1:i], true
		}
	}
	return "", false
}
