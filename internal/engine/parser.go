package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
)

// Parse extracts class attribute occurrences from one file's content.
// It is a pure function of its inputs: a failure names the file in the
// returned error and never affects other files.
func Parse(file, content string, kind FileKind) ([]Occurrence, error) {
	switch kind {
	case KindMarkup:
		return parseMarkup(file, content)
	case KindComponent, KindTypedComponent:
		return parseComponent(file, content)
	}
	return nil, fmt.Errorf("parse %s: unsupported file kind %d", file, kind)
}

// parseMarkup scans HTML for class attributes using the tdewolff lexer.
// The lexer recovers from malformed tags on its own, so one broken element
// does not abort the rest of the file.
func parseMarkup(file, content string) ([]Occurrence, error) {
	input := parse.NewInputString(content)
	lexer := html.NewLexer(input)

	var occs []Occurrence
	for {
		tt, _ := lexer.Next()
		switch tt {
		case html.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, fmt.Errorf("parse %s: %w", file, err)
			}
			return occs, nil

		case html.AttributeToken:
			if !strings.EqualFold(string(lexer.Text()), "class") {
				continue
			}
			val := string(lexer.AttrVal())
			if val == "" {
				continue
			}

			// The attribute value is the tail of the bytes consumed so far.
			end := input.Offset()
			occ := Occurrence{File: file, Start: end - len(val), End: end, Safe: true}
			switch {
			case val[0] == '"' && strings.HasSuffix(val, `"`) && len(val) >= 2:
				occ.Wrap = WrapDouble
				occ.Raw = val[1 : len(val)-1]
			case val[0] == '\'' && strings.HasSuffix(val, "'") && len(val) >= 2:
				occ.Wrap = WrapSingle
				occ.Raw = val[1 : len(val)-1]
			default:
				occ.Wrap = WrapBare
				occ.Raw = val
			}
			if strings.TrimSpace(occ.Raw) == "" {
				continue
			}
			occs = append(occs, occ)
		}
	}
}
