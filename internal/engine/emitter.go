package engine

import (
	"fmt"
	"strings"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
)

// applyDirective composes utility tokens under one selector. The emitted
// rules are meant for a Tailwind-style post-processor that expands them.
const applyDirective = "@apply"

// EmitSummary reports mapping counts. Pure; no side effects.
type EmitSummary struct {
	Mappings int `json:"mappings"`
	Rules    int `json:"rules"`
}

// BuildStylesheet assembles one rule per canonical token group, in
// first-encounter order of the mapping. Two class-strings that reorder the
// same tokens fold into a single rule keyed by the first pair encountered;
// the rule body keeps the representative's authored token order.
func BuildStylesheet(entries []MapEntry) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		key := Canonical(e.Class)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		fmt.Fprintf(&b, ".%s { %s %s; }\n", e.Name, applyDirective, Normalize(e.Class))
	}
	return b.String()
}

// MinifyStylesheet routes the assembled text through the external
// compressor and returns its output.
func MinifyStylesheet(sheet string) (string, error) {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	out, err := m.String("text/css", sheet)
	if err != nil {
		return "", fmt.Errorf("minify stylesheet: %w", err)
	}
	return out, nil
}

// Summarize counts total mappings and the canonical rule groups they
// collapse into.
func Summarize(entries []MapEntry) EmitSummary {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[Canonical(e.Class)] = struct{}{}
	}
	return EmitSummary{Mappings: len(entries), Rules: len(seen)}
}
