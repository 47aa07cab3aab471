package engine

import (
	"sort"
	"strings"
)

// Replacement is one planned byte-range substitution.
type Replacement struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Skip records an occurrence left untouched and why, with a 1-based
// source position for reporting.
type Skip struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Reason string `json:"reason"`
}

// Skip reasons surfaced in reports.
const (
	SkipDynamic   = "dynamic expression"
	SkipUnmapped  = "no mapping entry"
	SkipShortened = "already shortened"
)

// RewriteResult is the outcome of rewriting one file's content.
type RewriteResult struct {
	Text     string
	Changed  bool
	Replaced int
	Plan     []Replacement
	Skipped  []Skip
}

// Rewrite computes the file text with every mapped safe occurrence replaced
// by its short name, re-wrapped in the occurrence's original delimiter
// convention. Unsafe occurrences are never altered. The rebuild is a single
// forward pass over ascending byte ranges, so every byte outside the planned
// ranges is carried over unchanged. Rewrite itself performs no I/O; the
// caller decides whether Text is written (dry-run keeps the same plan).
func Rewrite(content string, occs []Occurrence, names *Namer) RewriteResult {
	sorted := make([]Occurrence, len(occs))
	copy(sorted, occs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var res RewriteResult
	for _, occ := range sorted {
		switch {
		case !occ.Safe:
			res.Skipped = append(res.Skipped, skipAt(content, occ, SkipDynamic))
		case names.AlreadyGenerated(occ.Raw):
			res.Skipped = append(res.Skipped, skipAt(content, occ, SkipShortened))
		default:
			name, ok := names.Lookup(occ.Raw)
			if !ok {
				res.Skipped = append(res.Skipped, skipAt(content, occ, SkipUnmapped))
				continue
			}
			res.Plan = append(res.Plan, Replacement{
				Start: occ.Start,
				End:   occ.End,
				Text:  wrapName(name, occ.Wrap),
			})
		}
	}

	res.Text = applyPlan(content, res.Plan)
	res.Replaced = len(res.Plan)
	res.Changed = res.Text != content
	return res
}

func wrapName(name string, wrap WrapKind) string {
	switch wrap {
	case WrapDouble:
		return `"` + name + `"`
	case WrapSingle:
		return "'" + name + "'"
	case WrapExprDouble:
		return `{"` + name + `"}`
	case WrapExprSingle:
		return "{'" + name + "'}"
	case WrapExprTemplate:
		return "{`" + name + "`}"
	}
	return name
}

// applyPlan rebuilds the content around the planned ranges. The plan is
// sorted by start offset; overlapping or out-of-range entries are dropped
// rather than applied, since applying them could shift unrelated bytes.
func applyPlan(content string, plan []Replacement) string {
	if len(plan) == 0 {
		return content
	}
	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, r := range plan {
		if r.Start < last || r.End > len(content) || r.End < r.Start {
			continue
		}
		b.WriteString(content[last:r.Start])
		b.WriteString(r.Text)
		last = r.End
	}
	b.WriteString(content[last:])
	return b.String()
}

func skipAt(content string, occ Occurrence, reason string) Skip {
	line, col := LineCol(content, occ.Start)
	return Skip{File: occ.File, Line: line, Column: col, Reason: reason}
}

// LineCol converts a byte offset to a 1-based line and column.
func LineCol(content string, offset int) (int, int) {
	if offset > len(content) {
		offset = len(content)
	}
	if offset < 0 {
		offset = 0
	}
	before := content[:offset]
	line := 1 + strings.Count(before, "\n")
	col := offset - strings.LastIndex(before, "\n")
	return line, col
}
