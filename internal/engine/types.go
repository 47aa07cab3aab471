package engine

import (
	"path/filepath"
	"sort"
	"strings"
)

// FileKind selects the parsing strategy for one source file.
type FileKind int

// One strategy per supported dialect.
const (
	// KindMarkup is plain HTML markup.
	KindMarkup FileKind = iota
	// KindComponent is component markup with embedded expressions (.jsx).
	KindComponent
	// KindTypedComponent is the typed component dialect (.tsx).
	KindTypedComponent
)

func (k FileKind) String() string {
	switch k {
	case KindMarkup:
		return "markup"
	case KindComponent:
		return "component"
	case KindTypedComponent:
		return "typed-component"
	}
	return "unknown"
}

// KindForPath maps a file extension to its parsing strategy.
// The second return value is false for files twfold does not handle.
func KindForPath(path string) (FileKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return KindMarkup, true
	case ".jsx":
		return KindComponent, true
	case ".tsx":
		return KindTypedComponent, true
	}
	return 0, false
}

// WrapKind records the delimiter convention of an attribute value so the
// rewriter can re-wrap the short name the same way the original was written.
type WrapKind int

// Delimiter conventions found in the three dialects.
const (
	WrapBare         WrapKind = iota // class=foo
	WrapDouble                       // class="foo"
	WrapSingle                       // class='foo'
	WrapExprDouble                   // className={"foo"}
	WrapExprSingle                   // className={'foo'}
	WrapExprTemplate                 // className={`foo`}
)

// Occurrence is one class attribute value found in a source file.
// Start and End are a half-open byte range covering the whole attribute
// value, delimiters included, within the original file content.
// Raw holds the literal string content and is only meaningful when Safe
// is true. Unsafe occurrences are recorded so the rewriter can account
// for them, but are never altered.
type Occurrence struct {
	File  string
	Start int
	End   int
	Raw   string
	Safe  bool
	Wrap  WrapKind
}

// Normalize collapses whitespace runs in a class-string to single spaces,
// preserving token order. Mapping keys and stylesheet bodies use this form;
// the source text itself is never rewritten to it.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Canonical returns the class-string with its tokens sorted lexically.
// Used only to deduplicate stylesheet rules, never to generate names.
func Canonical(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
