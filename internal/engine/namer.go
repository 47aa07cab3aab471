package engine

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"
)

// Mode selects the short-name generation scheme.
type Mode string

// Supported generation modes.
const (
	// ModeHash derives a content-addressed fingerprint from the class-string.
	ModeHash Mode = "hash"
	// ModeIncremental numbers class-strings in first-encounter order.
	ModeIncremental Mode = "incremental"
	// ModeReadable derives a human-skimmable slug from the class-string.
	ModeReadable Mode = "readable"
)

const (
	hashWidth = 6
	slugMax   = 24
)

// MapEntry pairs a class-string with its generated short name.
type MapEntry struct {
	Class string `json:"class"`
	Name  string `json:"name"`
}

// Namer allocates short names for class-strings. Every distinct class-string
// receives exactly one name per run, and the same class-string always
// resolves to the same name. Construct one instance per run; allocation is
// single-threaded (the merge phase), lookups afterwards are read-only.
type Namer struct {
	mode   Mode
	prefix string
	names  map[string]string
	taken  map[string]struct{}
	order  []MapEntry
	next   int
}

// NewNamer validates the mode and returns a fresh generator.
func NewNamer(mode Mode, prefix string) (*Namer, error) {
	switch mode {
	case ModeHash, ModeIncremental, ModeReadable:
	default:
		return nil, fmt.Errorf("invalid name mode %q (want hash, incremental or readable)", mode)
	}
	n := &Namer{mode: mode, prefix: prefix}
	n.Reset()
	return n, nil
}

// Reset clears all allocation state, for reuse across independent runs.
func (n *Namer) Reset() {
	n.names = make(map[string]string)
	n.taken = make(map[string]struct{})
	n.order = nil
	n.next = 0
}

// Generate returns the short name for class, allocating one on first use.
// The input is normalized before lookup so whitespace variants of the same
// class-string share a name.
func (n *Namer) Generate(class string) string {
	key := Normalize(class)
	if name, ok := n.names[key]; ok {
		return name
	}

	var name string
	switch n.mode {
	case ModeIncremental:
		name = n.prefix + strconv.Itoa(n.next)
		n.next++
	case ModeReadable:
		name = n.allocReadable(key)
	default:
		name = n.allocHash(key)
	}

	n.names[key] = name
	n.taken[name] = struct{}{}
	n.order = append(n.order, MapEntry{Class: key, Name: name})
	return name
}

// Lookup resolves a class-string without allocating.
func (n *Namer) Lookup(class string) (string, bool) {
	name, ok := n.names[Normalize(class)]
	return name, ok
}

// Entries returns the allocated mapping in first-encounter order.
func (n *Namer) Entries() []MapEntry {
	out := make([]MapEntry, len(n.order))
	copy(out, n.order)
	return out
}

// Len reports how many distinct class-strings have names.
func (n *Namer) Len() int { return len(n.order) }

// AlreadyGenerated reports whether value looks like a short name this
// generator produced. Such values are treated as final and never re-mapped,
// which keeps a second run over rewritten files from double-rewriting.
// A name allocated during the current run always qualifies; beyond that the
// value must be a single token carrying the configured prefix over the
// current mode's shape (hex digest for hash, a counter for incremental, a
// slug for readable), so an authored class like "tw-custom" is not mistaken
// for a hash-mode name. Detection is disabled when the prefix is empty.
func (n *Namer) AlreadyGenerated(value string) bool {
	if n.prefix == "" {
		return false
	}
	fields := strings.Fields(value)
	if len(fields) != 1 {
		return false
	}
	if _, used := n.taken[fields[0]]; used {
		return true
	}
	rest, ok := strings.CutPrefix(fields[0], n.prefix)
	if !ok || rest == "" {
		return false
	}
	switch n.mode {
	case ModeIncremental:
		return isOver(rest, isCounterByte)
	case ModeReadable:
		return isOver(rest, isSlugByte)
	default:
		return len(rest) >= hashWidth && isOver(rest, isHexByte)
	}
}

func isOver(s string, valid func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !valid(s[i]) {
			return false
		}
	}
	return true
}

func isCounterByte(c byte) bool { return c >= '0' && c <= '9' }

func isHexByte(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f'
}

func isSlugByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-'
}

// allocHash truncates a blake3 digest to hashWidth hex chars and extends the
// truncation on collision, so two different class-strings never share a name.
func (n *Namer) allocHash(key string) string {
	sum := blake3.Sum256([]byte(key))
	digest := hex.EncodeToString(sum[:])
	for w := hashWidth; w <= len(digest); w++ {
		name := n.prefix + digest[:w]
		if _, used := n.taken[name]; !used {
			return name
		}
	}
	// Full digest collision means identical inputs, which Generate already
	// deduplicates; this counted suffix is unreachable in practice.
	for i := 2; ; i++ {
		name := n.prefix + digest + "-" + strconv.Itoa(i)
		if _, used := n.taken[name]; !used {
			return name
		}
	}
}

func (n *Namer) allocReadable(key string) string {
	slug := slugify(key)
	name := n.prefix + slug
	if _, used := n.taken[name]; !used {
		return name
	}
	for i := 2; ; i++ {
		cand := n.prefix + slug + "-" + strconv.Itoa(i)
		if _, used := n.taken[cand]; !used {
			return cand
		}
	}
}

// slugify lowercases the class-string, folds separator runs to single
// dashes and truncates to a bounded length.
func slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	slug := b.String()
	if len(slug) > slugMax {
		slug = strings.TrimRight(slug[:slugMax], "-")
	}
	if slug == "" {
		slug = "c"
	}
	return slug
}
