package engine

import "strings"

// parseComponent scans component markup (.jsx/.tsx) for class and className
// attributes. A full JavaScript parse is deliberately avoided: the scanner
// walks the bytes, enters anything shaped like an opening tag, and reads its
// attributes while balancing quotes and braces. Plain string and template
// literals are skipped, so markup held in program data is never mistaken for
// a real tag. Whatever it cannot prove to be a string literal attribute is
// recorded as unsafe and left alone, so the worst a misread tag can do is
// skip a rewrite. Type-annotation syntax in the typed dialect either never
// reaches attribute position or parses as a tag with no class attribute,
// which is harmless.
func parseComponent(file, content string) ([]Occurrence, error) {
	s := &componentScanner{file: file, src: content}
	s.scan()
	return s.occs, nil
}

type componentScanner struct {
	file string
	src  string
	pos  int
	occs []Occurrence
}

// scan walks the top level of the file. Outside element text the scanner is
// in code position: comments and string literals are consumed whole there,
// never entered. Inside element text (after a tag's closing '>') quotes are
// prose, so an apostrophe does not open a string. A brace, a separator byte
// or the '>' of an arrow drops back to code position; the bias is deliberate,
// since
// misjudging code as text can fabricate an occurrence inside program data
// while misjudging text as code can only lose one.
func (s *componentScanner) scan() {
	inText := false
	var prev byte
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch c {
		case '/':
			if !inText && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
				s.skipLineComment()
				continue
			}
			if !inText && s.pos+1 < len(s.src) && s.src[s.pos+1] == '*' {
				s.skipBlockComment()
				continue
			}
			s.pos++
		case '"', '\'', '`':
			if inText {
				s.pos++
			} else {
				s.skipString(c)
			}
		case '<':
			switch {
			case s.pos+1 < len(s.src) && isTagNameStart(s.src[s.pos+1]):
				s.pos++
				s.scanTag()
				inText = true
			case s.pos+1 < len(s.src) && s.src[s.pos+1] == '/':
				s.skipClosingTag()
				inText = true
			default:
				s.pos++
			}
		case '>':
			inText = prev != '=' // '=>' stays in code position
			s.pos++
		case '{', ';', '=', '(', ',', ':':
			inText = false
			s.pos++
		default:
			s.pos++
		}
		if !isSpaceByte(c) {
			prev = c
		}
	}
}

func (s *componentScanner) skipClosingTag() {
	for s.pos < len(s.src) && s.src[s.pos] != '>' {
		s.pos++
	}
	if s.pos < len(s.src) {
		s.pos++
	}
}

// scanTag reads attributes from the current position (just past '<') until
// the closing '>'. On anything unexpected it abandons the tag rather than
// guess; abandoning can only lose occurrences, never corrupt them.
func (s *componentScanner) scanTag() {
	s.skipTagName()
	for s.pos < len(s.src) {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return
		}
		switch c := s.src[s.pos]; {
		case c == '>':
			s.pos++
			return
		case c == '/':
			s.pos++ // self-closing slash; '>' handled next round
		case c == '{':
			s.skipBraced() // spread attribute {...props}
		case isAttrNameByte(c):
			s.scanAttr()
		default:
			return
		}
	}
}

func (s *componentScanner) scanAttr() {
	nameStart := s.pos
	for s.pos < len(s.src) && isAttrNameByte(s.src[s.pos]) {
		s.pos++
	}
	name := s.src[nameStart:s.pos]

	s.skipSpace()
	if s.pos >= len(s.src) || s.src[s.pos] != '=' {
		return // boolean attribute
	}
	s.pos++
	s.skipSpace()
	if s.pos >= len(s.src) {
		return
	}

	target := name == "class" || name == "className"
	start := s.pos

	switch s.src[s.pos] {
	case '"', '\'':
		quote := s.src[s.pos]
		s.pos++
		for s.pos < len(s.src) && s.src[s.pos] != quote {
			s.pos++
		}
		if s.pos >= len(s.src) {
			return // unterminated value, nothing usable
		}
		s.pos++
		if !target {
			return
		}
		raw := s.src[start+1 : s.pos-1]
		if strings.TrimSpace(raw) == "" {
			return
		}
		wrap := WrapDouble
		if quote == '\'' {
			wrap = WrapSingle
		}
		s.occs = append(s.occs, Occurrence{
			File: s.file, Start: start, End: s.pos,
			Raw: raw, Safe: true, Wrap: wrap,
		})

	case '{':
		if !s.skipBraced() {
			return
		}
		if !target {
			return
		}
		occ := Occurrence{File: s.file, Start: start, End: s.pos}
		verdict, lit, wrap := ClassifyExpr(s.src[start+1 : s.pos-1])
		if verdict != ClassDynamic && strings.TrimSpace(lit) != "" {
			occ.Raw = lit
			occ.Safe = true
			occ.Wrap = wrap
		}
		s.occs = append(s.occs, occ)

	default:
		// Unquoted values are not valid in this dialect; consume and
		// record as unsafe so the rewriter counts the skip.
		for s.pos < len(s.src) && !isSpaceByte(s.src[s.pos]) && s.src[s.pos] != '>' && s.src[s.pos] != '/' {
			s.pos++
		}
		if target {
			s.occs = append(s.occs, Occurrence{File: s.file, Start: start, End: s.pos})
		}
	}
}

// skipTagName consumes the element name, including dotted member names
// (<Foo.Bar>) and generic type arguments (<Select<Item> ...>).
func (s *componentScanner) skipTagName() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case isTagNameStart(c) || c >= '0' && c <= '9' || c == '.' || c == '-' || c == ':':
			s.pos++
		case c == '<':
			s.skipAngles()
		default:
			return
		}
	}
}

// skipAngles consumes a balanced <...> run, used for type arguments.
func (s *componentScanner) skipAngles() {
	depth := 0
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				s.pos++
				return
			}
		}
		s.pos++
	}
}

// skipBraced consumes a balanced {...} run, honoring string literals,
// template literals and comments inside the expression. Returns false when
// the closing brace is missing.
func (s *componentScanner) skipBraced() bool {
	depth := 0
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '{':
			depth++
			s.pos++
		case '}':
			depth--
			s.pos++
			if depth == 0 {
				return true
			}
		case '"', '\'', '`':
			s.skipString(s.src[s.pos])
		case '/':
			if s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
				s.skipLineComment()
			} else if s.pos+1 < len(s.src) && s.src[s.pos+1] == '*' {
				s.skipBlockComment()
			} else {
				s.pos++
			}
		default:
			s.pos++
		}
	}
	return false
}

func (s *componentScanner) skipString(quote byte) {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
		case quote:
			s.pos++
			return
		default:
			s.pos++
		}
	}
}

func (s *componentScanner) skipLineComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *componentScanner) skipBlockComment() {
	s.pos += 2
	for s.pos < len(s.src) {
		if s.src[s.pos] == '*' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
			s.pos += 2
			return
		}
		s.pos++
	}
}

func (s *componentScanner) skipSpace() {
	for s.pos < len(s.src) && isSpaceByte(s.src[s.pos]) {
		s.pos++
	}
}

func isTagNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isAttrNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_' || c == ':'
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
