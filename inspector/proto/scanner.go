package proto

import (
	"sort"
	"strings"
)

// scanner tracks the cursor over comment stripped source and the furthest failure
type scanner struct {
	src      string
	pos      int
	far      int
	expected []string
}

func newScanner(src string) *scanner {
	return &scanner{src: src, far: -1}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekAt(offset int) byte {
	if s.pos+offset >= len(s.src) {
		return 0
	}
	return s.src[s.pos+offset]
}

func (s *scanner) skipSpaces() {
	for !s.eof() && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

// fail records that label was expected at the current position
func (s *scanner) fail(label string) {
	if label == "" {
		return
	}
	if s.pos > s.far {
		s.far = s.pos
		s.expected = s.expected[:0]
	}
	if s.pos == s.far {
		for _, candidate := range s.expected {
			if candidate == label {
				return
			}
		}
		s.expected = append(s.expected, label)
	}
}

func (s *scanner) error() *ParseError {
	offset := s.far
	expected := append([]string(nil), s.expected...)
	if offset < 0 {
		offset = s.pos
		expected = []string{"END OF INPUT"}
	}
	sort.Strings(expected)
	line, column := position(s.src, offset)
	return &ParseError{Offset: offset, Line: line, Column: column, Expected: expected, Found: excerpt(s.src, offset)}
}

func position(src string, offset int) (int, int) {
	if offset > len(src) {
		offset = len(src)
	}
	line := 1 + strings.Count(src[:offset], "\n")
	column := offset + 1
	if index := strings.LastIndex(src[:offset], "\n"); index >= 0 {
		column = offset - index
	}
	return line, column
}

func excerpt(src string, offset int) string {
	if offset >= len(src) {
		return ""
	}
	end := offset + 16
	if end > len(src) {
		end = len(src)
	}
	if index := strings.IndexAny(src[offset:end], "\r\n"); index >= 0 {
		end = offset + index
	}
	return src[offset:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == '\v'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDecimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentPart(c byte) bool {
	return isLetter(c) || isDecimal(c) || c == '_'
}
