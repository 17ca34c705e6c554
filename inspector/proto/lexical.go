package proto

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/viant/protoscope/inspector/info"
)

var commentExpr = regexp.MustCompile(`//[^\n]*|/\*(?s:.*?)\*/`)

// StripComments removes line and block comments from the whole text. The pass is not
// token aware: comment markers inside string literals are stripped as well.
func StripComments(src string) string {
	return commentExpr.ReplaceAllString(src, "")
}

// constant is an option value with its literal category
type constant struct {
	value string
	kind  info.ConstantKind
}

// spaced skips whitespace before applying r
func spaced[T any](r rule[T]) rule[T] {
	return func(s *scanner) (T, bool) {
		start := s.pos
		s.skipSpaces()
		value, ok := r(s)
		if !ok {
			s.pos = start
		}
		return value, ok
	}
}

// exact matches text verbatim
func exact(text string) rule[string] {
	label := strconv.Quote(text)
	return func(s *scanner) (string, bool) {
		if strings.HasPrefix(s.src[s.pos:], text) {
			s.pos += len(text)
			return text, true
		}
		s.fail(label)
		return "", false
	}
}

// keyword matches word when it is not followed by an identifier character
func keyword(word string) rule[string] {
	label := strconv.Quote(word)
	return func(s *scanner) (string, bool) {
		if strings.HasPrefix(s.src[s.pos:], word) && !isIdentPart(s.peekAt(len(word))) {
			s.pos += len(word)
			return word, true
		}
		s.fail(label)
		return "", false
	}
}

// symbol matches text after optional whitespace
func symbol(text string) rule[string] {
	return spaced(exact(text))
}

// kw matches a keyword after optional whitespace
func kw(word string) rule[string] {
	return spaced(keyword(word))
}

// keywords matches the first of words, each at an identifier boundary
func keywords(words ...string) rule[string] {
	alternatives := make([]rule[string], 0, len(words))
	for _, word := range words {
		alternatives = append(alternatives, keyword(word))
	}
	return choice(alternatives...)
}

// identifier matches a letter followed by letters, digits or underscores
func identifier(label string) rule[string] {
	return func(s *scanner) (string, bool) {
		if !isLetter(s.peek()) {
			s.fail(label)
			return "", false
		}
		start := s.pos
		s.pos++
		for isIdentPart(s.peek()) {
			s.pos++
		}
		return s.src[start:s.pos], true
	}
}

// fullIdentifier matches dot separated identifiers
func fullIdentifier(label string) rule[string] {
	return transform(separated(identifier(label), exact(".")), func(parts []string) string {
		return strings.Join(parts, ".")
	})
}

// typeReference matches a message or enum type, optionally dotted and optionally absolute
func typeReference(label string) rule[string] {
	return production(func(s *scanner) (string, bool) {
		dot, _ := maybe(exact("."))(s)
		name, ok := fullIdentifier(label)(s)
		if !ok {
			return "", false
		}
		return dot + name, true
	})
}

var hexLiteral = production(func(s *scanner) (string, bool) {
	if s.peek() != '0' || (s.peekAt(1) != 'x' && s.peekAt(1) != 'X') || !isHex(s.peekAt(2)) {
		s.fail("INTEGER LITERAL")
		return "", false
	}
	start := s.pos
	s.pos += 3
	for isHex(s.peek()) {
		s.pos++
	}
	return s.src[start:s.pos], true
})

// decimals matches one or more decimal digits; octal literals are a subset
func decimals(label string) rule[string] {
	return func(s *scanner) (string, bool) {
		if !isDecimal(s.peek()) {
			s.fail(label)
			return "", false
		}
		start := s.pos
		for isDecimal(s.peek()) {
			s.pos++
		}
		return s.src[start:s.pos], true
	}
}

// intLiteral matches hex, octal or decimal literal text; hex goes first as 0x shares the 0 prefix
var intLiteral = choice(hexLiteral, decimals("INTEGER LITERAL"))

var sign = maybe(choice(exact("-"), exact("+")))

var exponent = production(func(s *scanner) (string, bool) {
	marker, ok := choice(exact("e"), exact("E"))(s)
	if !ok {
		return "", false
	}
	signText, _ := sign(s)
	digits, ok := decimals("EXPONENT")(s)
	if !ok {
		return "", false
	}
	return marker + signText + digits, true
})

var floatLiteral = choice(
	production(func(s *scanner) (string, bool) {
		whole, ok := decimals("FLOAT LITERAL")(s)
		if !ok {
			return "", false
		}
		if _, ok = exact(".")(s); !ok {
			return "", false
		}
		fraction, _ := maybe(decimals("DECIMALS"))(s)
		exp, _ := maybe(exponent)(s)
		return whole + "." + fraction + exp, true
	}),
	production(func(s *scanner) (string, bool) {
		whole, ok := decimals("FLOAT LITERAL")(s)
		if !ok {
			return "", false
		}
		exp, ok := exponent(s)
		if !ok {
			return "", false
		}
		return whole + exp, true
	}),
	production(func(s *scanner) (string, bool) {
		if _, ok := exact(".")(s); !ok {
			return "", false
		}
		fraction, ok := decimals("FLOAT LITERAL")(s)
		if !ok {
			return "", false
		}
		exp, _ := maybe(exponent)(s)
		return "." + fraction + exp, true
	}),
	keyword("inf"),
	keyword("nan"),
)

// signedInt matches an optionally signed integer that is not the prefix of a float
var signedInt = production(func(s *scanner) (string, bool) {
	signText, _ := sign(s)
	digits, ok := intLiteral(s)
	if !ok {
		return "", false
	}
	if c := s.peek(); c == '.' || c == 'e' || c == 'E' {
		s.fail("INTEGER LITERAL")
		return "", false
	}
	return signText + digits, true
})

var signedFloat = production(func(s *scanner) (string, bool) {
	signText, _ := sign(s)
	digits, ok := floatLiteral(s)
	if !ok {
		return "", false
	}
	return signText + digits, true
})

// stringLiteral matches a single or double quoted string and returns its raw content
var stringLiteral = production(func(s *scanner) (string, bool) {
	quote := s.peek()
	if quote != '"' && quote != '\'' {
		s.fail("STRING LITERAL")
		return "", false
	}
	s.pos++
	start := s.pos
	for {
		c := s.peek()
		switch {
		case s.eof() || c == '\n' || c == 0:
			s.fail(strconv.Quote(string(quote)))
			return "", false
		case c == quote:
			content := s.src[start:s.pos]
			s.pos++
			return content, true
		case c == '\\':
			size := escapeSize(s)
			if size == 0 {
				s.fail("ESCAPE SEQUENCE")
				return "", false
			}
			s.pos += size
		default:
			s.pos++
		}
	}
})

// escapeSize returns the length of the escape sequence at the cursor, 0 if invalid
func escapeSize(s *scanner) int {
	next := s.peekAt(1)
	switch {
	case (next == 'x' || next == 'X') && isHex(s.peekAt(2)) && isHex(s.peekAt(3)):
		return 4
	case isOctal(next) && isOctal(s.peekAt(2)) && isOctal(s.peekAt(3)):
		return 4
	case strings.IndexByte(`abfnrtv\'"`, next) >= 0 && next != 0:
		return 2
	}
	return 0
}

var boolLiteral = keywords("true", "false")

// constantValue tries, in order: full identifier, signed integer, signed float, string, boolean
var constantValue = choice(
	transform(fullIdentifier("CONSTANT"), func(text string) constant {
		switch text {
		case "true", "false":
			return constant{value: text, kind: info.BoolConstant}
		case "inf", "nan":
			return constant{value: text, kind: info.FloatConstant}
		}
		return constant{value: text, kind: info.IdentifierConstant}
	}),
	transform(signedInt, func(text string) constant {
		return constant{value: text, kind: info.IntConstant}
	}),
	transform(signedFloat, func(text string) constant {
		return constant{value: text, kind: info.FloatConstant}
	}),
	transform(stringLiteral, func(text string) constant {
		return constant{value: text, kind: info.StringConstant}
	}),
	transform(boolLiteral, func(text string) constant {
		return constant{value: text, kind: info.BoolConstant}
	}),
)
