package extractor

import (
	"fmt"
	"regexp"

	"github.com/gobwas/glob"
)

type matchKind int

const (
	matchNone matchKind = iota
	matchAll
	matchLiterals
	matchPatterns
)

// Pattern matches a fully qualified type name
type Pattern interface {
	Match(name string) bool
}

// MatchExpression selects fully qualified type names for include and exclude filters.
// The zero value matches nothing.
type MatchExpression struct {
	kind     matchKind
	literals map[string]bool
	patterns []Pattern
}

// AllTypes matches every name
func AllTypes() MatchExpression {
	return MatchExpression{kind: matchAll}
}

// NoTypes matches no name
func NoTypes() MatchExpression {
	return MatchExpression{kind: matchNone}
}

// Literals matches names equal to one of names
func Literals(names ...string) MatchExpression {
	literals := make(map[string]bool, len(names))
	for _, name := range names {
		literals[name] = true
	}
	return MatchExpression{kind: matchLiterals, literals: literals}
}

// Patterns matches names accepted by any of patterns
func Patterns(patterns ...Pattern) MatchExpression {
	return MatchExpression{kind: matchPatterns, patterns: patterns}
}

// Matches reports whether name is selected by the expression
func (e MatchExpression) Matches(name string) bool {
	switch e.kind {
	case matchAll:
		return true
	case matchLiterals:
		return e.literals[name]
	case matchPatterns:
		for _, pattern := range e.patterns {
			if pattern.Match(name) {
				return true
			}
		}
	}
	return false
}

func (e MatchExpression) String() string {
	switch e.kind {
	case matchAll:
		return "all"
	case matchLiterals:
		return fmt.Sprintf("literals(%d)", len(e.literals))
	case matchPatterns:
		return fmt.Sprintf("patterns(%d)", len(e.patterns))
	}
	return "none"
}

type regexpPattern struct {
	expr *regexp.Regexp
}

func (p *regexpPattern) Match(name string) bool {
	return p.expr.MatchString(name)
}

// Regexp compiles unanchored regular expressions, a name matches when any part of it matches
func Regexp(exprs ...string) ([]Pattern, error) {
	var result []Pattern
	for _, expr := range exprs {
		compiled, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid regexp pattern %q: %w", expr, err)
		}
		result = append(result, &regexpPattern{expr: compiled})
	}
	return result, nil
}

// Glob compiles glob patterns with '.' as the segment separator, so "pkg.*" matches
// pkg.Person but not pkg.sub.Person, while "pkg.**" matches both
func Glob(exprs ...string) ([]Pattern, error) {
	var result []Pattern
	for _, expr := range exprs {
		compiled, err := glob.Compile(expr, '.')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", expr, err)
		}
		result = append(result, compiled)
	}
	return result, nil
}
