package proto

import (
	"fmt"
	"strings"
)

// ParseError reports the furthest position the grammar could not get past
type ParseError struct {
	Offset   int      // Byte offset in the comment stripped source
	Line     int      // 1-based line
	Column   int      // 1-based column
	Expected []string // Productions or tokens that would have been accepted
	Found    string   // Source excerpt at Offset, empty at end of input
}

func (e *ParseError) Error() string {
	found := "end of input"
	if e.Found != "" {
		found = fmt.Sprintf("%q", e.Found)
	}
	return fmt.Sprintf("expected %v, but found: %v on line: %v, column: %v",
		strings.Join(e.Expected, " | "), found, e.Line, e.Column)
}
