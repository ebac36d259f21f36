// Package types holds the small value types shared by the buffer, the
// editors and the view.
package types

import "fmt"

// Position is a place in a buffer: a 0-based line and a 0-based rune
// column within it.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p comes strictly before q in the buffer.
func (p Position) Before(q Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Col < q.Col)
}

// Ordered returns a and b with the earlier position first.
func Ordered(a, b Position) (Position, Position) {
	if b.Before(a) {
		return b, a
	}
	return a, b
}

// String formats the position 1-based, the way the status bar shows it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)
}
