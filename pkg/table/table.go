package table

import "iter"

// Table is a header row plus body rows of display strings.
//
// The body slices are owned by the caller and are never modified by this
// package or by the renderer.
type Table struct {
	Header []string
	Body   [][]string
}

// New returns a table over body with an optional header.
func New(header []string, body [][]string) Table {
	return Table{Header: header, Body: body}
}

// HasHeader reports whether the table has a non-empty header row.
func (t Table) HasHeader() bool { return len(t.Header) > 0 }

// Len returns the number of logical rows, header included.
func (t Table) Len() int {
	if t.HasHeader() {
		return len(t.Body) + 1
	}
	return len(t.Body)
}

// Row returns logical row i. Row 0 is the header when one is present.
// The returned slice aliases the caller's storage and must not be modified.
func (t Table) Row(i int) []string {
	if t.HasHeader() {
		if i == 0 {
			return t.Header
		}
		return t.Body[i-1]
	}
	return t.Body[i]
}

// All yields every logical row in order, header first.
func (t Table) All() iter.Seq2[int, []string] {
	return func(yield func(int, []string) bool) {
		for i := range t.Len() {
			if !yield(i, t.Row(i)) {
				return
			}
		}
	}
}

// Columns returns the length of the longest logical row.
func (t Table) Columns() int {
	n := 0
	for _, row := range t.All() {
		n = max(n, len(row))
	}
	return n
}

// IsJagged reports whether any logical row is shorter than [Table.Columns].
func (t Table) IsJagged() bool {
	cols := t.Columns()
	for _, row := range t.All() {
		if len(row) != cols {
			return true
		}
	}
	return false
}
