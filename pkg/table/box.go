package table

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tablecast/pkg/errors"
)

// Margin holds the four outer insets of a rendered table, in pixels.
type Margin struct {
	Top, Right, Bottom, Left int
}

// NewMargin expands CSS shorthand into a Margin:
//
//	()            all zero
//	(a)           all four a
//	(v, h)        top=bottom=v, right=left=h
//	(t, h, b)     top=t, right=left=h, bottom=b
//	(t, r, b, l)  explicit
//
// Values past the fourth are ignored.
func NewMargin(v ...int) Margin {
	switch len(v) {
	case 0:
		return Margin{}
	case 1:
		return Margin{v[0], v[0], v[0], v[0]}
	case 2:
		return Margin{v[0], v[1], v[0], v[1]}
	case 3:
		return Margin{v[0], v[1], v[2], v[1]}
	default:
		return Margin{v[0], v[1], v[2], v[3]}
	}
}

// String returns the margin in top, right, bottom, left order.
func (m Margin) String() string {
	return fmt.Sprintf("%d %d %d %d", m.Top, m.Right, m.Bottom, m.Left)
}

// Padding is the space between a cell's gridlines and its text, applied on
// both sides of each axis.
type Padding struct {
	Horizontal, Vertical int
}

// DefaultPadding is the cell padding used when none is configured.
var DefaultPadding = Padding{Horizontal: 20, Vertical: 10}

// DefaultMargin is the table margin used when none is configured.
var DefaultMargin = NewMargin(10, 10)

// Align is the horizontal alignment of a column.
type Align byte

const (
	AlignLeft   Align = 'l'
	AlignCenter Align = 'c'
	AlignRight  Align = 'r'
)

// String returns the single-character code of the alignment.
func (a Align) String() string { return string(rune(a)) }

// ParseAlign parses a string of alignment codes, one character per column,
// e.g. "lcr". Codes are case-insensitive.
func ParseAlign(s string) ([]Align, error) {
	aligns := make([]Align, 0, len(s))
	for i, r := range strings.ToLower(s) {
		switch r {
		case rune(AlignLeft), rune(AlignCenter), rune(AlignRight):
			aligns = append(aligns, Align(r))
		default:
			return nil, errors.New(errors.ErrCodeInvalidAlign,
				"invalid alignment %q at column %d (must be l, c or r)", r, i)
		}
	}
	return aligns, nil
}

// AlignAt returns the alignment of column j. Columns beyond the end of
// aligns are left aligned.
func AlignAt(aligns []Align, j int) Align {
	if j < len(aligns) {
		return aligns[j]
	}
	return AlignLeft
}
