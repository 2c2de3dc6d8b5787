package render

import (
	"image/color"

	"golang.org/x/image/draw"

	"github.com/matzehuels/tablecast/pkg/table"
)

// Font measures and draws a single line of text.
// (x, y) passed to Draw is the top-left corner of the text's line box.
type Font interface {
	Measure(s string) (w, h int)
	Draw(dst draw.Image, x, y int, s string, c color.Color)
}

// Geometry is the measured layout of a table.
type Geometry struct {
	ColWidths  []int // widest text per column
	RowHeights []int // tallest text per row
	Padding    table.Padding
	Margin     table.Margin

	// Width and Height are the size of the table itself, without margins.
	Width, Height int

	// textWidths[i][j] is the measured width of cell (i, j).
	textWidths [][]int
}

// Measure computes the geometry of t for the given font and padding.
// Margin is left zero; set it on the result before calling the position
// methods if margins apply.
func Measure(t table.Table, f Font, pad table.Padding) Geometry {
	g := Geometry{
		ColWidths:  make([]int, t.Columns()),
		RowHeights: make([]int, t.Len()),
		Padding:    pad,
		textWidths: make([][]int, t.Len()),
	}

	for i, row := range t.All() {
		g.textWidths[i] = make([]int, len(row))
		for j, cell := range row {
			w, h := f.Measure(cell)
			g.textWidths[i][j] = w
			g.ColWidths[j] = max(g.ColWidths[j], w)
			g.RowHeights[i] = max(g.RowHeights[i], h)
		}
	}

	for _, w := range g.ColWidths {
		g.Width += w + 2*pad.Horizontal
	}
	for _, h := range g.RowHeights {
		g.Height += h + 2*pad.Vertical
	}
	return g
}

// CanvasSize returns the size of the full image, margins included.
func (g Geometry) CanvasSize() (w, h int) {
	return g.Width + g.Margin.Left + g.Margin.Right, g.Height + g.Margin.Top + g.Margin.Bottom
}

// ColumnLeft returns the x coordinate of the gridline left of column j.
// ColumnLeft(len(ColWidths)) is the trailing gridline.
func (g Geometry) ColumnLeft(j int) int {
	x := g.Margin.Left
	for _, w := range g.ColWidths[:j] {
		x += w + 2*g.Padding.Horizontal
	}
	return x
}

// RowTop returns the y coordinate of the gridline above row i.
// RowTop(len(RowHeights)) is the trailing gridline.
func (g Geometry) RowTop(i int) int {
	y := g.Margin.Top
	for _, h := range g.RowHeights[:i] {
		y += h + 2*g.Padding.Vertical
	}
	return y
}

// TextWidth returns the measured width of cell (i, j).
func (g Geometry) TextWidth(i, j int) int {
	return g.textWidths[i][j]
}

// CellOrigin returns the top-left text origin of a cell of text width tw in
// row i, column j. Header cells are always centered.
func (g Geometry) CellOrigin(i, j, tw int, align table.Align, header bool) (x, y int) {
	x = g.ColumnLeft(j) + g.Padding.Horizontal
	slack := g.ColWidths[j] - tw
	switch {
	case header || align == table.AlignCenter:
		x += slack / 2
	case align == table.AlignRight:
		x += slack
	}
	return x, g.RowTop(i) + g.Padding.Vertical
}
