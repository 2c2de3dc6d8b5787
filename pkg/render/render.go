package render

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"

	"github.com/matzehuels/tablecast/pkg/colors"
	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/table"
)

// Options configures [Render].
type Options struct {
	Font      Font
	Padding   table.Padding
	Margin    table.Margin
	Align     []table.Align  // per column; missing columns are left aligned
	Palette   colors.Palette // merged over colors.Default
	StockMode bool           // color cells by a leading '+' or '-'
}

// Validate checks that t can be rendered with opts.
func Validate(t table.Table, opts Options) error {
	if t.Len() == 0 || t.Columns() == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "table has no cells")
	}
	if opts.Font == nil {
		return errors.New(errors.ErrCodeInvalidFont, "no font given")
	}
	return nil
}

// Render draws t into a new image. t is not modified.
func Render(t table.Table, opts Options) (*image.RGBA, error) {
	if err := Validate(t, opts); err != nil {
		return nil, err
	}
	pal := opts.Palette.Resolve()

	g := Measure(t, opts.Font, opts.Padding)
	g.Margin = opts.Margin

	cw, ch := g.CanvasSize()
	img := image.NewRGBA(image.Rect(0, 0, cw, ch))
	fill(img, img.Bounds(), pal.Background)

	left, top := g.Margin.Left, g.Margin.Top
	right, bottom := left+g.Width, top+g.Height
	fillInclusive(img, left, top, right, bottom, pal.CellBackground)
	if t.HasHeader() {
		fillInclusive(img, left, top, right, g.RowTop(1), pal.HeaderBackground)
	}

	for i := range g.RowHeights {
		fillInclusive(img, left, g.RowTop(i), right, g.RowTop(i), pal.RowLine)
	}
	fillInclusive(img, left, bottom, right, bottom, pal.RowLine)

	for j := range g.ColWidths {
		fillInclusive(img, g.ColumnLeft(j), top, g.ColumnLeft(j), bottom, pal.ColumnLine)
	}
	fillInclusive(img, right, top, right, bottom, pal.ColumnLine)

	for i, row := range t.All() {
		header := t.HasHeader() && i == 0
		for j, cell := range row {
			x, y := g.CellOrigin(i, j, g.TextWidth(i, j), table.AlignAt(opts.Align, j), header)
			opts.Font.Draw(img, x, y, cell, textColor(cell, pal, opts.StockMode))
		}
	}
	return img, nil
}

// textColor picks the color for cell text.
func textColor(cell string, pal colors.Palette, stock bool) color.Color {
	if stock {
		switch {
		case strings.HasPrefix(cell, "+"):
			return pal.Positive
		case strings.HasPrefix(cell, "-"):
			return pal.Negative
		}
	}
	return pal.Font
}

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// fillInclusive fills the rectangle whose corners (x0, y0) and (x1, y1) are
// both painted. A rectangle with x0 == x1 or y0 == y1 is a one-pixel line.
func fillInclusive(img draw.Image, x0, y0, x1, y1 int, c color.Color) {
	r := image.Rect(x0, y0, x1+1, y1+1).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	fill(img, r, c)
}
