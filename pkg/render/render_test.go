package render

import (
	"image/color"
	"slices"
	"testing"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"

	"github.com/matzehuels/tablecast/pkg/colors"
	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/fonts"
	"github.com/matzehuels/tablecast/pkg/table"
)

// gridFont measures every rune as 10x10 pixels and records draw calls
// without touching the image.
type gridFont struct {
	calls []drawCall
}

type drawCall struct {
	text  string
	x, y  int
	color color.Color
}

func (f *gridFont) Measure(s string) (int, int) {
	if s == "" {
		return 0, 0
	}
	return 10 * len([]rune(s)), 10
}

func (f *gridFont) Draw(_ draw.Image, x, y int, s string, c color.Color) {
	f.calls = append(f.calls, drawCall{s, x, y, c})
}

func (f *gridFont) call(t *testing.T, text string) drawCall {
	t.Helper()
	for _, c := range f.calls {
		if c.text == text {
			return c
		}
	}
	t.Fatalf("no draw call for %q", text)
	return drawCall{}
}

func TestMeasure(t *testing.T) {
	tbl := table.New(nil, [][]string{{"a", "bb", "ccc"}})
	g := Measure(tbl, &gridFont{}, table.Padding{Horizontal: 2, Vertical: 1})

	if !slices.Equal(g.ColWidths, []int{10, 20, 30}) {
		t.Errorf("ColWidths = %v, want [10 20 30]", g.ColWidths)
	}
	if !slices.Equal(g.RowHeights, []int{10}) {
		t.Errorf("RowHeights = %v, want [10]", g.RowHeights)
	}
	if g.Width != 60+3*4 || g.Height != 10+2 {
		t.Errorf("size = %dx%d, want 72x12", g.Width, g.Height)
	}
}

func TestRenderCanvasSize(t *testing.T) {
	tbl := table.New(nil, [][]string{{"a", "bb", "ccc"}})
	img, err := Render(tbl, Options{
		Font:    &gridFont{},
		Padding: table.Padding{Horizontal: 2, Vertical: 1},
		Margin:  table.NewMargin(5, 3),
	})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 72+6 || b.Dy() != 12+10 {
		t.Errorf("bounds = %v, want 78x22", b)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	face := fonts.Basic()
	tbl := table.New([]string{"sym", "chg"}, [][]string{{"AAPL", "+1.20"}, {"MSFT", "-0.35"}})
	opts := Options{Font: face, Padding: table.DefaultPadding, Margin: table.DefaultMargin, StockMode: true}

	a, err := Render(tbl, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(tbl, opts)
	if err != nil {
		t.Fatal(err)
	}
	if a.Bounds() != b.Bounds() {
		t.Errorf("bounds differ: %v vs %v", a.Bounds(), b.Bounds())
	}
	if !slices.Equal(a.Pix, b.Pix) {
		t.Error("pixels differ between identical renders")
	}
}

func TestRenderBasicFontSize(t *testing.T) {
	// basicfont: 7px advance, 13px line height.
	tbl := table.New([]string{"id"}, [][]string{{"1"}, {"22"}})
	img, err := Render(tbl, Options{Font: fonts.Basic(), Padding: table.DefaultPadding, Margin: table.DefaultMargin})
	if err != nil {
		t.Fatal(err)
	}
	wantW := 14 + 2*20 + 10 + 10
	wantH := 3*13 + 3*2*10 + 10 + 10
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("bounds = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestRenderAlignment(t *testing.T) {
	f := &gridFont{}
	tbl := table.New(nil, [][]string{
		{"wwww", "wwww", "wwww"},
		{"a", "bb", "ccc"},
	})
	pad := table.Padding{Horizontal: 3, Vertical: 2}
	margin := table.NewMargin(1, 5)
	_, err := Render(tbl, Options{
		Font:    f,
		Padding: pad,
		Margin:  margin,
		Align:   []table.Align{table.AlignLeft, table.AlignCenter, table.AlignRight},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Every column is 40px wide; each column step is 40 + 2*3.
	colLeft := func(j int) int { return 5 + j*46 + 3 }
	rowTop := 1 + (10 + 4) + 2

	tests := []struct {
		text  string
		wantX int
	}{
		{"a", colLeft(0)},
		{"bb", colLeft(1) + (40-20)/2},
		{"ccc", colLeft(2) + (40 - 30)},
	}
	for _, tt := range tests {
		c := f.call(t, tt.text)
		if c.x != tt.wantX || c.y != rowTop {
			t.Errorf("%q drawn at (%d, %d), want (%d, %d)", tt.text, c.x, c.y, tt.wantX, rowTop)
		}
	}
}

func TestRenderCenterRoundsDown(t *testing.T) {
	g := Geometry{ColWidths: []int{35}, RowHeights: []int{10}}
	x, _ := g.CellOrigin(0, 0, 20, table.AlignCenter, false)
	if x != 7 {
		t.Errorf("center x = %d, want 7", x)
	}
}

func TestRenderHeaderAlwaysCentered(t *testing.T) {
	f := &gridFont{}
	tbl := table.New([]string{"h"}, [][]string{{"long"}})
	_, err := Render(tbl, Options{Font: f, Align: []table.Align{table.AlignRight}})
	if err != nil {
		t.Fatal(err)
	}

	if c := f.call(t, "h"); c.x != (40-10)/2 {
		t.Errorf("header x = %d, want %d", c.x, (40-10)/2)
	}
	if c := f.call(t, "long"); c.x != 0 {
		t.Errorf("body x = %d, want 0", c.x)
	}
}

func TestRenderStockColors(t *testing.T) {
	pal := colors.Palette{Positive: colornames.Orange, Negative: colornames.Blue, Font: colornames.Gray}
	tests := []struct {
		name  string
		stock bool
		cell  string
		want  color.Color
	}{
		{"positive", true, "+5", colornames.Orange},
		{"negative", true, "-3", colornames.Blue},
		{"unsigned", true, "5", colornames.Gray},
		{"stock off", false, "+5", colornames.Gray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &gridFont{}
			tbl := table.New(nil, [][]string{{tt.cell}})
			if _, err := Render(tbl, Options{Font: f, Palette: pal, StockMode: tt.stock}); err != nil {
				t.Fatal(err)
			}
			if got := f.call(t, tt.cell).color; got != tt.want {
				t.Errorf("color = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderDefaultStockPalette(t *testing.T) {
	f := &gridFont{}
	tbl := table.New(nil, [][]string{{"+1", "-1", "0"}})
	if _, err := Render(tbl, Options{Font: f, StockMode: true}); err != nil {
		t.Fatal(err)
	}
	if f.call(t, "+1").color != colors.Default.Positive {
		t.Error("+1 should use the default positive color")
	}
	if f.call(t, "-1").color != colors.Default.Negative {
		t.Error("-1 should use the default negative color")
	}
	if f.call(t, "0").color != colors.Default.Font {
		t.Error("0 should use the default font color")
	}
}

func TestRenderJagged(t *testing.T) {
	f := &gridFont{}
	body := [][]string{{"aaaa"}, {"b", "cc", "d"}}
	tbl := table.New(nil, body)

	_, err := Render(tbl, Options{Font: f})
	if err != nil {
		t.Fatalf("jagged table should render: %v", err)
	}
	if len(f.calls) != 4 {
		t.Errorf("drew %d cells, want 4", len(f.calls))
	}

	g := Measure(tbl, f, table.Padding{})
	if !slices.Equal(g.ColWidths, []int{40, 20, 10}) {
		t.Errorf("ColWidths = %v, want [40 20 10]", g.ColWidths)
	}
	if len(body[0]) != 1 {
		t.Error("body rows were modified")
	}
}

func TestRenderPixels(t *testing.T) {
	pal := colors.Palette{
		Background:       colornames.Green,
		CellBackground:   colornames.White,
		HeaderBackground: colornames.Lightgray,
		RowLine:          colornames.Red,
		ColumnLine:       colornames.Blue,
	}
	tbl := table.New([]string{"x", "y"}, [][]string{{"1", "2"}})
	pad := table.Padding{Horizontal: 5, Vertical: 5}
	img, err := Render(tbl, Options{Font: &gridFont{}, Padding: pad, Margin: table.NewMargin(4), Palette: pal})
	if err != nil {
		t.Fatal(err)
	}

	// Columns are 10+10 wide, rows 10+10 tall: lines at x=4,24,44 and y=4,24,44.
	tests := []struct {
		name string
		x, y int
		want color.Color
	}{
		{"margin", 0, 0, colornames.Green},
		{"corner", 4, 4, colornames.Blue},
		{"top line", 14, 4, colornames.Red},
		{"middle line", 14, 24, colornames.Red},
		{"bottom line", 34, 44, colornames.Red},
		{"left line", 4, 14, colornames.Blue},
		{"inner line", 24, 34, colornames.Blue},
		{"right line", 44, 34, colornames.Blue},
		{"header cell", 14, 14, colornames.Lightgray},
		{"body cell", 14, 34, colornames.White},
		{"right margin", 46, 14, colornames.Green},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := color.RGBAModel.Convert(img.At(tt.x, tt.y))
			want := color.RGBAModel.Convert(tt.want)
			if got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, want)
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(table.Table{}, Options{Font: &gridFont{}}); !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("empty table error = %v, want EMPTY_INPUT", err)
	}
	if _, err := Render(table.New(nil, [][]string{{}}), Options{Font: &gridFont{}}); !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("table without cells error = %v, want EMPTY_INPUT", err)
	}
	if _, err := Render(table.New(nil, [][]string{{"a"}}), Options{}); !errors.Is(err, errors.ErrCodeInvalidFont) {
		t.Errorf("nil font error = %v, want INVALID_FONT", err)
	}
}
