package colors

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/tablecast/pkg/errors"
)

// Parse converts a color string to a color.
//
// Accepted forms are SVG/CSS color names ("white", "DarkSlateGray"),
// "transparent", and hex notation "#rgb" or "#rrggbb".
func Parse(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidColor, "empty color")
	}
	if name == "transparent" {
		return color.RGBA{}, nil
	}
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid hex color %q", s)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidColor, "unknown color name %q", s)
}

// Theme is the string form of a [Palette], as read from configuration.
// Empty fields are left unset.
type Theme struct {
	Background       string `toml:"background"`
	CellBackground   string `toml:"cell_background"`
	HeaderBackground string `toml:"header_background"`
	Font             string `toml:"font"`
	RowLine          string `toml:"row_line"`
	ColumnLine       string `toml:"column_line"`
	Positive         string `toml:"positive"`
	Negative         string `toml:"negative"`
}

// Palette parses every non-empty field of t.
func (t Theme) Palette() (Palette, error) {
	var p Palette
	fields := []struct {
		role string
		src  string
		dst  *color.Color
	}{
		{"background", t.Background, &p.Background},
		{"cell_background", t.CellBackground, &p.CellBackground},
		{"header_background", t.HeaderBackground, &p.HeaderBackground},
		{"font", t.Font, &p.Font},
		{"row_line", t.RowLine, &p.RowLine},
		{"column_line", t.ColumnLine, &p.ColumnLine},
		{"positive", t.Positive, &p.Positive},
		{"negative", t.Negative, &p.Negative},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		c, err := Parse(f.src)
		if err != nil {
			return Palette{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "color %s", f.role)
		}
		*f.dst = c
	}
	return p, nil
}
