// Package colors defines the color roles of a rendered table and parses
// color names from configuration.
package colors

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Palette assigns a color to every role of a rendered table.
// A nil field means "not set" and is filled from [Default] by [Palette.Merge].
type Palette struct {
	Background       color.Color // canvas outside the table
	CellBackground   color.Color // table body fill
	HeaderBackground color.Color // header row fill
	Font             color.Color // default text color
	RowLine          color.Color // horizontal gridlines
	ColumnLine       color.Color // vertical gridlines
	Positive         color.Color // stock mode: cells starting with '+'
	Negative         color.Color // stock mode: cells starting with '-'
}

// Default is the palette used for any role left unset.
// Gains are red and losses green, following the convention of the markets
// the chat bots report on.
var Default = Palette{
	Background:       colornames.White,
	CellBackground:   colornames.White,
	HeaderBackground: colornames.White,
	Font:             colornames.Black,
	RowLine:          colornames.Black,
	ColumnLine:       colornames.Black,
	Positive:         colornames.Red,
	Negative:         colornames.Green,
}

// Merge returns p with every non-nil field of override applied on top.
func (p Palette) Merge(override Palette) Palette {
	pick := func(base, over color.Color) color.Color {
		if over != nil {
			return over
		}
		return base
	}
	return Palette{
		Background:       pick(p.Background, override.Background),
		CellBackground:   pick(p.CellBackground, override.CellBackground),
		HeaderBackground: pick(p.HeaderBackground, override.HeaderBackground),
		Font:             pick(p.Font, override.Font),
		RowLine:          pick(p.RowLine, override.RowLine),
		ColumnLine:       pick(p.ColumnLine, override.ColumnLine),
		Positive:         pick(p.Positive, override.Positive),
		Negative:         pick(p.Negative, override.Negative),
	}
}

// Resolve returns [Default] merged with p, so every role is set.
func (p Palette) Resolve() Palette {
	return Default.Merge(p)
}
