// Package render rasterizes a [table.Table] into an RGBA image.
//
// # Overview
//
// Rendering happens in two steps:
//
//  1. [Measure] computes a [Geometry]: the width of every column and the
//     height of every row, taken as the maximum text extent of the cells in
//     that column or row, plus cell padding and margins.
//  2. [Render] allocates the canvas, fills the backgrounds, draws one-pixel
//     gridlines, and draws every cell's text at the origin given by
//     [Geometry.CellOrigin].
//
// # Alignment
//
// Text is placed at the left edge of its column plus the horizontal padding.
// Center-aligned cells (including every header cell) shift right by half the
// unused column width, rounded down; right-aligned cells shift by the full
// unused width.
//
// # Stock Mode
//
// With [Options.StockMode] set, a cell whose text starts with '+' is drawn in
// the palette's Positive color and one starting with '-' in its Negative
// color.
//
// # Jagged Tables
//
// Rows may be shorter than the widest row. Missing cells are not drawn and do
// not contribute to their column's width. A column with no cells at all has
// zero width, and its gridlines are drawn on top of each other.
//
// # Usage
//
//	face, _ := fonts.Default()
//	img, err := render.Render(tbl, render.Options{
//	    Font:      face,
//	    Padding:   table.DefaultPadding,
//	    Margin:    table.DefaultMargin,
//	    Align:     []table.Align{table.AlignLeft, table.AlignRight},
//	    StockMode: true,
//	})
package render
