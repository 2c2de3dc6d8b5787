// Package table provides the row/column model that tablecast renders.
//
// A [Table] is an optional header row plus a body of string rows. Rows may be
// jagged; the column count is the length of the longest row. The header is
// never copied into the body: [Table.Row] and [Table.All] present a logical
// view in which the header, when present, is row 0.
//
// Two adapters build tables from higher-level input:
//
//   - [FromRecords] projects ordered key/value records onto a title order.
//   - [FromGrid] checks a rectangular grid against its titles.
//
// Both return coded errors from pkg/errors: EMPTY_INPUT when there is nothing
// to render, SCHEMA_MISMATCH when a record or row disagrees with the titles.
//
// The package also defines the layout parameters shared by the renderer and
// the CLI: [Margin] (CSS shorthand), [Padding] and [Align].
package table
