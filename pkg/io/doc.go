// Package io reads table documents from JSON or YAML and writes rendered
// artifacts.
//
// # Overview
//
// JSON is a subset of YAML, so both are decoded by gopkg.in/yaml.v3 into a
// node tree. Working on nodes rather than Go maps keeps the key order of
// every record, which becomes the default column order.
//
// # Document Shapes
//
// Records, a list of objects with identical keys:
//
//	[
//	  {"symbol": "AAPL", "change": "+1.20", "price": 190.5},
//	  {"symbol": "MSFT", "change": "-0.35", "price": 410}
//	]
//
// A grid, a list of rows (titles supplied separately):
//
//	[["AAPL", "+1.20"], ["MSFT", "-0.35"]]
//
// Or an object naming titles and either records or rows:
//
//	titles: [symbol, change]
//	rows:
//	  - [AAPL, "+1.20"]
//	  - [MSFT, "-0.35"]
//
// # Cell Values
//
// Every cell becomes the literal text of its scalar: 190.50 stays "190.50",
// true stays "true", and null becomes the empty string. Nested objects or
// lists inside a cell are rejected with INVALID_INPUT.
//
// # Import
//
// Use [ImportFile] to read a document from a path, or [ReadDocument] to read
// from any io.Reader:
//
//	doc, err := io.ImportFile("quotes.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tbl, err := doc.Table()
//
// # Export
//
// Use [ExportFile] to write rendered bytes to a path, or [WriteArtifact] to
// write to any io.Writer.
package io
