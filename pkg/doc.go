// Package pkg holds the tablecast libraries.
//
// Data flows through the packages in one direction:
//
//	JSON / YAML document      [io]
//	         ↓
//	records or grid → Table   [table]
//	         ↓
//	Table → *image.RGBA       [render] using [fonts] and [colors]
//	         ↓
//	PNG / CQ tag / data URI   [encode]
//
// [pipeline] wires the stages together with a [cache] and [observability]
// hooks, and [config] maps a TOML theme file onto pipeline options.
//
// # Quick Start
//
//	import "github.com/matzehuels/tablecast/pkg/pipeline"
//
//	msg, err := pipeline.FromGrid(
//	    [][]string{{"AAPL", "+1.2%"}, {"MSFT", "-0.4%"}},
//	    []string{"ticker", "change"},
//	    pipeline.WithStockMode(true),
//	)
//	// msg is "[CQ:image,file=base64://...]", ready to send.
package pkg
