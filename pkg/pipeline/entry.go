package pipeline

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tablecast/pkg/encode"
	"github.com/matzehuels/tablecast/pkg/table"
)

// direct renders without cache or logs.
var direct = NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))

// FromRecords renders records as a table and returns a CQ image tag.
// A nil titles slice takes the key order of the first record; every record
// must have exactly the title keys.
func FromRecords(records []table.Record, titles []string, opts ...Option) (string, error) {
	o := cqOptions(opts)
	result, err := direct.Records(context.Background(), records, titles, o)
	if err != nil {
		return "", err
	}
	return string(result.Artifacts[encode.FormatCQ]), nil
}

// FromGrid renders grid under titles and returns a CQ image tag.
// Every row must have len(titles) cells.
func FromGrid(grid [][]string, titles []string, opts ...Option) (string, error) {
	o := cqOptions(opts)
	result, err := direct.Grid(context.Background(), grid, titles, o)
	if err != nil {
		return "", err
	}
	return string(result.Artifacts[encode.FormatCQ]), nil
}

func cqOptions(opts []Option) Options {
	o := NewOptions(opts...)
	o.Formats = []encode.Format{encode.FormatCQ}
	return o
}
