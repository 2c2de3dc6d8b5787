package table

import "github.com/matzehuels/tablecast/pkg/errors"

// FromGrid returns a table with titles as its header and grid as its body.
// Every row must have exactly len(titles) cells. The grid is not copied.
func FromGrid(grid [][]string, titles []string) (Table, error) {
	if len(grid) == 0 {
		return Table{}, errors.New(errors.ErrCodeEmptyInput, "no rows to render")
	}
	if len(titles) == 0 {
		return Table{}, errors.New(errors.ErrCodeEmptyInput, "no titles given")
	}
	for i, row := range grid {
		if len(row) != len(titles) {
			return Table{}, errors.New(errors.ErrCodeSchemaMismatch,
				"row %d has %d cells, want %d", i, len(row), len(titles))
		}
	}
	return New(titles, grid), nil
}
