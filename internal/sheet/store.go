package sheet

import "context"

// CellUpdate targets a single cell by its native reference, e.g. "I7".
type CellUpdate struct {
	Ref   string
	Value string
}

// Store is the grid backing store.
type Store interface {
	// Read returns the used range, header row first. Rows may be shorter
	// than the header; absent trailing cells read as empty.
	Read(ctx context.Context) ([][]string, error)

	// Append adds one row after the last used row.
	Append(ctx context.Context, row []string) error

	// BatchUpdate writes the given cells and nothing else, as one grouped
	// write: either every cell lands or none does.
	BatchUpdate(ctx context.Context, updates []CellUpdate) error
}
