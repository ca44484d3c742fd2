// Package source defines where raw tables come from. The pipeline only sees
// the Source contract; FileSource is the offline implementation reading CSV
// snapshots from the data directory.
package source

import (
	"context"

	"eirstat/internal/dataprocessing"
)

// Source delivers the three raw datasets. Implementations return whatever
// subset they can; a missing dataset comes back empty, not as an error.
type Source interface {
	Collect(ctx context.Context) (dataprocessing.RawTables, error)
}
