package memory

import (
	"fmt"
	"os"

	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/errors"
)

// DataSource is a set of in-memory splits, useful for tests and for embedding fedsplit
// in programs which already hold a decoded dataset
type DataSource struct {
	splits map[fedsplit.DatasetKind]*fedsplit.Dataset
}

// CreateDataSource is a factory for DataSources. Each dataset is served for its own Kind.
func CreateDataSource(datasets ...*fedsplit.Dataset) *DataSource {
	splits := make(map[fedsplit.DatasetKind]*fedsplit.Dataset, len(datasets))
	for _, ds := range datasets {
		splits[ds.Kind] = ds
	}
	return &DataSource{splits: splits}
}

// ToString returns a string representation of this DataSource
func (ms *DataSource) ToString() string {
	return fmt.Sprintf("Memory source with %d splits", len(ms.splits))
}

// Read returns a copy of the requested split. Pixel buffers are shared, and must not be modified.
func (ms *DataSource) Read(kind fedsplit.DatasetKind) (*fedsplit.Dataset, error) {
	ds, ok := ms.splits[kind]
	if !ok {
		return nil, errors.IOError{Op: "read", Path: kind.String(), Err: os.ErrNotExist}
	}
	records := make([]fedsplit.Record, len(ds.Records))
	for i, rec := range ds.Records {
		if rec.Index != i {
			return nil, errors.FormatError{Reason: fmt.Sprintf("record at position %d has index %d", i, rec.Index)}
		}
		records[i] = rec
	}
	return &fedsplit.Dataset{Kind: ds.Kind, Records: records, Rows: ds.Rows, Cols: ds.Cols}, nil
}
