package partition

import (
	"fmt"

	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/errors"
)

// GroupByLabel buckets the first limit records (or all of them, for AllRecords) by label,
// preserving input order within each bucket. Every label has a bucket, possibly empty.
func GroupByLabel(records []fedsplit.LabeledRecord, limit int) (map[int][]fedsplit.LabeledRecord, error) {
	if limit < AllRecords {
		return nil, errors.ConfigError{Field: "SampleLimit", Value: limit, Reason: "must be -1 (all records) or non-negative"}
	}
	if limit == AllRecords || limit > len(records) {
		limit = len(records)
	}
	groups := make(map[int][]fedsplit.LabeledRecord, fedsplit.NumLabels)
	for label := 0; label < fedsplit.NumLabels; label++ {
		groups[label] = []fedsplit.LabeledRecord{}
	}
	for _, rec := range records[:limit] {
		if rec.Label < 0 || rec.Label >= fedsplit.NumLabels {
			return nil, errors.FormatError{Reason: fmt.Sprintf("record %d: %s", rec.Index, labelReason(rec.Label))}
		}
		groups[rec.Label] = append(groups[rec.Label], rec)
	}
	return groups, nil
}
