package partition

import (
	"context"
	"fmt"

	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/errors"
	"golang.org/x/sync/errgroup"
)

// checkEvery is how many positions a concurrent worker assigns between context checks
const checkEvery = 4096

// Assign computes the node for each of the first EffectiveLimit records. Exactly that
// many Assignments are returned, in input order.
//
// Records at positions below limit*UniformFraction are dealt round-robin: position i
// goes to node i mod NodeCount regardless of label. Every other record with label L is
// sent to a node drawn from NodeRange(L) using src.
func Assign(records []fedsplit.LabeledRecord, conf *Config, src Source) (fedsplit.AssignmentPlan, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	limit := conf.EffectiveLimit(len(records))
	plan := make(fedsplit.AssignmentPlan, limit)
	for i := 0; i < limit; i++ {
		node, err := nodeFor(conf, limit, i, records[i], src)
		if err != nil {
			return nil, err
		}
		plan[i] = fedsplit.Assignment{Record: records[i], Node: node}
	}
	return plan, nil
}

// AssignConcurrent produces the same plan as Assign with the same PerRecordSource,
// splitting positions into contiguous blocks across numWorkers goroutines
func AssignConcurrent(ctx context.Context, records []fedsplit.LabeledRecord, conf *Config, src *PerRecordSource, numWorkers int) (fedsplit.AssignmentPlan, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if numWorkers < 1 {
		return nil, errors.ConfigError{Field: "numWorkers", Value: numWorkers, Reason: "must be greater than 0"}
	}
	limit := conf.EffectiveLimit(len(records))
	plan := make(fedsplit.AssignmentPlan, limit)
	blockSize := (limit + numWorkers - 1) / numWorkers
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < limit; lo += blockSize {
		lo, hi := lo, lo+blockSize
		if hi > limit {
			hi = limit
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%checkEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				node, err := nodeFor(conf, limit, i, records[i], src)
				if err != nil {
					return err
				}
				// each goroutine writes a disjoint block of plan
				plan[i] = fedsplit.Assignment{Record: records[i], Node: node}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plan, nil
}

func nodeFor(conf *Config, limit int, position int, rec fedsplit.LabeledRecord, src Source) (int, error) {
	if rec.Label < 0 || rec.Label >= fedsplit.NumLabels {
		return 0, errors.FormatError{Reason: fmt.Sprintf("record %d: %s", rec.Index, labelReason(rec.Label))}
	}
	if conf.IsUniform(position, limit) {
		return position % conf.NodeCount, nil
	}
	start, end, err := NodeRange(rec.Label, conf.NodeCount, conf.RangePolicy)
	if err != nil {
		return 0, err
	}
	return start + src.Intn(position, end-start), nil
}

func labelReason(label int) string {
	return fmt.Sprintf("label %d is outside [0, %d)", label, fedsplit.NumLabels)
}
