package split

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/internal/util"
	"github.com/go-sif/fedsplit/stats"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"
)

type emitJob struct {
	node   int
	record fedsplit.Record
}

// emitAll writes every job with at most opts.NumWorkers in flight. The first failure stops
// further jobs from starting; every failure observed is returned.
func emitAll(ctx context.Context, emitter fedsplit.Emitter, jobs []emitJob, rows int, cols int, opts *Options, rs *stats.RunStatistics) error {
	ectx, cancel := context.WithCancel(ctx)
	defer cancel()
	op := util.SafeEmitOperation(func(ctx context.Context, node int, record fedsplit.Record) error {
		return emitter.Emit(ctx, node, record, rows, cols)
	})
	sem := semaphore.NewWeighted(int64(opts.NumWorkers))
	var wg sync.WaitGroup
	var lock sync.Mutex
	var multierr *multierror.Error
	failed := false
	scheduled := 0
	for _, job := range jobs {
		if err := sem.Acquire(ectx, 1); err != nil {
			break
		}
		scheduled++
		wg.Add(1)
		go func(job emitJob) {
			defer wg.Done()
			defer sem.Release(1)
			err := op(ectx, job.node, job.record)
			if err == nil {
				rs.AddRecordsEmitted(1)
				return
			}
			lock.Lock()
			// jobs interrupted by an earlier failure are not failures themselves
			if !failed || !errors.Is(err, context.Canceled) || ectx.Err() == nil {
				multierr = multierror.Append(multierr, err)
			}
			failed = true
			lock.Unlock()
			cancel()
		}(job)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	if multierr == nil && scheduled < len(jobs) {
		multierr = multierror.Append(multierr, fmt.Errorf("emission stopped after %d of %d records", scheduled, len(jobs)))
	}
	if multierr != nil {
		multierr.ErrorFormat = util.FormatMultiError
		opts.Logger.Errorf("%s", multierr.Error())
	}
	return multierr.ErrorOrNil()
}
