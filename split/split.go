package split

import (
	"context"

	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/logging"
	"github.com/go-sif/fedsplit/partition"
	"github.com/go-sif/fedsplit/stats"
	uuid "github.com/gofrs/uuid"
)

// Result describes a completed split run
type Result struct {
	RunID           string                  // unique identifier of this run
	Plan            fedsplit.AssignmentPlan // node assignment of each processed training record
	NodeLabelCounts [][]int                 // training records per node (outer) and label (inner)
	TestLabelCounts []int                   // testing records per label, nil if the testing split was skipped
	Rows            int                     // image height
	Cols            int                     // image width
	Stats           *stats.RunStatistics
}

// Run partitions the training split of source across opts.NodeCount nodes and groups the
// testing split by label, writing every processed record to emitter
func Run(ctx context.Context, source fedsplit.DataSource, emitter fedsplit.Emitter, opts *Options) (*Result, error) {
	opts = CloneOptions(opts)
	ensureDefaultOptionsValues(opts)
	logger := opts.Logger
	conf := opts.PartitionConfig()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	res := &Result{RunID: id.String(), Stats: &stats.RunStatistics{}}
	res.Stats.Start()
	defer res.Stats.Finish()
	logger.Infof("Run %s: partitioning %s across %d nodes (uniform fraction %.3f, limit %d)", res.RunID, source.ToString(), conf.NodeCount, conf.UniformFraction, conf.SampleLimit)

	if err = emitter.Prepare(conf.NodeCount); err != nil {
		return nil, err
	}
	if err = runTraining(ctx, source, emitter, conf, opts, res); err != nil {
		return nil, err
	}
	if opts.SkipTesting {
		return res, nil
	}
	if err = runTesting(ctx, source, emitter, conf, opts, res); err != nil {
		return nil, err
	}
	return res, nil
}

func runTraining(ctx context.Context, source fedsplit.DataSource, emitter fedsplit.Emitter, conf *partition.Config, opts *Options, res *Result) error {
	rs := res.Stats
	rs.StartPhase(fedsplit.Training, stats.ReadPhase)
	train, err := source.Read(fedsplit.Training)
	if err != nil {
		return err
	}
	rs.EndPhase(fedsplit.Training, stats.ReadPhase)
	res.Rows, res.Cols = train.Rows, train.Cols
	opts.Logger.Infof("Run %s: read %d training records of %dx%d pixels", res.RunID, len(train.Records), train.Rows, train.Cols)

	rs.StartPhase(fedsplit.Training, stats.AssignPhase)
	plan, err := assign(ctx, train, conf, opts)
	if err != nil {
		return err
	}
	rs.EndPhase(fedsplit.Training, stats.AssignPhase)
	res.Plan = plan
	res.NodeLabelCounts = plan.NodeLabelCounts(conf.NodeCount)
	if opts.Logger.Enabled(logging.DebugLevel) {
		for node, counts := range res.NodeLabelCounts {
			opts.Logger.Debugf("Run %s: node %d receives %v", res.RunID, node, counts)
		}
	}

	jobs := make([]emitJob, len(plan))
	for i, a := range plan {
		jobs[i] = emitJob{node: a.Node, record: train.Records[i]}
	}
	rs.StartPhase(fedsplit.Training, stats.EmitPhase)
	if err = emitAll(ctx, emitter, jobs, train.Rows, train.Cols, opts, rs); err != nil {
		return err
	}
	rs.EndPhase(fedsplit.Training, stats.EmitPhase)
	opts.Logger.Infof("Run %s: emitted %d training records in %s", res.RunID, len(jobs), rs.GetPhaseRuntime(fedsplit.Training, stats.EmitPhase))
	return nil
}

func runTesting(ctx context.Context, source fedsplit.DataSource, emitter fedsplit.Emitter, conf *partition.Config, opts *Options, res *Result) error {
	rs := res.Stats
	rs.StartPhase(fedsplit.Testing, stats.ReadPhase)
	test, err := source.Read(fedsplit.Testing)
	if err != nil {
		return err
	}
	rs.EndPhase(fedsplit.Testing, stats.ReadPhase)
	opts.Logger.Infof("Run %s: read %d testing records of %dx%d pixels", res.RunID, len(test.Records), test.Rows, test.Cols)

	rs.StartPhase(fedsplit.Testing, stats.AssignPhase)
	groups, err := partition.GroupByLabel(test.Labeled(), conf.SampleLimit)
	if err != nil {
		return err
	}
	rs.EndPhase(fedsplit.Testing, stats.AssignPhase)

	res.TestLabelCounts = make([]int, fedsplit.NumLabels)
	var jobs []emitJob
	for label := 0; label < fedsplit.NumLabels; label++ {
		res.TestLabelCounts[label] = len(groups[label])
		for _, rec := range groups[label] {
			jobs = append(jobs, emitJob{node: fedsplit.NoNode, record: test.Records[rec.Index]})
		}
	}
	rs.StartPhase(fedsplit.Testing, stats.EmitPhase)
	if err = emitAll(ctx, emitter, jobs, test.Rows, test.Cols, opts, rs); err != nil {
		return err
	}
	rs.EndPhase(fedsplit.Testing, stats.EmitPhase)
	opts.Logger.Infof("Run %s: emitted %d testing records in %s", res.RunID, len(jobs), rs.GetPhaseRuntime(fedsplit.Testing, stats.EmitPhase))
	return nil
}

func assign(ctx context.Context, ds *fedsplit.Dataset, conf *partition.Config, opts *Options) (fedsplit.AssignmentPlan, error) {
	if opts.ConcurrentAssign {
		src := partition.NewPerRecordSource(uint64(opts.Seed))
		return partition.AssignConcurrent(ctx, ds.Labeled(), conf, src, opts.NumWorkers)
	}
	return partition.Assign(ds.Labeled(), conf, partition.NewStreamSource(opts.Seed))
}
