package split

import (
	"os"
	"runtime"

	"github.com/go-sif/fedsplit/logging"
	"github.com/go-sif/fedsplit/partition"
)

// Options configure a split run
type Options struct {
	NodeCount        int                   // [REQUIRED] the number of simulated nodes to partition the training split across
	UniformFraction  float64               // fraction of training records (by position) dealt round-robin, in [0, 1)
	SampleLimit      int                   // the number of records to process from each split, or partition.AllRecords
	Seed             int64                 // seed for the random draws of the label-skewed regime
	RangePolicy      partition.RangePolicy // handling of empty label ranges when there are fewer than 10 nodes
	ConcurrentAssign bool                  // iff true, draws are derived per record from Seed and assignment runs in parallel
	NumWorkers       int                   // the maximum number of records assigned or emitted concurrently. Defaults to the number of CPUs
	SkipTesting      bool                  // iff true, the testing split is not read or emitted
	Logger           *logging.Logger       // destination for progress messages. Defaults to INFO on stderr
}

// CloneOptions makes a copy of an Options
func CloneOptions(opts *Options) *Options {
	return &Options{
		NodeCount:        opts.NodeCount,
		UniformFraction:  opts.UniformFraction,
		SampleLimit:      opts.SampleLimit,
		Seed:             opts.Seed,
		RangePolicy:      opts.RangePolicy,
		ConcurrentAssign: opts.ConcurrentAssign,
		NumWorkers:       opts.NumWorkers,
		SkipTesting:      opts.SkipTesting,
		Logger:           opts.Logger,
	}
}

// PartitionConfig returns the partition.Config described by these Options
func (o *Options) PartitionConfig() *partition.Config {
	return &partition.Config{
		NodeCount:       o.NodeCount,
		UniformFraction: o.UniformFraction,
		SampleLimit:     o.SampleLimit,
		RangePolicy:     o.RangePolicy,
	}
}

func ensureDefaultOptionsValues(opts *Options) {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = logging.New(os.Stderr, logging.InfoLevel)
	}
}
