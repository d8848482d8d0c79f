package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"

	"github.com/go-sif/fedsplit/datasource/file"
	"github.com/go-sif/fedsplit/emitter/pngfile"
	"github.com/go-sif/fedsplit/errors"
	"github.com/go-sif/fedsplit/logging"
	"github.com/go-sif/fedsplit/manifest"
	"github.com/go-sif/fedsplit/partition"
	"github.com/go-sif/fedsplit/split"
	"github.com/spf13/cobra"
)

type flags struct {
	seed             int64
	workers          int
	clamp            bool
	concurrentAssign bool
	skipTesting      bool
	noManifest       bool
	logLevel         string
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "fedsplit <input_path> <output_path> <num_nodes> <percent_uniform> <num_datapoints>",
		Short: "Partition an MNIST-formatted dataset across simulated federated-learning nodes",
		Long: `fedsplit reads the IDX training and testing files in input_path and writes one greyscale
PNG per record beneath output_path. The first percent_uniform of the training records are dealt
round-robin across num_nodes nodes; the rest go to a range of nodes determined by their label.
Testing records are grouped by label only. num_datapoints limits both splits (-1 for all records).`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseArgs(args, f)
			if err != nil {
				return err
			}
			// arguments are well-formed, so later failures are not usage errors
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, args[0], args[1], opts, !f.noManifest)
		},
	}
	cmd.Flags().Int64Var(&f.seed, "seed", 1, "seed for the label-skewed random draws")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "maximum number of images written concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&f.clamp, "clamp-empty-ranges", false, "with fewer than 10 nodes, send labels with an empty node range to a single node instead of failing")
	cmd.Flags().BoolVar(&f.concurrentAssign, "concurrent-assign", false, "derive each random draw from the seed and record index, and assign in parallel")
	cmd.Flags().BoolVar(&f.skipTesting, "skip-testing", false, "do not write the testing split")
	cmd.Flags().BoolVar(&f.noManifest, "no-manifest", false, "do not write "+manifest.FileName)
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "minimum level of log messages (trace, debug, info, warn, error)")
	return cmd
}

func parseArgs(args []string, f *flags) (*split.Options, error) {
	numNodes, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, errors.ConfigError{Field: "num_nodes", Value: args[2], Reason: "must be an integer"}
	}
	percentUniform, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return nil, errors.ConfigError{Field: "percent_uniform", Value: args[3], Reason: "must be a number"}
	}
	numDatapoints, err := strconv.Atoi(args[4])
	if err != nil {
		return nil, errors.ConfigError{Field: "num_datapoints", Value: args[4], Reason: "must be an integer"}
	}
	level, err := logging.StringToLogLevel(f.logLevel)
	if err != nil {
		return nil, errors.ConfigError{Field: "log-level", Value: f.logLevel, Reason: err.Error()}
	}
	opts := &split.Options{
		NodeCount:        numNodes,
		UniformFraction:  percentUniform,
		SampleLimit:      numDatapoints,
		Seed:             f.seed,
		ConcurrentAssign: f.concurrentAssign,
		NumWorkers:       f.workers,
		SkipTesting:      f.skipTesting,
		Logger:           logging.New(os.Stderr, level),
	}
	if f.clamp {
		opts.RangePolicy = partition.ClampEmptyRange
	}
	// fail before touching the filesystem
	if err := opts.PartitionConfig().Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func run(ctx context.Context, inputPath string, outputPath string, opts *split.Options, writeManifest bool) error {
	source := file.CreateDataSource(inputPath)
	emitter := pngfile.CreateEmitter(outputPath)
	res, err := split.Run(ctx, source, emitter, opts)
	if err != nil {
		return err
	}
	if writeManifest {
		if err := manifest.Write(outputPath, manifest.FromResult(res, opts)); err != nil {
			return err
		}
	}
	opts.Logger.Infof("Run %s: finished in %s", res.RunID, res.Stats.GetRuntime())
	return nil
}
