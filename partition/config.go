package partition

import (
	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/errors"
	"github.com/hashicorp/go-multierror"
)

// AllRecords is the SampleLimit which processes every available record
const AllRecords = -1

// RangePolicy decides what happens when a label's skewed node range is empty,
// which occurs for some labels whenever there are fewer than 10 nodes
type RangePolicy int

const (
	// RejectEmptyRange fails validation with a DegenerateRangeError
	RejectEmptyRange RangePolicy = iota
	// ClampEmptyRange replaces an empty range [s, s) with [s, s+1)
	ClampEmptyRange
)

// Config configures a partition run. It must not be modified while a run is in progress.
type Config struct {
	NodeCount       int         // [REQUIRED] number of simulated nodes, greater than 0
	UniformFraction float64     // fraction of records (by position) dealt round-robin, in [0, 1)
	SampleLimit     int         // number of records to process, or AllRecords
	RangePolicy     RangePolicy // handling of empty label-skewed node ranges
}

// Validate checks a Config, returning all ConfigErrors at once. If the parameters
// are valid but some label's node range is empty under RejectEmptyRange, a
// DegenerateRangeError is returned.
func (c *Config) Validate() error {
	var multierr *multierror.Error
	if c.NodeCount <= 0 {
		multierr = multierror.Append(multierr, errors.ConfigError{Field: "NodeCount", Value: c.NodeCount, Reason: "must be greater than 0"})
	}
	// written as a negated range so NaN is rejected
	if !(c.UniformFraction >= 0 && c.UniformFraction < 1) {
		multierr = multierror.Append(multierr, errors.ConfigError{Field: "UniformFraction", Value: c.UniformFraction, Reason: "must be in [0, 1)"})
	}
	if c.SampleLimit < AllRecords {
		multierr = multierror.Append(multierr, errors.ConfigError{Field: "SampleLimit", Value: c.SampleLimit, Reason: "must be -1 (all records) or non-negative"})
	}
	if c.RangePolicy != RejectEmptyRange && c.RangePolicy != ClampEmptyRange {
		multierr = multierror.Append(multierr, errors.ConfigError{Field: "RangePolicy", Value: c.RangePolicy, Reason: "unknown policy"})
	}
	if err := multierr.ErrorOrNil(); err != nil {
		return err
	}
	for label := 0; label < fedsplit.NumLabels; label++ {
		if _, _, err := NodeRange(label, c.NodeCount, c.RangePolicy); err != nil {
			return err
		}
	}
	return nil
}

// EffectiveLimit returns the number of records a run over total records will process
func (c *Config) EffectiveLimit(total int) int {
	if c.SampleLimit == AllRecords || c.SampleLimit > total {
		return total
	}
	return c.SampleLimit
}

// IsUniform returns true iff the record at position falls in the round-robin regime
// of a run processing limit records
func (c *Config) IsUniform(position int, limit int) bool {
	return float64(position) < float64(limit)*c.UniformFraction
}

// NodeRange returns the half-open range of nodes [start, end) which may receive
// skewed-regime records with the given label: [floor(label*n/10), floor((label+1)*n/10)).
func NodeRange(label int, nodeCount int, policy RangePolicy) (start int, end int, err error) {
	if label < 0 || label >= fedsplit.NumLabels {
		return 0, 0, errors.FormatError{Reason: labelReason(label)}
	}
	// integer arithmetic computes the floors exactly
	start = label * nodeCount / fedsplit.NumLabels
	end = (label + 1) * nodeCount / fedsplit.NumLabels
	if start == end {
		if policy != ClampEmptyRange {
			return 0, 0, errors.DegenerateRangeError{NodeCount: nodeCount, Label: label}
		}
		end = start + 1
	}
	return start, end, nil
}
