package errors

import (
	"fmt"
)

// ConfigError occurs when a partitioning parameter is invalid
type ConfigError struct {
	Field  string
	Value  interface{}
	Reason string
}

// Error returns a textual representation of this ConfigError
func (e ConfigError) Error() string {
	return fmt.Sprintf("Invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// FormatError occurs when an input file does not match the expected IDX layout
type FormatError struct {
	Path   string
	Reason string
}

// Error returns a textual representation of this FormatError
func (e FormatError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("Malformed input: %s", e.Reason)
	}
	return fmt.Sprintf("Malformed input %s: %s", e.Path, e.Reason)
}

// IOError occurs when an input cannot be read or an output cannot be written
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error returns a textual representation of this IOError
func (e IOError) Error() string {
	return fmt.Sprintf("Unable to %s %s: %s", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e IOError) Unwrap() error {
	return e.Err
}

// DegenerateRangeError occurs when the label-skewed node range for a label is empty,
// which happens for some labels whenever there are fewer than 10 nodes
type DegenerateRangeError struct {
	NodeCount int
	Label     int
}

// Error returns a textual representation of this DegenerateRangeError
func (e DegenerateRangeError) Error() string {
	return fmt.Sprintf("Node range for label %d is empty with %d nodes (at least 10 nodes are required, or empty ranges must be clamped)", e.Label, e.NodeCount)
}
