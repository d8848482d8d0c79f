// Package split runs a complete partitioning job: the training split of a DataSource is
// assigned to nodes and emitted per node, and the testing split is grouped by label and
// emitted without a node. A run either succeeds entirely or returns an error.
package split
