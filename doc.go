// Package fedsplit contains the core types of fedsplit, a tool for partitioning a labeled
// image dataset (in the MNIST IDX format) across a number of simulated federated-learning nodes.
// The degree of statistical heterogeneity between nodes is controlled by a uniformity fraction:
// a prefix of the dataset is dealt round-robin (IID), and the remainder is routed to a contiguous
// range of nodes determined by each record's label (non-IID).
//
// This root package defines the types shared by DataSources, the partition assigner and
// Emitters, and is the best overview of fedsplit's key concepts.
package fedsplit
