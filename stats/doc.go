// Package stats tracks runtime statistics about a split run, such as the time spent
// reading, assigning and emitting each split and the number of records written.
package stats
