// Package memory provides an Emitter which collects records into in-memory buckets
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/go-sif/fedsplit"
)

// Key identifies a bucket: a node (or fedsplit.NoNode) and a label
type Key struct {
	Node  int
	Label int
}

// Emitter buckets records by node and label. It is safe for concurrent use.
type Emitter struct {
	lock    sync.Mutex
	buckets map[Key][]fedsplit.Record
}

// CreateEmitter is a factory for Emitters
func CreateEmitter() *Emitter {
	return &Emitter{buckets: make(map[Key][]fedsplit.Record)}
}

// Prepare creates an empty bucket for every node/label combination and every testing label
func (e *Emitter) Prepare(nodeCount int) error {
	e.lock.Lock()
	defer e.lock.Unlock()
	for label := 0; label < fedsplit.NumLabels; label++ {
		for node := fedsplit.NoNode; node < nodeCount; node++ {
			k := Key{Node: node, Label: label}
			if _, ok := e.buckets[k]; !ok {
				e.buckets[k] = []fedsplit.Record{}
			}
		}
	}
	return nil
}

// Emit appends a record to its bucket
func (e *Emitter) Emit(ctx context.Context, node int, record fedsplit.Record, rows int, cols int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	k := Key{Node: node, Label: record.Label}
	e.buckets[k] = append(e.buckets[k], record)
	return nil
}

// Bucket returns the records emitted for a node and label, ordered by record index
func (e *Emitter) Bucket(node int, label int) []fedsplit.Record {
	e.lock.Lock()
	defer e.lock.Unlock()
	bucket := append([]fedsplit.Record(nil), e.buckets[Key{Node: node, Label: label}]...)
	sort.Slice(bucket, func(i, j int) bool { return bucket[i].Index < bucket[j].Index })
	return bucket
}

// Count returns the total number of records emitted
func (e *Emitter) Count() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	total := 0
	for _, bucket := range e.buckets {
		total += len(bucket)
	}
	return total
}
