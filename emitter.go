package fedsplit

import "context"

// Emitter writes assigned records to an output representation (a file tree, a stream,
// an in-memory bucket...). Emit must be safe for concurrent use.
type Emitter interface {
	Prepare(nodeCount int) error                                                 // Prepare creates any per-node and per-label structure ahead of emission
	Emit(ctx context.Context, node int, record Record, rows int, cols int) error // Emit writes one record for a node (or NoNode for the testing split)
}
