package util

import (
	"context"
	"fmt"

	"github.com/go-sif/fedsplit"
)

// EmitOperation writes a single record for a node
type EmitOperation func(ctx context.Context, node int, record fedsplit.Record) error

// SafeEmitOperation wraps an EmitOperation such that panics are recovered and nice error messages are constructed
func SafeEmitOperation(emitOp EmitOperation) (safeEmitOp EmitOperation) {
	return func(ctx context.Context, node int, record fedsplit.Record) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Emit Panic: %w\nRecord: %s\n%s", anErr, recordToString(node, record), GetTrace())
				} else {
					err = fmt.Errorf("Emit Panic: %v\nRecord: %s\n%s", r, recordToString(node, record), GetTrace())
				}
			} else if err != nil {
				err = fmt.Errorf("Emit Error: %w\nRecord: %s", err, recordToString(node, record))
			}
		}()
		err = emitOp(ctx, node, record)
		return
	}
}

func recordToString(node int, record fedsplit.Record) string {
	if node == fedsplit.NoNode {
		return fmt.Sprintf("{index: %d, label: %d, split: testing}", record.Index, record.Label)
	}
	return fmt.Sprintf("{index: %d, label: %d, node: %d}", record.Index, record.Label, node)
}
