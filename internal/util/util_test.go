package util

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/errors"
	"github.com/stretchr/testify/require"
)

func TestSafeEmitOperationRecoversPanics(t *testing.T) {
	op := SafeEmitOperation(func(ctx context.Context, node int, record fedsplit.Record) error {
		panic(fmt.Errorf("boom"))
	})
	err := op(context.Background(), 2, fedsplit.Record{LabeledRecord: fedsplit.LabeledRecord{Label: 1, Index: 7}})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Emit Panic: boom")
	require.Contains(t, err.Error(), "node: 2")

	op = SafeEmitOperation(func(ctx context.Context, node int, record fedsplit.Record) error {
		panic("not an error")
	})
	err = op(context.Background(), fedsplit.NoNode, fedsplit.Record{})
	require.Contains(t, err.Error(), "split: testing")
}

func TestSafeEmitOperationWrapsErrors(t *testing.T) {
	op := SafeEmitOperation(func(ctx context.Context, node int, record fedsplit.Record) error {
		return errors.IOError{Op: "write", Path: "x.png", Err: fmt.Errorf("disk full")}
	})
	err := op(context.Background(), 0, fedsplit.Record{})
	var ioErr errors.IOError
	require.True(t, stderrors.As(err, &ioErr))
	require.Nil(t, SafeEmitOperation(func(context.Context, int, fedsplit.Record) error { return nil })(context.Background(), 0, fedsplit.Record{}))
}

func TestFormatMultiError(t *testing.T) {
	msg := FormatMultiError([]error{fmt.Errorf("a"), fmt.Errorf("b")})
	require.Equal(t, "2 records could not be emitted:\n\t* a\n\t* b\n", msg)
}
