package memory

import (
	"context"
	"testing"

	"github.com/go-sif/fedsplit"
	"github.com/stretchr/testify/require"
)

func TestMemoryEmitter(t *testing.T) {
	e := CreateEmitter()
	require.Nil(t, e.Prepare(2))
	require.Len(t, e.Bucket(1, 9), 0)
	for _, idx := range []int{5, 1, 3} {
		rec := fedsplit.Record{LabeledRecord: fedsplit.LabeledRecord{Label: 9, Index: idx}}
		require.Nil(t, e.Emit(context.Background(), 1, rec, 0, 0))
	}
	require.Nil(t, e.Emit(context.Background(), fedsplit.NoNode, fedsplit.Record{LabeledRecord: fedsplit.LabeledRecord{Label: 9, Index: 0}}, 0, 0))
	bucket := e.Bucket(1, 9)
	require.Len(t, bucket, 3)
	require.Equal(t, []int{1, 3, 5}, []int{bucket[0].Index, bucket[1].Index, bucket[2].Index})
	require.Len(t, e.Bucket(fedsplit.NoNode, 9), 1)
	require.Equal(t, 4, e.Count())
}
