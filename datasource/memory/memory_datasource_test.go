package memory

import (
	stderrors "errors"
	"os"
	"testing"

	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/errors"
	"github.com/stretchr/testify/require"
)

func TestMemoryDataSource(t *testing.T) {
	ds := &fedsplit.Dataset{
		Kind:    fedsplit.Testing,
		Records: []fedsplit.Record{{LabeledRecord: fedsplit.LabeledRecord{Label: 4, Index: 0}, Pixels: []byte{1}}},
		Rows:    1,
		Cols:    1,
	}
	source := CreateDataSource(ds)
	res, err := source.Read(fedsplit.Testing)
	require.Nil(t, err)
	require.Equal(t, ds, res)
	res.Records[0].Label = 9
	require.Equal(t, 4, ds.Records[0].Label)

	_, err = source.Read(fedsplit.Training)
	var ioErr errors.IOError
	require.True(t, stderrors.As(err, &ioErr))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMemoryDataSourceIndexMismatch(t *testing.T) {
	ds := &fedsplit.Dataset{
		Kind:    fedsplit.Training,
		Records: []fedsplit.Record{{LabeledRecord: fedsplit.LabeledRecord{Label: 4, Index: 3}}},
	}
	_, err := CreateDataSource(ds).Read(fedsplit.Training)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "index 3")
}
