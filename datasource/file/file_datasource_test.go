package file_test

import (
	"bytes"
	"encoding/binary"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/datasource/file"
	"github.com/go-sif/fedsplit/errors"
	splittest "github.com/go-sif/fedsplit/testing"
	"github.com/stretchr/testify/require"
)

func TestReadRoundTrip(t *testing.T) {
	for _, suffix := range file.Suffixes {
		dir := t.TempDir()
		expected := splittest.CreateTestDataset(fedsplit.Training, 57, 4, 3, 1)
		require.Nil(t, splittest.WriteIDX(dir, expected, suffix))

		actual, err := file.CreateDataSource(dir).Read(fedsplit.Training)
		require.Nil(t, err, "suffix %q", suffix)
		require.Equal(t, 4, actual.Rows)
		require.Equal(t, 3, actual.Cols)
		require.Equal(t, fedsplit.Training, actual.Kind)
		require.Equal(t, expected.Records, actual.Records)
	}
}

func TestReadTestingSplit(t *testing.T) {
	dir := t.TempDir()
	expected := splittest.CreateTestDataset(fedsplit.Testing, 12, 2, 2, 2)
	require.Nil(t, splittest.WriteIDX(dir, expected, ".gz"))
	actual, err := file.CreateDataSource(dir).Read(fedsplit.Testing)
	require.Nil(t, err)
	require.Equal(t, expected.Labeled(), actual.Labeled())

	// the training split is absent
	_, err = file.CreateDataSource(dir).Read(fedsplit.Training)
	var ioErr errors.IOError
	require.True(t, stderrors.As(err, &ioErr))
	require.True(t, stderrors.Is(err, os.ErrNotExist))
}

func TestDecodeLabelsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, binary.Write(&buf, binary.BigEndian, []uint32{file.ImageMagic, 1}))
	buf.WriteByte(3)
	_, err := file.DecodeLabels(&buf, "labels")
	var formatErr errors.FormatError
	require.True(t, stderrors.As(err, &formatErr))
	require.Contains(t, formatErr.Reason, "magic")
}

func TestDecodeLabelsOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, binary.Write(&buf, binary.BigEndian, []uint32{file.LabelMagic, 2}))
	buf.Write([]byte{1, 10})
	_, err := file.DecodeLabels(&buf, "labels")
	var formatErr errors.FormatError
	require.True(t, stderrors.As(err, &formatErr))
}

func TestDecodeImagesTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, binary.Write(&buf, binary.BigEndian, []uint32{file.ImageMagic, 2, 2, 2}))
	buf.Write([]byte{1, 2, 3, 4, 5})
	_, err := file.DecodeImages(&buf, "images")
	var formatErr errors.FormatError
	require.True(t, stderrors.As(err, &formatErr))

	_, err = file.DecodeImages(bytes.NewReader([]byte{0, 0}), "images")
	require.True(t, stderrors.As(err, &formatErr))
	require.Equal(t, "truncated header", formatErr.Reason)
}

func TestReadCountMismatch(t *testing.T) {
	dir := t.TempDir()
	ds := splittest.CreateTestDataset(fedsplit.Training, 5, 2, 2, 3)
	require.Nil(t, splittest.WriteIDX(dir, ds, ""))
	// overwrite the labels with a shorter split
	short := splittest.CreateTestDataset(fedsplit.Training, 4, 2, 2, 3)
	labels, _, err := file.SplitFileNames(fedsplit.Training)
	require.Nil(t, err)
	require.Nil(t, os.Remove(filepath.Join(dir, labels)))
	other := t.TempDir()
	require.Nil(t, splittest.WriteIDX(other, short, ""))
	data, err := os.ReadFile(filepath.Join(other, labels))
	require.Nil(t, err)
	require.Nil(t, os.WriteFile(filepath.Join(dir, labels), data, 0600))

	_, err = file.CreateDataSource(dir).Read(fedsplit.Training)
	var formatErr errors.FormatError
	require.True(t, stderrors.As(err, &formatErr))
	require.Contains(t, formatErr.Reason, "does not match")
}
