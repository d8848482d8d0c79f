package pngfile

import (
	"context"
	stderrors "errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestEmitLayout(t *testing.T) {
	root := t.TempDir()
	e := CreateEmitter(root)
	require.Equal(t, filepath.Join(root, "3", "training", "7", "12.png"), e.Path(3, fedsplit.LabeledRecord{Label: 7, Index: 12}))
	require.Equal(t, filepath.Join(root, "7-test", "12.png"), e.Path(fedsplit.NoNode, fedsplit.LabeledRecord{Label: 7, Index: 12}))
}

func TestEmitDecodesToOriginalPixels(t *testing.T) {
	root := t.TempDir()
	e := CreateEmitter(root)
	pixels := []byte{0, 50, 100, 150, 200, 250}
	rec := fedsplit.Record{LabeledRecord: fedsplit.LabeledRecord{Label: 2, Index: 5}, Pixels: pixels}
	require.Nil(t, e.Emit(context.Background(), 1, rec, 2, 3))

	f, err := os.Open(filepath.Join(root, "1", "training", "2", "5.png"))
	require.Nil(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.Nil(t, err)
	gray, ok := img.(*image.Gray)
	require.True(t, ok)
	require.Equal(t, 3, gray.Bounds().Dx())
	require.Equal(t, 2, gray.Bounds().Dy())
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			require.Equal(t, pixels[y*3+x], gray.GrayAt(x, y).Y)
		}
	}
}

func TestPrepareCreatesAllDirectories(t *testing.T) {
	root := t.TempDir()
	e := CreateEmitter(root)
	require.Nil(t, e.Prepare(3))
	for label := 0; label < fedsplit.NumLabels; label++ {
		for node := 0; node < 3; node++ {
			info, err := os.Stat(e.Dir(node, label))
			require.Nil(t, err)
			require.True(t, info.IsDir())
		}
		_, err := os.Stat(e.Dir(fedsplit.NoNode, label))
		require.Nil(t, err)
	}
}

func TestEmitConcurrently(t *testing.T) {
	defer goleak.VerifyNone(t)
	root := t.TempDir()
	e := CreateEmitter(root)
	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := fedsplit.Record{LabeledRecord: fedsplit.LabeledRecord{Label: i % 3, Index: i}, Pixels: []byte{byte(i)}}
			errs <- e.Emit(context.Background(), i%2, rec, 1, 1)
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.Nil(t, err)
	}
	matches, err := filepath.Glob(filepath.Join(root, "*", "training", "*", "*.png"))
	require.Nil(t, err)
	require.Len(t, matches, 100)
}

func TestEmitErrors(t *testing.T) {
	root := t.TempDir()
	e := CreateEmitter(root)
	rec := fedsplit.Record{LabeledRecord: fedsplit.LabeledRecord{Label: 1, Index: 0}, Pixels: []byte{1, 2, 3}}
	err := e.Emit(context.Background(), 0, rec, 2, 2)
	var formatErr errors.FormatError
	require.True(t, stderrors.As(err, &formatErr))

	// a regular file where the node directory should be
	require.Nil(t, os.WriteFile(filepath.Join(root, "4"), []byte("x"), 0600))
	err = e.Emit(context.Background(), 4, fedsplit.Record{LabeledRecord: rec.LabeledRecord, Pixels: []byte{1}}, 1, 1)
	var ioErr errors.IOError
	require.True(t, stderrors.As(err, &ioErr))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, e.Emit(ctx, 0, rec, 1, 3), context.Canceled)
}
