// Package pngfile provides an Emitter which writes each record as a greyscale PNG image.
//
// Training records are written to <root>/<node>/training/<label>/<index>.png, and testing
// records (emitted with fedsplit.NoNode) to <root>/<label>-test/<index>.png.
package pngfile

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/docker/docker/pkg/locker"
	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/errors"
)

// Emitter writes records as PNG files beneath a root directory
type Emitter struct {
	root    string
	dirLock *locker.Locker
	created sync.Map // directories known to exist
}

// CreateEmitter is a factory for Emitters
func CreateEmitter(root string) *Emitter {
	return &Emitter{
		root:    root,
		dirLock: locker.New(),
	}
}

// Dir returns the directory holding records with a label for a node (or fedsplit.NoNode)
func (e *Emitter) Dir(node int, label int) string {
	if node == fedsplit.NoNode {
		return filepath.Join(e.root, fmt.Sprintf("%d-test", label))
	}
	return filepath.Join(e.root, strconv.Itoa(node), fedsplit.Training.String(), strconv.Itoa(label))
}

// Path returns the file a record will be written to
func (e *Emitter) Path(node int, record fedsplit.LabeledRecord) string {
	return filepath.Join(e.Dir(node, record.Label), strconv.Itoa(record.Index)+".png")
}

// Prepare creates the directory for every node/label combination, and every testing label,
// so that combinations which receive no records are still present
func (e *Emitter) Prepare(nodeCount int) error {
	for label := 0; label < fedsplit.NumLabels; label++ {
		for node := 0; node < nodeCount; node++ {
			if err := e.ensureDir(e.Dir(node, label)); err != nil {
				return err
			}
		}
		if err := e.ensureDir(e.Dir(fedsplit.NoNode, label)); err != nil {
			return err
		}
	}
	return nil
}

// Emit encodes one record as a rows x cols greyscale PNG
func (e *Emitter) Emit(ctx context.Context, node int, record fedsplit.Record, rows int, cols int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(record.Pixels) != rows*cols {
		return errors.FormatError{Reason: fmt.Sprintf("record %d has %d pixels, expected %dx%d", record.Index, len(record.Pixels), rows, cols)}
	}
	if err := e.ensureDir(e.Dir(node, record.Label)); err != nil {
		return err
	}
	img := &image.Gray{
		Pix:    record.Pixels,
		Stride: cols,
		Rect:   image.Rect(0, 0, cols, rows),
	}
	return writePNG(e.Path(node, record.LabeledRecord), img)
}

// ensureDir creates dir once, however many goroutines ask for it concurrently
func (e *Emitter) ensureDir(dir string) error {
	if _, ok := e.created.Load(dir); ok {
		return nil
	}
	e.dirLock.Lock(dir)
	defer e.dirLock.Unlock(dir)
	if _, ok := e.created.Load(dir); ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.IOError{Op: "create directory", Path: dir, Err: err}
	}
	e.created.Store(dir, struct{}{})
	return nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.IOError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.IOError{Op: "close", Path: path, Err: cerr}
		}
	}()
	writer := bufio.NewWriter(f)
	if err = png.Encode(writer, img); err != nil {
		return errors.IOError{Op: "encode", Path: path, Err: err}
	}
	if err = writer.Flush(); err != nil {
		return errors.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
