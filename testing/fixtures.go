// Package testing provides helpers for generating synthetic MNIST-formatted datasets,
// for use in the tests of DataSources, Emitters and complete split runs.
package testing

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/datasource/file"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// CreateTestDataset builds a deterministic dataset whose pixels encode the record index
func CreateTestDataset(kind fedsplit.DatasetKind, numRecords int, rows int, cols int, seed int64) *fedsplit.Dataset {
	rng := rand.New(rand.NewSource(seed))
	records := make([]fedsplit.Record, numRecords)
	for i := range records {
		pixels := make([]byte, rows*cols)
		for j := range pixels {
			pixels[j] = byte((i + j) % 256)
		}
		records[i] = fedsplit.Record{
			LabeledRecord: fedsplit.LabeledRecord{Label: rng.Intn(fedsplit.NumLabels), Index: i},
			Pixels:        pixels,
		}
	}
	return &fedsplit.Dataset{Kind: kind, Records: records, Rows: rows, Cols: cols}
}

// WriteIDX writes a dataset into dir as a pair of IDX files, compressed according to
// suffix (one of file.Suffixes)
func WriteIDX(dir string, ds *fedsplit.Dataset, suffix string) error {
	labelName, imageName, err := file.SplitFileNames(ds.Kind)
	if err != nil {
		return err
	}
	err = writeCompressed(filepath.Join(dir, labelName+suffix), suffix, func(w io.Writer) error {
		if err := binary.Write(w, binary.BigEndian, []uint32{file.LabelMagic, uint32(len(ds.Records))}); err != nil {
			return err
		}
		for _, rec := range ds.Records {
			if _, err := w.Write([]byte{byte(rec.Label)}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return writeCompressed(filepath.Join(dir, imageName+suffix), suffix, func(w io.Writer) error {
		header := []uint32{file.ImageMagic, uint32(len(ds.Records)), uint32(ds.Rows), uint32(ds.Cols)}
		if err := binary.Write(w, binary.BigEndian, header); err != nil {
			return err
		}
		for _, rec := range ds.Records {
			if _, err := w.Write(rec.Pixels); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCompressed(path string, suffix string, body func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	var w io.WriteCloser
	switch suffix {
	case "":
		w = nopWriteCloser{bw}
	case ".gz":
		w = gzip.NewWriter(bw)
	case ".zst":
		w, err = zstd.NewWriter(bw)
		if err != nil {
			return err
		}
	case ".lz4":
		w = lz4.NewWriter(bw)
	default:
		return fmt.Errorf("Unsupported suffix %q", suffix)
	}
	if err = body(w); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return bw.Flush()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
