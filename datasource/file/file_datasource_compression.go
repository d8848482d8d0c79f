package file

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sif/fedsplit/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Suffixes lists the file name suffixes probed for a split file, in order of preference.
// The empty suffix is the uncompressed file.
var Suffixes = []string{"", ".gz", ".zst", ".lz4"}

// openSplitFile opens the first existing variant of name in dir, decompressing it if necessary
func openSplitFile(dir string, name string) (io.ReadCloser, string, error) {
	for _, suffix := range Suffixes {
		path := filepath.Join(dir, name+suffix)
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, path, errors.IOError{Op: "open", Path: path, Err: err}
		}
		rc, err := decompress(f, path)
		if err != nil {
			f.Close()
			return nil, path, err
		}
		return rc, path, nil
	}
	path := filepath.Join(dir, name)
	return nil, path, errors.IOError{Op: "open", Path: path, Err: os.ErrNotExist}
}

// decompress wraps f according to the compression implied by path
func decompress(f *os.File, path string) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.FormatError{Path: path, Reason: err.Error()}
		}
		return &stackedReadCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, errors.FormatError{Path: path, Reason: err.Error()}
		}
		return &stackedReadCloser{Reader: zr, closers: []io.Closer{zr.IOReadCloser(), f}}, nil
	case strings.HasSuffix(path, ".lz4"):
		return &stackedReadCloser{Reader: lz4.NewReader(f), closers: []io.Closer{f}}, nil
	default:
		return f, nil
	}
}

// stackedReadCloser closes a decompressor and its underlying file, innermost first
type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReadCloser) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
