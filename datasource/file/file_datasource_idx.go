package file

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/errors"
)

// maxDimension bounds the rows and columns accepted from an image header
const maxDimension = 1 << 14

// Images is the decoded content of an IDX image file
type Images struct {
	Count  int
	Rows   int
	Cols   int
	Pixels []byte // Count*Rows*Cols greyscale bytes, row-major per image
}

// DecodeLabels reads an IDX label file: a big-endian (magic, count) header followed
// by one byte per label. path is used only in error messages.
func DecodeLabels(r io.Reader, path string) ([]byte, error) {
	var header [2]uint32
	if err := readHeader(r, path, header[:]); err != nil {
		return nil, err
	}
	if header[0] != LabelMagic {
		return nil, errors.FormatError{Path: path, Reason: fmt.Sprintf("label magic number %d, expected %d", header[0], LabelMagic)}
	}
	labels, err := readPayload(r, path, uint64(header[1]))
	if err != nil {
		return nil, err
	}
	for i, label := range labels {
		if int(label) >= fedsplit.NumLabels {
			return nil, errors.FormatError{Path: path, Reason: fmt.Sprintf("label %d at index %d is outside [0, %d)", label, i, fedsplit.NumLabels)}
		}
	}
	return labels, nil
}

// DecodeImages reads an IDX image file: a big-endian (magic, count, rows, cols) header
// followed by rows*cols bytes per image. path is used only in error messages.
func DecodeImages(r io.Reader, path string) (*Images, error) {
	var header [4]uint32
	if err := readHeader(r, path, header[:]); err != nil {
		return nil, err
	}
	if header[0] != ImageMagic {
		return nil, errors.FormatError{Path: path, Reason: fmt.Sprintf("image magic number %d, expected %d", header[0], ImageMagic)}
	}
	count, rows, cols := header[1], header[2], header[3]
	if rows == 0 || cols == 0 || rows > maxDimension || cols > maxDimension {
		return nil, errors.FormatError{Path: path, Reason: fmt.Sprintf("unsupported image dimensions %dx%d", rows, cols)}
	}
	pixels, err := readPayload(r, path, uint64(count)*uint64(rows)*uint64(cols))
	if err != nil {
		return nil, err
	}
	return &Images{
		Count:  int(count),
		Rows:   int(rows),
		Cols:   int(cols),
		Pixels: pixels,
	}, nil
}

func readHeader(r io.Reader, path string, header []uint32) error {
	err := binary.Read(r, binary.BigEndian, header)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.FormatError{Path: path, Reason: "truncated header"}
	} else if err != nil {
		return errors.IOError{Op: "read", Path: path, Err: err}
	}
	return nil
}

// readPayload reads exactly size bytes, without trusting size for the allocation
func readPayload(r io.Reader, path string, size uint64) ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return nil, errors.IOError{Op: "read", Path: path, Err: err}
	}
	if uint64(len(buf)) != size {
		return nil, errors.FormatError{Path: path, Reason: fmt.Sprintf("payload is %d bytes, header declares %d", len(buf), size)}
	}
	return buf, nil
}
