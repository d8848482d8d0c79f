package file

import (
	"fmt"
	"io"
	"log"

	"github.com/go-sif/fedsplit"
	"github.com/go-sif/fedsplit/errors"
)

const (
	// LabelMagic is the magic number heading an IDX label file
	LabelMagic = 2049
	// ImageMagic is the magic number heading an IDX image file
	ImageMagic = 2051
)

// DataSource is a directory containing IDX files
type DataSource struct {
	dir string
}

// CreateDataSource is a factory for DataSources
func CreateDataSource(dir string) *DataSource {
	return &DataSource{dir: dir}
}

// ToString returns a string representation of this DataSource
func (fs *DataSource) ToString() string {
	return fmt.Sprintf("IDX directory: %s", fs.dir)
}

// SplitFileNames returns the base names of the label and image files for a split
func SplitFileNames(kind fedsplit.DatasetKind) (labels string, images string, err error) {
	switch kind {
	case fedsplit.Training:
		return "train-labels-idx1-ubyte", "train-images-idx3-ubyte", nil
	case fedsplit.Testing:
		return "t10k-labels-idx1-ubyte", "t10k-images-idx3-ubyte", nil
	default:
		return "", "", errors.ConfigError{Field: "DatasetKind", Value: kind, Reason: "must be training or testing"}
	}
}

// Read decodes a split from this directory
func (fs *DataSource) Read(kind fedsplit.DatasetKind) (*fedsplit.Dataset, error) {
	labelName, imageName, err := SplitFileNames(kind)
	if err != nil {
		return nil, err
	}

	lf, labelPath, err := openSplitFile(fs.dir, labelName)
	if err != nil {
		return nil, err
	}
	defer closeFile(lf, labelPath)
	labels, err := DecodeLabels(lf, labelPath)
	if err != nil {
		return nil, err
	}

	imf, imagePath, err := openSplitFile(fs.dir, imageName)
	if err != nil {
		return nil, err
	}
	defer closeFile(imf, imagePath)
	images, err := DecodeImages(imf, imagePath)
	if err != nil {
		return nil, err
	}

	if len(labels) != images.Count {
		return nil, errors.FormatError{
			Path:   imagePath,
			Reason: fmt.Sprintf("image count %d does not match label count %d in %s", images.Count, len(labels), labelPath),
		}
	}
	size := images.Rows * images.Cols
	records := make([]fedsplit.Record, len(labels))
	for i, label := range labels {
		records[i] = fedsplit.Record{
			LabeledRecord: fedsplit.LabeledRecord{Label: int(label), Index: i},
			Pixels:        images.Pixels[i*size : (i+1)*size : (i+1)*size],
		}
	}
	return &fedsplit.Dataset{
		Kind:    kind,
		Records: records,
		Rows:    images.Rows,
		Cols:    images.Cols,
	}, nil
}

func closeFile(c io.Closer, path string) {
	if err := c.Close(); err != nil {
		log.Printf("WARNING: couldn't close file %s: %s", path, err)
	}
}
