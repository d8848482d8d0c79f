// Package manifest records how a split run laid out its output, so that experiments can
// recover the per-node label distribution without walking the generated tree.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-sif/fedsplit/errors"
	"github.com/go-sif/fedsplit/partition"
	"github.com/go-sif/fedsplit/split"
	"github.com/tidwall/gjson"
)

// FileName is the name of the manifest written at the root of an output directory
const FileName = "manifest.json"

// Manifest is the serialized description of a split run
type Manifest struct {
	RunID           string    `json:"runId"`
	CreatedAt       time.Time `json:"createdAt"`
	NodeCount       int       `json:"nodeCount"`
	UniformFraction float64   `json:"uniformFraction"`
	SampleLimit     int       `json:"sampleLimit"`
	Seed            int64     `json:"seed"`
	RangePolicy     string    `json:"rangePolicy"`
	Rows            int       `json:"rows"`
	Cols            int       `json:"cols"`
	NodeLabelCounts [][]int   `json:"nodeLabelCounts"`
	TestLabelCounts []int     `json:"testLabelCounts,omitempty"`
}

// FromResult builds a Manifest for a completed run
func FromResult(res *split.Result, opts *split.Options) *Manifest {
	policy := "reject"
	if opts.RangePolicy == partition.ClampEmptyRange {
		policy = "clamp"
	}
	return &Manifest{
		RunID:           res.RunID,
		CreatedAt:       time.Now().UTC(),
		NodeCount:       opts.NodeCount,
		UniformFraction: opts.UniformFraction,
		SampleLimit:     opts.SampleLimit,
		Seed:            opts.Seed,
		RangePolicy:     policy,
		Rows:            res.Rows,
		Cols:            res.Cols,
		NodeLabelCounts: res.NodeLabelCounts,
		TestLabelCounts: res.TestLabelCounts,
	}
}

// Write stores a Manifest as FileName within dir
func Write(dir string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// ReadNodeCounts reads the per-node, per-label training counts from the manifest in dir
func ReadNodeCounts(dir string) ([][]int, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IOError{Op: "read", Path: path, Err: err}
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.FormatError{Path: path, Reason: "invalid JSON"}
	}
	nodes := gjson.GetBytes(data, "nodeLabelCounts")
	if !nodes.IsArray() {
		return nil, errors.FormatError{Path: path, Reason: "nodeLabelCounts is missing or not an array"}
	}
	var counts [][]int
	for i, node := range nodes.Array() {
		if !node.IsArray() {
			return nil, errors.FormatError{Path: path, Reason: fmt.Sprintf("nodeLabelCounts[%d] is not an array", i)}
		}
		labels := node.Array()
		row := make([]int, len(labels))
		for j, c := range labels {
			row[j] = int(c.Int())
		}
		counts = append(counts, row)
	}
	return counts, nil
}

// ReadRunID reads the identifier of the run which produced the manifest in dir
func ReadRunID(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.IOError{Op: "read", Path: path, Err: err}
	}
	id := gjson.GetBytes(data, "runId")
	if !id.Exists() {
		return "", errors.FormatError{Path: path, Reason: "runId is missing"}
	}
	return id.String(), nil
}
