package fedsplit

import "fmt"

// NumLabels is the number of distinct classes in an MNIST-formatted dataset
const NumLabels = 10

// NoNode is supplied to an Emitter in place of a node index for records which
// belong to the held-out testing split
const NoNode = -1

// DatasetKind distinguishes the two splits of a dataset
type DatasetKind int

const (
	// Training is the split which is partitioned across nodes
	Training DatasetKind = iota
	// Testing is the held-out split, grouped by label only
	Testing
)

// String returns the directory-friendly name of a DatasetKind
func (k DatasetKind) String() string {
	switch k {
	case Training:
		return "training"
	case Testing:
		return "testing"
	default:
		return fmt.Sprintf("DatasetKind(%d)", int(k))
	}
}

// LabeledRecord identifies one dataset item by its position and class
type LabeledRecord struct {
	Label int // Label is the class of this record, in [0, NumLabels)
	Index int // Index is the position of this record within its split
}

// Record is a LabeledRecord along with its raw greyscale pixels (row-major)
type Record struct {
	LabeledRecord
	Pixels []byte
}

// Dataset is one decoded split of a labeled image dataset. The Index of each
// record is its position within Records.
type Dataset struct {
	Kind    DatasetKind
	Records []Record
	Rows    int
	Cols    int
}

// Labeled returns the LabeledRecords of this Dataset, in order
func (d *Dataset) Labeled() []LabeledRecord {
	res := make([]LabeledRecord, len(d.Records))
	for i := range d.Records {
		res[i] = d.Records[i].LabeledRecord
	}
	return res
}

// Assignment pairs a record with the node it has been assigned to
type Assignment struct {
	Record LabeledRecord
	Node   int
}

// AssignmentPlan is the ordered output of a partition run, one Assignment per processed record
type AssignmentPlan []Assignment

// NodeLabelCounts computes a nodeCount x NumLabels histogram of this plan
func (p AssignmentPlan) NodeLabelCounts(nodeCount int) [][]int {
	counts := make([][]int, nodeCount)
	for i := range counts {
		counts[i] = make([]int, NumLabels)
	}
	for _, a := range p {
		counts[a.Node][a.Record.Label]++
	}
	return counts
}
