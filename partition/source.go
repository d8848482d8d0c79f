package partition

import (
	"encoding/binary"
	"math/bits"
	"math/rand"

	"github.com/cespare/xxhash/v2"
)

// A Source supplies the random draws of the label-skewed regime
type Source interface {
	Intn(position int, n int) int // Intn returns a value in [0, n) for the record at position
}

// streamSource draws from a single shared stream, in call order
type streamSource struct {
	rng *rand.Rand
}

// NewStreamSource creates a Source backed by one seeded math/rand stream. Draws depend
// on the order in which positions are assigned, so it must be consumed sequentially.
func NewStreamSource(seed int64) Source {
	return &streamSource{rng: rand.New(rand.NewSource(seed))}
}

// FromRand creates a sequential Source from an existing generator
func FromRand(rng *rand.Rand) Source {
	return &streamSource{rng: rng}
}

// Intn returns the next draw from the stream in [0, n)
func (s *streamSource) Intn(position int, n int) int {
	return s.rng.Intn(n)
}

// PerRecordSource derives each draw from a hash of the run seed and the record position.
// It holds no mutable state, so positions may be assigned in any order and in parallel.
type PerRecordSource struct {
	seed uint64
}

// NewPerRecordSource creates a stateless Source for a seed
func NewPerRecordSource(seed uint64) *PerRecordSource {
	return &PerRecordSource{seed: seed}
}

// Intn returns the draw in [0, n) for the record at position
func (s *PerRecordSource) Intn(position int, n int) int {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], s.seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(position))
	// scale the 64-bit hash into [0, n) via the high word of the product
	hi, _ := bits.Mul64(xxhash.Sum64(buf[:]), uint64(n))
	return int(hi)
}
