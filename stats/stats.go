package stats

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-sif/fedsplit"
)

// Phase names a timed portion of the processing of one split
type Phase string

const (
	// ReadPhase is the decoding of a split from its DataSource
	ReadPhase Phase = "read"
	// AssignPhase is the computation of node assignments (or label groups)
	AssignPhase Phase = "assign"
	// EmitPhase is the writing of records to an Emitter
	EmitPhase Phase = "emit"
)

type phaseKey struct {
	kind  fedsplit.DatasetKind
	phase Phase
}

// RunStatistics contains statistics about a split run
type RunStatistics struct {
	recordsEmitted int64 // first, for 64-bit alignment of atomic operations
	lock           sync.Mutex
	started        bool
	startTime      time.Time
	totalRuntime   time.Duration
	phaseStarts    map[phaseKey]time.Time
	phaseRuntimes  map[phaseKey]time.Duration
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.phaseStarts = make(map[phaseKey]time.Time)
		rs.phaseRuntimes = make(map[phaseKey]time.Duration)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.totalRuntime = time.Since(rs.startTime)
}

// StartPhase tracks the beginning of a Phase for a split
func (rs *RunStatistics) StartPhase(kind fedsplit.DatasetKind, phase Phase) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.phaseStarts[phaseKey{kind, phase}] = time.Now()
}

// EndPhase tracks the end of a Phase for a split
func (rs *RunStatistics) EndPhase(kind fedsplit.DatasetKind, phase Phase) {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	k := phaseKey{kind, phase}
	if start, ok := rs.phaseStarts[k]; ok {
		rs.phaseRuntimes[k] = time.Since(start)
	}
}

// AddRecordsEmitted counts records written to an Emitter. Safe for concurrent use.
func (rs *RunStatistics) AddRecordsEmitted(n int64) {
	atomic.AddInt64(&rs.recordsEmitted, n)
}

// GetStartTime returns the start time of the run
func (rs *RunStatistics) GetStartTime() time.Time {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.startTime
}

// GetRuntime returns the running time of the run, or the total runtime once finished
func (rs *RunStatistics) GetRuntime() time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	if rs.totalRuntime > 0 {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetPhaseRuntime returns the recorded runtime of a completed Phase, or 0
func (rs *RunStatistics) GetPhaseRuntime(kind fedsplit.DatasetKind, phase Phase) time.Duration {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	return rs.phaseRuntimes[phaseKey{kind, phase}]
}

// GetNumRecordsEmitted returns the number of records which have been emitted so far
func (rs *RunStatistics) GetNumRecordsEmitted() int64 {
	return atomic.LoadInt64(&rs.recordsEmitted)
}
