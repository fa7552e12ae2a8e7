package bench

import (
	"encoding/csv"
	"io"
	"runtime"
	"strconv"
)

// BenchResult includes Objects for GC pressure analysis.
type BenchResult struct {
	Name      string
	Config    string
	Operation string
	LatencyNs int64
	MemMB     uint64
	Objects   uint64
}

type MemoryStats struct {
	AllocMB      uint64
	TotalAllocMB uint64
	HeapObjects  uint64
}

// GetDetailedMem reports live heap usage.
func GetDetailedMem() MemoryStats {
	var m runtime.MemStats
	// Force GC to ensure we measure actual live data, not garbage
	runtime.GC()
	runtime.ReadMemStats(&m)
	return MemoryStats{
		AllocMB:      m.Alloc / 1024 / 1024,
		TotalAllocMB: m.TotalAlloc / 1024 / 1024,
		HeapObjects:  m.HeapObjects,
	}
}

var header = []string{"Structure", "Config", "TestType", "LatencyNs", "MemMB", "HeapObjects"}

// Recorder writes BenchResults as CSV rows, one per result.
type Recorder struct {
	w *csv.Writer
}

// NewRecorder writes the header row and returns a Recorder appending to w.
func NewRecorder(w io.Writer) (*Recorder, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, err
	}
	return &Recorder{w: cw}, nil
}

func (r *Recorder) Record(res BenchResult) error {
	return r.w.Write([]string{
		res.Name,
		res.Config,
		res.Operation,
		strconv.FormatInt(res.LatencyNs, 10),
		strconv.FormatUint(res.MemMB, 10),
		strconv.FormatUint(res.Objects, 10),
	})
}

// Flush writes any buffered rows and reports the first write error.
func (r *Recorder) Flush() error {
	r.w.Flush()
	return r.w.Error()
}
