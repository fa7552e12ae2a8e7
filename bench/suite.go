package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/btree-query-bench/twothree/index"
)

// Suite runs the same load, workload and scan phases against every index
// handed to Run and records one BenchResult per phase.
type Suite struct {
	Scale    int
	Rng      *rand.Rand
	Recorder *Recorder // optional
	Logger   *slog.Logger

	results []BenchResult
}

// NewSuite returns a Suite of the given scale driven by a PCG source seeded
// with seed.
func NewSuite(scale int, seed uint64, rec *Recorder, logger *slog.Logger) *Suite {
	if logger == nil {
		logger = slog.Default()
	}
	return &Suite{
		Scale:    scale,
		Rng:      rand.New(rand.NewPCG(seed, seed)),
		Recorder: rec,
		Logger:   logger,
	}
}

// Results returns every result recorded so far.
func (s *Suite) Results() []BenchResult { return s.results }

// Run benchmarks idx and closes it afterwards.
func (s *Suite) Run(ctx context.Context, name string, conf int, idx index.Index) (err error) {
	log := s.Logger.With("structure", name, "config", conf)
	log.Info("running suite", "scale", s.Scale)
	confStr := strconv.Itoa(conf)
	n := s.Scale

	defer func() {
		if cerr := idx.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("bench: close %s: %w", name, cerr)
		}
	}()

	// 1. Pure Insert (Initial Load)
	start := time.Now()
	for k := 0; k < n; k++ {
		if k%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := idx.Insert(int64(k)); err != nil {
			return fmt.Errorf("bench: load %s: %w", name, err)
		}
	}
	elapsed := time.Since(start)
	observePhase(name, "load", n, elapsed)

	// Measure memory immediately after load but before workloads
	stats := GetDetailedMem()
	if err := s.record(BenchResult{
		Name:      name,
		Config:    confStr,
		Operation: "Footprint_SteadyState",
		LatencyNs: perOp(elapsed, n),
		MemMB:     stats.AllocMB,
		Objects:   stats.HeapObjects,
	}); err != nil {
		return err
	}

	// 2. Mixed workloads
	for _, w := range Workloads {
		ops := n / 2
		if w == Boundary {
			ops = min(n, 100)
		}
		start = time.Now()
		if err := ExecuteWorkload(ctx, idx, w, ops, s.Rng); err != nil {
			return err
		}
		elapsed = time.Since(start)
		observePhase(name, string(w), ops, elapsed)
		log.Debug("workload done", "workload", w, "ops", ops, "elapsed", elapsed)

		stats = GetDetailedMem()
		if err := s.record(BenchResult{name, confStr, "Workload_" + phaseName(w), perOp(elapsed, ops), stats.AllocMB, stats.HeapObjects}); err != nil {
			return err
		}
	}

	// 3. Full ordered scan
	start = time.Now()
	it, err := idx.Scan()
	if err != nil {
		return fmt.Errorf("bench: scan %s: %w", name, err)
	}
	keys, err := index.Collect(it)
	if err != nil {
		return fmt.Errorf("bench: scan %s: %w", name, err)
	}
	elapsed = time.Since(start)
	observePhase(name, "scan", len(keys), elapsed)
	if len(keys) != idx.Len() {
		return fmt.Errorf("bench: scan %s returned %d keys, Len reports %d", name, len(keys), idx.Len())
	}
	stats = GetDetailedMem()
	if err := s.record(BenchResult{name, confStr, "Workload_Scan", perOp(elapsed, len(keys)), stats.AllocMB, stats.HeapObjects}); err != nil {
		return err
	}

	log.Info("suite finished", "keys", len(keys))
	return nil
}

func (s *Suite) record(res BenchResult) error {
	s.results = append(s.results, res)
	if s.Recorder == nil {
		return nil
	}
	return s.Recorder.Record(res)
}

func perOp(d time.Duration, ops int) int64 {
	if ops <= 0 {
		return 0
	}
	return d.Nanoseconds() / int64(ops)
}

func phaseName(w WorkloadType) string {
	switch w {
	case OLTP:
		return "OLTP"
	case OLAP:
		return "OLAP"
	case Churn:
		return "Churn"
	case Boundary:
		return "Boundary"
	}
	return string(w)
}
