package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/btree-query-bench/twothree/index"
)

type WorkloadType string

const (
	OLTP     WorkloadType = "OLTP (90/10)"
	OLAP     WorkloadType = "OLAP (10/90)"
	Churn    WorkloadType = "Churn (50/50)"
	Boundary WorkloadType = "Boundary (Min/Max)"
)

// Workloads lists every mixed workload in the order the suite runs them.
var Workloads = []WorkloadType{OLTP, OLAP, Churn, Boundary}

// ctxCheckEvery bounds how many operations run between context checks.
const ctxCheckEvery = 1024

// ExecuteWorkload runs a mixed distribution of ops against idx. Keys are
// drawn uniformly from [0, ops) using rng, so a fixed seed replays the same
// operation sequence.
func ExecuteWorkload(ctx context.Context, idx index.Index, wType WorkloadType, ops int, rng *rand.Rand) error {
	if ops <= 0 {
		return nil
	}
	for i := 0; i < ops; i++ {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		choice := rng.IntN(100)
		key := rng.Int64N(int64(ops))

		var err error
		switch wType {
		case OLTP:
			if choice < 90 {
				_, err = idx.Contains(key)
			} else {
				err = idx.Insert(key)
			}
		case OLAP:
			if choice < 10 {
				_, err = idx.Contains(key)
			} else {
				err = idx.Insert(key)
			}
		case Churn:
			if choice < 50 {
				err = idx.Insert(key)
			} else {
				_, err = idx.Delete(key)
			}
		case Boundary:
			if choice < 50 {
				_, err = idx.Min()
			} else {
				_, err = idx.Max()
			}
			if errors.Is(err, index.ErrEmpty) {
				err = nil
			}
		default:
			return fmt.Errorf("bench: unknown workload %q", wType)
		}
		if err != nil {
			return fmt.Errorf("bench: %s op %d: %w", wType, i, err)
		}
	}
	return nil
}
