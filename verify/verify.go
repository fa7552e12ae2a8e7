// Package verify drives a 2-3 tree and the sorted-slice reference index
// through the same random insert/remove sequence and fails on the first
// step where they disagree or the tree's structure is broken.
package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/btree-query-bench/twothree/index"
	"github.com/btree-query-bench/twothree/index/listindex"
	"github.com/btree-query-bench/twothree/index/twothree"
)

type Config struct {
	Seed     uint64
	Rounds   int
	Ops      int   // mutations per round
	KeySpace int64 // keys are drawn from [0, KeySpace)
}

func DefaultConfig() Config {
	return Config{Seed: 1, Rounds: 20, Ops: 2000, KeySpace: 512}
}

func (c Config) validate() error {
	switch {
	case c.Rounds <= 0:
		return fmt.Errorf("verify: rounds must be positive, got %d", c.Rounds)
	case c.Ops <= 0:
		return fmt.Errorf("verify: ops must be positive, got %d", c.Ops)
	case c.KeySpace <= 0:
		return fmt.Errorf("verify: key space must be positive, got %d", c.KeySpace)
	}
	return nil
}

type Report struct {
	Rounds    int
	Steps     int
	Inserts   int // inserts that added a key
	Removes   int // removes that deleted a key
	MaxSize   int
	MaxHeight int
}

// DivergenceError pins down the first failing step so it can be replayed
// with the same seed.
type DivergenceError struct {
	Seed  uint64
	Round int
	Step  int
	Op    string
	Key   int64
	Err   error
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("verify: seed %d round %d step %d (%s %d): %v", e.Seed, e.Round, e.Step, e.Op, e.Key, e.Err)
}

func (e *DivergenceError) Unwrap() error { return e.Err }

var ErrMismatch = errors.New("tree and reference disagree")

// Run executes cfg.Rounds independent rounds. Round r draws from a PCG
// source seeded with (cfg.Seed, r), so any failing round replays alone.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var rep Report
	if err := cfg.validate(); err != nil {
		return rep, err
	}

	for round := 0; round < cfg.Rounds; round++ {
		rng := rand.New(rand.NewPCG(cfg.Seed, uint64(round)))
		if err := runRound(ctx, cfg, round, rng, &rep); err != nil {
			return rep, err
		}
		rep.Rounds++
		logger.Debug("round passed", "round", round, "steps", rep.Steps)
	}

	logger.Info("verification passed",
		"seed", cfg.Seed,
		"rounds", rep.Rounds,
		"steps", rep.Steps,
		"max_size", rep.MaxSize,
		"max_height", rep.MaxHeight,
	)
	return rep, nil
}

func runRound(ctx context.Context, cfg Config, round int, rng *rand.Rand, rep *Report) error {
	tree := twothree.New[int64]()
	oracle := listindex.NewListIndex()

	for step := 0; step < cfg.Ops; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := rng.Int64N(cfg.KeySpace)
		op := "insert"
		if rng.IntN(100) >= 60 {
			op = "remove"
		}

		fail := func(err error) error {
			return &DivergenceError{Seed: cfg.Seed, Round: round, Step: step, Op: op, Key: key, Err: err}
		}

		if op == "insert" {
			had := tree.Contains(key)
			tree.Insert(key)
			_ = oracle.Insert(key)
			if !had {
				rep.Inserts++
			}
		} else {
			got := tree.Remove(key)
			want, _ := oracle.Delete(key)
			if got != want {
				return fail(fmt.Errorf("%w: remove reported %v, reference %v", ErrMismatch, got, want))
			}
			if got {
				rep.Removes++
			}
		}
		rep.Steps++

		if err := compare(tree, oracle, key); err != nil {
			return fail(err)
		}
		rep.MaxSize = max(rep.MaxSize, tree.Len())
		rep.MaxHeight = max(rep.MaxHeight, tree.Height())
	}
	return nil
}

// compare checks the tree's invariants and every observable against the
// reference after a mutation of key.
func compare(tree *twothree.Tree[int64], oracle *listindex.ListIndex, key int64) error {
	if err := tree.Check(); err != nil {
		return err
	}
	if tree.Len() != oracle.Len() {
		return fmt.Errorf("%w: size %d, reference %d", ErrMismatch, tree.Len(), oracle.Len())
	}
	want, _ := oracle.Contains(key)
	if got := tree.Contains(key); got != want {
		return fmt.Errorf("%w: contains reported %v, reference %v", ErrMismatch, got, want)
	}

	keys := tree.Keys()
	if !slices.IsSorted(keys) {
		return fmt.Errorf("%w: keys not sorted: %v", ErrMismatch, keys)
	}
	if !slices.Equal(keys, oracle.Keys) {
		return fmt.Errorf("%w: keys %v, reference %v", ErrMismatch, keys, oracle.Keys)
	}

	lo, err := tree.Min()
	wantLo, wantErr := oracle.Min()
	if (err == nil) != (wantErr == nil) || lo != wantLo {
		return fmt.Errorf("%w: min %d (%v), reference %d (%v)", ErrMismatch, lo, err, wantLo, wantErr)
	}
	if err != nil && !errors.Is(err, twothree.ErrEmptyTree) {
		return err
	}
	if wantErr != nil && !errors.Is(wantErr, index.ErrEmpty) {
		return wantErr
	}
	hi, err := tree.Max()
	wantHi, wantErr := oracle.Max()
	if (err == nil) != (wantErr == nil) || hi != wantHi {
		return fmt.Errorf("%w: max %d (%v), reference %d (%v)", ErrMismatch, hi, err, wantHi, wantErr)
	}
	return nil
}
