package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btree-query-bench/twothree/index/listindex"
	"github.com/btree-query-bench/twothree/index/twothree"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRunPasses(t *testing.T) {
	for _, cfg := range []Config{
		DefaultConfig(),
		{Seed: 99, Rounds: 5, Ops: 3000, KeySpace: 64},
		{Seed: 7, Rounds: 3, Ops: 500, KeySpace: 4},
		{Seed: 3, Rounds: 2, Ops: 4000, KeySpace: 100000},
	} {
		t.Run(fmt.Sprintf("seed=%d/space=%d", cfg.Seed, cfg.KeySpace), func(t *testing.T) {
			rep, err := Run(context.Background(), cfg, quiet)
			require.NoError(t, err)
			assert.Equal(t, cfg.Rounds, rep.Rounds)
			assert.Equal(t, cfg.Rounds*cfg.Ops, rep.Steps)
			assert.Positive(t, rep.Inserts)
			assert.LessOrEqual(t, rep.MaxSize, int(cfg.KeySpace))
		})
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := Config{Seed: 11, Rounds: 4, Ops: 800, KeySpace: 256}
	a, err := Run(context.Background(), cfg, quiet)
	require.NoError(t, err)
	b, err := Run(context.Background(), cfg, quiet)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunRejectsBadConfig(t *testing.T) {
	for _, cfg := range []Config{
		{Rounds: 0, Ops: 1, KeySpace: 1},
		{Rounds: 1, Ops: 0, KeySpace: 1},
		{Rounds: 1, Ops: 1, KeySpace: 0},
	} {
		_, err := Run(context.Background(), cfg, quiet)
		assert.Error(t, err)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := Run(ctx, DefaultConfig(), quiet)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rep.Steps)
}

func TestCompareReportsMismatch(t *testing.T) {
	tree := twothree.Of[int64](1, 2, 3)
	oracle := listindexOf(1, 2)

	err := compare(tree, oracle, 3)
	assert.ErrorIs(t, err, ErrMismatch)

	div := &DivergenceError{Seed: 1, Round: 2, Step: 3, Op: "insert", Key: 3, Err: err}
	assert.ErrorIs(t, div, ErrMismatch)
	var target *DivergenceError
	assert.True(t, errors.As(error(div), &target))
	assert.Contains(t, div.Error(), "seed 1 round 2 step 3 (insert 3)")
}

func listindexOf(keys ...int64) *listindex.ListIndex {
	l := listindex.NewListIndex()
	for _, k := range keys {
		_ = l.Insert(k)
	}
	return l
}
