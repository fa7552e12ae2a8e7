package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/btree-query-bench/twothree/bench"
	"github.com/btree-query-bench/twothree/index"
	"github.com/btree-query-bench/twothree/index/bplustree"
	"github.com/btree-query-bench/twothree/index/btree"
	"github.com/btree-query-bench/twothree/index/lsmtree"
	"github.com/btree-query-bench/twothree/index/pebblelsm"
	"github.com/btree-query-bench/twothree/index/twothree"
)

var cmdBench = &cli.Command{
	Name:  "bench",
	Usage: "run the workload suite over every index structure",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "scale",
			Usage:   "keys loaded before the workloads run",
			Value:   1000000,
			EnvVars: []string{"TWOTHREE_BENCH_SCALE"},
		},
		&cli.IntSliceFlag{
			Name:  "degrees",
			Usage: "B-tree and B+ tree minimum degrees to sweep",
			Value: cli.NewIntSlice(8, 32, 128),
		},
		&cli.IntSliceFlag{
			Name:  "lsm-thresholds",
			Usage: "LSM memtable sizes to sweep",
			Value: cli.NewIntSlice(1000, 10000),
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "CSV results file",
			Value: "results.csv",
		},
		&cli.StringFlag{
			Name:  "plot",
			Usage: "latency chart (PNG); empty to skip",
			Value: "results.png",
		},
		&cli.StringFlag{
			Name:  "html",
			Usage: "interactive latency chart (HTML); empty to skip",
		},
		&cli.StringFlag{
			Name:  "pebble-dir",
			Usage: "directory for the pebble store; empty keeps it in memory",
		},
		&cli.BoolFlag{
			Name:  "skip-pebble",
			Usage: "leave pebble out of the sweep",
		},
		&cli.StringFlag{
			Name:    "metrics-addr",
			Usage:   "serve prometheus metrics on this address while running",
			EnvVars: []string{"TWOTHREE_METRICS_ADDR"},
		},
		&cli.Uint64Flag{
			Name:    "seed",
			Value:   1,
			EnvVars: []string{"TWOTHREE_SEED"},
		},
	},
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx, os.Stderr)
		ctx, cancel := signalContext(cctx)
		defer cancel()

		eg, ctx := errgroup.WithContext(ctx)
		metricsCtx, stopMetrics := context.WithCancel(ctx)
		defer stopMetrics()

		if addr := cctx.String("metrics-addr"); addr != "" {
			eg.Go(func() error {
				return bench.ServeMetrics(metricsCtx, addr, logger)
			})
		}
		eg.Go(func() error {
			defer stopMetrics()
			return runBench(ctx, cctx, logger)
		})
		return eg.Wait()
	},
}

type benchTarget struct {
	name string
	conf int
	open func() (index.Index, error)
}

func benchTargets(cctx *cli.Context) ([]benchTarget, error) {
	targets := []benchTarget{
		{"TwoThree", 3, func() (index.Index, error) { return twothree.NewIndex(), nil }},
	}
	for _, d := range cctx.IntSlice("degrees") {
		targets = append(targets,
			benchTarget{"B-Tree", d, func() (index.Index, error) { return btree.NewBTree(d), nil }},
			benchTarget{"BPlusTree", d, func() (index.Index, error) { return bplustree.NewBPlusTree(d), nil }},
		)
	}
	for _, t := range cctx.IntSlice("lsm-thresholds") {
		targets = append(targets, benchTarget{"LSM-Tree", t, func() (index.Index, error) { return lsmtree.NewLSM(t), nil }})
	}
	if !cctx.Bool("skip-pebble") {
		dir := cctx.String("pebble-dir")
		if dir != "" {
			dir = filepath.Join(dir, "bench-"+strconv.FormatUint(cctx.Uint64("seed"), 10))
			if err := os.RemoveAll(dir); err != nil {
				return nil, err
			}
		}
		targets = append(targets, benchTarget{"Pebble", 0, func() (index.Index, error) { return pebblelsm.Open(dir) }})
	}
	return targets, nil
}

func runBench(ctx context.Context, cctx *cli.Context, logger *slog.Logger) error {
	targets, err := benchTargets(cctx)
	if err != nil {
		return err
	}

	f, err := createFile(cctx.String("out"))
	if err != nil {
		return err
	}
	defer f.Close()
	rec, err := bench.NewRecorder(f)
	if err != nil {
		return err
	}

	suite := bench.NewSuite(cctx.Int("scale"), cctx.Uint64("seed"), rec, logger)
	for _, tg := range targets {
		idx, err := tg.open()
		if err != nil {
			return fmt.Errorf("opening %s: %w", tg.name, err)
		}
		if err := suite.Run(ctx, tg.name, tg.conf, idx); err != nil {
			return err
		}
	}
	if err := rec.Flush(); err != nil {
		return err
	}
	logger.Info("benchmark complete", "results", cctx.String("out"), "structures", len(targets))

	if path := cctx.String("plot"); path != "" {
		if err := bench.Plot(suite.Results(), path); err != nil {
			return err
		}
		logger.Info("chart written", "path", path)
	}
	if path := cctx.String("html"); path != "" {
		if err := bench.PlotHTML(suite.Results(), path); err != nil {
			return err
		}
		logger.Info("chart written", "path", path)
	}
	return nil
}
