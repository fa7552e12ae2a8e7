package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/btree-query-bench/twothree/verify"
)

var cmdFuzz = &cli.Command{
	Name:  "fuzz",
	Usage: "check the tree against a sorted slice over random insert/remove sequences",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:    "seed",
			Value:   verify.DefaultConfig().Seed,
			EnvVars: []string{"TWOTHREE_SEED"},
		},
		&cli.IntFlag{
			Name:  "rounds",
			Value: verify.DefaultConfig().Rounds,
		},
		&cli.IntFlag{
			Name:  "ops",
			Usage: "mutations per round",
			Value: verify.DefaultConfig().Ops,
		},
		&cli.Int64Flag{
			Name:  "key-space",
			Usage: "keys are drawn from [0, key-space)",
			Value: verify.DefaultConfig().KeySpace,
		},
	},
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx, os.Stderr)
		ctx, cancel := signalContext(cctx)
		defer cancel()

		cfg := verify.Config{
			Seed:     cctx.Uint64("seed"),
			Rounds:   cctx.Int("rounds"),
			Ops:      cctx.Int("ops"),
			KeySpace: cctx.Int64("key-space"),
		}
		rep, err := verify.Run(ctx, cfg, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cctx.App.Writer, "ok: %d rounds, %d steps, %d inserts, %d removes, max size %d, max height %d\n",
			rep.Rounds, rep.Steps, rep.Inserts, rep.Removes, rep.MaxSize, rep.MaxHeight)
		return nil
	},
}
