package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/btree-query-bench/twothree/bench"
)

var cmdHeight = &cli.Command{
	Name:  "height",
	Usage: "plot tree height against key count with its log bounds",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "max-n",
			Value: 100000,
		},
		&cli.IntFlag{
			Name:  "step",
			Value: 1000,
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "insert a random permutation drawn from this seed; 0 inserts in ascending order",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "chart file (PNG); empty prints the samples only",
			Value: "height.png",
		},
	},
	Action: func(cctx *cli.Context) error {
		logger := configLogger(cctx, os.Stderr)

		var rng *rand.Rand
		if seed := cctx.Uint64("seed"); seed != 0 {
			rng = rand.New(rand.NewPCG(seed, seed))
		}
		samples := bench.HeightCurve(cctx.Int("max-n"), cctx.Int("step"), rng)
		for _, s := range samples {
			if s.Height < s.Lower || s.Height > s.Upper {
				return fmt.Errorf("height %d at n=%d outside [%d, %d]", s.Height, s.N, s.Lower, s.Upper)
			}
			fmt.Fprintf(cctx.App.Writer, "%d\t%d\t%d\t%d\n", s.N, s.Height, s.Lower, s.Upper)
		}

		if path := cctx.String("out"); path != "" {
			if err := bench.PlotHeightCurve(samples, path); err != nil {
				return err
			}
			logger.Info("chart written", "path", path, "samples", len(samples))
		}
		return nil
	},
}
