package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "twothree",
		Usage:   "2-3 tree demo, verifier and index benchmark",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity level (eg: warn, info, debug)",
				Value:   "info",
				EnvVars: []string{"TWOTHREE_LOG_LEVEL", "LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "log output format: text or json",
				Value:   "text",
				EnvVars: []string{"TWOTHREE_LOG_FORMAT"},
			},
		},
	}
	app.Commands = []*cli.Command{
		cmdDemo,
		cmdFuzz,
		cmdBench,
		cmdHeight,
	}
	return app.Run(args)
}
