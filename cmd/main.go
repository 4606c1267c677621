package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/huddle/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{ConfigPath: "config.toml", Logger: logger})
	defer runner.Close()

	app := &cli.Command{
		Name:    "huddle",
		Usage:   "Watch, save and share football play clips from the terminal",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before:   runner.Before,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		runner.Close()
		if errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Fatal("please log in first: run `huddle auth login`", "error", err)
		}
		logger.Fatalf("application error: %v", err)
	}
}
