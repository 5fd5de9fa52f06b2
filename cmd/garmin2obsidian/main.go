package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/garmin2obsidian/internal/app"
	"github.com/dmitrijs2005/garmin2obsidian/internal/buildinfo"
	"github.com/dmitrijs2005/garmin2obsidian/internal/common"
	"github.com/dmitrijs2005/garmin2obsidian/internal/config"
	"github.com/dmitrijs2005/garmin2obsidian/internal/logging"
	"github.com/dmitrijs2005/garmin2obsidian/internal/tracing"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	parsed, err := config.ParseArgs(args)
	switch {
	case errors.Is(err, flag.ErrHelp):
		config.PrintUsage(os.Stdout)
		return app.ExitOK
	case err != nil:
		fmt.Fprintf(os.Stderr, "%s: %v\n", common.AppName, err)
		config.PrintUsage(os.Stderr)
		return app.ExitCode(err)
	case parsed.Version:
		buildinfo.PrintBuildData(os.Stdout)
		return app.ExitOK
	}

	ctx := context.Background()

	cfg, err := config.LoadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", common.AppName, err)
		return app.ExitCode(err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)

	shutdown, err := tracing.Init(ctx, buildinfo.Version())
	if err != nil {
		logger.Warn(ctx, "tracing disabled", "error", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn(ctx, "flushing traces", "error", err)
		}
	}()

	a, err := app.NewApp(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", common.AppName, err)
		return app.ExitCode(err)
	}

	if err := a.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", common.AppName, err)
		return app.ExitCode(err)
	}
	return app.ExitOK
}
