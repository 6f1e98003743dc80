package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sinduaditya/fisikaap-sub000/internal/buildinfo"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/cli"
	"github.com/Sinduaditya/fisikaap-sub000/internal/client/config"
	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
)

func main() {

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	if cfg.Debug {
		buildinfo.PrintBuildData(os.Stderr)
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewText(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		stop()
		log.Fatalf("%v", err)
	}

	ok := cli.Execute(ctx, app, os.Args[1:])

	if err := app.Close(); err != nil {
		logger.Warn(ctx, "closing local database", "error", err)
	}
	stop()

	if !ok {
		os.Exit(1)
	}

}
