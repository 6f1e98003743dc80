package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Sinduaditya/fisikaap-sub000/internal/buildinfo"
	"github.com/Sinduaditya/fisikaap-sub000/internal/logging"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server"
	"github.com/Sinduaditya/fisikaap-sub000/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewJSON(os.Stdout, level)

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, err.Error())
		os.Exit(1)
	}

	app.Run(ctx)
}
