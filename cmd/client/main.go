package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/cli"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/client/config"
	"github.com/NomadNiko/nomadsoft-rn-boiler/internal/logging"
)

func main() {

	if err := run(config.LoadConfig()); err != nil {
		log.Fatalf("%v", err)
	}

}

func run(cfg *config.Config) error {
	var logFile io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logFile = f
	}

	logger, err := logging.New(logging.Opts{Level: cfg.LogLevel, Console: os.Stderr, File: logFile})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, nil, logger)
	if err != nil {
		return err
	}

	return app.Run(ctx)
}
