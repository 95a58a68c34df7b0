package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/plana/internal/buildinfo"
	"github.com/dmitrijs2005/plana/internal/client/cli"
	"github.com/dmitrijs2005/plana/internal/client/config"
	"github.com/dmitrijs2005/plana/internal/logging"
)

func newLogger(cfg *config.Config) (logging.Logger, func(), error) {
	switch cfg.LogBackend {
	case "zap":
		z, err := logging.NewZapDevelopment(cfg.Debug)
		if err != nil {
			return nil, nil, err
		}
		return z, func() { _ = z.Sync() }, nil
	case "", "slog":
		return logging.NewSlogText(os.Stderr, cfg.Debug), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown log backend %q", cfg.LogBackend)
}

// loadConfig turns config loading panics into an error.
func loadConfig() (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("config: %v", r)
		}
	}()
	return config.LoadConfig(), nil
}

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, flush, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer flush()

	app, err := cli.Bootstrap(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
