package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/eazyshop/internal/accounts"
	"github.com/dmitrijs2005/eazyshop/internal/auth"
	"github.com/dmitrijs2005/eazyshop/internal/buildinfo"
	"github.com/dmitrijs2005/eazyshop/internal/cli"
	"github.com/dmitrijs2005/eazyshop/internal/config"
	"github.com/dmitrijs2005/eazyshop/internal/handoff"
	"github.com/dmitrijs2005/eazyshop/internal/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := accounts.Open(ctx, cfg.StorageDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "open credential store", "driver", cfg.StorageDriver, "error", err)
		return err
	}
	defer repo.Close()

	if n, err := repo.Count(ctx); err == nil {
		logger.Info(ctx, "credential store ready", "driver", cfg.StorageDriver, "accounts", n)
	}

	hasher, err := auth.NewHasher(cfg)
	if err != nil {
		return err
	}

	svc, err := auth.NewService(repo, hasher, logger)
	if err != nil {
		return err
	}

	issuer := handoff.NewIssuer([]byte(cfg.HandoffSecret), cfg.HandoffTTL)

	app := cli.NewApp(svc, issuer, logger, os.Stdin, os.Stdout)
	return app.Run(ctx)
}
