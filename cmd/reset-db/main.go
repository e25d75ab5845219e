package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/lmnh_kiosk/config"
	"github.com/Gunvolt24/lmnh_kiosk/internal/repo/postgres"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/ctxmeta"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/logger"
)

// Утилита очистки: удаляет все строки из exhibition_help и exhibition_rating.
func main() {
	cmd := &cobra.Command{
		Use:           "reset-db",
		Short:         "Delete every row from exhibition_help and exhibition_rating",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "reset-db: %v\n", err)
		os.Exit(1)
	}
}

func run(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = ctxmeta.WithRunID(ctx, ctxmeta.NewRunID())

	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return err
	}
	defer func() { _ = cleanupLogger() }()

	pool, err := postgres.NewPool(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		logg.Errorf(ctx, "failed to connect to database: %v", err)
		return err
	}
	defer pool.Close()

	res, err := postgres.NewInteractionRepository(pool).Reset(ctx)
	if err != nil {
		logg.Errorf(ctx, "reset failed: %v", err)
		return err
	}

	logg.Infof(ctx, "database reset help_deleted=%d rating_deleted=%d", res.HelpDeleted, res.RatingDeleted)
	return nil
}
