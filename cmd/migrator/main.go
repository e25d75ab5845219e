package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver name = "pgx"
	"github.com/spf13/cobra"

	"github.com/Gunvolt24/lmnh_kiosk/config"
	"github.com/Gunvolt24/lmnh_kiosk/migrations"
)

// Миграции схемы exhibition_* по встроенным SQL-файлам.
func main() {
	root := &cobra.Command{
		Use:           "migrator",
		Short:         "Apply goose migrations for the kiosk tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		gooseCmd("up", "Apply all pending migrations"),
		gooseCmd("down", "Roll back the latest migration"),
		gooseCmd("status", "Print migration status"),
		gooseCmd("version", "Print current schema version"),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "migrator: %v\n", err)
		os.Exit(1)
	}
}

func gooseCmd(command, short string) *cobra.Command {
	return &cobra.Command{
		Use:   command,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd.Context(), command)
		},
	}
}

func migrate(ctx context.Context, command string) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return migrations.Run(ctx, db, command)
}
