package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/lmnh_kiosk/config"
	"github.com/Gunvolt24/lmnh_kiosk/internal/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:           "pipeline",
		Short:         "Consume LMNH kiosk interactions from Kafka and store them in Postgres",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.ErrorLogEnabled, "l", false, "append rejected messages to the error log file (ERROR_LOG_PATH)")
	flags.BoolVar(&opts.Earliest, "e", false, "start from the earliest offset when the group has no committed position")
	flags.IntVar(&opts.Limit, "n", -1, "number of messages to consume before exiting; -1 means no limit")
	flags.StringVar(&opts.Topic, "t", app.DefaultTopic, "Kafka topic to consume")

	return cmd
}

func run(parent context.Context, opts app.Options) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, ctx, cleanup, err := app.Bootstrap(ctx, &cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		return err
	}
	defer cleanup()

	runErr := a.Run(ctx)
	if ctx.Err() != nil && runErr == nil {
		a.Logger.Infof(ctx, " Thank goodness that's over")
	}
	return runErr
}
