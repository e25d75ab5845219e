package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/lmnh_kiosk/pkg/validate"
)

// CLI-приложение для офлайн-проверки выгрузок событий киосков.
func main() {
	var (
		inputPath string
		formatStr string
	)

	cmd := &cobra.Command{
		Use:           "validate-events",
		Short:         "Validate captured kiosk events (.json or .jsonl) without touching Kafka or Postgres",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), inputPath, validate.InputFormat(formatStr))
		},
	}
	cmd.Flags().StringVar(&inputPath, "in", "", "path to input (.json or .jsonl); stdin when empty")
	cmd.Flags().StringVar(&formatStr, "format", "auto", "input format: auto|json|jsonl")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, inputPath string, format validate.InputFormat) error {
	validator := validate.NewInteractionValidator()

	// stdin вариант: считаем, что jsonl
	if inputPath == "" {
		inputPath = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	summary, err := validate.ValidateFile(ctx, validator, inputPath, format, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		return err
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
	return nil
}
