package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stripe2qbo/console/internal/config"
	"github.com/stripe2qbo/console/internal/importer"
	"github.com/stripe2qbo/console/internal/logging"
	"github.com/stripe2qbo/console/internal/storage"
	"github.com/stripe2qbo/console/internal/store"
	"github.com/stripe2qbo/console/internal/stripe"
)

func newImportCommand(configPath *string) *cobra.Command {
	var fromDate string
	var toDate string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import Stripe transactions for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := stripe.SyncOptions{FromDate: fromDate, ToDate: toDate}
			if err := opts.Validate(); err != nil {
				return err
			}

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runImport(cfg, opts)
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&toDate, "to", "", "end date, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runImport(cfg *config.Config, opts stripe.SyncOptions) error {
	repo, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() { _ = repo.Close() }()

	imp := importer.New(newBackendClient(cfg), store.New(), repo,
		logging.NewComponentLogger(cfg.Logging, "importer"))

	result, err := imp.Run(context.Background(), opts)
	if err != nil {
		return err
	}

	PrintImportSummary(result)
	return nil
}
