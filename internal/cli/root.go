// Package cli wires the cobra commands that drive the console.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stripe2qbo/console/internal/backend"
	"github.com/stripe2qbo/console/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(version string) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "stripe2qbo",
		Short:   "Browser console for the stripe2qbo sync backend",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (defaults to environment variables)")

	rootCmd.AddCommand(newServeCommand(version, &configPath))
	rootCmd.AddCommand(newImportCommand(&configPath))
	rootCmd.AddCommand(newSettingsCommand(&configPath))

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadOrEnv(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newBackendClient(cfg *config.Config) *backend.Client {
	return backend.New(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Token:   cfg.Backend.Token,
		Timeout: time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
	}, nil)
}
