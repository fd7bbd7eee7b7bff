package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stripe2qbo/console/internal/config"
	"github.com/stripe2qbo/console/internal/settings"
)

func newSettingsCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and update sync settings",
	}

	cmd.AddCommand(newSettingsShowCommand(configPath))
	cmd.AddCommand(newSettingsExportCommand(configPath))
	cmd.AddCommand(newSettingsPushCommand(configPath))

	return cmd
}

func newSettingsShowCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			rd, err := loadReference(cfg)
			if err != nil {
				return err
			}

			PrintSettings(rd)
			return nil
		},
	}
}

func newSettingsExportCommand(configPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the effective settings to a local settings file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			rd, err := loadReference(cfg)
			if err != nil {
				return err
			}

			if err := settings.SaveFile(out, rd.Effective()); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Printf("Wrote settings to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "settings.json", "output file")

	return cmd
}

func newSettingsPushCommand(configPath *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push a local settings file to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			s, err := settings.LoadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}
			if s == nil {
				return fmt.Errorf("%s does not exist", file)
			}

			if err := newBackendClient(cfg).SaveSettings(context.Background(), *s); err != nil {
				return err
			}
			fmt.Println("Settings pushed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "settings.json", "settings file to push")

	return cmd
}

func loadReference(cfg *config.Config) (settings.ReferenceData, error) {
	return settings.LoadReferenceData(context.Background(), newBackendClient(cfg))
}
