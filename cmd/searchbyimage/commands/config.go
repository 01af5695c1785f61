package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"searchbyimage/internal/app"
	"searchbyimage/internal/crypto"
	"searchbyimage/internal/store"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the plugin settings file",
	}
	cmd.AddCommand(configInitCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the settings directory and file, optionally storing the API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.NewSettingsFileStore(cfg.SettingsDir)
			settings, err := app.InitSettings(s, apiKey)
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "Settings: %s\n", s.Path())
			if settings.APIKey == "" {
				fmt.Fprintln(stdout, "API key: not set")
				return nil
			}
			fmt.Fprintf(stdout, "API key fingerprint: %s\n", crypto.Fingerprint(settings.APIKey))
			return nil
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "SauceNAO API key to write into the settings file")
	return cmd
}
