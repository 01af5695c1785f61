package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"searchbyimage/internal/config"
	"searchbyimage/internal/crypto"
	"searchbyimage/internal/store"
)

func keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Seal the SauceNAO API key under a passphrase",
	}
	cmd.AddCommand(keySetCmd(), keyShowCmd())
	return cmd
}

func keySetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <api-key>",
		Short: "Encrypt and store the API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			if err := config.ValidateAPIKey(args[0]); err != nil {
				return err
			}
			if err := store.NewSecretFileStore(cfg.SettingsDir).SaveAPIKey(passphrase, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key sealed.\nFingerprint: %s\n", crypto.Fingerprint(args[0]))
			return nil
		},
	}
}

func keyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the sealed API key, redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			key, err := store.NewSecretFileStore(cfg.SettingsDir).LoadAPIKey(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key: %s\nFingerprint: %s\n", crypto.Redact(key), crypto.Fingerprint(key))
			return nil
		},
	}
}
