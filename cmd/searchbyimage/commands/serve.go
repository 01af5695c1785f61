package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"searchbyimage/internal/app"
	"searchbyimage/internal/crypto"
	"searchbyimage/internal/plugin"
	"searchbyimage/internal/slogs"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Answer image search commands from the chat gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			key, src, err := app.Enable(cfg, passphrase)
			if err != nil {
				return err
			}
			w, err := newWire(key)
			if err != nil {
				return err
			}
			defer w.Close()

			slog.Info("Using API key", slogs.KeyFingerprint, crypto.Fingerprint(key))
			src.Watch(func(k string) {
				w.Engine.SetAPIKey(k)
				slog.Info("Using API key", slogs.KeyFingerprint, crypto.Fingerprint(k))
			})

			desc := plugin.Descriptor()
			if err := w.Gateway.RegisterPlugin(ctx, desc); err != nil {
				return fmt.Errorf("register plugin: %w", err)
			}
			slog.Info("Plugin registered", slogs.ID, desc.ID, slogs.Version, desc.Version)

			pruner, err := app.StartPruner(w.History, cfg.History.Retention, cfg.History.PruneSchedule)
			if err != nil {
				return err
			}
			defer func() { <-pruner.Stop().Done() }()

			err = w.Bot.Run(ctx)
			slog.Info("Shutting down")
			return err
		},
	}
}
