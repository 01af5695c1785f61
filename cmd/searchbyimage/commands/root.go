package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"searchbyimage/internal/app"
	"searchbyimage/internal/config"
	"searchbyimage/internal/logging"
)

var (
	configPath string
	passphrase string
	logLevel   string

	cfg *config.Config

	setupLogging = logging.Setup
)

// Execute runs the root command.
func Execute() error { return run(os.Args[1:]) }

func run(args []string) error {
	var logCloser io.Closer

	root := &cobra.Command{
		Use:           "searchbyimage",
		Short:         "Reverse image search bot for group chats",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				c.Log.Level = logLevel
			}
			closer, err := setupLogging(logging.Options{Level: c.Log.Level, File: c.Log.File})
			if err != nil {
				return err
			}
			logCloser = closer
			cfg = c
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./searchbyimage.yaml)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the sealed API key")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(serveCmd(), searchCmd(), historyCmd(), configCmd(), keyCmd(), describeCmd())

	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	// PersistentPostRun is skipped when RunE fails
	if logCloser != nil {
		_ = logCloser.Close()
	}
	return err
}

// newWire builds the app for commands; key may be empty when not searching.
func newWire(key string) (*app.Wire, error) {
	return app.NewWire(app.Config{Settings: cfg, APIKey: key})
}
