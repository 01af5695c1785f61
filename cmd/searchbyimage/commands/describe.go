package commands

import (
	"github.com/spf13/cobra"

	"searchbyimage/internal/plugin"
)

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the plugin descriptor",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := plugin.MarshalYAML(plugin.Descriptor())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
