package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/smilecam/internal/config"
)

func newConfigCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or save the effective configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the configuration after flags and environment are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), r.config.String())
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "save [path]",
		Short: "Write the configuration to path, the file it was read from, or the user config dir",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				path = config.NewLoader(version, r.configPath).GetConfigPath()
			}
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.Save(path, r.config); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			r.logger.Info("configuration saved", "path", path)
			return nil
		},
	})
	return cmd
}
