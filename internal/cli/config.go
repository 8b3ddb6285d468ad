package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"auto-order-dashboard/internal/config"
)

func newConfigCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the orderdash config file",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newConfigInitCommand(opts))
	return cmd
}

func newConfigInitCommand(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective settings to the config file",
		Long: `Write the settings currently in effect (config file, environment and
flags) to the config file, ~/.orderdashrc unless --config says otherwise.

Examples:
  orderdash config init --base-url http://localhost:8080
  orderdash config init --config ./orderdash.rc --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := opts.rcPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
