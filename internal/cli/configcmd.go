package cli

import (
	"github.com/spf13/cobra"
)

// configCommand prints the effective configuration.
func (c *CLI) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration stopover would use: the built-in defaults,
overlaid by --config and STOPOVER_* environment variables. The output is a
valid config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.EncodeTOML()
			if err != nil {
				return err
			}
			_, err = stdout.Write(data)
			return err
		},
	}
}
