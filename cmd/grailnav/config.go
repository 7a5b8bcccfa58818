package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesen/grailnav/internal/config"
)

func configCmd() *cobra.Command {
	var (
		format   string
		defaults bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if !defaults {
				var err error
				if cfg, err = loadConfig(); err != nil {
					return err
				}
			}
			switch format {
			case "toml":
				return cfg.WriteTOML(os.Stdout)
			case "yaml", "yml":
				return cfg.WriteYAML(os.Stdout)
			}
			return fmt.Errorf("unknown format %q (toml or yaml)", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "output format: toml or yaml")
	cmd.Flags().BoolVar(&defaults, "default", false, "print the defaults, ignoring any config file")
	return cmd
}
