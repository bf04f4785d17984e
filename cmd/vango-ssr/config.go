package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-ssr/internal/config"
)

// loadConfig reads ssr.json from dir, or returns the defaults when there
// is none. The result is validated.
func loadConfig(dir string) (*config.Config, error) {
	if dir == "" {
		dir = "."
	}

	var cfg *config.Config
	if config.Exists(dir) {
		loaded, err := config.Load(dir)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.New()
		cfg.ApplyEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configCmd(configDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ssr.json",
	}
	cmd.AddCommand(configInitCmd(configDir), configShowCmd(configDir))
	return cmd
}

func configInitCmd(configDir *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write ssr.json with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Exists(*configDir) && !force {
				return usageError("%s already exists in %s", config.ConfigFileName, *configDir).
					WithSuggestion("Pass --force to overwrite it")
			}
			path := filepath.Join(*configDir, config.ConfigFileName)
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func configShowCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configDir)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
}
