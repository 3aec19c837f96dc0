// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/unitbook/pkg/types"
)

// configKeys maps viper keys to the flag names that may override them.
var configKeys = map[string]string{
	"dpi":          "dpi",
	"action":       "action",
	"jpeg_quality": "jpeg-quality",
	"pdftoppm":     "pdftoppm",
	"exports":      "export",
}

// addRasterFlags registers the rendering flags shared by commands that split.
func addRasterFlags(cmd *cobra.Command) {
	cmd.Flags().Int("dpi", types.DefaultDPI, "image resolution in dots per inch")
	cmd.Flags().Int("jpeg-quality", types.DefaultJPEGQuality, "JPEG quality, 1-100")
	cmd.Flags().String("pdftoppm", types.DefaultPdftoppm, "pdftoppm binary name or path")
}

// addExportFlag registers the extra collation outputs flag.
func addExportFlag(cmd *cobra.Command) {
	cmd.Flags().StringSlice("export", nil, "extra result outputs next to the spreadsheet: yaml, sqlite")
}

// runConfig merges defaults, the config file, UNITBOOK_* environment
// variables and the flags of cmd into a validated RunConfig. Flags are
// bound here rather than in init so that only the running command's flags
// take effect.
func runConfig(cmd *cobra.Command, folder string, action types.Action) (types.RunConfig, error) {
	cfg := types.DefaultRunConfig(folder)

	for key, flag := range configKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return cfg, fmt.Errorf("binding flag %s: %w", flag, err)
			}
		}
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}

	cfg.Folder = folder
	if action != "" {
		cfg.Action = action
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
