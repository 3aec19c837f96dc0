// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the unitbook CLI. unitbook splits a
// source PDF into per-unit sub-documents, renders them to PNG and JPEG, and
// collates fields extracted from their text into a spreadsheet.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the unitbook CLI.
var rootCmd = &cobra.Command{
	Use:   "unitbook",
	Short: "Split a unit brochure PDF into per-unit documents and images",
	Long: `unitbook works on a folder holding Material.pdf and an instruction file.

The sheet command reads Instructions.xlsx (columns unit_id, page_list),
writes one PDF per unit to PDFs/, renders every page to PNGs/ and JPEGs/,
and extracts Bedrooms, BUA and terrace areas into Extracted Data.xlsx.
The text command reads Instructions.txt ("<pages> <filename>" per line)
and only splits.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./unitbook.yaml or ~/.config/unitbook/unitbook.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("unitbook")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "unitbook"))
		}
	}

	viper.SetEnvPrefix("UNITBOOK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
