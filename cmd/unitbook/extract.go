package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/unitbook/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <folder>",
	Short: "Extract unit fields from the PDFs already split into PDFs/",
	Long: `Extract reads every PDF in the folder's PDFs/ directory, matches
Bedrooms, BUA, Covered Terrace and Uncovered Terrace in its text, and
writes the rows sorted by unit ID to Extracted Data.xlsx. It is the same
as "sheet --action extract" but does not need Instructions.xlsx.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runConfig(cmd, args[0], types.ActionExtract)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		return runExtract(cfg, os.Stdout)
	},
}

func init() {
	addExportFlag(extractCmd)

	rootCmd.AddCommand(extractCmd)
}
