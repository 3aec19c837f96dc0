package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/unitbook/internal/workspace"
	"github.com/pdiddy/unitbook/pkg/types"
)

var textCmd = &cobra.Command{
	Use:   "text <folder>",
	Short: "Split using Instructions.txt",
	Long: `Text reads Instructions.txt from the folder. Each line holds a page
list and an output filename separated by whitespace, e.g.

  1-3,7 A-101.pdf

Lines without exactly two tokens are skipped with a warning. Output goes
to PDFs/, PNGs/ and JPEGs/ as with the sheet command; no fields are
extracted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runConfig(cmd, args[0], types.ActionSplit)
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		return runSplit(cfg, workspace.ModeText, os.Stdout)
	},
}

func init() {
	addRasterFlags(textCmd)

	rootCmd.AddCommand(textCmd)
}
