package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/unitbook/pkg/types"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet <folder>",
	Short: "Split and/or extract using Instructions.xlsx",
	Long: `Sheet reads Instructions.xlsx from the folder (first row is a header,
then one unit_id and page_list per row) and, depending on --action:

  split    writes PDFs/<unit_id>.pdf and renders each page to
           PNGs/<unit_id>_page_<n>.png and JPEGs/<unit_id>_page_<n>.jpeg
  extract  reads every PDF in PDFs/ and writes Extracted Data.xlsx
  both     split, then extract (default)

A page_list is a comma-separated list of pages and inclusive ranges, e.g.
"1,3-5". Rows with an empty page_list are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runConfig(cmd, args[0], "")
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true
		return runSheet(cfg, os.Stdout)
	},
}

func init() {
	addRasterFlags(sheetCmd)
	addExportFlag(sheetCmd)
	sheetCmd.Flags().String("action", string(types.ActionBoth), "action to perform: split, extract, or both")

	rootCmd.AddCommand(sheetCmd)
}
