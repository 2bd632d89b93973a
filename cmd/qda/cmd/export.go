package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kaleidalab/qdakit/pkg/export"
	"github.com/kaleidalab/qdakit/pkg/qda"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <in.qda> <out>",
	Short: "Convert a QDA file to CSV, Arrow, or Parquet",
	Long: `Decode a QDA file and write it in another format. The target format
is inferred from the output extension unless --format is given.

Supported formats: csv, csv.gz, arrow, parquet.

Examples:
  qda export results.qda results.csv
  qda export results.qda results.parquet
  qda export --format csv.gz results.qda archive.dat`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")

		table, err := qda.ReadFile(args[0])
		if err != nil {
			return err
		}

		if formatName == "" {
			return export.WriteFile(args[1], table)
		}

		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		f, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", args[1], err)
		}
		if err := export.Write(f, table, format); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("format", "", "Target format (default: inferred from the output extension)")
}
