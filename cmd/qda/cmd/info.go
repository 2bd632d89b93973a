package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kaleidalab/qdakit/pkg/qda"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file.qda>",
	Short: "Show the structure of a QDA file",
	Long: `Decode a QDA file and print its name, file id, column headers,
row counts, and data types.

Examples:
  qda info results.qda
  qda info --data results.qda
  qda info -o json results.qda`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		withData, _ := cmd.Flags().GetBool("data")

		table, err := qda.ReadFile(args[0])
		if err != nil {
			return err
		}

		return outputTable(table, withData)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().Bool("data", false, "Include column values in the output")
}
