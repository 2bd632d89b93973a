package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kaleidalab/qdakit/pkg/qda"
)

// headersCmd represents the headers command
var headersCmd = &cobra.Command{
	Use:   "headers <count>",
	Short: "Generate spreadsheet-style column headers",
	Long: `Print unique column headers in spreadsheet order: A through Z, then
AA through ZZ, then AAA through ZZZ. These are the labels assigned to
columns that have no header of their own.

Example:
  qda headers 30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q: %w", args[0], err)
		}

		labels, err := qda.UniqueHeaders(n)
		if err != nil {
			return err
		}
		for _, label := range labels {
			cmd.Println(label)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headersCmd)
}
