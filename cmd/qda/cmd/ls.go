package cmd

import (
	"github.com/spf13/cobra"
)

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List cataloged QDA files",
	Long: `List every file in the catalog with its id, shape, and location.

Examples:
  qda ls
  qda ls -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		defer cat.Close()

		entries, err := cat.List()
		if err != nil {
			return err
		}

		return outputEntries(entries)
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
