package cmd

import (
	"github.com/spf13/cobra"
)

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an entry from the catalog",
	Long: `Remove a catalog entry by id. The QDA file on disk is untouched.

Example:
  qda rm 2rLbqzVnU4fXJkY0QfPBMGnWS31`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		defer cat.Close()

		if err := cat.Remove(args[0]); err != nil {
			return err
		}

		cmd.Printf("Removed %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
