package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Catalog every QDA file under a directory",
	Long: `Walk a directory tree, decode each .qda file, and record its
metadata in the catalog. Files already cataloged under the same path are
updated in place. Files that fail to decode are reported and skipped.

Example:
  qda scan ./measurements`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := openCatalog()
		if err != nil {
			return err
		}
		defer cat.Close()

		result, err := cat.Scan(args[0])
		if err != nil {
			return err
		}

		logger.Info("scan finished",
			zap.String("dir", args[0]),
			zap.Int("added", len(result.Added)),
			zap.Int("updated", len(result.Updated)),
			zap.Int("failed", len(result.Failed)))

		cmd.Printf("Cataloged %d new, updated %d\n", len(result.Added), len(result.Updated))
		for _, failure := range result.Failed {
			cmd.Printf("Skipped %s: %v\n", failure.Path, failure.Err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
