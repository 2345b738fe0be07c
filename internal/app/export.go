package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog as JSON",
		Long: `Write the full catalog document to stdout or a file. The export is a
plain catalog document and can be imported on another machine.

Examples:
  retroshelf export > backup.json
  retroshelf export -o backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := store.Export()
			if err != nil {
				return err
			}
			if out == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return err
			}
			ok("exported %d entries to %s", len(store.Entries()), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge an exported catalog into this one",
		Long: `Merge entries from an exported catalog document. Entries already present
(same filename and original path) are kept as-is; settings present in the
import replace the current values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			added, err := store.ImportMerge(data)
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}
			if added == 0 {
				warn("nothing new to import")
				return nil
			}
			ok("imported %d new entries", added)
			return nil
		},
	}
	return cmd
}
