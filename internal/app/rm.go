package app

import (
	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm <id|name>",
		Short: "Remove an entry from the catalog",
		Long:  "Remove a catalog entry. The file on disk is left alone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEntry(args[0])
			if err != nil {
				return err
			}
			if !force && !confirm("Remove "+e.DisplayName+" from the catalog?") {
				warn("cancelled")
				return nil
			}
			found, err := store.RemoveEntry(e.ID)
			if err != nil {
				return err
			}
			if !found {
				warn("entry already gone")
				return nil
			}
			ok("removed %s", e.DisplayName)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	return cmd
}

func newClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every entry from the catalog",
		Long:  "Empty the catalog. Settings are kept; files on disk are left alone.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := len(store.Entries())
			if n == 0 {
				warn("catalog is already empty")
				return nil
			}
			if !force && !confirm(plural(n, "Remove %d entry?", "Remove all %d entries?")) {
				warn("cancelled")
				return nil
			}
			if err := store.Clear(); err != nil {
				return err
			}
			ok("catalog cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	return cmd
}
