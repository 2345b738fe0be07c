package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
)

func newNotesCmd() *cobra.Command {
	var clearNotes bool

	cmd := &cobra.Command{
		Use:   "notes <id|name> [text]",
		Short: "Show or set the notes on an entry",
		Long: `With no text, print the entry's notes. With text, replace them.

Examples:
  retroshelf notes turrican
  retroshelf notes turrican "ntsc version, verified working"
  retroshelf notes turrican --clear`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEntry(args[0])
			if err != nil {
				return err
			}

			if clearNotes || len(args) == 2 {
				text := ""
				if len(args) == 2 {
					text = strings.TrimSpace(args[1])
				}
				if _, err := store.UpdateEntry(e.ID, catalog.Patch{Notes: &text}); err != nil {
					return err
				}
				ok("notes updated for %s", e.DisplayName)
				return nil
			}

			if e.Notes == "" {
				fmt.Println("No notes.")
				return nil
			}
			fmt.Println(e.Notes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearNotes, "clear", false, "Remove the notes")
	return cmd
}
