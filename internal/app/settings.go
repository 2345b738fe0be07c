package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	var (
		libraryDirFlag string
		organize       bool
		autoExpand     bool
		emulator       string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change collection settings",
		Long: `Collection settings travel with the catalog, so an exported catalog
carries them to the next machine. Without flags the current values are
printed.

Examples:
  retroshelf settings
  retroshelf settings --library-dir ~/retro/library
  retroshelf settings --organize-on-add --emulator "x64sc {path}"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.Settings()

			changed := false
			if cmd.Flags().Changed("library-dir") {
				st.LibraryDir = libraryDirFlag
				changed = true
			}
			if cmd.Flags().Changed("organize-on-add") {
				st.OrganizeOnAdd = organize
				changed = true
			}
			if cmd.Flags().Changed("auto-expand") {
				st.AutoExpandArchives = autoExpand
				changed = true
			}
			if cmd.Flags().Changed("emulator") {
				st.EmulatorCommand = emulator
				changed = true
			}

			if changed {
				if err := store.SetSettings(st); err != nil {
					return err
				}
				ok("settings updated")
			}

			header("Settings")
			printField("library dir", st.LibraryDir)
			printField("organize on add", fmt.Sprintf("%v", st.OrganizeOnAdd))
			printField("auto expand", fmt.Sprintf("%v", st.AutoExpandArchives))
			printField("emulator", st.EmulatorCommand)
			return nil
		},
	}

	cmd.Flags().StringVar(&libraryDirFlag, "library-dir", "", "Library tree location")
	cmd.Flags().BoolVar(&organize, "organize-on-add", false, "Organize files as they are cataloged")
	cmd.Flags().BoolVar(&autoExpand, "auto-expand", false, "Expand archives without asking")
	cmd.Flags().StringVar(&emulator, "emulator", "", "Emulator command, {path} is replaced with the file")
	return cmd
}
