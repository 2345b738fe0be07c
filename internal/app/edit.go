package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
)

func newEditCmd() *cobra.Command {
	var (
		name      string
		year      string
		publisher string
		boxArt    string
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Edit entry metadata",
		Long: `Update metadata fields on an entry. Only flags you pass are changed;
pass an empty value to clear a field.

Examples:
  retroshelf edit turrican --year 1990 --publisher "Rainbow Arts"
  retroshelf edit 3f2a --notes "bad dump, replace"
  retroshelf edit wizball --notes ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEntry(args[0])
			if err != nil {
				return err
			}

			var patch catalog.Patch
			if cmd.Flags().Changed("name") {
				patch.DisplayName = &name
			}
			if cmd.Flags().Changed("year") {
				patch.Year = &year
			}
			if cmd.Flags().Changed("publisher") {
				patch.Publisher = &publisher
			}
			if cmd.Flags().Changed("box-art") {
				patch.BoxArtURL = &boxArt
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if patch == (catalog.Patch{}) {
				warn("nothing to change — pass at least one field flag")
				return nil
			}

			updated, err := store.UpdateEntry(e.ID, patch)
			if err != nil {
				return err
			}
			ok("updated %s", updated.DisplayName)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&year, "year", "", "Release year")
	cmd.Flags().StringVar(&publisher, "publisher", "", "Publisher")
	cmd.Flags().StringVar(&boxArt, "box-art", "", "Box art URL")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}
