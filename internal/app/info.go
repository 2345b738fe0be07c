package app

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
	"github.com/blackwell-systems/retroshelf/internal/util"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <id|name>",
		Short: "Show full details for one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEntry(args[0])
			if err != nil {
				return err
			}

			header("Entry: %s", e.DisplayName)
			printField("id", e.ID)
			printField("filename", e.Filename)
			printField("kind", string(e.Kind))
			printField("ext", e.Ext)
			if e.Year != "" {
				printField("year", e.Year)
			}
			if e.Publisher != "" {
				printField("publisher", e.Publisher)
			}
			if e.SizeBytes > 0 {
				printField("size", util.HumanBytes(e.SizeBytes))
			}
			if len(e.Tags) > 0 {
				printField("tags", strings.Join(e.Tags, ", "))
			}
			if e.Notes != "" {
				printField("notes", e.Notes)
			}
			printField("origin", string(e.Origin))
			printField("path", e.OriginalPath)
			if e.Origin == catalog.OriginArchive {
				printField("archive", e.ContainerPath)
				printField("member", e.MemberPath)
			}
			if e.BoxArtURL != "" {
				printField("box art", e.BoxArtURL)
			}
			if e.SHA256 != "" {
				printField("sha256", e.SHA256)
			}
			printField("added", e.AddedAt.Format("2006-01-02 15:04"))

			organized := color.RedString("not organized")
			if e.LibraryPath != "" {
				organized = color.GreenString("organized") + "  " + e.LibraryPath
			}
			printField("library", organized)
			return nil
		},
	}
}

func printField(label, value string) {
	fmt.Printf("  %-12s %s\n", color.CyanString(label+":"), value)
}
