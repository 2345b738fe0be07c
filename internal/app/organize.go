package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
	"github.com/blackwell-systems/retroshelf/internal/scan"
)

func newOrganizeCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "organize [id|name]",
		Short: "Copy entries into the organized library tree",
		Long: `Copy an entry's file into the library tree, laid out by kind and first
letter of the name. Archive members are extracted on demand. The source
file stays where it is; the catalog records the library path and checksum.

Examples:
  retroshelf organize turrican
  retroshelf organize --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("pass an entry or --all, not both")
			}

			var targets []catalog.Entry
			if all {
				for _, e := range store.Entries() {
					if e.LibraryPath == "" {
						targets = append(targets, e)
					}
				}
				if len(targets) == 0 {
					warn("everything is already organized")
					return nil
				}
			} else {
				e, err := resolveEntry(args[0])
				if err != nil {
					return err
				}
				targets = []catalog.Entry{e}
			}

			organized := 0
			for _, e := range targets {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if err := organizeEntry(e); err != nil {
					warn("%s: %v", e.DisplayName, err)
					continue
				}
				organized++
			}
			ok("organized %d of %d entries into %s", organized, len(targets), libMgr.BaseDir())
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Organize every entry not yet in the library")
	return cmd
}

func organizeEntry(e catalog.Entry) error {
	var (
		path string
		sum  string
		err  error
	)
	switch e.Origin {
	case catalog.OriginArchive:
		path, sum, err = organizeArchiveMember(e)
	case catalog.OriginLibrary:
		return nil // already in place
	default:
		path, sum, err = libMgr.StoreFile(e.OriginalPath, e.Kind, e.DisplayName, e.Ext)
	}
	if err != nil {
		return err
	}
	if _, err := store.MarkOrganized(e.ID, path, sum); err != nil {
		return err
	}
	fmt.Println("  " + styleDim.Render(filepath.Base(path)))
	return nil
}

// organizeArchiveMember extracts a single member from the entry's source
// archive and stores it. The archive itself is never unpacked wholesale.
func organizeArchiveMember(e catalog.Entry) (string, string, error) {
	data, err := os.ReadFile(e.ContainerPath)
	if err != nil {
		return "", "", fmt.Errorf("reading archive: %w", err)
	}
	c, err := scan.Open(filepath.Base(e.ContainerPath), data)
	if err != nil {
		return "", "", err
	}
	payload, err := c.Extract(e.MemberPath)
	if err != nil {
		return "", "", fmt.Errorf("extracting %s: %w", e.MemberPath, err)
	}
	return libMgr.Store(e.Kind, e.DisplayName, e.Ext, bytes.NewReader(payload))
}
