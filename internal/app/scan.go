package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/retroshelf/internal/scan"
)

func newScanCmd() *cobra.Command {
	var (
		yes          bool
		skipArchives bool
	)

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Scan a directory tree and add discovered software to the catalog",
		Long: `Walk a directory tree, pick the cleanest copy of each title, and add
everything new to the catalog. Archives (.zip, .7z) are expanded after a
per-archive prompt; answer 'a' to apply one answer to the rest of the run.

Examples:
  retroshelf scan ~/Downloads/c64
  retroshelf scan /mnt/usb --yes
  retroshelf scan ./incoming --skip-archives`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
				return fmt.Errorf("%s is not a directory", root)
			}

			// Snapshot current IDs so organize-on-add only touches what this
			// session adds.
			var before map[string]bool
			if store.Settings().OrganizeOnAdd {
				before = make(map[string]bool)
				for _, e := range store.Entries() {
					before[e.ID] = true
				}
			}

			o := scan.NewOrchestrator(store, meta.Func(), scanDecider(yes, skipArchives), scanProgress(), log.Named("scan"))
			o.PathPrefix = root

			header("Scanning %s", root)
			sum, err := o.Run(cmd.Context(), os.DirFS(root), ".")
			fmt.Println()
			if err != nil {
				// Batches flushed before the failure are kept.
				warn("scan stopped early: %v", err)
			}
			printScanSummary(sum)

			if before != nil {
				organizeNewEntries(before)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Expand all archives without asking")
	cmd.Flags().BoolVar(&skipArchives, "skip-archives", false, "Skip archives entirely")
	return cmd
}

// scanDecider builds the per-archive prompt. Flags and the configured
// default short-circuit it; otherwise the user answers y/N/a per archive.
func scanDecider(yes, skipArchives bool) scan.Decider {
	if skipArchives {
		return scan.DeciderFunc(func(string) (bool, bool) { return false, true })
	}
	if yes || cfg.Scan.ExpandArchives == "always" || store.Settings().AutoExpandArchives {
		return scan.DeciderFunc(func(string) (bool, bool) { return true, true })
	}
	if cfg.Scan.ExpandArchives == "never" {
		return scan.DeciderFunc(func(string) (bool, bool) { return false, true })
	}
	return scan.DeciderFunc(func(name string) (bool, bool) {
		fmt.Printf("Expand archive %s? [y/N/a]: ", name)
		var response string
		_, _ = fmt.Scanln(&response)
		switch strings.ToLower(strings.TrimSpace(response)) {
		case "a", "all":
			return true, true
		case "y", "yes":
			return true, false
		default:
			return false, false
		}
	})
}

// organizeNewEntries copies each entry added this session into the library
// tree. A single failure is reported and does not stop the rest.
func organizeNewEntries(before map[string]bool) {
	organized := 0
	for _, e := range store.Entries() {
		if before[e.ID] || e.LibraryPath != "" {
			continue
		}
		if err := organizeEntry(e); err != nil {
			warn("%s: %v", e.DisplayName, err)
			continue
		}
		organized++
	}
	if organized > 0 {
		ok("organized %d new entries into %s", organized, libMgr.BaseDir())
	}
}

// scanProgress keeps a single status line updated during the run.
func scanProgress() scan.Progress {
	return func(added, skipped, fromContainers int) {
		fmt.Printf("\r  added %d  skipped %d  from archives %d", added, skipped, fromContainers)
	}
}

func printScanSummary(sum scan.Summary) {
	fmt.Println(styleHeader.Render("Scan complete"))
	fmt.Printf("  %s %d\n", styleLabel.Render("found:"), sum.Found)
	fmt.Printf("  %s %d\n", styleLabel.Render("from archives:"), sum.FromContainers)
	fmt.Printf("  %s %s\n", styleLabel.Render("added:"), styleOK.Render(fmt.Sprintf("%d", sum.Added)))
	if sum.Skipped > 0 {
		fmt.Printf("  %s %d\n", styleLabel.Render("already cataloged:"), sum.Skipped)
	}
}
