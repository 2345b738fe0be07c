package app

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <id|name>",
		Short: "Launch an entry in the configured emulator",
		Long: `Run the emulator command from settings with {path} replaced by the
entry's file. Organized entries use their library copy; archive members
must be organized first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEntry(args[0])
			if err != nil {
				return err
			}

			path := e.LibraryPath
			if path == "" {
				if e.Origin == catalog.OriginArchive {
					return fmt.Errorf("%s is inside %s — run 'retroshelf organize %s' first",
						e.DisplayName, e.ContainerPath, shortID(e.ID))
				}
				path = e.OriginalPath
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("file missing: %s", path)
			}

			emulator := store.Settings().EmulatorCommand
			if emulator == "" {
				return fmt.Errorf("no emulator configured — set one with 'retroshelf settings --emulator'")
			}
			parts := strings.Fields(emulator)
			for i, p := range parts {
				parts[i] = strings.ReplaceAll(p, "{path}", path)
			}

			log.Info("launching emulator", zap.String("path", path))
			run := exec.CommandContext(cmd.Context(), parts[0], parts[1:]...)
			run.Stdout = os.Stdout
			run.Stderr = os.Stderr
			return run.Run()
		},
	}
}
