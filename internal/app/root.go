package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/retroshelf/internal/catalog"
	"github.com/blackwell-systems/retroshelf/internal/config"
	"github.com/blackwell-systems/retroshelf/internal/library"
	"github.com/blackwell-systems/retroshelf/internal/logging"
	"github.com/blackwell-systems/retroshelf/internal/metadata"
	"github.com/blackwell-systems/retroshelf/internal/util"
)

var (
	cfg    *config.Config
	store  *catalog.Store
	libMgr *library.Manager
	meta   *metadata.Source
	log    *zap.Logger

	appVersion = "dev"

	flagNoColor bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "retroshelf",
	Short: "Catalog and organize a retro computer software collection",
	Long: `retroshelf scans directories of disk, tape and cartridge images,
deduplicates release variants of the same title, and keeps everything in a
local JSON catalog. Archives are expanded in place, metadata is filled in
from a built-in table, and files can be organized into a browsable library
tree.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// SetVersion records the build version for the version command.
func SetVersion(v string) { appVersion = v }

// Execute is the entry point called from main. Interrupts cancel the
// command context; long operations stop at their next checkpoint.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() {
		if log != nil {
			_ = log.Sync()
		}
	}()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/retroshelf/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		log = logging.New(cfg.Log)

		if err := os.MkdirAll(filepath.Dir(cfg.CatalogPath), 0755); err != nil {
			return fmt.Errorf("creating catalog dir: %w", err)
		}
		store = catalog.Open(catalog.NewFilePersister(cfg.CatalogPath), log.Named("catalog"))
		libMgr = library.New(libraryDir())
		meta = metadata.NewSource(nil)
		return nil
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newScanCmd(),
		newSearchCmd(),
		newInfoCmd(),
		newEditCmd(),
		newTagCmd(),
		newNotesCmd(),
		newRmCmd(),
		newClearCmd(),
		newOrganizeCmd(),
		newPlayCmd(),
		newExportCmd(),
		newImportCmd(),
		newSettingsCmd(),
		newVersionCmd(),
	)
}

// libraryDir prefers the catalog's own setting over the config default, so
// an imported collection keeps its layout.
func libraryDir() string {
	if dir := store.Settings().LibraryDir; dir != "" {
		return util.ExpandHome(dir)
	}
	return cfg.LibraryDir
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
