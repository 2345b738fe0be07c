package config

// Config is the top-level retroshelf configuration. Collection-level
// preferences (library dir, organize-on-add) live in the catalog document;
// this covers the app-level knobs that must exist before a catalog does.
type Config struct {
	CatalogPath string     `mapstructure:"catalog_path"`
	LibraryDir  string     `mapstructure:"library_dir"`
	Scan        ScanConfig `mapstructure:"scan"`
	Log         LogConfig  `mapstructure:"log"`
}

// ScanConfig holds scan-command defaults.
type ScanConfig struct {
	ExpandArchives string `mapstructure:"expand_archives"` // "ask", "always" or "never"
}

// LogConfig controls the structured log output.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // empty disables the file sink
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}
