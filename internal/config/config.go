package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/retroshelf/internal/util"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "retroshelf", "config.yml")
}

// Load reads the config from disk (or env). A missing config file is fine;
// defaults carry a fresh install until the user writes one.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("catalog_path", defaultCatalogPath())
	v.SetDefault("library_dir", defaultLibraryDir())
	v.SetDefault("scan.expand_archives", "ask")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 30)

	v.SetEnvPrefix("RETROSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("RETROSHELF_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.CatalogPath = util.ExpandHome(cfg.CatalogPath)
	cfg.LibraryDir = util.ExpandHome(cfg.LibraryDir)
	cfg.Log.File = util.ExpandHome(cfg.Log.File)

	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

func defaultCatalogPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "retroshelf", "catalog.json")
}

func defaultLibraryDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "retroshelf", "library")
}
