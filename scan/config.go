package scan

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/skylt/livedom"
)

// Config configures the scan service.
type Config struct {
	// DBPath is the SQLite database file for analysis runs.
	DBPath string `yaml:"db_path"`

	// ExportDir is where report artifacts are written.
	ExportDir string `yaml:"export_dir"`

	// Retention is how long runs are kept before Cleanup removes them.
	Retention time.Duration `yaml:"retention"`

	// ListLimit caps run listings. Default: 50.
	ListLimit int `yaml:"list_limit"`

	// Acquire settings for the URL analysis path.
	Acquire livedom.Config `yaml:"acquire"`

	Logger *slog.Logger `yaml:"-"`
}

func (c *Config) defaults() {
	if c.DBPath == "" {
		c.DBPath = "data/skylt.db"
	}
	if c.ExportDir == "" {
		c.ExportDir = "exports"
	}
	if c.Retention <= 0 {
		c.Retention = 30 * 24 * time.Hour
	}
	if c.ListLimit <= 0 {
		c.ListLimit = 50
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// LoadConfig reads a YAML config file. A missing path returns defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("scan: read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("scan: parse config: %w", err)
		}
	}
	cfg.defaults()
	return &cfg, nil
}
