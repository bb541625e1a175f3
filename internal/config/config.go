package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the flat TPC server configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"` // HTTP bind address
	DataDir    string `yaml:"data_dir"`    // holds tpc.db and legacy snapshots
	DBFile     string `yaml:"db_file"`     // database filename within DataDir
	StaticDir  string `yaml:"static_dir"`  // browser UI assets, empty disables
	DevMode    bool   `yaml:"dev_mode"`    // verbose errors and gin debug mode

	// Legacy flat-file snapshots imported once when both tables are empty.
	LegacyPlansFile    string `yaml:"legacy_plans_file"`
	LegacyThoughtsFile string `yaml:"legacy_thoughts_file"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		ListenAddr:         ":8000",
		DataDir:            ".",
		DBFile:             "tpc.db",
		StaticDir:          "web",
		LegacyPlansFile:    "plans.json",
		LegacyThoughtsFile: "thoughts.json",
	}
}

// Load reads tpc.yaml from the given directory, falling back to defaults
// when the file is absent. A present but malformed file is an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, "tpc.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8000"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	if cfg.DBFile == "" {
		cfg.DBFile = "tpc.db"
	}

	return cfg, nil
}

// Save writes the config as tpc.yaml to the given directory.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "tpc.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DBPath returns the full path to the SQLite database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// LegacyPlansPath returns the full path to the legacy plans snapshot.
func (c *Config) LegacyPlansPath() string {
	return filepath.Join(c.DataDir, c.LegacyPlansFile)
}

// LegacyThoughtsPath returns the full path to the legacy thoughts snapshot.
func (c *Config) LegacyThoughtsPath() string {
	return filepath.Join(c.DataDir, c.LegacyThoughtsFile)
}
