package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"skytheme/model"
	"skytheme/palette"
	"skytheme/style"
)

// FileName is the config file looked up in the data directory.
const FileName = "skytheme.yaml"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	DataDir     string        `yaml:"data_dir"`
	ListenAddr  string        `yaml:"listen_addr"`
	Environment string        `yaml:"environment"`
	ActiveTheme model.ThemeID `yaml:"active_theme"`
	Content     []string      `yaml:"content"`
}

func Default() Config {
	return Config{
		DataDir:     ".",
		ListenAddr:  ":8080",
		Environment: EnvDevelopment,
		ActiveTheme: model.Sunny,
		Content:     append([]string(nil), style.DefaultContent...),
	}
}

// Path returns the config file location for dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Load reads the config from dataDir. Missing values fall back to Default(),
// except DataDir, which falls back to dataDir. A .env file next to the config
// is loaded first.
func Load(dataDir string) (Config, error) {
	envPath := filepath.Join(dataDir, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env file: %w", err)
	}

	cfg := Default()
	cfg.DataDir = dataDir
	data, err := os.ReadFile(Path(dataDir))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	def := Default()
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = def.ListenAddr
	}
	if cfg.Environment == "" {
		cfg.Environment = def.Environment
	}
	if cfg.ActiveTheme == "" {
		cfg.ActiveTheme = def.ActiveTheme
	}
	if len(cfg.Content) == 0 {
		cfg.Content = def.Content
	}

	if v, ok := os.LookupEnv("SKYTHEME_LISTEN_ADDR"); ok && v != "" {
		cfg.ListenAddr = v
	}
	if v, ok := os.LookupEnv("SKYTHEME_ENVIRONMENT"); ok && v != "" {
		cfg.Environment = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	id, err := palette.ParseID(string(c.ActiveTheme))
	if err != nil {
		return fmt.Errorf("active_theme: %w", err)
	}
	c.ActiveTheme = id

	switch c.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unsupported environment: %s", c.Environment)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	return nil
}

// Save writes cfg to its data directory atomically.
func Save(cfg Config) error {
	cfgPath := Path(cfg.DataDir)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp := cfgPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, cfgPath)
}
