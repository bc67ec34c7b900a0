// Package config loads and saves the finchat TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all finchat configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Latency    LatencyConfig    `toml:"latency"`
	Server     ServerConfig     `toml:"server"`
	History    HistoryConfig    `toml:"history"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Persona  string `toml:"persona"`
	Currency string `toml:"currency"`
	// Seed fixes the NLU random source when non-zero.
	Seed   uint64 `toml:"seed,omitempty"`
	APIURL string `toml:"api_url,omitempty"`
}

// LatencyConfig holds the simulated processing delay settings.
type LatencyConfig struct {
	Enabled bool    `toml:"enabled"`
	Scale   float64 `toml:"scale"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	CORSOrigins []string `toml:"cors_origins"`
}

// HistoryConfig holds report history settings.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Persona:  "professional",
			Currency: "$",
		},
		Latency: LatencyConfig{
			Enabled: true,
			Scale:   1,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8000",
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://localhost:8501",
				"http://127.0.0.1:8501",
			},
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finchat")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finchat")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// CacheDir returns the XDG-compliant cache directory, home of the history
// database and the TUI log.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "finchat")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "finchat")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config at path, returning defaults if it doesn't
// exist. Keys absent from the file keep their default values.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config location
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's config location
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// GetAPIURL returns the remote API URL from env var or config, in that order.
// Empty means the in-process service is used.
func GetAPIURL(cfg Config) string {
	if u := os.Getenv("FINCHAT_API_URL"); u != "" {
		return u
	}
	return cfg.General.APIURL
}

// HistoryPath returns the configured history database path or the default
// under CacheDir.
func HistoryPath(cfg Config) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return filepath.Join(CacheDir(), "history.db")
}

// LatencyScale returns the multiplier for simulated delays, 0 when disabled.
func LatencyScale(cfg Config) float64 {
	if !cfg.Latency.Enabled || cfg.Latency.Scale < 0 {
		return 0
	}
	return cfg.Latency.Scale
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
