package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every qrcodegen subcommand: what the
// CLI's defaults are and how the HTTP service listens and logs.
type Config struct {
	LogLevel string       `yaml:"loglevel"`
	LogFile  string       `yaml:"logfile"`
	Encode   EncodeConfig `yaml:"encode"`
	Server   ServerConfig `yaml:"server"`
}

// EncodeConfig holds the default values `qrcodegen encode` falls back to
// when a flag isn't given.
type EncodeConfig struct {
	ErrorCorrectionLevel string `yaml:"error_correction_level"`
	Scale                int    `yaml:"scale"`
	Border               int    `yaml:"border"`
}

// ServerConfig holds the settings for `qrcodegen serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Defaults returns a Config populated with every default value.
func Defaults() *Config {
	return &Config{
		LogLevel: "info",
		LogFile:  "",
		Encode: EncodeConfig{
			ErrorCorrectionLevel: "medium",
			Scale:                8,
			Border:               4,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads a YAML config file at path, merging it onto the defaults. A
// missing file is not an error; Load returns Defaults() instead.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
