// Package config loads the studio's yaml configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/jemsbhai/explainiverse-studio/logging"
)

type Config struct {
	HTTP struct {
		Port           int      `yaml:"port"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		MaxUploadMB    int64    `yaml:"max_upload_mb"`
	} `yaml:"http"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Cache struct {
		Size int `yaml:"size"`
	} `yaml:"cache"`
	Log logging.Config `yaml:"log"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.HTTP.Port = 8080
	cfg.HTTP.TimeoutSeconds = 30
	cfg.HTTP.AllowedOrigins = []string{"*"}
	cfg.HTTP.MaxUploadMB = 32
	cfg.Database.Path = "explainiverse.db"
	cfg.Cache.Size = 128
	cfg.Log = logging.DefaultConfig()
	return cfg
}

// Load reads the yaml file at path. A missing file yields the defaults;
// a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	normalize(cfg)
	return cfg, nil
}

func normalize(cfg *Config) {
	if cfg.HTTP.Port <= 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.HTTP.TimeoutSeconds <= 0 {
		cfg.HTTP.TimeoutSeconds = 30
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}
	if cfg.HTTP.MaxUploadMB <= 0 {
		cfg.HTTP.MaxUploadMB = 32
	}
	if cfg.Cache.Size <= 0 {
		cfg.Cache.Size = 128
	}
}
