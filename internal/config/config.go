package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings booksearch reads at startup.
type Config struct {
	APIBase           string
	CoverBase         string
	UserAgent         string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	LogDir            string
	Covers            bool
	MetricsAddr       string
}

const (
	defaultConfigPath = "~/.config/booksearch/config.toml"
	defaultLogDir     = "~/.local/state/booksearch"
	defaultAPIBase    = "https://openlibrary.org"
	defaultCoverBase  = "https://covers.openlibrary.org"

	envPrefix = "BOOKSEARCH"
	logFile   = "booksearch.log"
)

// Load reads the config file at path (or the default location), applies
// BOOKSEARCH_* environment overrides and falls back to defaults for anything
// unset. A missing file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_base", defaultAPIBase)
	v.SetDefault("cover_base", defaultCoverBase)
	v.SetDefault("user_agent", "")
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("requests_per_second", 0.0)
	v.SetDefault("log_dir", defaultLogDir)
	v.SetDefault("covers", true)
	v.SetDefault("metrics_addr", "")

	if _, statErr := os.Stat(resolved); statErr == nil {
		v.SetConfigFile(resolved)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return Config{}, fmt.Errorf("open config: %w", statErr)
	}

	cfg := Config{
		APIBase:           orDefault(v.GetString("api_base"), defaultAPIBase),
		CoverBase:         orDefault(v.GetString("cover_base"), defaultCoverBase),
		UserAgent:         strings.TrimSpace(v.GetString("user_agent")),
		RequestTimeout:    v.GetDuration("request_timeout"),
		RequestsPerSecond: v.GetFloat64("requests_per_second"),
		LogDir:            mustExpand(orDefault(v.GetString("log_dir"), defaultLogDir)),
		Covers:            v.GetBool("covers"),
		MetricsAddr:       strings.TrimSpace(v.GetString("metrics_addr")),
	}
	if cfg.RequestTimeout < 0 {
		return Config{}, fmt.Errorf("request_timeout must not be negative, got %s", cfg.RequestTimeout)
	}
	if cfg.RequestsPerSecond < 0 {
		return Config{}, fmt.Errorf("requests_per_second must not be negative, got %g", cfg.RequestsPerSecond)
	}
	return cfg, nil
}

// LogPath returns the file booksearch writes its log to.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/" + logFile)
	}
	return filepath.Join(c.LogDir, logFile)
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
