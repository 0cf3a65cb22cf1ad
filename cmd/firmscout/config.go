package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leofalp/firmscout/providers/exhibitor"
)

// fileConfig is the optional YAML config overriding the compiled-in query
// set, noise filter, conference list, and classification allow-lists. Empty
// sections keep their defaults.
type fileConfig struct {
	Queries             []string               `yaml:"queries"`
	SkipDomains         []string               `yaml:"skip_domains"`
	Conferences         []exhibitor.Conference `yaml:"conferences"`
	FinancialMSPDomains []string               `yaml:"financial_msp_domains"`
	CompNames           []string               `yaml:"comp_names"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// logLevelFromEnv returns the level configured via FIRMSCOUT_LOG_LEVEL,
// falling back to LOG_LEVEL, then INFO. Unknown values warn and default.
func logLevelFromEnv() slog.Level {
	level := os.Getenv("FIRMSCOUT_LOG_LEVEL")
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		return slog.LevelInfo
	}

	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "Warning: Unknown log level '%s', using INFO\n", level)
		return slog.LevelInfo
	}
}
