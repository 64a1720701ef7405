package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// maxConfigFileSize rejects absurdly large config files.
	maxConfigFileSize = 1024 * 1024 // 1MB

	// envPrefix namespaces data2prompt environment variables.
	envPrefix = "D2P_"
)

// Load loads configuration from an optional YAML file, then overrides with
// environment variables.
//
// Precedence (highest to lowest):
//  1. Environment variables (D2P_BUDGET_TOTAL_TOKENS, D2P_TOKEN_MODEL, ...)
//  2. YAML config file (path passed by the caller; missing file is fine)
//  3. Hardcoded defaults
//
// Environment variables map to config keys by stripping the D2P_ prefix,
// lowercasing, and splitting on the first underscore:
//
//	D2P_BUDGET_TOTAL_TOKENS -> budget.total_tokens
//	D2P_SCAN_BINARY_SNIFF_BYTES -> scan.binary_sniff_bytes
//	D2P_OUTPUT -> output
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		if err := loadFile(k, configPath); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFile reads a YAML config file into k. A missing file is not an error;
// an unreadable or oversized one is.
func loadFile(k *koanf.Koanf, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	// rawbytes avoids re-opening the file after the stat check.
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return nil
}

// envTransform maps an environment variable name to a config key.
// The first underscore separates section from field; underscores within
// the field name are preserved.
func envTransform(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}
