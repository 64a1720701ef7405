// Package config provides configuration loading for data2prompt.
//
// Configuration is loaded from an optional YAML file, then overridden by
// environment variables, then by CLI flags (applied by the caller). Every
// value has a hardcoded default so the tool works with no config at all.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds the complete data2prompt configuration.
type Config struct {
	Output  string        `koanf:"output"`
	Budget  BudgetConfig  `koanf:"budget"`
	Scan    ScanConfig    `koanf:"scan"`
	Extract ExtractConfig `koanf:"extract"`
	Token   TokenConfig   `koanf:"token"`
	Logging LoggingConfig `koanf:"logging"`
}

// BudgetConfig controls token accounting for the assembled document.
type BudgetConfig struct {
	// TotalTokens is the token ceiling for the whole document.
	TotalTokens int `koanf:"total_tokens"`

	// PerFileCapFraction caps any single file at this fraction of
	// TotalTokens, independent of how much budget remains. Prevents one
	// oversized file from starving everything after it.
	PerFileCapFraction float64 `koanf:"per_file_cap_fraction"`

	// MinSectionTokens is the smallest truncated section still worth
	// including. Truncated extractions below this are rejected outright.
	MinSectionTokens int `koanf:"min_section_tokens"`
}

// ScanConfig controls workspace discovery and binary detection.
type ScanConfig struct {
	// BinarySniffBytes is how much of a file's head is inspected for
	// null bytes when classifying it as text or binary.
	BinarySniffBytes int `koanf:"binary_sniff_bytes"`

	// IgnoreFolders are directory names skipped entirely (not shown in
	// the tree, not processed).
	IgnoreFolders []string `koanf:"ignore_folders"`

	// IgnoreFiles are exact file names skipped entirely.
	IgnoreFiles []string `koanf:"ignore_files"`

	// SkipExtensions are extensions listed in the tree but never read;
	// their sections are size-only placeholders.
	SkipExtensions []string `koanf:"skip_extensions"`

	// IgnoreFileNames are gitignore-style files loaded from the
	// workspace root, in order.
	IgnoreFileNames []string `koanf:"ignore_file_names"`
}

// ExtractConfig controls per-format extraction limits.
type ExtractConfig struct {
	// MaxTextBytes bounds how much of a plain-text file is read.
	MaxTextBytes int `koanf:"max_text_bytes"`

	// SampleRows is how many rows tabular extractors keep per table
	// (per sheet for spreadsheets, per table for SQL dumps).
	SampleRows int `koanf:"sample_rows"`

	// MaxOutputLines bounds notebook cell output blocks.
	MaxOutputLines int `koanf:"max_output_lines"`

	// NotebookPlaceholders replaces embedded images and HTML dumps in
	// notebook outputs with size-noting placeholders.
	NotebookPlaceholders bool `koanf:"notebook_placeholders"`
}

// TokenConfig selects the tokenizer encoding.
type TokenConfig struct {
	// Model is the target model whose encoding is used for counting.
	Model string `koanf:"model"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		Output: "PROMPT.md",
		Budget: BudgetConfig{
			TotalTokens:        100000,
			PerFileCapFraction: 0.2,
			MinSectionTokens:   32,
		},
		Scan: ScanConfig{
			BinarySniffBytes: 1024,
			IgnoreFolders: []string{
				".git", ".svn", ".hg", "__pycache__", ".ipynb_checkpoints",
				"venv", ".venv", "node_modules", ".vscode", ".idea",
				"dist", "build", "target", ".mypy_cache", ".pytest_cache",
				".cache", ".docker",
			},
			IgnoreFiles: []string{".DS_Store"},
			SkipExtensions: []string{
				// Data and databases
				".pbix", ".db", ".sqlite", ".sqlite3", ".parquet",
				".pkl", ".pickle", ".feather", ".h5",
				// Compressed and binary
				".zip", ".tar", ".gz", ".7z", ".rar", ".exe", ".dll",
				".so", ".bin",
				// Media
				".png", ".jpg", ".jpeg", ".gif", ".svg", ".pdf",
				".mp4", ".mp3", ".mov",
				// Environment and caches
				".env", ".pyc",
			},
			IgnoreFileNames: []string{".data2promptignore", ".gitignore"},
		},
		Extract: ExtractConfig{
			MaxTextBytes:         200 * 1024,
			SampleRows:           70,
			MaxOutputLines:       55,
			NotebookPlaceholders: true,
		},
		Token: TokenConfig{
			Model: "gpt-4o",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error

	if c.Output == "" {
		errs = append(errs, errors.New("output file name is required"))
	}
	if c.Budget.TotalTokens <= 0 {
		errs = append(errs, fmt.Errorf("budget.total_tokens must be positive, got %d", c.Budget.TotalTokens))
	}
	if c.Budget.PerFileCapFraction <= 0 || c.Budget.PerFileCapFraction > 1 {
		errs = append(errs, fmt.Errorf("budget.per_file_cap_fraction must be in (0, 1], got %g", c.Budget.PerFileCapFraction))
	}
	if c.Budget.MinSectionTokens < 0 {
		errs = append(errs, fmt.Errorf("budget.min_section_tokens cannot be negative, got %d", c.Budget.MinSectionTokens))
	}
	if c.Scan.BinarySniffBytes <= 0 {
		errs = append(errs, fmt.Errorf("scan.binary_sniff_bytes must be positive, got %d", c.Scan.BinarySniffBytes))
	}
	if c.Extract.MaxTextBytes <= 0 {
		errs = append(errs, fmt.Errorf("extract.max_text_bytes must be positive, got %d", c.Extract.MaxTextBytes))
	}
	if c.Extract.SampleRows <= 0 {
		errs = append(errs, fmt.Errorf("extract.sample_rows must be positive, got %d", c.Extract.SampleRows))
	}
	if c.Extract.MaxOutputLines <= 0 {
		errs = append(errs, fmt.Errorf("extract.max_output_lines must be positive, got %d", c.Extract.MaxOutputLines))
	}
	for _, ext := range c.Scan.SkipExtensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("scan.skip_extensions entries must start with a dot, got %q", ext))
		}
	}

	return errors.Join(errs...)
}

// PerFileCap returns the per-file token cap in absolute tokens.
func (c *Config) PerFileCap() int {
	cap := int(float64(c.Budget.TotalTokens) * c.Budget.PerFileCapFraction)
	if cap < 1 {
		cap = 1
	}
	return cap
}
