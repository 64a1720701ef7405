// Package main implements the data2prompt CLI, which packages a
// data-science workspace into a single LLM-ready Markdown document.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/data2prompt/internal/config"
	"github.com/fyrsmithlabs/data2prompt/internal/logging"
	"github.com/fyrsmithlabs/data2prompt/internal/pipeline"
	"github.com/fyrsmithlabs/data2prompt/internal/token"
	"github.com/fyrsmithlabs/data2prompt/internal/ui"
)

var (
	configPath    string
	outputPath    string
	budgetTokens  int
	capFraction   float64
	sampleRows    int
	maxLines      int
	maxFileBytes  int
	ignoreFolders []string
	skipExts      []string
	tokenModel    string
	logLevel      string
	quiet         bool

	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "data2prompt [path]",
	Short: "Package a data-science workspace into one LLM-ready document",
	Long: `data2prompt walks a workspace of source files, notebooks, CSV/Excel
data and SQL dumps, extracts a representative view of each file, and
assembles everything into a single Markdown document that fits a token
budget.

Examples:
  # Package the current directory into PROMPT.md
  data2prompt

  # Package a project with a tighter budget
  data2prompt ~/projects/churn-model --budget 50000

  # Write to stdout-friendly location and silence progress output
  data2prompt . -o context.md --quiet`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", ".data2prompt.yaml", "config file path")
	flags.StringVarP(&outputPath, "output", "o", "", "output file name (default PROMPT.md)")
	flags.IntVar(&budgetTokens, "budget", 0, "token budget for the whole document")
	flags.Float64Var(&capFraction, "cap-fraction", 0, "per-file cap as a fraction of the budget")
	flags.IntVar(&sampleRows, "sample-rows", 0, "rows sampled per table or sheet")
	flags.IntVar(&maxLines, "max-lines", 0, "max lines kept per notebook output block")
	flags.IntVar(&maxFileBytes, "max-file-bytes", 0, "max bytes read from a plain-text file")
	flags.StringSliceVar(&ignoreFolders, "ignore-folders", nil, "additional folder names to ignore")
	flags.StringSliceVar(&skipExts, "skip-exts", nil, "additional extensions to list without reading")
	flags.StringVar(&tokenModel, "model", "", "model whose tokenizer encoding is used for counting")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
}

func run(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	reporter := ui.New(os.Stderr, quiet)
	reporter.Banner(root)

	runner := pipeline.New(cfg, logger, token.New(cfg.Token.Model, logger),
		pipeline.WithProgress(func(index, total int, rel string) {
			reporter.File(index, total, rel)
		}))

	start := time.Now()
	out, err := runner.Run(root)
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}

	dest := cfg.Output
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(root, dest)
	}
	if err := os.WriteFile(dest, []byte(out.Document), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}

	reporter.Done(out, dest, time.Since(start))
	return nil
}

// loadConfig loads file and environment configuration, then applies
// whichever flags were explicitly set.
func loadConfig(cmd *cobra.Command, root string) (*config.Config, error) {
	flags := cmd.Flags()

	cfg, err := config.Load(resolveConfigPath(flags.Changed("config"), root, configPath))
	if err != nil {
		return nil, err
	}
	if flags.Changed("output") {
		cfg.Output = outputPath
	}
	if flags.Changed("budget") {
		cfg.Budget.TotalTokens = budgetTokens
	}
	if flags.Changed("cap-fraction") {
		cfg.Budget.PerFileCapFraction = capFraction
	}
	if flags.Changed("sample-rows") {
		cfg.Extract.SampleRows = sampleRows
	}
	if flags.Changed("max-lines") {
		cfg.Extract.MaxOutputLines = maxLines
	}
	if flags.Changed("max-file-bytes") {
		cfg.Extract.MaxTextBytes = maxFileBytes
	}
	if flags.Changed("ignore-folders") {
		cfg.Scan.IgnoreFolders = append(cfg.Scan.IgnoreFolders, ignoreFolders...)
	}
	if flags.Changed("skip-exts") {
		cfg.Scan.SkipExtensions = append(cfg.Scan.SkipExtensions, skipExts...)
	}
	if flags.Changed("model") {
		cfg.Token.Model = tokenModel
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath anchors the default config file at the workspace
// root, so `data2prompt ~/proj` picks up ~/proj/.data2prompt.yaml. An
// explicit --config is taken as given, relative to the working
// directory like any other CLI path.
func resolveConfigPath(explicit bool, root, path string) string {
	if explicit || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
