// Package pipeline runs the end-to-end packaging flow: walk, classify,
// extract, estimate, admit, assemble.
//
// The pipeline is a single-threaded sequential reduction. One file is
// fully classified, extracted, estimated and budget-checked before the
// next is considered, because the allocator's decision for file N
// depends on what files 1..N-1 consumed. Per-file failures are recorded
// and skipped, never fatal; only an invalid root, an empty workspace or
// a non-positive budget abort the run.
package pipeline

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/data2prompt/internal/budget"
	"github.com/fyrsmithlabs/data2prompt/internal/config"
	"github.com/fyrsmithlabs/data2prompt/internal/document"
	"github.com/fyrsmithlabs/data2prompt/internal/extract"
	"github.com/fyrsmithlabs/data2prompt/internal/scan"
	"github.com/fyrsmithlabs/data2prompt/internal/token"
)

// Status is the run's terminal condition.
type Status int

const (
	// StatusComplete means every file was processed with budget to
	// spare.
	StatusComplete Status = iota
	// StatusTruncated means the budget ran out before the end of the
	// file list. Still a successful run.
	StatusTruncated
)

// String returns a human-readable status name.
func (s Status) String() string {
	if s == StatusTruncated {
		return "truncated"
	}
	return "complete"
}

// Progress is called once per file before it is processed. Used by the
// CLI for its status line; nil disables reporting.
type Progress func(index, total int, rel string)

// Output is the result of one run.
type Output struct {
	// Document is the complete assembled artifact.
	Document string

	// Summary holds the run statistics also rendered in the footer.
	Summary *document.Summary

	// Status reports whether the budget lasted to the end.
	Status Status
}

// Runner executes packaging runs. Safe to reuse across runs; all
// per-run state lives in Run.
type Runner struct {
	cfg       *config.Config
	logger    *zap.Logger
	estimator token.Estimator
	registry  *extract.Registry
	sniffer   *scan.Sniffer
	progress  Progress
}

// Option configures a Runner.
type Option func(*Runner)

// WithProgress sets the per-file progress callback.
func WithProgress(fn Progress) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

// New creates a runner from configuration. The estimator is injected so
// the caller decides (once, at startup) between the real tokenizer and
// the heuristic fallback.
func New(cfg *config.Config, logger *zap.Logger, estimator token.Estimator, opts ...Option) *Runner {
	r := &Runner{
		cfg:       cfg,
		logger:    logger,
		estimator: estimator,
		registry:  extract.NewRegistry(),
		sniffer:   scan.NewSniffer(cfg.Scan.BinarySniffBytes),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run packages the workspace at root into a single document.
func (r *Runner) Run(root string) (*Output, error) {
	ws, rules, err := r.discover(root)
	if err != nil {
		return nil, err
	}

	alloc, err := budget.NewAllocator(
		r.cfg.Budget.TotalTokens,
		r.cfg.PerFileCap(),
		r.cfg.Budget.MinSectionTokens,
	)
	if err != nil {
		return nil, err
	}

	builder := document.NewBuilder(filepath.Base(ws.Root), ws.Tree)
	sum := document.NewSummary()
	sum.Scanned = len(ws.Files) + ws.Ignored + ws.Unreadable
	sum.Approximate = r.estimator.Approximate()
	for i := 0; i < ws.Ignored; i++ {
		sum.Skip(document.SkipIgnored)
	}
	if ws.Unreadable > 0 {
		r.logger.Warn("skipped unreadable directories", zap.Int("count", ws.Unreadable))
		for i := 0; i < ws.Unreadable; i++ {
			sum.Skip(document.SkipUnreadable)
		}
	}

	lim := extract.Limits{
		MaxBytes:       r.cfg.Extract.MaxTextBytes,
		SampleRows:     r.cfg.Extract.SampleRows,
		MaxOutputLines: r.cfg.Extract.MaxOutputLines,
		Placeholders:   r.cfg.Extract.NotebookPlaceholders,
	}

	for i, file := range ws.Files {
		if r.progress != nil {
			r.progress(i+1, len(ws.Files), file.Rel)
		}
		r.process(file, rules, lim, alloc, builder, sum)
	}

	status := StatusComplete
	if sum.Skipped[document.SkipBudget] > 0 {
		status = StatusTruncated
	}

	return &Output{
		Document: builder.Finish(sum),
		Summary:  sum,
		Status:   status,
	}, nil
}

// discover builds the exclusion rules and walks the workspace.
func (r *Runner) discover(root string) (*scan.Workspace, *scan.Ruleset, error) {
	ignoreFiles := make([]string, 0, len(r.cfg.Scan.IgnoreFiles)+1)
	ignoreFiles = append(ignoreFiles, r.cfg.Scan.IgnoreFiles...)
	// Never re-ingest a previously generated artifact.
	ignoreFiles = append(ignoreFiles, r.cfg.Output)

	rules := scan.NewRuleset(r.cfg.Scan.IgnoreFolders, ignoreFiles, r.cfg.Scan.SkipExtensions)
	if err := rules.LoadIgnoreFiles(root, r.cfg.Scan.IgnoreFileNames); err != nil {
		return nil, nil, fmt.Errorf("loading ignore files: %w", err)
	}

	ws, err := scan.NewWalker(rules).Walk(root)
	if err != nil {
		return nil, nil, err
	}
	return ws, rules, nil
}

// process runs one file through classify, extract, estimate and admit.
func (r *Runner) process(file scan.SourceFile, rules *scan.Ruleset, lim extract.Limits, alloc *budget.Allocator, builder *document.Builder, sum *document.Summary) {
	// Skip-extension files get a size-only placeholder: acknowledged
	// in the document, content never read.
	if rules.SkipContent(file.Ext) {
		res := &extract.Result{
			Text: fmt.Sprintf("*Binary/heavy file (%s, %d bytes). Content skipped.*", file.Ext, file.Size),
		}
		r.admit(file, res, nil, lim, alloc, builder, sum)
		return
	}

	// Structured formats carry their own parsers and may legitimately
	// be binary containers (spreadsheets), so only unstructured files
	// go through the null-byte sniff.
	if !r.registry.Structured(file.Ext) {
		kind, err := r.sniffer.Classify(file.Path)
		if err != nil {
			r.logger.Warn("skipping unreadable file", zap.String("path", file.Rel), zap.Error(err))
			sum.Skip(document.SkipUnreadable)
			return
		}
		if kind == scan.KindBinary {
			r.logger.Debug("skipping binary file", zap.String("path", file.Rel))
			sum.Skip(document.SkipBinary)
			return
		}
	}

	extractor := r.registry.ForExt(file.Ext)
	res, err := extractor.Extract(file.Path, lim)
	if err != nil {
		r.logger.Warn("skipping unreadable file", zap.String("path", file.Rel), zap.Error(err))
		sum.Skip(document.SkipUnreadable)
		return
	}

	r.admit(file, res, extractor, lim, alloc, builder, sum)
}

// admit renders and estimates the candidate section, then lets the
// allocator decide. On a too-expensive candidate the allocator retries
// once through a re-extraction scaled to the grantable tokens.
func (r *Runner) admit(file scan.SourceFile, res *extract.Result, extractor extract.Extractor, lim extract.Limits, alloc *budget.Allocator, builder *document.Builder, sum *document.Summary) {
	section := r.section(file, res)
	res.TokenEstimate = r.estimator.Estimate(section.Render())

	var retrySection document.Section
	var retry budget.RetryFunc
	if extractor != nil {
		retry = func(grant int) (*extract.Result, error) {
			// Scale from what the first pass actually produced, not the
			// configured ceiling, and leave headroom for the fixed
			// section framing the token ratio does not account for.
			base := lim
			if n := len(res.Text); n < base.MaxBytes {
				base.MaxBytes = n
			}
			factor := 0.9 * float64(grant) / float64(res.TokenEstimate)
			smaller, err := extractor.Extract(file.Path, base.Scale(factor))
			if err != nil {
				return nil, err
			}
			retrySection = r.section(file, smaller)
			smaller.TokenEstimate = r.estimator.Estimate(retrySection.Render())
			return smaller, nil
		}
	}

	decision := alloc.Admit(res, retry)
	switch decision.Verdict {
	case budget.AcceptFull:
		builder.Append(section)
		sum.Include(res.Truncated, decision.Tokens)
	case budget.AcceptTruncated:
		builder.Append(retrySection)
		sum.Include(true, decision.Tokens)
	case budget.Reject:
		reason := document.SkipBudget
		if !decision.Exhausted {
			reason = document.SkipOverCap
		}
		r.logger.Debug("rejecting file over budget",
			zap.String("path", file.Rel),
			zap.String("reason", string(reason)),
			zap.Int("estimate", res.TokenEstimate),
			zap.Int("remaining", alloc.Remaining()))
		sum.Skip(reason)
	}
}

// section builds the document section for one extraction.
func (r *Runner) section(file scan.SourceFile, res *extract.Result) document.Section {
	return document.Section{
		Path:         file.Rel,
		Body:         res.Text,
		Truncated:    res.Truncated,
		SampledUnits: res.SampledUnits,
		TotalUnits:   res.TotalUnits,
		Note:         res.Note,
	}
}
