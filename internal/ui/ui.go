// Package ui renders console status output for interactive runs. All
// output goes to the writer given at construction (stderr in the CLI),
// never to stdout, so the generated document can be piped cleanly.
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/data2prompt/internal/document"
	"github.com/fyrsmithlabs/data2prompt/internal/pipeline"
)

var (
	// Banner style - bright cyan background, bold black text
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1)

	// Label style - dim cyan
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	// Value style - bright white
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	// Dim style - for paths and secondary info
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("46")).
		Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)
)

// Reporter writes run progress to a terminal. A nil Reporter is valid
// and silent, so callers don't branch on quiet mode.
type Reporter struct {
	w io.Writer
}

// New creates a Reporter writing to w. Returns nil when quiet is set.
func New(w io.Writer, quiet bool) *Reporter {
	if quiet {
		return nil
	}
	return &Reporter{w: w}
}

// Banner prints the run header.
func (r *Reporter) Banner(root string) {
	if r == nil {
		return
	}
	fmt.Fprintln(r.w, bannerStyle.Render("data2prompt"))
	fmt.Fprintln(r.w, labelStyle.Render("workspace: ")+valueStyle.Render(root))
	fmt.Fprintln(r.w)
}

// File prints one per-file progress line.
func (r *Reporter) File(index, total int, rel string) {
	if r == nil {
		return
	}
	fmt.Fprintf(r.w, "%s %s\n",
		dimStyle.Render(fmt.Sprintf("[%d/%d]", index, total)),
		rel)
}

// Done prints the final run summary.
func (r *Reporter) Done(out *pipeline.Output, path string, elapsed time.Duration) {
	if r == nil {
		return
	}
	sum := out.Summary

	badge := okStyle.Render("✓ complete")
	if out.Status == pipeline.StatusTruncated {
		badge = warnStyle.Render("⚠ truncated (budget exhausted)")
	}

	tokens := fmt.Sprintf("%d", sum.Tokens)
	if sum.Approximate {
		tokens = "~" + tokens + dimStyle.Render(" (heuristic)")
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, badge)
	fmt.Fprintln(r.w, labelStyle.Render("output:   ")+valueStyle.Render(path))
	fmt.Fprintln(r.w, labelStyle.Render("files:    ")+fmt.Sprintf("%d scanned, %d included (%d truncated), %d skipped",
		sum.Scanned, sum.Included, sum.Truncated, sum.TotalSkipped()))
	for _, reason := range document.SkipReasons() {
		if n := sum.Skipped[reason]; n > 0 {
			fmt.Fprintln(r.w, dimStyle.Render(fmt.Sprintf("          %s: %d", reason, n)))
		}
	}
	fmt.Fprintln(r.w, labelStyle.Render("tokens:   ")+tokens)
	fmt.Fprintln(r.w, labelStyle.Render("elapsed:  ")+elapsed.Round(time.Millisecond).String())
}
