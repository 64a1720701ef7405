package document

import (
	"fmt"
	"strings"
)

// Builder accumulates the document in order: header and tree map first,
// then sections as they are admitted, then the summary footer.
type Builder struct {
	sb       strings.Builder
	finished bool
}

// NewBuilder starts a document for the named project with its rendered
// tree map.
func NewBuilder(project, tree string) *Builder {
	b := &Builder{}
	fmt.Fprintf(&b.sb, "# Project Context: %s\n\n", project)
	b.sb.WriteString("## Project Structure\n\n```text\n")
	b.sb.WriteString(tree)
	if !strings.HasSuffix(tree, "\n") {
		b.sb.WriteByte('\n')
	}
	b.sb.WriteString("```\n\n---\n\n")
	return b
}

// Append adds a fully materialized section.
func (b *Builder) Append(sec Section) {
	b.sb.WriteString(sec.Render())
}

// Finish appends the summary footer and returns the complete document.
func (b *Builder) Finish(sum *Summary) string {
	if b.finished {
		return b.sb.String()
	}
	b.finished = true

	b.sb.WriteString("## Run Summary\n\n")
	fmt.Fprintf(&b.sb, "- Files scanned: %d\n", sum.Scanned)
	fmt.Fprintf(&b.sb, "- Files included: %d (%d truncated)\n", sum.Included, sum.Truncated)

	var reasons []string
	for _, r := range skipOrder {
		if n := sum.Skipped[r]; n > 0 {
			reasons = append(reasons, fmt.Sprintf("%s: %d", r, n))
		}
	}
	if len(reasons) > 0 {
		fmt.Fprintf(&b.sb, "- Files skipped: %d (%s)\n", sum.TotalSkipped(), strings.Join(reasons, ", "))
	} else {
		b.sb.WriteString("- Files skipped: 0\n")
	}

	estimate := "- Estimated tokens: %d\n"
	if sum.Approximate {
		estimate = "- Estimated tokens: ~%d (heuristic estimate)\n"
	}
	fmt.Fprintf(&b.sb, estimate, sum.Tokens)

	return b.sb.String()
}
