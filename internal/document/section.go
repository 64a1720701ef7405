// Package document assembles the final Markdown artifact: a tree map,
// one section per included file, and a run summary footer.
//
// Output is deterministic: given the same sections in the same order,
// the assembled document is byte-identical across runs. Section text is
// fully materialized before being appended, so an interrupted run never
// leaves a half-written section in the buffer.
package document

import (
	"fmt"
	"strings"
)

// Section is one finalized file block. Immutable once appended.
type Section struct {
	// Path is the workspace-relative file path used as the heading.
	Path string

	// Body is the extracted representation.
	Body string

	// Truncated, SampledUnits and TotalUnits mirror the extraction
	// metadata shown under the heading.
	Truncated    bool
	SampledUnits int
	TotalUnits   int

	// Note explains a degraded extraction, when present.
	Note string
}

// Render produces the complete textual form of the section, metadata
// line included. The pipeline renders sections before admission so the
// token estimate covers exactly what lands in the document.
func (s Section) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## FILE: %s\n\n", s.Path)

	if meta := s.metaLine(); meta != "" {
		sb.WriteString(meta + "\n\n")
	}

	sb.WriteString(s.Body)
	sb.WriteString("\n\n---\n\n")
	return sb.String()
}

// metaLine renders the extraction metadata under the heading. Empty for
// a whole small file, where it would only be noise.
func (s Section) metaLine() string {
	var parts []string
	if s.TotalUnits > 0 && s.SampledUnits < s.TotalUnits {
		parts = append(parts, fmt.Sprintf("%d of %d units included", s.SampledUnits, s.TotalUnits))
	} else if s.Truncated {
		parts = append(parts, "truncated")
	}
	if s.Note != "" {
		parts = append(parts, s.Note)
	}
	if len(parts) == 0 {
		return ""
	}
	return "*" + strings.Join(parts, "; ") + "*"
}
