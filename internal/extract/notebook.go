package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// maxNotebookBytes bounds how much of a notebook file is read before
// parsing. Notebooks beyond this are dominated by embedded payloads and
// degrade to plain text.
const maxNotebookBytes = 16 << 20 // 16MB

// Notebook extracts Jupyter notebooks cell by cell. Code and markdown
// sources are emitted verbatim in original order; heavy output payloads
// (images, HTML tables) are replaced with size-noting placeholders. The
// payload replacement is where most of the token savings come from.
type Notebook struct {
	fallback *PlainText
}

// NewNotebook creates the notebook extractor.
func NewNotebook(fallback *PlainText) *Notebook {
	return &Notebook{fallback: fallback}
}

// Supports reports true for .ipynb files.
func (n *Notebook) Supports(ext string) bool {
	return ext == ".ipynb"
}

// nbSource accepts the two source encodings notebooks use: a single
// string or a list of line strings.
type nbSource string

func (s *nbSource) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = nbSource(one)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = nbSource(strings.Join(many, ""))
	return nil
}

type nbCell struct {
	CellType string     `json:"cell_type"`
	Source   nbSource   `json:"source"`
	Outputs  []nbOutput `json:"outputs"`
}

type nbOutput struct {
	OutputType string                     `json:"output_type"`
	Text       nbSource                   `json:"text"`
	Data       map[string]json.RawMessage `json:"data"`
	Ename      string                     `json:"ename"`
	Evalue     string                     `json:"evalue"`
}

type nbDocument struct {
	Cells []nbCell `json:"cells"`
}

// Extract renders the notebook's cells in order. Units are cells; the
// result is marked truncated when any output payload was omitted or
// trimmed. Corrupt notebook JSON degrades to plain-text extraction.
func (n *Notebook) Extract(path string, lim Limits) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	if len(raw) > maxNotebookBytes {
		return n.fallback.Degrade(path, lim, "notebook exceeds the parse size limit")
	}

	var doc nbDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return n.fallback.Degrade(path, lim, "notebook JSON could not be parsed")
	}

	var sb strings.Builder
	truncated := false

	for i, cell := range doc.Cells {
		fmt.Fprintf(&sb, "### Cell %d [%s]\n\n", i+1, strings.ToUpper(cell.CellType))

		switch cell.CellType {
		case "markdown", "raw":
			sb.WriteString(string(cell.Source))
			sb.WriteString("\n")
		case "code":
			sb.WriteString("```python\n")
			sb.WriteString(string(cell.Source))
			if !strings.HasSuffix(string(cell.Source), "\n") {
				sb.WriteByte('\n')
			}
			sb.WriteString("```\n")

			for _, out := range cell.Outputs {
				if n.renderOutput(&sb, out, i+1, lim) {
					truncated = true
				}
			}
		default:
			// Unknown cell types keep their source so nothing is
			// silently lost.
			sb.WriteString(string(cell.Source))
			sb.WriteString("\n")
		}

		sb.WriteString("\n---\n\n")
	}

	return &Result{
		Text:         strings.TrimSuffix(sb.String(), "\n"),
		Truncated:    truncated,
		SampledUnits: len(doc.Cells),
		TotalUnits:   len(doc.Cells),
	}, nil
}

// renderOutput writes one output block. Returns true when content was
// omitted or trimmed.
func (n *Notebook) renderOutput(sb *strings.Builder, out nbOutput, cellNo int, lim Limits) bool {
	switch out.OutputType {
	case "stream":
		return writeQuoted(sb, fmt.Sprintf("**Cell %d Output:**", cellNo), string(out.Text), lim.MaxOutputLines)

	case "execute_result", "display_data":
		truncated := false

		// Sort MIME keys so output order is deterministic.
		keys := make([]string, 0, len(out.Data))
		for k := range out.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, mime := range keys {
			payload := out.Data[mime]
			switch {
			case mime == "text/plain":
				var text nbSource
				if err := json.Unmarshal(payload, &text); err != nil {
					continue
				}
				if writeQuoted(sb, fmt.Sprintf("**Cell %d Data Preview:**", cellNo), string(text), lim.MaxOutputLines) {
					truncated = true
				}
			case mime == "text/html":
				truncated = true
				if lim.Placeholders {
					fmt.Fprintf(sb, "> *[HTML table output omitted: %d bytes]*\n\n", len(payload))
				}
			case strings.HasPrefix(mime, "image/") || strings.HasPrefix(mime, "application/"):
				truncated = true
				if lim.Placeholders {
					fmt.Fprintf(sb, "> *[%s output omitted: ~%d KB]*\n\n", mime, len(payload)/1024)
				}
			}
		}
		return truncated

	case "error":
		fmt.Fprintf(sb, "> **Cell %d Error:** %s: %s\n\n", cellNo, out.Ename, out.Evalue)
		return false
	}
	return false
}

// writeQuoted emits text as a blockquote bounded to maxLines. Returns
// true when lines were dropped.
func writeQuoted(sb *strings.Builder, label, text string, maxLines int) bool {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return false
	}

	lines := strings.Split(text, "\n")
	dropped := 0
	if len(lines) > maxLines {
		dropped = len(lines) - maxLines
		lines = lines[:maxLines]
	}

	sb.WriteString("> " + label + "\n")
	for _, line := range lines {
		sb.WriteString("> " + line + "\n")
	}
	if dropped > 0 {
		fmt.Fprintf(sb, "> *[%d more lines omitted]*\n", dropped)
	}
	sb.WriteString("\n")
	return dropped > 0
}

var _ Extractor = (*Notebook)(nil)
