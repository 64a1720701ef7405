package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// PlainText extracts the head of a file up to a byte limit. It is both
// the extractor for ordinary source and config files and the degradation
// target for structured formats that fail to parse.
type PlainText struct{}

// NewPlainText creates the plain-text extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// Supports returns true for every extension: plain text is the fallback.
func (p *PlainText) Supports(ext string) bool {
	return true
}

// Extract reads up to lim.MaxBytes of the file. Longer files keep the
// head and get a marker noting how many bytes were withheld. Units are
// bytes shown versus total bytes.
func (p *PlainText) Extract(path string, lim Limits) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	total := info.Size()

	buf := make([]byte, lim.MaxBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	head := buf[:n]

	truncated := total > int64(n)
	if truncated {
		// Cut at the last full line so the marker does not glue onto
		// a half line.
		if i := bytes.LastIndexByte(head, '\n'); i > 0 {
			head = head[:i+1]
		}
	}

	var sb strings.Builder
	sb.WriteString("```" + fenceLang(path) + "\n")
	sb.Write(head)
	if len(head) > 0 && head[len(head)-1] != '\n' {
		sb.WriteByte('\n')
	}
	if truncated {
		fmt.Fprintf(&sb, "... [truncated: %d of %d bytes withheld]\n", total-int64(len(head)), total)
	}
	sb.WriteString("```")

	return &Result{
		Text:         sb.String(),
		Truncated:    truncated,
		SampledUnits: len(head),
		TotalUnits:   int(total),
	}, nil
}

// Degrade extracts raw bytes as plain text on behalf of a structured
// extractor whose parse failed. The note explains the degradation and
// is prepended to the text. Raw content that itself looks binary gets a
// note-only placeholder instead of a byte dump.
func (p *PlainText) Degrade(path string, lim Limits, note string) (*Result, error) {
	// Small sniff to avoid dumping binary containers as text.
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	head := make([]byte, 1024)
	n, _ := io.ReadFull(f, head)
	f.Close()

	if bytes.IndexByte(head[:n], 0) >= 0 {
		return &Result{
			Text:      fmt.Sprintf("*%s; raw content is binary and was omitted.*", note),
			Truncated: true,
			Note:      note,
		}, nil
	}

	res, err := p.Extract(path, lim)
	if err != nil {
		return nil, err
	}
	res.Text = fmt.Sprintf("*%s; raw content follows.*\n\n%s", note, res.Text)
	res.Truncated = true
	res.Note = note
	return res, nil
}

// fenceLang picks a code-fence language tag from the file extension.
func fenceLang(path string) string {
	dot := strings.LastIndexByte(path, '.')
	if dot < 0 || dot == len(path)-1 {
		return "text"
	}
	ext := strings.ToLower(path[dot+1:])
	switch ext {
	case "py":
		return "python"
	case "md", "markdown":
		return "markdown"
	case "yml":
		return "yaml"
	case "txt":
		return "text"
	default:
		return ext
	}
}

var _ Extractor = (*PlainText)(nil)
