package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSV extracts comma-separated files as a header plus a stratified row
// sample. The file is streamed twice (count, then select) so memory
// stays bounded by the sample size, not the file size.
type CSV struct {
	fallback *PlainText
}

// NewCSV creates the CSV extractor.
func NewCSV(fallback *PlainText) *CSV {
	return &CSV{fallback: fallback}
}

// Supports reports true for .csv and .tsv files.
func (c *CSV) Supports(ext string) bool {
	return ext == ".csv" || ext == ".tsv"
}

// Extract renders the header and up to lim.SampleRows data rows spread
// across the full row range. The header and column count are always
// preserved, even when zero data rows fit. Units are data rows.
func (c *CSV) Extract(path string, lim Limits) (*Result, error) {
	header, total, countBounded, err := c.countRows(path)
	if err != nil {
		if isUnreadable(err) {
			return nil, err
		}
		return c.fallback.Degrade(path, lim, "CSV could not be parsed")
	}
	if len(header) == 0 {
		return c.fallback.Degrade(path, lim, "CSV has no header row")
	}

	selected := sampleIndices(total, lim.SampleRows)
	rows, err := c.selectRows(path, selected)
	if err != nil {
		if isUnreadable(err) {
			return nil, err
		}
		return c.fallback.Degrade(path, lim, "CSV could not be parsed")
	}

	var sb strings.Builder
	if len(rows) < total {
		fmt.Fprintf(&sb, "#### [Sample: %d of %d rows, evenly spaced]\n\n", len(rows), total)
	}
	width := len(header)
	markdownRow(&sb, header, width)
	markdownSeparator(&sb, width)
	for _, row := range rows {
		markdownRow(&sb, row, width)
	}

	text := strings.TrimSuffix(sb.String(), "\n")
	if countBounded {
		text += fmt.Sprintf("\n\n*Row count is a lower bound: scanning stopped at %d MB.*", maxTabularBytes>>20)
	}

	return &Result{
		Text:         text,
		Truncated:    len(rows) < total || countBounded,
		SampledUnits: len(rows),
		TotalUnits:   total,
	}, nil
}

// countRows streams the file once, returning the header and the number
// of data rows. bounded is true when the scan hit maxTabularBytes.
func (c *CSV) countRows(path string) (header []string, total int, bounded bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, false, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	limited := &io.LimitedReader{R: f, N: maxTabularBytes}
	r := c.newReader(limited, path)

	header, err = r.Read()
	if err == io.EOF {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, err
	}

	for {
		_, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed record mid-file ends counting; what was
			// counted so far is still usable.
			bounded = limited.N == 0
			return header, total, bounded, nil
		}
		total++
	}
	return header, total, limited.N == 0, nil
}

// selectRows streams the file again, keeping only the rows at the given
// sorted indices.
func (c *CSV) selectRows(path string, indices []int) ([][]string, error) {
	if len(indices) == 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	r := c.newReader(&io.LimitedReader{R: f, N: maxTabularBytes}, path)
	if _, err := r.Read(); err != nil { // skip header
		return nil, err
	}

	rows := make([][]string, 0, len(indices))
	next := 0
	for i := 0; next < len(indices); i++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		if i == indices[next] {
			rows = append(rows, record)
			next++
		}
	}
	return rows, nil
}

// newReader configures a tolerant csv.Reader for the file.
func (c *CSV) newReader(r io.Reader, path string) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		cr.Comma = '\t'
	}
	return cr
}

// isUnreadable reports whether err stems from an unreadable file rather
// than malformed content.
func isUnreadable(err error) bool {
	return errors.Is(err, ErrUnreadable)
}

var _ Extractor = (*CSV)(nil)
