package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxSQLLineBytes bounds a single dump line. Longer lines (megabyte
// INSERT batches) make the dump degrade to plain text.
const maxSQLLineBytes = 1 << 20 // 1MB

// SQLDump extracts SQL dump files. Schema statements are kept in full;
// data rows (INSERT statements and VALUES tuples) are sampled per table,
// stratified across each table's row range. Schema survives even when
// zero data rows fit.
type SQLDump struct {
	fallback *PlainText
}

// NewSQLDump creates the SQL dump extractor.
func NewSQLDump(fallback *PlainText) *SQLDump {
	return &SQLDump{fallback: fallback}
}

// Supports reports true for .sql files.
func (s *SQLDump) Supports(ext string) bool {
	return ext == ".sql"
}

// lineClass is the role a dump line plays.
type lineClass int

const (
	classTable lineClass = iota // CREATE TABLE: starts a new table scope
	classData                   // INSERT INTO or a VALUES tuple row
	classSchema                 // other schema statements, always kept
	classOther                  // comments and setup, kept up to a line cap
)

// schemaKeywords marks non-CREATE statements that must always survive.
var schemaKeywords = []string{
	"ALTER ", "CONSTRAINT ", "VIEW ", "DROP ", "INDEX ", "TABLE ",
	"PRIMARY KEY", "FOREIGN KEY",
}

// Extract renders the dump with per-table stratified row sampling. The
// file is streamed twice: the first pass counts data rows per table, the
// second emits schema lines plus the selected rows. Units are data rows.
func (s *SQLDump) Extract(path string, lim Limits) (*Result, error) {
	counts, err := s.countTables(path)
	if err != nil {
		if isUnreadable(err) {
			return nil, err
		}
		return s.fallback.Degrade(path, lim, "SQL dump could not be scanned")
	}

	// Per-table selected row indices.
	selected := make([]map[int]bool, len(counts))
	totalRows, sampledRows := 0, 0
	for i, n := range counts {
		totalRows += n
		sel := make(map[int]bool)
		for _, idx := range sampleIndices(n, lim.SampleRows) {
			sel[idx] = true
		}
		sampledRows += len(sel)
		selected[i] = sel
	}

	text, err := s.render(path, counts, selected, lim)
	if err != nil {
		if isUnreadable(err) {
			return nil, err
		}
		return s.fallback.Degrade(path, lim, "SQL dump could not be scanned")
	}

	return &Result{
		Text:         text,
		Truncated:    sampledRows < totalRows,
		SampledUnits: sampledRows,
		TotalUnits:   totalRows,
	}, nil
}

// countTables streams the dump once and returns the data-row count per
// table scope. Index 0 is the scope before any CREATE TABLE.
func (s *SQLDump) countTables(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	counts := []int{0}
	cur := 0

	scanner := newSQLScanner(f)
	for scanner.Scan() {
		switch classify(scanner.Text()) {
		case classTable:
			counts = append(counts, 0)
			cur++
		case classData:
			counts[cur]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// render streams the dump again and emits the kept lines.
func (s *SQLDump) render(path string, counts []int, selected []map[int]bool, lim Limits) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	var sb strings.Builder
	sb.WriteString("```sql\n")

	cur, rowIdx := 0, 0
	markerDone := false
	otherLines := 0

	scanner := newSQLScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch classify(line) {
		case classTable:
			cur++
			rowIdx = 0
			markerDone = false
			sb.WriteString(line + "\n")
		case classData:
			if selected[cur][rowIdx] {
				sb.WriteString(line + "\n")
			} else if !markerDone {
				fmt.Fprintf(&sb, "-- ... [%d of %d data rows sampled] ...\n", len(selected[cur]), counts[cur])
				markerDone = true
			}
			rowIdx++
		case classSchema:
			sb.WriteString(line + "\n")
		case classOther:
			if otherLines < lim.MaxOutputLines {
				sb.WriteString(line + "\n")
				otherLines++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}

	sb.WriteString("```")
	return sb.String(), nil
}

// classify assigns a dump line to its role.
func classify(line string) lineClass {
	upper := strings.ToUpper(line)

	if strings.Contains(upper, "CREATE TABLE") || strings.Contains(upper, "BEGIN TABLE") {
		return classTable
	}
	if strings.Contains(upper, "INSERT INTO") || strings.HasPrefix(strings.TrimSpace(line), "(") {
		return classData
	}
	for _, kw := range schemaKeywords {
		if strings.Contains(upper, kw) {
			return classSchema
		}
	}
	return classOther
}

// newSQLScanner builds a line scanner bounded in both line length and
// total bytes.
func newSQLScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(&io.LimitedReader{R: r, N: maxTabularBytes})
	scanner.Buffer(make([]byte, 64*1024), maxSQLLineBytes)
	return scanner
}

var _ Extractor = (*SQLDump)(nil)
