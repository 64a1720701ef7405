package extract

import "strings"

// maxTabularBytes bounds how many bytes tabular extractors scan when
// counting and sampling rows. Files beyond this report a lower-bound
// total and are marked truncated.
const maxTabularBytes = 64 << 20 // 64MB

// sampleIndices returns up to n row indices spread evenly across
// [0, total). Index 0 is always included so the head is represented,
// and the stride covers the remainder of the range. Selection is purely
// positional: no randomness, so sampling is deterministic.
func sampleIndices(total, n int) []int {
	if total <= 0 || n <= 0 {
		return nil
	}
	if total <= n {
		all := make([]int, total)
		for i := range all {
			all[i] = i
		}
		return all
	}
	idx := make([]int, n)
	for i := 0; i < n; i++ {
		idx[i] = i * total / n
	}
	return idx
}

// markdownRow renders one table row, escaping characters that would
// break the table layout.
func markdownRow(sb *strings.Builder, cells []string, width int) {
	sb.WriteByte('|')
	for i := 0; i < width; i++ {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		cell = strings.ReplaceAll(cell, "|", "\\|")
		cell = strings.ReplaceAll(cell, "\n", " ")
		sb.WriteString(" " + cell + " |")
	}
	sb.WriteByte('\n')
}

// markdownSeparator renders the header separator row.
func markdownSeparator(sb *strings.Builder, width int) {
	sb.WriteByte('|')
	for i := 0; i < width; i++ {
		sb.WriteString("---|")
	}
	sb.WriteByte('\n')
}
