package extract

// Result is the bounded textual representation of one file.
type Result struct {
	// Text is the extracted representation, ready for the document.
	Text string

	// Truncated reports whether anything was withheld: sampled rows,
	// omitted payloads, or cut bytes.
	Truncated bool

	// SampledUnits and TotalUnits count the extractor-specific
	// sampling unit (rows for tabular data, cells for notebooks,
	// bytes for plain text). SampledUnits <= TotalUnits always holds.
	SampledUnits int
	TotalUnits   int

	// TokenEstimate is filled in by the pipeline after estimation.
	// Never negative.
	TokenEstimate int

	// Note carries an explanation when extraction degraded, for
	// logging and the section header.
	Note string
}

// Limits bounds how much an extractor may produce. The pipeline builds
// the initial Limits from configuration; the budget allocator retries a
// too-expensive extraction once with a scaled-down copy.
type Limits struct {
	// MaxBytes bounds plain-text reads and degraded raw reads.
	MaxBytes int

	// SampleRows is the per-table row sample size.
	SampleRows int

	// MaxOutputLines bounds notebook output blocks and incidental
	// lines in SQL dumps.
	MaxOutputLines int

	// Placeholders enables size-noting placeholders for omitted
	// notebook payloads. When false the payloads are dropped silently.
	Placeholders bool
}

// Scale returns a copy of l shrunk by factor, clamped to small floors
// so a retry still produces something coherent.
func (l Limits) Scale(factor float64) Limits {
	if factor <= 0 || factor >= 1 {
		return l
	}
	scaled := l
	scaled.MaxBytes = maxInt(256, int(float64(l.MaxBytes)*factor))
	scaled.SampleRows = maxInt(1, int(float64(l.SampleRows)*factor))
	scaled.MaxOutputLines = maxInt(5, int(float64(l.MaxOutputLines)*factor))
	return scaled
}

// Extractor is the per-format extraction contract.
type Extractor interface {
	// Supports reports whether the extractor handles files with the
	// given lowercased extension (dot included).
	Supports(ext string) bool

	// Extract produces a bounded representation of the file at path.
	// Malformed input degrades to a partial result, never an error;
	// only an unreadable file fails.
	Extract(path string, lim Limits) (*Result, error)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
