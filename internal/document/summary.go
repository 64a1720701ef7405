package document

// SkipReason categorizes why a file was left out of the document.
type SkipReason string

const (
	// SkipBinary marks files classified binary by the sniffer.
	SkipBinary SkipReason = "binary"
	// SkipUnreadable marks files that could not be opened or read.
	SkipUnreadable SkipReason = "unreadable"
	// SkipBudget marks files rejected because the remaining budget
	// could not fit them.
	SkipBudget SkipReason = "budget-exhausted"
	// SkipOverCap marks files rejected by the per-file cap while
	// budget remained for later files.
	SkipOverCap SkipReason = "over-cap"
	// SkipIgnored marks files excluded by ignore rules.
	SkipIgnored SkipReason = "ignored"
)

// skipOrder fixes the footer's reason ordering so output stays
// deterministic.
var skipOrder = []SkipReason{SkipBinary, SkipUnreadable, SkipBudget, SkipOverCap, SkipIgnored}

// SkipReasons returns every reason in footer order.
func SkipReasons() []SkipReason {
	out := make([]SkipReason, len(skipOrder))
	copy(out, skipOrder)
	return out
}

// Summary accumulates run statistics. It is the only mutable state
// besides the budget counter, and is finalized into the footer at the
// end of the run.
type Summary struct {
	Scanned     int
	Included    int
	Truncated   int
	Skipped     map[SkipReason]int
	Tokens      int
	Approximate bool
}

// NewSummary creates an empty accumulator.
func NewSummary() *Summary {
	return &Summary{Skipped: make(map[SkipReason]int)}
}

// Include records an admitted file.
func (s *Summary) Include(truncated bool, tokens int) {
	s.Included++
	if truncated {
		s.Truncated++
	}
	s.Tokens += tokens
}

// Skip records an omitted file.
func (s *Summary) Skip(reason SkipReason) {
	s.Skipped[reason]++
}

// TotalSkipped sums all skip categories.
func (s *Summary) TotalSkipped() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}
