// Package budget decides which extracted sections fit the document's
// token ceiling.
//
// The Allocator owns a single remaining-token counter for the duration
// of one run. Admission is called once per candidate in traversal order,
// so exhaustion predictably drops the tail of the workspace rather than
// an arbitrary subset. The counter is monotonically non-increasing and
// never goes negative.
package budget

import (
	"errors"
	"fmt"

	"github.com/fyrsmithlabs/data2prompt/internal/extract"
)

// ErrInvalidBudget indicates a non-positive total budget. This is fatal
// to the run.
var ErrInvalidBudget = errors.New("token budget must be positive")

// Verdict is the outcome of one admission decision.
type Verdict int

const (
	// AcceptFull admits the candidate as extracted.
	AcceptFull Verdict = iota
	// AcceptTruncated admits a smaller re-extraction of the candidate.
	AcceptTruncated
	// Reject drops the candidate entirely.
	Reject
)

// String returns a human-readable verdict name.
func (v Verdict) String() string {
	switch v {
	case AcceptFull:
		return "accept"
	case AcceptTruncated:
		return "accept-truncated"
	default:
		return "reject"
	}
}

// Decision is the result of admitting one candidate.
type Decision struct {
	Verdict Verdict

	// Result is the admitted extraction: the original for AcceptFull,
	// the re-extracted one for AcceptTruncated, nil for Reject.
	Result *extract.Result

	// Tokens is the amount charged against the budget.
	Tokens int

	// Exhausted is set on Reject when the remaining budget, rather
	// than the per-file cap, was the binding constraint. Cap
	// rejections leave it false: plenty of budget may remain for
	// later files.
	Exhausted bool
}

// RetryFunc re-extracts a candidate bounded to at most grant tokens.
// The returned result must carry its own token estimate.
type RetryFunc func(grant int) (*extract.Result, error)

// Allocator owns the run's token budget.
type Allocator struct {
	initial    int
	remaining  int
	perFileCap int
	minSection int
}

// NewAllocator creates an allocator for a run.
//
// perFileCap bounds any single candidate in absolute tokens; it is
// derived from the initial budget, not the remaining one, so a late
// oversized file is capped the same as an early one. minSection is the
// smallest truncated result still worth admitting.
func NewAllocator(total, perFileCap, minSection int) (*Allocator, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBudget, total)
	}
	if perFileCap <= 0 || perFileCap > total {
		perFileCap = total
	}
	return &Allocator{
		initial:    total,
		remaining:  total,
		perFileCap: perFileCap,
		minSection: minSection,
	}, nil
}

// Admit decides the fate of one candidate, charging the budget on
// acceptance.
//
// A candidate within both the remaining budget and the per-file cap is
// accepted as is. Otherwise one truncated re-extraction is attempted,
// bounded to the grantable amount; if that still exceeds the grant, is
// below the minimum useful size, or fails, the candidate is rejected.
// One retry, then reject.
func (a *Allocator) Admit(res *extract.Result, retry RetryFunc) Decision {
	grant := a.remaining
	capBound := false
	if a.perFileCap < grant {
		grant = a.perFileCap
		capBound = true
	}
	if grant <= 0 {
		return Decision{Verdict: Reject, Exhausted: true}
	}
	reject := Decision{Verdict: Reject, Exhausted: !capBound}

	if res.TokenEstimate <= grant {
		a.remaining -= res.TokenEstimate
		return Decision{Verdict: AcceptFull, Result: res, Tokens: res.TokenEstimate}
	}

	if retry == nil {
		return reject
	}
	truncated, err := retry(grant)
	if err != nil || truncated == nil {
		return reject
	}
	if truncated.TokenEstimate > grant || truncated.TokenEstimate < a.minSection {
		return reject
	}

	a.remaining -= truncated.TokenEstimate
	return Decision{Verdict: AcceptTruncated, Result: truncated, Tokens: truncated.TokenEstimate}
}

// Remaining returns the unspent budget.
func (a *Allocator) Remaining() int {
	return a.remaining
}

// Spent returns the tokens charged so far.
func (a *Allocator) Spent() int {
	return a.initial - a.remaining
}

// Exhausted reports whether nothing useful can be admitted anymore.
func (a *Allocator) Exhausted() bool {
	return a.remaining <= 0
}
