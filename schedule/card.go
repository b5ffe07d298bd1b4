/*
Package schedule computes which credit card to use during which date
window so that cards' billing cycles are staggered optimally.

PURPOSE:
  This package is the scheduling core: statement-cycle projection,
  business-day adjustment, and the row-generation algorithm with its
  bespoke tie-break and rollover policies. It is a pure function from a
  set of cards and a reference instant to an ordered list of rows: no
  I/O, no shared mutable state, recomputed from scratch on every call.
  Concurrent invocations are fully independent.

KEY CONCEPTS:
  - CardSpec:    caller-supplied card (closing day OR due day, grace, country)
  - CycleAnchor: one card's (closing, payment) pair for one monthly cycle
  - Profile:     resolved country rules (timezone, weekend, grace, holidays)
  - Row:         one output record (usage window + expected cycle dates)

SEE ALSO:
  - country/: ProfileResolver implementations
  - cycle.go: projection and month-walking
  - scheduler.go: row generation
*/
package schedule

// =============================================================================
// CARD SPEC - Caller input, immutable
// =============================================================================

// CardSpec describes one credit card. Exactly one of ClosingDay or DueDay
// must be set; both are logical days-of-month (1-31) clamped to the last
// valid day of shorter months. Name is assumed unique within one call;
// duplicate names are a caller error.
type CardSpec struct {
	Name       string
	ClosingDay *int   // statement cutoff day, or nil
	DueDay     *int   // payment due day, or nil
	GraceDays  *int   // days between closing and raw due date; nil = country default
	Country    string // free-text key into the country profile table; "" = defaults
}

// Validate checks that the card can be projected at all.
func (c CardSpec) Validate() error {
	if c.ClosingDay == nil && c.DueDay == nil {
		return &InvalidCardSpecError{CardName: c.Name}
	}
	return nil
}

// grace returns the effective grace period: the card's own if set,
// otherwise the profile default.
func (c CardSpec) grace(p Profile) int {
	if c.GraceDays != nil {
		return *c.GraceDays
	}
	return p.GraceDays
}

// IntPtr is a convenience for building CardSpec literals.
func IntPtr(n int) *int { return &n }
