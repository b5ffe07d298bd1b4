/*
cycle.go - Statement-cycle projection and month-walking

PURPOSE:
  Projects a card's (closing, payment) pair for a target month and walks
  that projection forward or backward month-by-month until a condition on
  the closing date holds. The walk is implemented once and parameterized
  by direction and predicate; the scheduler reuses it for anchoring cards
  to "now", for next-closing lookahead, and for the expected-prior-closing
  lookup.

PROJECTION RULES:
  closing-day card:  closing = clamp(closingDay)
                     payment = nextBusinessDay(closing + grace)
  due-day card:      rawDue  = clamp(dueDay)
                     closing = rawDue - grace   (pure offset: may land in the
                                                 previous month, never
                                                 business-day adjusted)
                     payment = nextBusinessDay(rawDue)

  Payments are always business days; closings never are adjusted.

TERMINATION:
  Successive monthly closings are strictly monotonic (the raw day-of-month
  advances by a full month, 28-31 days, while the grace offset is
  constant), so both walk directions converge.
*/
package schedule

import (
	"time"
)

// =============================================================================
// CYCLE ANCHOR - One card's cycle for one month
// =============================================================================

// CycleAnchor is the (closing, payment) pair produced by projecting a card
// onto one target month. Year/Month record the projection month, which for
// due-day cards can differ from Closing's month.
type CycleAnchor struct {
	Year    int
	Month   time.Month
	Closing Date
	Payment Date
}

// ProjectCycle computes a card's cycle anchor for the given month.
// Fails only for a card with neither closing day nor due day set.
func ProjectCycle(year int, month time.Month, card CardSpec, p Profile) (CycleAnchor, error) {
	if err := card.Validate(); err != nil {
		return CycleAnchor{}, err
	}
	return projectCycle(year, month, card, p), nil
}

// projectCycle is the validated-input path used by the walk primitives.
func projectCycle(year int, month time.Month, card CardSpec, p Profile) CycleAnchor {
	grace := card.grace(p)

	var closing, rawDue Date
	if card.ClosingDay != nil {
		closing = ClampedDate(year, month, *card.ClosingDay)
		rawDue = closing.AddDays(grace)
	} else {
		rawDue = ClampedDate(year, month, *card.DueDay)
		closing = rawDue.AddDays(-grace)
	}

	return CycleAnchor{
		Year:    year,
		Month:   month,
		Closing: closing,
		Payment: p.NextBusinessDay(rawDue),
	}
}

// =============================================================================
// MONTH WALK - The single advance-until primitive
// =============================================================================

// walkCycle steps the anchor one projection month at a time in the given
// direction (+1 forward, -1 backward) until done(anchor) holds. The input
// anchor itself counts: if it already satisfies the predicate it is
// returned unchanged.
func walkCycle(a CycleAnchor, card CardSpec, p Profile, dir int, done func(CycleAnchor) bool) CycleAnchor {
	for !done(a) {
		y, m := a.Year, a.Month
		if dir >= 0 {
			y, m = NextMonth(y, m)
		} else {
			y, m = PrevMonth(y, m)
		}
		a = projectCycle(y, m, card, p)
	}
	return a
}

// NextClosingOnOrAfter walks forward from a until the cycle's closing is on
// or after threshold. Used to anchor a card to today and for all
// next-own-closing lookaheads.
func NextClosingOnOrAfter(a CycleAnchor, threshold Date, card CardSpec, p Profile) CycleAnchor {
	return walkCycle(a, card, p, +1, func(c CycleAnchor) bool {
		return c.Closing.AfterOrEqual(threshold)
	})
}

// MostRecentClosingBefore walks backward from a until it finds a cycle
// whose closing is strictly before threshold, returning that closing.
// Used only for a row's expected prior closing.
func MostRecentClosingBefore(a CycleAnchor, threshold Date, card CardSpec, p Profile) Date {
	return walkCycle(a, card, p, -1, func(c CycleAnchor) bool {
		return c.Closing.Before(threshold)
	}).Closing
}
