/*
calendar.go - Business-day calendar and country profiles

PURPOSE:
  Decides whether a given day is a business day under a country's rules
  (weekend pattern + holiday set) and advances dates onto business days.
  A Profile bundles everything the cycle math needs to know about a
  country; how profiles are built (static tables, CSV files, a fixed
  national calendar) is the country package's concern.

INVARIANT:
  NextBusinessDay always terminates: the weekend pattern repeats within
  7 days, so a run of non-business days is bounded by the holiday set,
  which is finite.

SEE ALSO:
  - country/: ProfileResolver implementations
  - cycle.go: uses NextBusinessDay for payment adjustment
*/
package schedule

import (
	"time"
)

// =============================================================================
// WEEKEND - Set of non-working weekdays
// =============================================================================

// Weekend is the set of weekdays treated as non-working, indexed by
// time.Weekday.
type Weekend [7]bool

// NewWeekend builds a weekend set from the given weekdays.
func NewWeekend(days ...time.Weekday) Weekend {
	var w Weekend
	for _, d := range days {
		w[d] = true
	}
	return w
}

// DefaultWeekend is the Saturday/Sunday pattern used by most countries.
func DefaultWeekend() Weekend {
	return NewWeekend(time.Saturday, time.Sunday)
}

func (w Weekend) Contains(d time.Weekday) bool { return w[d] }

// =============================================================================
// HOLIDAY SET
// =============================================================================

// HolidaySet reports whether a day is a holiday. Implementations must be
// safe for unsynchronized concurrent reads; they are never mutated after
// construction.
type HolidaySet interface {
	Contains(d Date) bool
}

// NoHolidays is the empty holiday set.
type NoHolidays struct{}

func (NoHolidays) Contains(Date) bool { return false }

// =============================================================================
// PROFILE - Per-country scheduling rules
// =============================================================================

// Profile bundles the country-specific rules the scheduler needs: which
// timezone "today" is observed in, which weekdays are off, the default
// grace period, and the holiday set (country holidays merged with any
// global wildcard holidays by the resolver).
type Profile struct {
	Location  *time.Location
	Weekend   Weekend
	GraceDays int
	Holidays  HolidaySet
}

// ProfileResolver maps a card's country (possibly empty or unknown) to its
// Profile. Resolution never fails; unknown countries resolve to defaults.
type ProfileResolver interface {
	Resolve(country string) Profile
}

// LocalDate returns the calendar day of t as observed in the profile's
// timezone.
func (p Profile) LocalDate(t time.Time) Date {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(t.In(loc))
}

// IsBusinessDay reports whether d is a working day: not a weekend day and
// not in the holiday set.
func (p Profile) IsBusinessDay(d Date) bool {
	if p.Weekend.Contains(d.Weekday()) {
		return false
	}
	if p.Holidays != nil && p.Holidays.Contains(d) {
		return false
	}
	return true
}

// NextBusinessDay returns the first business day on or after d (inclusive:
// a business day maps to itself).
func (p Profile) NextBusinessDay(d Date) Date {
	for !p.IsBusinessDay(d) {
		d = d.AddDays(1)
	}
	return d
}
