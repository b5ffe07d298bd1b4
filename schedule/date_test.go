package schedule_test

import (
	"testing"
	"time"

	"github.com/warp/cycle-engine/schedule"
)

// =============================================================================
// DAY-OF-MONTH CLAMPING
// =============================================================================

func TestClampedDate_FebruaryOverflow(t *testing.T) {
	// GIVEN: A logical day 31 in a non-leap February
	// WHEN: Building the date
	// THEN: The day clamps to the 28th

	d := schedule.ClampedDate(2025, time.February, 31)
	if d.Day() != 28 {
		t.Errorf("expected day 28, got %d", d.Day())
	}
}

func TestClampedDate_LeapFebruary(t *testing.T) {
	// GIVEN: A logical day 30 in a leap-year February
	// WHEN: Building the date
	// THEN: The day clamps to the 29th

	d := schedule.ClampedDate(2024, time.February, 30)
	if d.Day() != 29 {
		t.Errorf("expected day 29, got %d", d.Day())
	}
}

func TestClampedDate_NoClampNeeded(t *testing.T) {
	d := schedule.ClampedDate(2025, time.June, 15)
	if !d.Equal(schedule.NewDate(2025, time.June, 15)) {
		t.Errorf("expected 2025-06-15, got %s", d)
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, c := range cases {
		if got := schedule.DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %s): expected %d, got %d", c.year, c.month, c.want, got)
		}
	}
}

// =============================================================================
// MONTH ROLLING
// =============================================================================

func TestNextMonth_DecemberRollsYear(t *testing.T) {
	y, m := schedule.NextMonth(2025, time.December)
	if y != 2026 || m != time.January {
		t.Errorf("expected 2026 January, got %d %s", y, m)
	}
}

func TestPrevMonth_JanuaryRollsYear(t *testing.T) {
	y, m := schedule.PrevMonth(2025, time.January)
	if y != 2024 || m != time.December {
		t.Errorf("expected 2024 December, got %d %s", y, m)
	}
}

// =============================================================================
// DATE SEMANTICS
// =============================================================================

func TestDateOf_UsesWallClockDay(t *testing.T) {
	// GIVEN: An instant late in the day in a +10 zone
	// WHEN: Extracting the calendar day in that zone
	// THEN: The local day is kept, not the UTC day

	zone := time.FixedZone("UTC+10", 10*3600)
	instant := time.Date(2025, time.June, 16, 1, 0, 0, 0, zone) // 2025-06-15 15:00 UTC

	local := schedule.DateOf(instant)
	if !local.Equal(schedule.NewDate(2025, time.June, 16)) {
		t.Errorf("expected 2025-06-16, got %s", local)
	}

	utc := schedule.DateOf(instant.UTC())
	if !utc.Equal(schedule.NewDate(2025, time.June, 15)) {
		t.Errorf("expected 2025-06-15, got %s", utc)
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	d, err := schedule.ParseDate("2025-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2025-06-15" {
		t.Errorf("expected 2025-06-15, got %s", d)
	}

	if _, err := schedule.ParseDate("15/06/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
