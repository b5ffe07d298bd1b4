/*
scheduler_test.go - Behavior tests for row generation

ORGANIZATION:
  1. Reference run - a pinned two-card scenario with literal dates
  2. Grouping - identical cycles merged into one displayed entry
  3. Structural properties - window chaining, step count, degenerate input
*/
package schedule_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/cycle-engine/schedule"
)

// fixedResolver resolves every country to the same profile.
type fixedResolver struct {
	profile schedule.Profile
}

func (r fixedResolver) Resolve(string) schedule.Profile { return r.profile }

func newTestScheduler() *schedule.Scheduler {
	return schedule.NewScheduler(fixedResolver{profile: defaultProfile()})
}

func date(y int, m time.Month, d int) schedule.Date { return schedule.NewDate(y, m, d) }

// =============================================================================
// REFERENCE RUN
// =============================================================================

// The dates below are pinned literals from a reference run of the
// projection rules; see the cycle tests for the per-month building blocks.
func TestSchedule_TwoCardReferenceRun(t *testing.T) {
	// GIVEN: Card A closing day 3 / grace 21, card B due day 10 / grace 25,
	//        reference instant 2025-06-15 UTC
	// WHEN: Scheduling
	// THEN: Three selection steps with the exact windows and cycle dates below

	cards := []schedule.CardSpec{
		{Name: "A", ClosingDay: schedule.IntPtr(3), GraceDays: schedule.IntPtr(21)},
		{Name: "B", DueDay: schedule.IntPtr(10), GraceDays: schedule.IntPtr(25)},
	}
	ref := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	rows, err := newTestScheduler().Schedule(cards, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	expected := []schedule.Row{
		{
			Sequence:    1,
			CardNames:   []string{"A"},
			Window:      schedule.Window{Begin: date(2025, time.June, 15), End: date(2025, time.June, 15)},
			NextClosing: date(2025, time.July, 3),
			NextPayment: date(2025, time.July, 24),
		},
		{
			Sequence:     2,
			CardNames:    []string{"B"},
			PriorClosing: date(2025, time.June, 15),
			Window:       schedule.Window{Begin: date(2025, time.June, 16), End: date(2025, time.July, 3)},
			NextClosing:  date(2025, time.July, 16),
			NextPayment:  date(2025, time.August, 11), // Aug 10 is a Sunday
		},
		{
			Sequence:     3,
			CardNames:    []string{"A"},
			PriorClosing: date(2025, time.July, 3),
			Window:       schedule.Window{Begin: date(2025, time.July, 4), End: date(2025, time.July, 16)},
			NextClosing:  date(2025, time.August, 3),
			NextPayment:  date(2025, time.August, 25), // Aug 24 is a Sunday
		},
	}

	for i, want := range expected {
		assertRow(t, i, rows[i], want)
	}

	// First row never reports a prior closing.
	if !rows[0].PriorClosing.IsZero() {
		t.Errorf("row 1: expected empty prior closing, got %s", rows[0].PriorClosing)
	}
}

func assertRow(t *testing.T, i int, got, want schedule.Row) {
	t.Helper()
	if got.Sequence != want.Sequence {
		t.Errorf("row %d: expected sequence %d, got %d", i+1, want.Sequence, got.Sequence)
	}
	if len(got.CardNames) != len(want.CardNames) {
		t.Fatalf("row %d: expected cards %v, got %v", i+1, want.CardNames, got.CardNames)
	}
	for j := range want.CardNames {
		if got.CardNames[j] != want.CardNames[j] {
			t.Errorf("row %d: expected cards %v, got %v", i+1, want.CardNames, got.CardNames)
			break
		}
	}
	if !want.PriorClosing.IsZero() && !got.PriorClosing.Equal(want.PriorClosing) {
		t.Errorf("row %d: expected prior closing %s, got %s", i+1, want.PriorClosing, got.PriorClosing)
	}
	if !got.Window.Begin.Equal(want.Window.Begin) || !got.Window.End.Equal(want.Window.End) {
		t.Errorf("row %d: expected window [%s, %s], got [%s, %s]",
			i+1, want.Window.Begin, want.Window.End, got.Window.Begin, got.Window.End)
	}
	if !got.NextClosing.Equal(want.NextClosing) {
		t.Errorf("row %d: expected next closing %s, got %s", i+1, want.NextClosing, got.NextClosing)
	}
	if !got.NextPayment.Equal(want.NextPayment) {
		t.Errorf("row %d: expected next payment %s, got %s", i+1, want.NextPayment, got.NextPayment)
	}
}

// =============================================================================
// GROUPING
// =============================================================================

func TestSchedule_IdenticalCardsGroupIntoOneRow(t *testing.T) {
	// GIVEN: Two cards with identical cycles (closing day 5, grace 20)
	// WHEN: Scheduling at 2025-06-15 UTC
	// THEN: First-row entries stay individual; every later step merges the
	//       twins into one comma-joined entry with a single sequence number

	cards := []schedule.CardSpec{
		{Name: "Twin A", ClosingDay: schedule.IntPtr(5), GraceDays: schedule.IntPtr(20)},
		{Name: "Twin B", ClosingDay: schedule.IntPtr(5), GraceDays: schedule.IntPtr(20)},
	}
	ref := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	rows, err := newTestScheduler().Schedule(cards, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2 individual first-row entries + 1 grouped entry per later step.
	if len(rows) != 4 {
		t.Fatalf("expected 4 row entries, got %d", len(rows))
	}

	if rows[0].Sequence != 1 || rows[1].Sequence != 1 {
		t.Errorf("expected both first-step entries to share sequence 1, got %d and %d",
			rows[0].Sequence, rows[1].Sequence)
	}
	if len(rows[0].CardNames) != 1 || len(rows[1].CardNames) != 1 {
		t.Errorf("expected individual first-row entries, got %v and %v",
			rows[0].CardNames, rows[1].CardNames)
	}

	// Window collapses to a single day when no other card has an eligible
	// closing.
	if !rows[0].Window.Begin.Equal(rows[0].Window.End) {
		t.Errorf("expected same-day first window, got [%s, %s]",
			rows[0].Window.Begin, rows[0].Window.End)
	}

	for _, row := range rows[2:] {
		if len(row.CardNames) != 2 {
			t.Errorf("sequence %d: expected both twins merged, got %v", row.Sequence, row.CardNames)
		}
	}
	if rows[2].Sequence != 2 || rows[3].Sequence != 3 {
		t.Errorf("expected sequences 2 and 3, got %d and %d", rows[2].Sequence, rows[3].Sequence)
	}

	want := schedule.Window{Begin: date(2025, time.June, 16), End: date(2025, time.July, 5)}
	if !rows[2].Window.Begin.Equal(want.Begin) || !rows[2].Window.End.Equal(want.End) {
		t.Errorf("expected window [%s, %s], got [%s, %s]",
			want.Begin, want.End, rows[2].Window.Begin, rows[2].Window.End)
	}
}

// =============================================================================
// STRUCTURAL PROPERTIES
// =============================================================================

func TestSchedule_WindowsChainWithoutGaps(t *testing.T) {
	// GIVEN: Three cards with staggered cycles
	// WHEN: Scheduling
	// THEN: Each step's window begins the day after the previous step's end,
	//       and next cycle dates always fall after the window

	cards := []schedule.CardSpec{
		{Name: "A", ClosingDay: schedule.IntPtr(3), GraceDays: schedule.IntPtr(21)},
		{Name: "B", DueDay: schedule.IntPtr(10), GraceDays: schedule.IntPtr(25)},
		{Name: "C", ClosingDay: schedule.IntPtr(27), GraceDays: schedule.IntPtr(15)},
	}
	ref := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	rows, err := newTestScheduler().Schedule(cards, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("expected rows")
	}

	// Collapse entries to one window per sequence step.
	windows := make(map[int]schedule.Window)
	maxSeq := 0
	for _, row := range rows {
		windows[row.Sequence] = row.Window
		if row.Sequence > maxSeq {
			maxSeq = row.Sequence
		}

		if !row.NextClosing.After(row.Window.End) {
			t.Errorf("sequence %d: next closing %s not after window end %s",
				row.Sequence, row.NextClosing, row.Window.End)
		}
		if !row.NextPayment.After(row.Window.End) {
			t.Errorf("sequence %d: next payment %s not after window end %s",
				row.Sequence, row.NextPayment, row.Window.End)
		}
		if row.Window.End.Before(row.Window.Begin) {
			t.Errorf("sequence %d: window end %s before begin %s",
				row.Sequence, row.Window.End, row.Window.Begin)
		}
	}

	// cardCount+1 selection steps for a non-degenerate input.
	if maxSeq != len(cards)+1 {
		t.Errorf("expected %d selection steps, got %d", len(cards)+1, maxSeq)
	}

	for seq := 2; seq <= maxSeq; seq++ {
		prev, ok1 := windows[seq-1]
		cur, ok2 := windows[seq]
		if !ok1 || !ok2 {
			t.Fatalf("missing window for step %d or %d", seq-1, seq)
		}
		if !cur.Begin.Equal(prev.End.AddDays(1)) {
			t.Errorf("step %d: begin %s is not the day after step %d end %s",
				seq, cur.Begin, seq-1, prev.End)
		}
	}
}

func TestSchedule_InvalidCardFailsWholeRun(t *testing.T) {
	// GIVEN: A valid card and one with neither closing day nor due day
	// WHEN: Scheduling
	// THEN: The whole run fails; no partial rows for the valid card

	cards := []schedule.CardSpec{
		{Name: "OK", ClosingDay: schedule.IntPtr(3)},
		{Name: "broken"},
	}

	rows, err := newTestScheduler().Schedule(cards, time.Time{})
	if !errors.Is(err, schedule.ErrInvalidCardSpec) {
		t.Fatalf("expected ErrInvalidCardSpec, got %v", err)
	}
	if rows != nil {
		t.Errorf("expected no rows on failure, got %d", len(rows))
	}
}

func TestSchedule_EmptyInputProducesNothing(t *testing.T) {
	rows, err := newTestScheduler().Schedule(nil, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows != nil {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestSchedule_TimezoneShiftsLocalToday(t *testing.T) {
	// GIVEN: A card whose profile sits far east of UTC and a reference
	//        instant late in the UTC day
	// WHEN: Scheduling
	// THEN: The first window begins on the card's local (next) day

	east := defaultProfile()
	east.Location = time.FixedZone("UTC+10", 10*3600)
	sched := schedule.NewScheduler(fixedResolver{profile: east})

	cards := []schedule.CardSpec{{Name: "A", ClosingDay: schedule.IntPtr(20), GraceDays: schedule.IntPtr(10)}}
	ref := time.Date(2025, time.June, 15, 20, 0, 0, 0, time.UTC) // June 16, 06:00 local

	rows, err := sched.Schedule(cards, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("expected rows")
	}
	if !rows[0].Window.Begin.Equal(date(2025, time.June, 16)) {
		t.Errorf("expected window to begin 2025-06-16 local, got %s", rows[0].Window.Begin)
	}
}
