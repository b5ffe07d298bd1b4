/*
scheduler.go - Row generation

PURPOSE:
  Orchestrates one scheduling run: anchor every card to "now", pick the
  first row by latest payment, then generate subsequent rows by the
  two-level tie-break (nearest closing first, latest payment second) until
  cardCount+1 selection steps have run.

TWO DELIBERATE ASYMMETRIES (business rules, not bugs):
  - Selection for step N+1 is anchored at step N's window BEGIN, while
    step N+1's own window begins at step N's window END + 1 day.
  - The first row picks the LATEST payment; every later step picks the
    NEAREST closing (then latest payment among those).

ROW SHAPE:
  Entries from the same selection step share one sequence number. The
  first step emits one entry per selected card; later steps merge cards
  whose current (closing, payment) anchors coincide into a single entry
  with comma-joined names.
*/
package schedule

import (
	"time"
)

// =============================================================================
// OUTPUT TYPES
// =============================================================================

// Window is an inclusive date range during which a card is recommended
// for use.
type Window struct {
	Begin Date
	End   Date
}

// Row is one output record. PriorClosing is zero on first-row entries.
type Row struct {
	Sequence     int
	CardNames    []string
	PriorClosing Date
	Window       Window
	NextClosing  Date
	NextPayment  Date
}

// =============================================================================
// SCHEDULER
// =============================================================================

// Scheduler generates usage rows for a set of cards. It holds only the
// resolver; each Schedule call is an independent, synchronous computation.
type Scheduler struct {
	Resolver ProfileResolver
}

func NewScheduler(resolver ProfileResolver) *Scheduler {
	return &Scheduler{Resolver: resolver}
}

// cardState is one card's per-run state: its resolved profile, its local
// "today", and its current cycle anchor. Anchors are fixed after step 0;
// all later lookups walk forward from them without mutating the state.
type cardState struct {
	spec     CardSpec
	profile  Profile
	today    Date
	anchor   CycleAnchor
	selected bool // chosen in the first row
}

// Schedule produces the ordered row sequence for the given cards at the
// given reference instant. A zero ref means "now". Fails only on an
// invalid card spec.
func (s *Scheduler) Schedule(cards []CardSpec, ref time.Time) ([]Row, error) {
	if len(cards) == 0 {
		return nil, nil
	}
	if ref.IsZero() {
		ref = time.Now().UTC()
	}

	// Step 0: anchor every card to its own local today.
	states := make([]*cardState, 0, len(cards))
	for _, c := range cards {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		p := s.Resolver.Resolve(c.Country)
		today := p.LocalDate(ref)
		anchor := projectCycle(today.Year(), today.Month(), c, p)
		anchor = NextClosingOnOrAfter(anchor, today, c, p)
		states = append(states, &cardState{spec: c, profile: p, today: today, anchor: anchor})
	}

	var rows []Row

	// Step 1: first row - every card whose payment equals the maximum.
	maxPayment := states[0].anchor.Payment
	for _, st := range states[1:] {
		if st.anchor.Payment.After(maxPayment) {
			maxPayment = st.anchor.Payment
		}
	}
	var selected []*cardState
	for _, st := range states {
		if st.anchor.Payment.Equal(maxPayment) {
			st.selected = true
			selected = append(selected, st)
		}
	}

	// Window begin: earliest local today among the selected cards.
	begin := selected[0].today
	for _, st := range selected[1:] {
		if st.today.Before(begin) {
			begin = st.today
		}
	}

	// Window end: nearest closing >= begin among the cards NOT selected;
	// a same-day window when no other card has one.
	end := begin
	haveEnd := false
	for _, st := range states {
		if st.selected || st.anchor.Closing.Before(begin) {
			continue
		}
		if !haveEnd || st.anchor.Closing.Before(end) {
			end = st.anchor.Closing
			haveEnd = true
		}
	}

	// One entry per selected card, all sharing sequence number 1.
	for _, st := range selected {
		after := NextClosingOnOrAfter(st.anchor, end.AddDays(1), st.spec, st.profile)
		rows = append(rows, Row{
			Sequence:    1,
			CardNames:   []string{st.spec.Name},
			Window:      Window{Begin: begin, End: end},
			NextClosing: after.Closing,
			NextPayment: after.Payment,
		})
	}

	// Step 2: iterative selection, one step per remaining sequence number.
	// The loop bound caps the run at cardCount+1 steps; an empty candidate
	// set stops early rather than looping.
	prevBegin, prevEnd := begin, end
	for seq := 2; seq <= len(cards)+1; seq++ {
		picks := selectStep(states, prevBegin)
		if len(picks) == 0 {
			break
		}

		rowBegin := prevEnd.AddDays(1)

		// Row end: nearest next closing >= rowBegin across ALL cards.
		rowEnd := rowBegin
		for i, st := range states {
			next := NextClosingOnOrAfter(st.anchor, rowBegin, st.spec, st.profile)
			if i == 0 || next.Closing.Before(rowEnd) {
				rowEnd = next.Closing
			}
		}

		// Cards whose current anchors coincide share one displayed entry;
		// every entry from this step carries the same sequence number.
		for _, group := range groupByAnchor(picks) {
			rep := group[0]
			after := NextClosingOnOrAfter(rep.anchor, rowEnd.AddDays(1), rep.spec, rep.profile)
			names := make([]string, len(group))
			for i, st := range group {
				names[i] = st.spec.Name
			}
			rows = append(rows, Row{
				Sequence:     seq,
				CardNames:    names,
				PriorClosing: MostRecentClosingBefore(rep.anchor, rowBegin, rep.spec, rep.profile),
				Window:       Window{Begin: rowBegin, End: rowEnd},
				NextClosing:  after.Closing,
				NextPayment:  after.Payment,
			})
		}

		prevBegin, prevEnd = rowBegin, rowEnd
	}

	return rows, nil
}

// selectStep applies the two-level tie-break against the previous row's
// begin: minimum next closing first, maximum payment among those second.
func selectStep(states []*cardState, anchor Date) []*cardState {
	type candidate struct {
		st    *cardState
		cycle CycleAnchor
	}

	candidates := make([]candidate, 0, len(states))
	for _, st := range states {
		next := NextClosingOnOrAfter(st.anchor, anchor, st.spec, st.profile)
		candidates = append(candidates, candidate{st: st, cycle: next})
	}
	if len(candidates) == 0 {
		return nil
	}

	minClosing := candidates[0].cycle.Closing
	for _, c := range candidates[1:] {
		if c.cycle.Closing.Before(minClosing) {
			minClosing = c.cycle.Closing
		}
	}

	var near []candidate
	for _, c := range candidates {
		if c.cycle.Closing.Equal(minClosing) {
			near = append(near, c)
		}
	}

	maxPayment := near[0].cycle.Payment
	for _, c := range near[1:] {
		if c.cycle.Payment.After(maxPayment) {
			maxPayment = c.cycle.Payment
		}
	}

	var picks []*cardState
	for _, c := range near {
		if c.cycle.Payment.Equal(maxPayment) {
			picks = append(picks, c.st)
		}
	}
	return picks
}

// groupByAnchor merges picked cards whose current (closing, payment)
// anchors are identical, preserving input order.
func groupByAnchor(picks []*cardState) [][]*cardState {
	var groups [][]*cardState
	for _, st := range picks {
		placed := false
		for i, g := range groups {
			if g[0].anchor.Closing.Equal(st.anchor.Closing) && g[0].anchor.Payment.Equal(st.anchor.Payment) {
				groups[i] = append(g, st)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []*cardState{st})
		}
	}
	return groups
}
