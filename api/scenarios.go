/*
scenarios.go - Demo card sets for testing and demonstrations

PURPOSE:
  Provides pre-built card sets that exercise specific scheduler behaviors
  without the caller having to craft a request. Unlike a database-backed
  system there is nothing to load: running a scenario is just a schedule
  call over a canned input.

AVAILABLE SCENARIOS:
  staggered-pair:  one closing-day card and one due-day card (the classic
                   two-card staggering case)
  same-day-twins:  two identical cards, demonstrating row grouping
  mixed-countries: cards across timezones and grace defaults

USAGE VIA API:
  GET  /api/scenarios
  POST /api/scenarios/staggered-pair/run   {"language": "en"}

ADDING NEW SCENARIOS:
  Append to the 'scenarios' slice with ID, name, description and cards.

SEE ALSO:
  - handlers.go: shared resolver and response helpers
*/
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/cycle-engine/schedule"
)

// scenario is one canned demo input.
type scenario struct {
	ID          string
	Name        string
	Description string
	Cards       []schedule.CardSpec
}

var scenarios = []scenario{
	{
		ID:          "staggered-pair",
		Name:        "Staggered pair",
		Description: "A closing-day card and a due-day card staggered across the month.",
		Cards: []schedule.CardSpec{
			{Name: "X Card", ClosingDay: schedule.IntPtr(3), GraceDays: schedule.IntPtr(21), Country: "USA"},
			{Name: "Y Card", DueDay: schedule.IntPtr(10), GraceDays: schedule.IntPtr(25), Country: "USA"},
		},
	},
	{
		ID:          "same-day-twins",
		Name:        "Same-day twins",
		Description: "Two cards with identical cycles, merged into grouped rows.",
		Cards: []schedule.CardSpec{
			{Name: "Twin A", ClosingDay: schedule.IntPtr(5), GraceDays: schedule.IntPtr(20)},
			{Name: "Twin B", ClosingDay: schedule.IntPtr(5), GraceDays: schedule.IntPtr(20)},
		},
	},
	{
		ID:          "mixed-countries",
		Name:        "Mixed countries",
		Description: "Cards across timezones and per-country grace defaults.",
		Cards: []schedule.CardSpec{
			{Name: "US Card", ClosingDay: schedule.IntPtr(7), Country: "USA"},
			{Name: "TR Card", ClosingDay: schedule.IntPtr(15), Country: "Türkiye"},
			{Name: "AU Card", DueDay: schedule.IntPtr(28), Country: "Australia"},
		},
	},
}

// ListScenarios returns the available demo card sets.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = ScenarioDTO{ID: s.ID, Name: s.Name, Description: s.Description}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// RunScenario schedules a canned card set.
// POST /api/scenarios/{id}/run
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var target *scenario
	for i := range scenarios {
		if scenarios[i].ID == id {
			target = &scenarios[i]
			break
		}
	}
	if target == nil {
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}

	var req RunScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sched := schedule.NewScheduler(h.resolver(""))
	rows, err := sched.Schedule(target.Cards, time.Time{})
	if err != nil {
		h.Log.Error().Err(err).Str("scenario", id).Msg("Scenario run failed")
		writeError(w, http.StatusInternalServerError, "Scenario run failed", err)
		return
	}

	writeJSON(w, http.StatusOK, ScheduleResponse{Rows: toRowDTOs(rows, req.Language)})
}
