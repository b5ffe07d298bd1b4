/*
handlers.go - HTTP API handlers for the card cycle engine

PURPOSE:
  Exposes the scheduling core via REST. Handles HTTP request/response,
  JSON serialization, and delegates to the schedule package. The core is
  pure; everything stateful (holiday snapshot, store) lives here.

ENDPOINTS:
  Scheduling:
    POST   /api/schedule           Compute the card usage sequence
    GET    /health                 Liveness probe

  Holidays:
    GET    /api/holidays           List stored holidays
    POST   /api/holidays           Add a holiday
    DELETE /api/holidays/{id}      Remove a holiday

  Scenarios:
    GET    /api/scenarios          List demo card sets
    POST   /api/scenarios/{id}/run Run a demo card set

HOLIDAY SNAPSHOT:
  The resolver consumes an immutable per-country holiday map. The handler
  keeps the current snapshot behind a RWMutex; ReloadHolidays rebuilds it
  from the CSV file and the sqlite store (a background cron job calls it
  periodically, keeping the load off the request path).

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: empty card list, invalid card spec, malformed body
  - 404: unknown scenario, unknown holiday
  - 500: storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo card sets
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/warp/cycle-engine/country"
	"github.com/warp/cycle-engine/schedule"
	"github.com/warp/cycle-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// ResolverMode selects the country-profile implementation at configuration
// time.
type ResolverMode string

const (
	// ResolverTable is the generic table-driven resolver with CSV/store
	// holiday input.
	ResolverTable ResolverMode = "table"
	// ResolverTurkiye is the fixed single-country resolver with procedural
	// holidays.
	ResolverTurkiye ResolverMode = "turkiye"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store       *sqlite.Store
	Log         zerolog.Logger
	Mode        ResolverMode
	HolidayFile string

	mu       sync.RWMutex
	holidays map[string][]schedule.Date
}

// NewHandler creates a handler. Store may be nil (holiday endpoints then
// report unavailability and only the CSV file feeds the resolver).
func NewHandler(store *sqlite.Store, log zerolog.Logger, mode ResolverMode, holidayFile string) *Handler {
	if mode == "" {
		mode = ResolverTable
	}
	return &Handler{
		Store:       store,
		Log:         log,
		Mode:        mode,
		HolidayFile: holidayFile,
		holidays:    make(map[string][]schedule.Date),
	}
}

// ReloadHolidays rebuilds the holiday snapshot from the CSV file and the
// store. File problems degrade silently by design; store problems surface.
func (h *Handler) ReloadHolidays(ctx context.Context) error {
	merged := country.LoadHolidayFile(h.HolidayFile)

	if h.Store != nil {
		stored, err := h.Store.HolidayDates(ctx)
		if err != nil {
			return err
		}
		for c, dates := range stored {
			merged[c] = append(merged[c], dates...)
		}
	}

	h.mu.Lock()
	h.holidays = merged
	h.mu.Unlock()

	h.Log.Debug().Int("countries", len(merged)).Msg("Holiday snapshot reloaded")
	return nil
}

// resolver builds a per-request profile resolver from the current holiday
// snapshot and the caller's device timezone hint.
func (h *Handler) resolver(deviceTZ string) schedule.ProfileResolver {
	if h.Mode == ResolverTurkiye {
		return country.NewTurkiyeResolver()
	}

	h.mu.RLock()
	holidays := h.holidays
	h.mu.RUnlock()

	return country.NewTableResolver(
		country.WithDeviceTimezone(deviceTZ),
		country.WithHolidays(holidays),
	)
}

// =============================================================================
// SCHEDULING ENDPOINTS
// =============================================================================

// Health reports liveness.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Schedule computes the usage sequence for the submitted cards.
// POST /api/schedule
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Cards) == 0 {
		writeError(w, http.StatusBadRequest, "At least one card is required", nil)
		return
	}

	ref, err := parseSystemTime(req.SystemTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid system_dt (use RFC3339)", err)
		return
	}

	cards := make([]schedule.CardSpec, len(req.Cards))
	for i, c := range req.Cards {
		cards[i] = c.toSpec()
	}

	sched := schedule.NewScheduler(h.resolver(req.DeviceTZ))
	rows, err := sched.Schedule(cards, ref)
	if err != nil {
		if schedule.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid card", err)
			return
		}
		h.Log.Error().Err(err).Msg("Scheduling failed")
		writeError(w, http.StatusInternalServerError, "Scheduling failed", err)
		return
	}

	writeJSON(w, http.StatusOK, ScheduleResponse{Rows: toRowDTOs(rows, req.Language)})
}

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListHolidays returns all stored holidays.
// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Holiday store not configured", nil)
		return
	}

	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, hd := range holidays {
		dtos[i] = HolidayDTO{ID: hd.ID, Country: hd.Country, Date: hd.Date.String(), Name: hd.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday stores a holiday and refreshes the snapshot.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Holiday store not configured", nil)
		return
	}

	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Country == "" {
		writeError(w, http.StatusBadRequest, "country is required", nil)
		return
	}
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	holiday := sqlite.Holiday{
		ID:      uuid.New().String(),
		Country: req.Country,
		Date:    date,
		Name:    req.Name,
	}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}

	if err := h.ReloadHolidays(r.Context()); err != nil {
		h.Log.Warn().Err(err).Msg("Holiday snapshot reload failed after create")
	}

	writeJSON(w, http.StatusCreated, HolidayDTO{
		ID: holiday.ID, Country: holiday.Country, Date: holiday.Date.String(), Name: holiday.Name,
	})
}

// DeleteHoliday removes a holiday by ID and refreshes the snapshot.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusServiceUnavailable, "Holiday store not configured", nil)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}

	if err := h.ReloadHolidays(r.Context()); err != nil {
		h.Log.Warn().Err(err).Msg("Holiday snapshot reload failed after delete")
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
		if errors.Is(err, schedule.ErrInvalidCardSpec) {
			resp.Code = "invalid_card_spec"
		}
	}
	writeJSON(w, status, resp)
}
