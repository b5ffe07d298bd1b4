/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the core
  schedule types from the external contract. Field names (card_name,
  statement_closing_day, ...) are frozen; existing clients depend on them.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - schedule/: core types these map onto
*/
package api

import (
	"strings"
	"time"

	"github.com/warp/cycle-engine/schedule"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// CardDTO is one card in a schedule request.
type CardDTO struct {
	Name       string `json:"card_name"`
	ClosingDay *int   `json:"statement_closing_day,omitempty"`
	DueDay     *int   `json:"payment_due_day,omitempty"`
	GraceDays  *int   `json:"grace_period,omitempty"`
	Country    string `json:"country,omitempty"`
}

// ScheduleRequest is the request body for POST /api/schedule. SystemTime
// is an optional RFC3339 instant; without an offset it is taken as UTC.
type ScheduleRequest struct {
	Cards      []CardDTO `json:"cards"`
	SystemTime string    `json:"system_dt,omitempty"`
	Language   string    `json:"language,omitempty"`
	DeviceTZ   string    `json:"device_tz,omitempty"`
}

// RowDTO is one schedule row, dates rendered in the requested locale.
type RowDTO struct {
	Sequence             int    `json:"sequence"`
	CardName             string `json:"card_name"`
	ExpectedPriorClosing string `json:"expected_prior_closing,omitempty"`
	UsageWindow          string `json:"usage_window"`
	NextClosing          string `json:"next_closing"`
	NextPayment          string `json:"next_payment"`
}

// ScheduleResponse wraps the generated rows.
type ScheduleResponse struct {
	Rows []RowDTO `json:"rows"`
}

// HolidayDTO represents a stored holiday.
type HolidayDTO struct {
	ID      string `json:"id"`
	Country string `json:"country"`
	Date    string `json:"date"`
	Name    string `json:"name,omitempty"`
}

// CreateHolidayRequest is the request to add a holiday. Country "_GLOBAL"
// applies everywhere.
type CreateHolidayRequest struct {
	Country string `json:"country"`
	Date    string `json:"date"`
	Name    string `json:"name,omitempty"`
}

// ScenarioDTO describes a canned demo card set.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RunScenarioRequest selects the rendering locale for a scenario run.
type RunScenarioRequest struct {
	Language string `json:"language,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func (c CardDTO) toSpec() schedule.CardSpec {
	return schedule.CardSpec{
		Name:       c.Name,
		ClosingDay: c.ClosingDay,
		DueDay:     c.DueDay,
		GraceDays:  c.GraceDays,
		Country:    c.Country,
	}
}

func toRowDTO(row schedule.Row, locale string) RowDTO {
	dto := RowDTO{
		Sequence:    row.Sequence,
		CardName:    strings.Join(row.CardNames, ", "),
		UsageWindow: schedule.FormatWindow(row.Window, locale),
		NextClosing: schedule.FormatDate(row.NextClosing, locale),
		NextPayment: schedule.FormatDate(row.NextPayment, locale),
	}
	if !row.PriorClosing.IsZero() {
		dto.ExpectedPriorClosing = schedule.FormatDate(row.PriorClosing, locale)
	}
	return dto
}

func toRowDTOs(rows []schedule.Row, locale string) []RowDTO {
	dtos := make([]RowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toRowDTO(row, locale)
	}
	return dtos
}

// parseSystemTime parses the optional reference instant. Instants without
// an offset are normalized to UTC before reaching the core.
func parseSystemTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
