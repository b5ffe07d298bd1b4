/*
errors.go - Error types for the scheduling core

PURPOSE:
  The core has exactly one caller-facing failure: a card that specifies
  neither a closing day nor a due day. Everything else either degrades
  silently where the design says so (holiday files, country resolution)
  or is a defect and surfaces as-is.

USAGE:
  rows, err := sched.Schedule(cards, ref)
  if errors.Is(err, schedule.ErrInvalidCardSpec) {
      // reject the request, naming the offending card
  }
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidCardSpec is returned when a card has neither a closing day
	// nor a due day. The whole scheduling run fails; callers must not drop
	// the offending card silently.
	ErrInvalidCardSpec = errors.New("card needs a closing day or a due day")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidCardSpecError names the card that failed validation.
type InvalidCardSpecError struct {
	CardName string
}

func (e *InvalidCardSpecError) Error() string {
	return fmt.Sprintf("card %q: either closing day or due day must be provided", e.CardName)
}

func (e *InvalidCardSpecError) Unwrap() error {
	return ErrInvalidCardSpec
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidCardSpec)
}
