/*
format.go - Presentation formatting

PURPOSE:
  Renders dates as "<day> <abbreviated month>" in one of two locales.
  The year is deliberately omitted: output is for a rolling few-month
  planning horizon, so day+month is unambiguous to the reader and the
  formatting is intentionally not a full round-trip.

LOCALES:
  "tr"-prefixed tags select Turkish (the default locale); anything else,
  including unsupported tags, falls back to English.
*/
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNamesTR = [12]string{"Oca", "Şub", "Mar", "Nis", "May", "Haz", "Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara"}
var monthNamesEN = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func monthNames(locale string) [12]string {
	if strings.HasPrefix(strings.ToLower(locale), "tr") {
		return monthNamesTR
	}
	return monthNamesEN
}

// FormatDate renders d as "3 Oca" (tr) or "3 Jan" (any other locale).
func FormatDate(d Date, locale string) string {
	return fmt.Sprintf("%d %s", d.Day(), monthNames(locale)[d.Month()-1])
}

// FormatWindow renders an inclusive usage window, e.g. "15 Haz – 3 Tem".
func FormatWindow(w Window, locale string) string {
	return FormatDate(w.Begin, locale) + " – " + FormatDate(w.End, locale)
}

// ParseDayMonth parses the output of FormatDate back into a day and month.
// The year is lost by design; callers that need a Date must supply one.
func ParseDayMonth(s, locale string) (int, time.Month, error) {
	parts := strings.SplitN(strings.TrimSpace(s), " ", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed day-month %q", s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed day in %q: %w", s, err)
	}
	names := monthNames(locale)
	for i, name := range names {
		if parts[1] == name {
			return day, time.Month(i + 1), nil
		}
	}
	return 0, 0, fmt.Errorf("unknown month name %q", parts[1])
}
