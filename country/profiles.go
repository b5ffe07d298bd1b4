/*
Package country resolves card countries to scheduling profiles.

PURPOSE:
  Two implementations of schedule.ProfileResolver, selected at
  configuration time:

  - TableResolver: generic, table-driven. Well-known countries map to a
    timezone and a default grace period; holiday sets come from a CSV
    file, an injected map (e.g. the sqlite holiday store), or both.
  - TurkiyeResolver: fixed single-country variant with a procedural
    holiday calendar (see turkiye.go).

  Resolution never fails: unknown or absent countries fall back to the
  device timezone hint, then UTC; grace falls back to a global "other"
  default; the weekend defaults to Saturday/Sunday.

SEE ALSO:
  - schedule/calendar.go: Profile and ProfileResolver definitions
  - holidays.go: holiday file loading and set types
*/
package country

import (
	"strings"
	"time"

	"github.com/warp/cycle-engine/schedule"
)

// =============================================================================
// STATIC TABLES
// =============================================================================
// Immutable after process start; safe for unsynchronized concurrent reads.

// defaultTimezones maps well-known country names to their default timezone
// (the busiest zone for multi-timezone countries).
var defaultTimezones = map[string]string{
	"USA":            "America/New_York",
	"United States":  "America/New_York",
	"United Kingdom": "Europe/London",
	"UK":             "Europe/London",
	"Canada":         "America/New_York",
	"Brazil":         "America/Sao_Paulo",
	"Brasil":         "America/Sao_Paulo",
	"Mexico":         "America/Mexico_City",
	"Australia":      "Australia/Sydney",
	"Russia":         "Europe/Moscow",
	"Chile":          "America/Santiago",
	"Indonesia":      "Asia/Jakarta",
	"Türkiye":        "Europe/Istanbul",
	"Turkey":         "Europe/Istanbul",
}

// graceOther is the grace-period default for countries not in the table.
const graceOther = 20

var defaultGrace = map[string]int{
	"USA":            21,
	"United States":  21,
	"Canada":         21,
	"United Kingdom": 21,
	"UK":             21,
	"Brazil":         21,
	"Brasil":         21,
	"Türkiye":        10,
	"Turkey":         10,
}

// weekendOverrides holds per-country weekend exceptions. Most countries
// use Saturday/Sunday; add entries here when a market needs a different
// pattern (e.g. legacy Fri/Sat weekends).
var weekendOverrides = map[string]schedule.Weekend{}

// GlobalHolidayKey is the wildcard country whose holidays apply everywhere.
const GlobalHolidayKey = "_GLOBAL"

// =============================================================================
// TABLE RESOLVER
// =============================================================================

// TableResolver is the generic, table-driven resolver. Zero value is
// usable: UTC fallback, no holidays.
type TableResolver struct {
	deviceTZ *time.Location
	holidays map[string]DateSet
}

// Option configures a TableResolver.
type Option func(*TableResolver)

// WithDeviceTimezone sets the fallback timezone for cards whose country
// is unrecognized. An unparseable name is ignored, keeping the UTC
// fallback.
func WithDeviceTimezone(name string) Option {
	return func(r *TableResolver) {
		if name == "" {
			return
		}
		if loc, err := time.LoadLocation(name); err == nil {
			r.deviceTZ = loc
		}
	}
}

// WithHolidays merges per-country holiday dates into the resolver.
// The GlobalHolidayKey country applies to every profile.
func WithHolidays(byCountry map[string][]schedule.Date) Option {
	return func(r *TableResolver) {
		for c, dates := range byCountry {
			r.addHolidays(c, dates)
		}
	}
}

// WithHolidayFile merges holidays from a country,date CSV file. A missing
// or malformed file contributes nothing; it is never an error.
func WithHolidayFile(path string) Option {
	return func(r *TableResolver) {
		for c, dates := range LoadHolidayFile(path) {
			r.addHolidays(c, dates)
		}
	}
}

func NewTableResolver(opts ...Option) *TableResolver {
	r := &TableResolver{holidays: make(map[string]DateSet)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *TableResolver) addHolidays(country string, dates []schedule.Date) {
	country = strings.TrimSpace(country)
	if country == "" {
		return
	}
	set, ok := r.holidays[country]
	if !ok {
		set = make(DateSet)
		r.holidays[country] = set
	}
	for _, d := range dates {
		set[d] = struct{}{}
	}
}

// Resolve maps a country name to its profile. Never fails.
func (r *TableResolver) Resolve(name string) schedule.Profile {
	name = strings.TrimSpace(name)

	loc := time.UTC
	if tz, ok := defaultTimezones[name]; ok {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	} else if r.deviceTZ != nil {
		loc = r.deviceTZ
	}

	weekend, ok := weekendOverrides[name]
	if !ok {
		weekend = schedule.DefaultWeekend()
	}

	grace, ok := defaultGrace[name]
	if !ok {
		grace = graceOther
	}

	return schedule.Profile{
		Location:  loc,
		Weekend:   weekend,
		GraceDays: grace,
		Holidays:  UnionSet{r.holidays[name], r.holidays[GlobalHolidayKey]},
	}
}
