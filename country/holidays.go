/*
holidays.go - Holiday set types and file loading

PURPOSE:
  DateSet and UnionSet implement schedule.HolidaySet for table-driven
  resolvers. LoadHolidayFile reads the external country,date CSV; by
  design it degrades silently to an empty set on any problem (missing
  file, bad header, unparseable row) so the scheduler never has to
  special-case holiday input.
*/
package country

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/warp/cycle-engine/schedule"
)

// =============================================================================
// HOLIDAY SETS
// =============================================================================

// DateSet is a set of concrete holiday dates. Nil is a valid empty set.
type DateSet map[schedule.Date]struct{}

func (s DateSet) Contains(d schedule.Date) bool {
	_, ok := s[d]
	return ok
}

// UnionSet is a holiday set combining several others (typically a
// country's own set with the global wildcard set). Nil members are
// skipped.
type UnionSet []schedule.HolidaySet

func (u UnionSet) Contains(d schedule.Date) bool {
	for _, s := range u {
		if s != nil && s.Contains(d) {
			return true
		}
	}
	return false
}

// =============================================================================
// CSV LOADING
// =============================================================================

// LoadHolidayFile reads per-country holidays from a CSV file with a
// country,date header, dates in ISO form. Rows that do not parse are
// skipped; a missing or malformed file yields an empty result. The
// silent tolerance here is deliberate - accuracy of the holiday table is
// the operator's job, and a bad file must not take scheduling down.
func LoadHolidayFile(path string) map[string][]schedule.Date {
	out := make(map[string][]schedule.Date)
	if path == "" {
		return out
	}

	f, err := os.Open(path)
	if err != nil {
		return out
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return out
	}

	// Locate the country and date columns from the header row.
	countryCol, dateCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "country":
			countryCol = i
		case "date":
			dateCol = i
		}
	}
	if countryCol < 0 || dateCol < 0 {
		return out
	}

	for _, rec := range records[1:] {
		if len(rec) <= countryCol || len(rec) <= dateCol {
			continue
		}
		country := strings.TrimSpace(rec[countryCol])
		if country == "" {
			continue
		}
		d, err := schedule.ParseDate(strings.TrimSpace(rec[dateCol]))
		if err != nil {
			continue
		}
		out[country] = append(out[country], d)
	}
	return out
}
