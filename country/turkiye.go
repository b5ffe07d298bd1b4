/*
turkiye.go - Fixed single-country resolver for Türkiye

PURPOSE:
  The specialized variant of the profile abstraction: no external holiday
  input at all. National holidays are computed procedurally - the fixed
  ones recur on the same month/day every year, the religious feasts
  (Ramazan and Kurban Bayramı) shift with the lunar calendar and come
  from an explicit per-year table. Years outside the table contribute no
  movable holidays.
*/
package country

import (
	"time"

	"github.com/warp/cycle-engine/schedule"
)

// fixed national holidays, month/day, every year.
var turkiyeFixedHolidays = map[[2]int]string{
	{1, 1}:   "Yılbaşı",
	{4, 23}:  "Ulusal Egemenlik ve Çocuk Bayramı",
	{5, 1}:   "Emek ve Dayanışma Günü",
	{5, 19}:  "Atatürk'ü Anma, Gençlik ve Spor Bayramı",
	{7, 15}:  "Demokrasi ve Millî Birlik Günü",
	{8, 30}:  "Zafer Bayramı",
	{10, 29}: "Cumhuriyet Bayramı",
}

// movable religious holidays by year (feast days only, eve half-days
// excluded). Extend the table as new official calendars are published.
var turkiyeMovableHolidays = map[int][][2]int{
	2024: {{4, 10}, {4, 11}, {4, 12}, {6, 16}, {6, 17}, {6, 18}, {6, 19}},
	2025: {{3, 30}, {3, 31}, {4, 1}, {6, 6}, {6, 7}, {6, 8}, {6, 9}},
	2026: {{3, 20}, {3, 21}, {3, 22}, {5, 27}, {5, 28}, {5, 29}, {5, 30}},
	2027: {{3, 9}, {3, 10}, {3, 11}, {5, 16}, {5, 17}, {5, 18}, {5, 19}},
}

// turkiyeHolidays implements schedule.HolidaySet procedurally, keyed by
// the queried date's year.
type turkiyeHolidays struct{}

func (turkiyeHolidays) Contains(d schedule.Date) bool {
	key := [2]int{int(d.Month()), d.Day()}
	if _, ok := turkiyeFixedHolidays[key]; ok {
		return true
	}
	for _, md := range turkiyeMovableHolidays[d.Year()] {
		if md == key {
			return true
		}
	}
	return false
}

// TurkiyeResolver resolves every card to the Türkiye profile regardless
// of its country field. Select it at configuration time for deployments
// serving a single market.
type TurkiyeResolver struct {
	loc *time.Location
}

func NewTurkiyeResolver() *TurkiyeResolver {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		loc = time.UTC
	}
	return &TurkiyeResolver{loc: loc}
}

func (r *TurkiyeResolver) Resolve(string) schedule.Profile {
	return schedule.Profile{
		Location:  r.loc,
		Weekend:   schedule.DefaultWeekend(),
		GraceDays: defaultGrace["Türkiye"],
		Holidays:  turkiyeHolidays{},
	}
}
