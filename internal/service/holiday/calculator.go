package holiday

import (
	"time"

	"github.com/staffhub-id/leave-backend-go/internal/domain/holiday"
)

const dateLayout = "2006-01-02"

// ExpandDates expands holiday entries into the set of concrete dates they
// cover inside [from, to], keyed YYYY-MM-DD. Non-repeating entries are
// clipped literally; repeating entries are re-anchored on their month-day
// for every calendar year the query touches, with the end landing in the
// following year when its month-day precedes the start's (year wrap).
func ExpandDates(entries []holiday.Holiday, from, to time.Time) map[string]struct{} {
	excluded := make(map[string]struct{})
	if to.Before(from) {
		return excluded
	}

	for _, inst := range resolveInstances(entries, from, to) {
		addRange(excluded, maxDate(inst.StartDate, from), minDate(inst.EndDate, to))
	}

	return excluded
}

// CountBusinessDays counts the days of [from, to] inclusive that are neither
// the weekly off-day nor covered by a holiday. Returns 0 when to < from.
// No minimum is applied here; a range consisting entirely of holidays
// legitimately counts zero.
func CountBusinessDays(entries []holiday.Holiday, offDay time.Weekday, from, to time.Time) int {
	if to.Before(from) {
		return 0
	}

	excluded := ExpandDates(entries, from, to)

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == offDay {
			continue
		}
		if _, ok := excluded[d.Format(dateLayout)]; ok {
			continue
		}
		count++
	}

	return count
}

// InstancesStartingBetween returns the concrete holiday occurrences whose
// start date falls inside [from, to]. This is the reminder read path: it
// keys off "does a holiday begin soon", not "is this day covered".
func InstancesStartingBetween(entries []holiday.Holiday, from, to time.Time) []holiday.Instance {
	if to.Before(from) {
		return nil
	}

	var out []holiday.Instance
	for _, inst := range resolveInstances(entries, from, to) {
		if !inst.StartDate.Before(from) && !inst.StartDate.After(to) {
			out = append(out, inst)
		}
	}
	return out
}

// resolveInstances materializes every concrete occurrence that could touch
// [from, to]. Repeating entries yield one instance per calendar year in the
// window; the extra leading year covers wrap instances begun in December.
func resolveInstances(entries []holiday.Holiday, from, to time.Time) []holiday.Instance {
	var out []holiday.Instance

	for _, h := range entries {
		if !h.Repeat {
			if h.StartDate.After(to) || h.EndDate.Before(from) {
				continue
			}
			out = append(out, holiday.Instance{
				Name:      h.Name,
				StartDate: h.StartDate,
				EndDate:   h.EndDate,
				Repeat:    false,
			})
			continue
		}

		for year := from.Year() - 1; year <= to.Year(); year++ {
			start := time.Date(year, h.StartDate.Month(), h.StartDate.Day(), 0, 0, 0, 0, time.UTC)
			endYear := year
			if monthDayLess(h.EndDate, h.StartDate) {
				endYear = year + 1
			}
			end := time.Date(endYear, h.EndDate.Month(), h.EndDate.Day(), 0, 0, 0, 0, time.UTC)

			if start.After(to) || end.Before(from) {
				continue
			}
			out = append(out, holiday.Instance{
				Name:      h.Name,
				StartDate: start,
				EndDate:   end,
				Repeat:    true,
			})
		}
	}

	return out
}

// monthDayLess reports whether a's month-day anchor precedes b's.
func monthDayLess(a, b time.Time) bool {
	if a.Month() != b.Month() {
		return a.Month() < b.Month()
	}
	return a.Day() < b.Day()
}

func addRange(set map[string]struct{}, from, to time.Time) {
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		set[d.Format(dateLayout)] = struct{}{}
	}
}

func maxDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return b
	}
	return a
}

func minDate(a, b time.Time) time.Time {
	if a.After(b) {
		return b
	}
	return a
}
