package holiday

import (
	"context"
	"time"
)

// CalendarService is the holiday calendar read/write surface. BusinessDays
// counts working days without any minimum clamp; callers that treat a valid
// submitted range as never less than one day apply that policy themselves.
type CalendarService interface {
	AddHoliday(ctx context.Context, req CreateHolidayRequest) (Holiday, error)
	RemoveHoliday(ctx context.Context, id string) error
	ListHolidays(ctx context.Context) ([]HolidayResponse, error)

	// ExcludedDates expands all holiday entries into the concrete set of
	// dates covered inside [from, to], keyed YYYY-MM-DD.
	ExcludedDates(ctx context.Context, from, to time.Time) (map[string]struct{}, error)
	// BusinessDays counts days in [from, to] that are neither the weekly
	// off-day nor holiday-covered. Returns 0 when to < from.
	BusinessDays(ctx context.Context, from, to time.Time) (int, error)
	// InstancesBetween returns concrete holiday occurrences whose start
	// date falls inside [from, to].
	InstancesBetween(ctx context.Context, from, to time.Time) ([]Instance, error)
}
