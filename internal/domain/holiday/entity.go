package holiday

import "time"

// Holiday is a calendar entry excluded from business-day counts.
// Single-day holidays are stored with StartDate == EndDate. Repeating
// entries are anchored on the month-day of StartDate/EndDate and replayed
// every year at query time; they are never materialized into rows.
type Holiday struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Repeat    bool
	CreatedAt time.Time
}

// Instance is a concrete occurrence of a holiday within a query window,
// with repeating entries resolved to real dates for the relevant year.
type Instance struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Repeat    bool
}
