package employee

import "time"

// Employee is the read-only directory record the leave engine consumes.
// Employee administration itself lives outside this service.
type Employee struct {
	ID           string
	UserID       *string
	FullName     string
	Email        string
	Gender       Gender
	DepartmentID *string
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// TenureYears returns whole years of service as of the given date,
// using the mean Gregorian year length. Never negative.
func (e Employee) TenureYears(asOf time.Time) int {
	if e.HireDate.IsZero() || asOf.Before(e.HireDate) {
		return 0
	}
	days := asOf.Sub(e.HireDate).Hours() / 24
	return int(days / 365.2425)
}
