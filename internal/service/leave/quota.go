package leave

import (
	"time"

	"github.com/staffhub-id/leave-backend-go/internal/config"
	"github.com/staffhub-id/leave-backend-go/internal/domain/leave"
)

// meanGregorianYear is the average year length used for tenure math, so
// leap years never shift an anniversary.
const meanGregorianYear = 365.2425

// ResolveQuota computes the annual entitlement for one (type, employee, year)
// combination. Tenure-tiered types pick the organization-wide threshold for
// the employee's whole years of service as of January 1 of the target year;
// everything else, including tiered types with an unknown hire date, falls
// back to the type's flat quota.
func ResolveQuota(leaveType leave.LeaveType, hireDate *time.Time, year int, policy config.PolicyConfig) int {
	if !leaveType.IsAnnual {
		return leaveType.AnnualQuota
	}
	if hireDate == nil || hireDate.IsZero() {
		return leaveType.AnnualQuota
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	if tenureYears(*hireDate, yearStart) >= 5 {
		return policy.AnnualQuotaFiveYearsPlus
	}
	return policy.AnnualQuotaUnderFiveYears
}

func tenureYears(hireDate, asOf time.Time) int {
	if asOf.Before(hireDate) {
		return 0
	}
	days := asOf.Sub(hireDate).Hours() / 24
	return int(days / meanGregorianYear)
}
