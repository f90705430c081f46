package leave

import "errors"

// Validation errors - rejected before any persistence.
var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrLeaveTypeInactive    = errors.New("leave type is not active")
	ErrLeaveTypeInUse       = errors.New("leave type is referenced by existing requests")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrStartDateInPast      = errors.New("start date must not be in the past")
	ErrCrossYearRange       = errors.New("leave range must fall within a single calendar year")
	ErrInvalidSpecialCode   = errors.New("unknown special leave category")
)

// Policy violations - one distinct reason per rule.
var (
	ErrOverlappingRequest     = errors.New("an overlapping pending or approved request already exists")
	ErrInsufficientBalance    = errors.New("insufficient leave balance")
	ErrAttachmentRequired     = errors.New("a supporting document is required for sick leave")
	ErrSickShortTooLong       = errors.New("short sick leave must not exceed 29 business days")
	ErrSickLongOutOfRange     = errors.New("long sick leave must span 30 to 120 business days")
	ErrHajjDurationOutOfRange = errors.New("hajj leave must span 10 to 15 calendar days")
	ErrHajjTenureNotMet       = errors.New("hajj leave requires at least 2 years of service")
	ErrHajjAlreadyGranted     = errors.New("hajj leave may be taken only once")
	ErrMaternityFemaleOnly    = errors.New("maternity leave is only available to female employees")
	ErrMaternityTooLong       = errors.New("maternity leave must not exceed 100 calendar days")
	ErrMarriageTooLong        = errors.New("marriage leave must not exceed 5 business days")
	ErrBereavementTooLong     = errors.New("bereavement leave must not exceed 5 business days")
	ErrPaternityMaleOnly      = errors.New("paternity leave is only available to male employees")
	ErrPaternityTooLong       = errors.New("paternity leave must not exceed 3 business days")
)

// Authorization errors - rejected before any persistence.
var (
	ErrSelfApproval            = errors.New("cannot act on your own leave request")
	ErrNotDepartmentManager    = errors.New("actor does not manage the employee's department")
	ErrManagerDecisionRequired = errors.New("department manager must decide before HR")
	ErrApproverNotAuthorized   = errors.New("actor is not authorized to decide this request")
)

// State errors.
var (
	ErrAlreadyProcessed     = errors.New("leave request already processed")
	ErrRequestNotApproved   = errors.New("only approved requests can be shortened")
	ErrReturnDateOutOfRange = errors.New("early-return date must fall inside the approved range")
)
