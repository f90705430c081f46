package response

import (
	"errors"
	"net/http"

	"github.com/staffhub-id/leave-backend-go/internal/domain/auth"
	"github.com/staffhub-id/leave-backend-go/internal/domain/department"
	"github.com/staffhub-id/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-id/leave-backend-go/internal/domain/holiday"
	"github.com/staffhub-id/leave-backend-go/internal/domain/leave"
	"github.com/staffhub-id/leave-backend-go/internal/domain/user"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrInvalidOAuthState):
		Unauthorized(w, "OAuth verification failed")
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrPermissionDenied):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrActorWithoutEmployee):
		Forbidden(w, "User has no linked employee record")

	// Directory errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")

	// Holiday calendar errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrInvalidHolidayRange):
		BadRequest(w, err.Error(), nil)

	// Leave validation errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrLeaveTypeInactive),
		errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrStartDateInPast),
		errors.Is(err, leave.ErrCrossYearRange),
		errors.Is(err, leave.ErrInvalidSpecialCode):
		BadRequest(w, err.Error(), nil)

	// Leave policy violations
	case errors.Is(err, leave.ErrOverlappingRequest),
		errors.Is(err, leave.ErrLeaveTypeInUse):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, leave.ErrAttachmentRequired),
		errors.Is(err, leave.ErrSickShortTooLong),
		errors.Is(err, leave.ErrSickLongOutOfRange),
		errors.Is(err, leave.ErrHajjDurationOutOfRange),
		errors.Is(err, leave.ErrHajjTenureNotMet),
		errors.Is(err, leave.ErrHajjAlreadyGranted),
		errors.Is(err, leave.ErrMaternityFemaleOnly),
		errors.Is(err, leave.ErrMaternityTooLong),
		errors.Is(err, leave.ErrMarriageTooLong),
		errors.Is(err, leave.ErrBereavementTooLong),
		errors.Is(err, leave.ErrPaternityMaleOnly),
		errors.Is(err, leave.ErrPaternityTooLong):
		BadRequest(w, err.Error(), nil)

	// Leave authorization errors
	case errors.Is(err, leave.ErrSelfApproval),
		errors.Is(err, leave.ErrNotDepartmentManager),
		errors.Is(err, leave.ErrManagerDecisionRequired),
		errors.Is(err, leave.ErrApproverNotAuthorized):
		Forbidden(w, err.Error())

	// Leave state errors
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrRequestNotApproved),
		errors.Is(err, leave.ErrReturnDateOutOfRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
