package leave

import (
	"github.com/staffhub-id/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-id/leave-backend-go/internal/domain/leave"
)

// CategoryInput carries the already-computed facts a category rule needs.
// Rules stay pure; the orchestrator gathers durations, tenure and prior
// grants before dispatch.
type CategoryInput struct {
	BusinessDays  int
	CalendarDays  int
	Gender        employee.Gender
	TenureYears   int
	HasAttachment bool
	// PriorGrants counts earlier pending or approved requests of the same
	// category. Only once-in-a-lifetime rules consult it.
	PriorGrants int
}

// CategoryRule validates one special leave category. Each known SpecialCode
// has exactly one rule.
type CategoryRule interface {
	Validate(in CategoryInput) error
}

// RuleFor returns the rule for a category, or ErrInvalidSpecialCode for
// codes the engine does not know. SpecialNone gets a rule that always
// passes, so callers dispatch unconditionally.
func RuleFor(code leave.SpecialCode) (CategoryRule, error) {
	switch code {
	case leave.SpecialNone:
		return noRule{}, nil
	case leave.SpecialSickShort:
		return sickShortRule{}, nil
	case leave.SpecialSickLong:
		return sickLongRule{}, nil
	case leave.SpecialHajj:
		return hajjRule{}, nil
	case leave.SpecialMaternity:
		return maternityRule{}, nil
	case leave.SpecialMarriage:
		return marriageRule{}, nil
	case leave.SpecialBereavement:
		return bereavementRule{}, nil
	case leave.SpecialPaternity:
		return paternityRule{}, nil
	default:
		return nil, leave.ErrInvalidSpecialCode
	}
}

type noRule struct{}

func (noRule) Validate(CategoryInput) error { return nil }

type sickShortRule struct{}

func (sickShortRule) Validate(in CategoryInput) error {
	if !in.HasAttachment {
		return leave.ErrAttachmentRequired
	}
	if in.BusinessDays > 29 {
		return leave.ErrSickShortTooLong
	}
	return nil
}

type sickLongRule struct{}

func (sickLongRule) Validate(in CategoryInput) error {
	if !in.HasAttachment {
		return leave.ErrAttachmentRequired
	}
	if in.BusinessDays < 30 || in.BusinessDays > 120 {
		return leave.ErrSickLongOutOfRange
	}
	return nil
}

// hajjRule bounds the pilgrimage window in calendar days because the trip
// spans weekends and holidays alike.
type hajjRule struct{}

func (hajjRule) Validate(in CategoryInput) error {
	if in.CalendarDays < 10 || in.CalendarDays > 15 {
		return leave.ErrHajjDurationOutOfRange
	}
	if in.TenureYears < 2 {
		return leave.ErrHajjTenureNotMet
	}
	if in.PriorGrants > 0 {
		return leave.ErrHajjAlreadyGranted
	}
	return nil
}

type maternityRule struct{}

func (maternityRule) Validate(in CategoryInput) error {
	if in.Gender != employee.Female {
		return leave.ErrMaternityFemaleOnly
	}
	if in.CalendarDays > 100 {
		return leave.ErrMaternityTooLong
	}
	return nil
}

type marriageRule struct{}

func (marriageRule) Validate(in CategoryInput) error {
	if in.BusinessDays > 5 {
		return leave.ErrMarriageTooLong
	}
	return nil
}

type bereavementRule struct{}

func (bereavementRule) Validate(in CategoryInput) error {
	if in.BusinessDays > 5 {
		return leave.ErrBereavementTooLong
	}
	return nil
}

type paternityRule struct{}

func (paternityRule) Validate(in CategoryInput) error {
	if in.Gender != employee.Male {
		return leave.ErrPaternityMaleOnly
	}
	if in.BusinessDays > 3 {
		return leave.ErrPaternityTooLong
	}
	return nil
}
