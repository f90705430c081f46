package holiday

import "github.com/staffhub-id/leave-backend-go/internal/pkg/validator"

type CreateHolidayRequest struct {
	Name      string `json:"holiday_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	Repeat    bool   `json:"repeat"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_name",
			Message: "holiday_name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "holiday_name",
			Message: "holiday_name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	// End date is optional; a single-day holiday repeats the start date.
	if !validator.IsEmpty(r.EndDate) {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HolidayResponse struct {
	ID        string `json:"id"`
	Name      string `json:"holiday_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Repeat    bool   `json:"repeat"`
}

func ToResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID,
		Name:      h.Name,
		StartDate: h.StartDate.Format("2006-01-02"),
		EndDate:   h.EndDate.Format("2006-01-02"),
		Repeat:    h.Repeat,
	}
}
