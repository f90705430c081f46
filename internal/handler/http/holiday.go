package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/staffhub-id/leave-backend-go/internal/domain/holiday"
	"github.com/staffhub-id/leave-backend-go/internal/handler/http/response"
)

type HolidayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	BusinessDays(w http.ResponseWriter, r *http.Request)
}

type HolidayHandlerImpl struct {
	calendar holiday.CalendarService
}

func NewHolidayHandler(calendar holiday.CalendarService) HolidayHandler {
	return &HolidayHandlerImpl{calendar: calendar}
}

// Create implements HolidayHandler.
func (h *HolidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create holiday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.calendar.AddHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created successfully", holiday.ToResponse(created))
}

// List implements HolidayHandler.
func (h *HolidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.calendar.ListHolidays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}

// Delete implements HolidayHandler.
func (h *HolidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	holidayID := chi.URLParam(r, "id")
	if holidayID == "" {
		response.BadRequest(w, "Holiday ID is required", nil)
		return
	}

	if err := h.calendar.RemoveHoliday(r.Context(), holidayID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted successfully", nil)
}

// BusinessDays returns the working-day count of a date range, for clients
// previewing how many days a request will consume.
func (h *HolidayHandlerImpl) BusinessDays(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		response.BadRequest(w, "from must be in YYYY-MM-DD format", nil)
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		response.BadRequest(w, "to must be in YYYY-MM-DD format", nil)
		return
	}

	days, err := h.calendar.BusinessDays(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"business_days": days})
}
