package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/staffhub-id/leave-backend-go/internal/config"
	"github.com/staffhub-id/leave-backend-go/internal/domain/holiday"
)

type Service struct {
	holiday.HolidayRepository
	policy config.PolicyConfig
}

func NewService(holidayRepository holiday.HolidayRepository, policy config.PolicyConfig) *Service {
	return &Service{
		HolidayRepository: holidayRepository,
		policy:            policy,
	}
}

func (s *Service) AddHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	if err := req.Validate(); err != nil {
		return holiday.Holiday{}, err
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to parse start date: %w", err)
	}

	// Single-day holidays are stored with end = start
	end := start
	if req.EndDate != "" {
		end, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return holiday.Holiday{}, fmt.Errorf("failed to parse end date: %w", err)
		}
	}

	if end.Before(start) {
		return holiday.Holiday{}, holiday.ErrInvalidHolidayRange
	}

	created, err := s.HolidayRepository.Create(ctx, holiday.Holiday{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		Repeat:    req.Repeat,
	})
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return created, nil
}

func (s *Service) RemoveHoliday(ctx context.Context, id string) error {
	if err := s.HolidayRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}

func (s *Service) ListHolidays(ctx context.Context) ([]holiday.HolidayResponse, error) {
	entries, err := s.HolidayRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.HolidayResponse, 0, len(entries))
	for _, h := range entries {
		responses = append(responses, holiday.ToResponse(h))
	}
	return responses, nil
}

func (s *Service) ExcludedDates(ctx context.Context, from, to time.Time) (map[string]struct{}, error) {
	entries, err := s.HolidayRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return ExpandDates(entries, from, to), nil
}

func (s *Service) BusinessDays(ctx context.Context, from, to time.Time) (int, error) {
	entries, err := s.HolidayRepository.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list holidays: %w", err)
	}
	return CountBusinessDays(entries, s.policy.WeeklyOffDay, from, to), nil
}

func (s *Service) InstancesBetween(ctx context.Context, from, to time.Time) ([]holiday.Instance, error) {
	entries, err := s.HolidayRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return InstancesStartingBetween(entries, from, to), nil
}

var _ holiday.CalendarService = (*Service)(nil)
