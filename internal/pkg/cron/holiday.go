package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffhub-id/leave-backend-go/internal/config"
	"github.com/staffhub-id/leave-backend-go/internal/domain/employee"
	"github.com/staffhub-id/leave-backend-go/internal/domain/holiday"
	"github.com/staffhub-id/leave-backend-go/internal/pkg/email"
)

// HolidayJobs holds the daily holiday reminder job. It only reads the
// calendar; request and balance state are never touched from here.
type HolidayJobs struct {
	calendar     holiday.CalendarService
	employeeRepo employee.EmployeeRepository
	emailSvc     email.EmailService
	policy       config.PolicyConfig
}

func NewHolidayJobs(
	calendar holiday.CalendarService,
	employeeRepo employee.EmployeeRepository,
	emailSvc email.EmailService,
	policy config.PolicyConfig,
) *HolidayJobs {
	return &HolidayJobs{
		calendar:     calendar,
		employeeRepo: employeeRepo,
		emailSvc:     emailSvc,
		policy:       policy,
	}
}

func (j *HolidayJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("holiday_reminders", 1*time.Hour, j.SendHolidayReminders)
}

// SendHolidayReminders mails every active employee about holidays that begin
// within the configured lead window.
func (j *HolidayJobs) SendHolidayReminders(ctx context.Context) error {
	// Only run in the early morning (06:00-06:59 UTC)
	if time.Now().UTC().Hour() != 6 {
		return nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	from := today.AddDate(0, 0, 1)
	to := today.AddDate(0, 0, j.policy.ReminderLeadDays)

	instances, err := j.calendar.InstancesBetween(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to list upcoming holidays: %w", err)
	}
	if len(instances) == 0 {
		return nil
	}

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	sent := 0
	for _, inst := range instances {
		for _, emp := range employees {
			if emp.Email == "" {
				continue
			}
			err := j.emailSvc.SendHolidayReminder(
				emp.Email,
				inst.Name,
				inst.StartDate.Format("2006-01-02"),
				inst.EndDate.Format("2006-01-02"),
			)
			if err != nil {
				// Reminder mail is best-effort
				slog.Error("Cron: Failed to send holiday reminder",
					"holiday", inst.Name,
					"employee_id", emp.ID,
					"error", err)
				continue
			}
			sent++
		}
	}

	slog.Info("Cron: Sent holiday reminders", "holidays", len(instances), "emails", sent)
	return nil
}
