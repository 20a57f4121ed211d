package prenatal

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAppointmentInPast rejects reminders for visits that already happened.
	ErrAppointmentInPast = errors.New("cannot create a reminder for a past appointment")
)

// ReminderPlan is the computed timing and message for one reminder.
// Immediate is set when the nominal reminder date has already passed and the
// reminder should go out right away instead.
type ReminderPlan struct {
	SendAt    time.Time
	Immediate bool
	Message   string
}

// PlanReminder computes when and what to send for an appointment happening
// on visitDate. customMessage, when non-blank, replaces the synthesized text.
func PlanReminder(now time.Time, visitDate time.Time, startTime *time.Time, daysBefore int, customMessage string) (ReminderPlan, error) {
	today := dateOnly(now)
	date := dateOnly(visitDate)

	if date.Before(today) {
		return ReminderPlan{}, ErrAppointmentInPast
	}

	plan := ReminderPlan{
		SendAt:  date.AddDate(0, 0, -daysBefore),
		Message: customMessage,
	}

	if plan.SendAt.Before(today) {
		// The nominal reminder date has passed: still issue it, immediately.
		plan.SendAt = now
		plan.Immediate = true
	}

	if plan.Message == "" {
		timeOfDay := "any time"
		if startTime != nil {
			timeOfDay = startTime.Format("15:04")
		}
		plan.Message = fmt.Sprintf("Reminder: Prenatal appointment on %s at %s. %d day(s) remaining.",
			date.Format("2006-01-02"), timeOfDay, daysBefore)
	}

	return plan, nil
}
