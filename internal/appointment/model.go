package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no_show"
)

// Active reports whether the appointment still occupies its slot on the calendar.
func (s Status) Active() bool {
	return s == StatusScheduled || s == StatusRescheduled
}

type Appointment struct {
	ID             uuid.UUID
	HospitalID     uuid.UUID
	PatientID      uuid.UUID
	StaffID        *uuid.UUID
	Department     *string
	Date           time.Time
	StartTime      *time.Time
	EndTime        *time.Time
	Status         Status
	Reason         string
	ReminderSentAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DurationMinutes derives the booked duration, or 0 when either time is missing.
func (a *Appointment) DurationMinutes() int {
	if a.StartTime == nil || a.EndTime == nil {
		return 0
	}
	return int(a.EndTime.Sub(*a.StartTime).Minutes())
}

type EventLog struct {
	ID            int64
	EventType     string
	AppointmentID *uuid.UUID
	Payload       []byte
	CreatedAt     time.Time
}
