package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Repository contains all DB interactions needed by the scheduling service
// and the reminder worker.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// ListByPatientAndHospital returns appointments ordered by date ascending.
	ListByPatientAndHospital(ctx context.Context, patientID, hospitalID uuid.UUID) ([]Appointment, error)

	// UpdateSchedule moves an active appointment to new times, marks it
	// rescheduled, and replaces the reason. Completed and cancelled
	// appointments are not touched.
	UpdateSchedule(ctx context.Context, id uuid.UUID, date time.Time, start, end time.Time, reason string) (*Appointment, error)

	// Reminder worker
	FindDueForReminder(ctx context.Context, from, to time.Time) ([]Appointment, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error

	// Event logging
	InsertEvent(ctx context.Context, ev EventLog) error
}
