package prenatal

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleRequest carries everything the planner needs to compute a visit
// schedule. The caller is responsible for validating that the LMP precedes
// the computation date; the planner itself accepts any well-formed input.
type ScheduleRequest struct {
	PatientID           uuid.UUID
	HospitalID          uuid.UUID
	StaffID             *uuid.UUID
	LastMenstrualPeriod time.Time
	DueDateOverride     *time.Time
	HighRisk            bool
	SupplementalWeeks   []int // extra gestational weeks (1-44) requested outside the standard cadence
}

// VisitRecommendation is a computed, disposable projection. The planner
// builds it, reconciliation mutates it, and the caller consumes it; it is
// never persisted.
type VisitRecommendation struct {
	TargetDate      time.Time
	WindowStart     time.Time
	WindowEnd       time.Time
	StartTime       time.Time
	EndTime         time.Time
	GestationalWeek int
	DurationMinutes int
	VisitType       VisitType
	Scheduled       bool
	AppointmentID   *uuid.UUID
	Notes           string
	Recommendation  string
}

// BookedAppointmentSummary is a read-only projection of an appointment
// fetched by the caller. GestationalWeek is filled in by the planner.
type BookedAppointmentSummary struct {
	AppointmentID   uuid.UUID
	StaffID         *uuid.UUID
	Department      *string
	Date            time.Time
	StartTime       *time.Time
	EndTime         *time.Time
	Status          string
	Reason          string
	GestationalWeek int
}

// ScheduleResult is the sole output of the planner. It is stateless and can
// be re-derived from the same inputs at any time.
type ScheduleResult struct {
	PatientID            uuid.UUID
	HospitalID           uuid.UUID
	StaffID              *uuid.UUID
	EstimatedDueDate     time.Time
	CurrentWeek          int
	HighRisk             bool
	Recommendations      []*VisitRecommendation
	ExistingAppointments []BookedAppointmentSummary
	Alerts               []string
}
