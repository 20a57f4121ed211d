package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/careops/maternity-scheduling/internal/appointment"
	"github.com/careops/maternity-scheduling/internal/prenatal"
)

type ScheduleRequest struct {
	PatientID         string  `json:"patient_id"`
	HospitalID        string  `json:"hospital_id"`
	StaffID           *string `json:"staff_id,omitempty"`
	LastMenstrualDate string  `json:"last_menstrual_period"`      // YYYY-MM-DD
	DueDateOverride   *string `json:"due_date_override,omitempty"` // YYYY-MM-DD
	HighRisk          bool    `json:"high_risk"`
	SupplementalWeeks []int   `json:"supplemental_weeks,omitempty"`
}

type RecommendationResponse struct {
	TargetDate      string     `json:"target_date"`
	WindowStart     string     `json:"window_start"`
	WindowEnd       string     `json:"window_end"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	GestationalWeek int        `json:"gestational_week"`
	DurationMinutes int        `json:"duration_minutes"`
	VisitType       string     `json:"visit_type"`
	Scheduled       bool       `json:"scheduled"`
	AppointmentID   *uuid.UUID `json:"appointment_id,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Recommendation  string     `json:"recommendation"`
}

type ExistingAppointmentResponse struct {
	AppointmentID   uuid.UUID  `json:"appointment_id"`
	StaffID         *uuid.UUID `json:"staff_id,omitempty"`
	Department      *string    `json:"department,omitempty"`
	Date            string     `json:"date"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Status          string     `json:"status"`
	Reason          string     `json:"reason,omitempty"`
	GestationalWeek int        `json:"gestational_week"`
}

type ScheduleResponse struct {
	PatientID            uuid.UUID                     `json:"patient_id"`
	HospitalID           uuid.UUID                     `json:"hospital_id"`
	StaffID              *uuid.UUID                    `json:"staff_id,omitempty"`
	EstimatedDueDate     string                        `json:"estimated_due_date"`
	CurrentWeek          int                           `json:"current_gestational_week"`
	HighRisk             bool                          `json:"high_risk"`
	Recommendations      []RecommendationResponse      `json:"recommendations"`
	ExistingAppointments []ExistingAppointmentResponse `json:"existing_appointments"`
	Alerts               []string                      `json:"alerts"`
}

type RescheduleRequest struct {
	HospitalID      *string   `json:"hospital_id,omitempty"`
	NewStartTime    time.Time `json:"new_start_time"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	Reason          string    `json:"reason,omitempty"`
}

type ReminderRequest struct {
	DaysBefore int    `json:"days_before"`
	Message    string `json:"message,omitempty"`
}

type ReminderResponse struct {
	SendAt    time.Time `json:"send_at"`
	Immediate bool      `json:"immediate"`
	Message   string    `json:"message"`
}

type AppointmentResponse struct {
	ID         uuid.UUID  `json:"id"`
	HospitalID uuid.UUID  `json:"hospital_id"`
	PatientID  uuid.UUID  `json:"patient_id"`
	StaffID    *uuid.UUID `json:"staff_id,omitempty"`
	Department *string    `json:"department,omitempty"`
	Date       string     `json:"date"`
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	Status     string     `json:"status"`
	Reason     string     `json:"reason,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

const dateLayout = "2006-01-02"

func toScheduleResponse(res *prenatal.ScheduleResult) ScheduleResponse {
	out := ScheduleResponse{
		PatientID:            res.PatientID,
		HospitalID:           res.HospitalID,
		StaffID:              res.StaffID,
		EstimatedDueDate:     res.EstimatedDueDate.Format(dateLayout),
		CurrentWeek:          res.CurrentWeek,
		HighRisk:             res.HighRisk,
		Recommendations:      make([]RecommendationResponse, 0, len(res.Recommendations)),
		ExistingAppointments: make([]ExistingAppointmentResponse, 0, len(res.ExistingAppointments)),
		Alerts:               res.Alerts,
	}
	if out.Alerts == nil {
		out.Alerts = []string{}
	}

	for _, rec := range res.Recommendations {
		out.Recommendations = append(out.Recommendations, RecommendationResponse{
			TargetDate:      rec.TargetDate.Format(dateLayout),
			WindowStart:     rec.WindowStart.Format(dateLayout),
			WindowEnd:       rec.WindowEnd.Format(dateLayout),
			StartTime:       rec.StartTime,
			EndTime:         rec.EndTime,
			GestationalWeek: rec.GestationalWeek,
			DurationMinutes: rec.DurationMinutes,
			VisitType:       string(rec.VisitType),
			Scheduled:       rec.Scheduled,
			AppointmentID:   rec.AppointmentID,
			Notes:           rec.Notes,
			Recommendation:  rec.Recommendation,
		})
	}

	for _, a := range res.ExistingAppointments {
		out.ExistingAppointments = append(out.ExistingAppointments, ExistingAppointmentResponse{
			AppointmentID:   a.AppointmentID,
			StaffID:         a.StaffID,
			Department:      a.Department,
			Date:            a.Date.Format(dateLayout),
			StartTime:       a.StartTime,
			EndTime:         a.EndTime,
			Status:          a.Status,
			Reason:          a.Reason,
			GestationalWeek: a.GestationalWeek,
		})
	}

	return out
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:         a.ID,
		HospitalID: a.HospitalID,
		PatientID:  a.PatientID,
		StaffID:    a.StaffID,
		Department: a.Department,
		Date:       a.Date.Format(dateLayout),
		StartTime:  a.StartTime,
		EndTime:    a.EndTime,
		Status:     string(a.Status),
		Reason:     a.Reason,
	}
}
