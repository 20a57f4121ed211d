package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/careops/maternity-scheduling/internal/appointment"
	"github.com/careops/maternity-scheduling/internal/prenatal"
	"github.com/careops/maternity-scheduling/internal/registry"
)

// SchedulingService is the slice of the prenatal service the handlers need.
type SchedulingService interface {
	BuildSchedule(ctx context.Context, req prenatal.ScheduleRequest) (*prenatal.ScheduleResult, error)
	BuildScheduleFromRecord(ctx context.Context, patientID, hospitalID uuid.UUID) (*prenatal.ScheduleResult, error)
	Reschedule(ctx context.Context, appointmentID, hospitalID uuid.UUID, newStart time.Time, durationOverride int, reasonOverride string) (*appointment.Appointment, error)
	SendReminder(ctx context.Context, appointmentID uuid.UUID, daysBefore int, customMessage string) (*prenatal.ReminderPlan, error)
}

// AppointmentReader exposes the read side of the appointment repository.
type AppointmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	ListByPatientAndHospital(ctx context.Context, patientID, hospitalID uuid.UUID) ([]appointment.Appointment, error)
}

func buildScheduleHandler(svc SchedulingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		patientID, err := uuid.Parse(req.PatientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
			return
		}

		hospitalID, err := uuid.Parse(req.HospitalID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_hospital_id", "hospital_id must be a valid UUID")
			return
		}

		var staffID *uuid.UUID
		if req.StaffID != nil {
			id, err := uuid.Parse(*req.StaffID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_staff_id", "staff_id must be a valid UUID")
				return
			}
			staffID = &id
		}

		lmp, err := time.Parse(dateLayout, req.LastMenstrualDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_lmp", "last_menstrual_period must be YYYY-MM-DD")
			return
		}

		var dueOverride *time.Time
		if req.DueDateOverride != nil {
			d, err := time.Parse(dateLayout, *req.DueDateOverride)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_due_date_override", "due_date_override must be YYYY-MM-DD")
				return
			}
			dueOverride = &d
		}

		result, err := svc.BuildSchedule(r.Context(), prenatal.ScheduleRequest{
			PatientID:           patientID,
			HospitalID:          hospitalID,
			StaffID:             staffID,
			LastMenstrualPeriod: lmp,
			DueDateOverride:     dueOverride,
			HighRisk:            req.HighRisk,
			SupplementalWeeks:   req.SupplementalWeeks,
		})
		if err != nil {
			handleScheduleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toScheduleResponse(result))
	}
}

func getPatientScheduleHandler(svc SchedulingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		hospitalID, err := uuid.Parse(r.URL.Query().Get("hospital_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_hospital_id", "hospital_id query parameter must be a valid UUID")
			return
		}

		result, err := svc.BuildScheduleFromRecord(r.Context(), patientID, hospitalID)
		if err != nil {
			if errors.Is(err, registry.ErrPregnancyNotFound) {
				writeError(w, http.StatusNotFound, "pregnancy_not_found", err.Error())
				return
			}
			handleScheduleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toScheduleResponse(result))
	}
}

func rescheduleHandler(svc SchedulingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := chi.URLParam(r, "id")
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		var req RescheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if req.NewStartTime.IsZero() {
			writeError(w, http.StatusBadRequest, "invalid_new_start_time", "new_start_time is required")
			return
		}

		hospitalID := uuid.Nil
		if req.HospitalID != nil {
			hID, err := uuid.Parse(*req.HospitalID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_hospital_id", "hospital_id must be a valid UUID")
				return
			}
			hospitalID = hID
		}

		appt, err := svc.Reschedule(r.Context(), id, hospitalID, req.NewStartTime, req.DurationMinutes, req.Reason)
		if err != nil {
			handleRescheduleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func reminderHandler(svc SchedulingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := chi.URLParam(r, "id")
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		var req ReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		if req.DaysBefore < 0 {
			writeError(w, http.StatusBadRequest, "invalid_days_before", "days_before must not be negative")
			return
		}

		plan, err := svc.SendReminder(r.Context(), id, req.DaysBefore, req.Message)
		if err != nil {
			handleReminderError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ReminderResponse{
			SendAt:    plan.SendAt,
			Immediate: plan.Immediate,
			Message:   plan.Message,
		})
	}
}

func getAppointmentHandler(appointments AppointmentReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := chi.URLParam(r, "id")
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		appt, err := appointments.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, appointment.ErrAppointmentNotFound) {
				writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func listPatientAppointmentsHandler(appointments AppointmentReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "id must be a valid UUID")
			return
		}

		hospitalID, err := uuid.Parse(r.URL.Query().Get("hospital_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_hospital_id", "hospital_id query parameter must be a valid UUID")
			return
		}

		appts, err := appointments.ListByPatientAndHospital(r.Context(), patientID, hospitalID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		out := make([]AppointmentResponse, 0, len(appts))
		for i := range appts {
			out = append(out, toAppointmentResponse(&appts[i]))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func handleScheduleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registry.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, registry.ErrHospitalNotFound):
		writeError(w, http.StatusNotFound, "hospital_not_found", err.Error())
	case errors.Is(err, registry.ErrStaffNotFound):
		writeError(w, http.StatusNotFound, "staff_not_found", err.Error())
	case errors.Is(err, prenatal.ErrStaffHospitalMismatch):
		writeError(w, http.StatusUnprocessableEntity, "staff_hospital_mismatch", err.Error())
	case errors.Is(err, prenatal.ErrPatientNotRegistered):
		writeError(w, http.StatusUnprocessableEntity, "patient_not_registered", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func handleRescheduleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, prenatal.ErrAppointmentHospitalMismatch):
		writeError(w, http.StatusUnprocessableEntity, "appointment_hospital_mismatch", err.Error())
	case errors.Is(err, prenatal.ErrAppointmentBeingModified):
		writeError(w, http.StatusConflict, "appointment_being_modified", "appointment is currently being modified, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func handleReminderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, registry.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, prenatal.ErrAppointmentInPast):
		writeError(w, http.StatusUnprocessableEntity, "appointment_in_past", err.Error())
	case errors.Is(err, prenatal.ErrPatientUnreachable):
		writeError(w, http.StatusUnprocessableEntity, "patient_unreachable", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
