package prenatal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careops/maternity-scheduling/internal/appointment"
	"github.com/careops/maternity-scheduling/internal/config"
	"github.com/careops/maternity-scheduling/internal/notification"
	redisclient "github.com/careops/maternity-scheduling/internal/redis"
	"github.com/careops/maternity-scheduling/internal/registry"
)

const (
	EventAppointmentRescheduled = "APPOINTMENT_RESCHEDULED"
	EventReminderSent           = "REMINDER_SENT"
)

var (
	ErrPatientNotRegistered        = errors.New("patient is not registered at this hospital")
	ErrStaffHospitalMismatch       = errors.New("staff member does not belong to this hospital")
	ErrAppointmentHospitalMismatch = errors.New("appointment does not belong to this hospital")
	ErrPatientUnreachable          = errors.New("patient has no portal identity to notify")
	ErrAppointmentBeingModified    = errors.New("appointment is currently being modified, please retry")
)

// Service is the entry point the API layer and the reminder worker call.
// It performs the existence and hospital-membership checks the engine
// expects its caller to have done, then delegates to the pure engine.
type Service struct {
	registry     registry.Repository
	appointments appointment.Repository
	engine       *Engine
	locker       redisclient.Locker
	notifier     notification.Sender
	cfg          config.Config
	log          zerolog.Logger
}

func NewService(
	reg registry.Repository,
	appointments appointment.Repository,
	engine *Engine,
	locker redisclient.Locker,
	notifier notification.Sender,
	cfg config.Config,
	log zerolog.Logger,
) *Service {
	return &Service{
		registry:     reg,
		appointments: appointments,
		engine:       engine,
		locker:       locker,
		notifier:     notifier,
		cfg:          cfg,
		log:          log,
	}
}

// BuildSchedule validates the request's references, loads the patient's
// booked appointments at the hospital, and computes the visit schedule.
func (s *Service) BuildSchedule(ctx context.Context, req ScheduleRequest) (*ScheduleResult, error) {
	if _, err := s.registry.GetPatientByID(ctx, req.PatientID); err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}
	if _, err := s.registry.GetHospitalByID(ctx, req.HospitalID); err != nil {
		return nil, fmt.Errorf("load hospital: %w", err)
	}

	if req.StaffID != nil {
		staff, err := s.registry.GetStaffByID(ctx, *req.StaffID)
		if err != nil {
			return nil, fmt.Errorf("load staff: %w", err)
		}
		if staff.HospitalID != req.HospitalID {
			return nil, ErrStaffHospitalMismatch
		}
	}

	registered, err := s.registry.IsPatientRegistered(ctx, req.PatientID, req.HospitalID)
	if err != nil {
		return nil, fmt.Errorf("check patient registration: %w", err)
	}
	if !registered {
		return nil, ErrPatientNotRegistered
	}

	booked, err := s.appointments.ListByPatientAndHospital(ctx, req.PatientID, req.HospitalID)
	if err != nil {
		return nil, fmt.Errorf("list booked appointments: %w", err)
	}

	var summaries []BookedAppointmentSummary
	for i := range booked {
		if !booked[i].Status.Active() {
			continue
		}
		summaries = append(summaries, toSummary(&booked[i]))
	}

	return s.engine.BuildSchedule(req, summaries), nil
}

// BuildScheduleFromRecord computes the schedule from the patient's stored
// active pregnancy instead of caller-supplied obstetric data.
func (s *Service) BuildScheduleFromRecord(ctx context.Context, patientID, hospitalID uuid.UUID) (*ScheduleResult, error) {
	preg, err := s.registry.GetActivePregnancy(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("load pregnancy: %w", err)
	}

	return s.BuildSchedule(ctx, ScheduleRequest{
		PatientID:           patientID,
		HospitalID:          hospitalID,
		LastMenstrualPeriod: preg.LastMenstrualPeriod,
		DueDateOverride:     preg.EstimatedDueDate,
		HighRisk:            preg.HighRisk,
	})
}

// Reschedule moves an appointment to a new start time, inferring the
// duration when no override is given. The state change happens under a
// per-appointment lock so concurrent reschedules cannot interleave.
func (s *Service) Reschedule(ctx context.Context, appointmentID, hospitalID uuid.UUID, newStart time.Time, durationOverride int, reasonOverride string) (*appointment.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	if hospitalID != uuid.Nil && appt.HospitalID != hospitalID {
		return nil, ErrAppointmentHospitalMismatch
	}

	advice := AdviseReschedule(newStart, durationOverride, appt.Reason, reasonOverride)

	var updated *appointment.Appointment
	err = s.locker.WithAppointmentLock(ctx, appt.ID, func(lockCtx context.Context) error {
		u, err := s.appointments.UpdateSchedule(lockCtx, appt.ID, advice.Date, advice.StartTime, advice.EndTime, advice.Reason)
		if err != nil {
			return fmt.Errorf("apply reschedule: %w", err)
		}
		updated = u

		s.logEvent(lockCtx, appt.ID, EventAppointmentRescheduled, map[string]any{
			"old_date":         appt.Date,
			"new_start":        advice.StartTime,
			"new_end":          advice.EndTime,
			"duration_minutes": advice.DurationMinutes,
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrAppointmentBeingModified
		}
		return nil, err
	}

	return updated, nil
}

// SendReminder computes and dispatches a reminder for one appointment.
func (s *Service) SendReminder(ctx context.Context, appointmentID uuid.UUID, daysBefore int, customMessage string) (*ReminderPlan, error) {
	appt, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	patient, err := s.registry.GetPatientByID(ctx, appt.PatientID)
	if err != nil {
		return nil, fmt.Errorf("load patient: %w", err)
	}
	if patient.UserID == nil {
		return nil, ErrPatientUnreachable
	}

	now := s.engine.clock.Now()
	plan, err := PlanReminder(now, appt.Date, appt.StartTime, daysBefore, customMessage)
	if err != nil {
		return nil, err
	}

	if plan.Immediate {
		s.log.Warn().
			Str("appointment_id", appt.ID.String()).
			Msg("reminder date already passed, sending immediately")
	}

	if err := s.notifier.Send(ctx, *patient.UserID, plan.Message); err != nil {
		return nil, fmt.Errorf("dispatch reminder: %w", err)
	}

	if err := s.appointments.MarkReminderSent(ctx, appt.ID, now); err != nil {
		s.log.Error().Err(err).Str("appointment_id", appt.ID.String()).Msg("mark reminder sent")
	}

	s.logEvent(ctx, appt.ID, EventReminderSent, map[string]any{
		"send_at":     plan.SendAt,
		"immediate":   plan.Immediate,
		"days_before": daysBefore,
	})

	return &plan, nil
}

// DispatchDueReminders is called by the worker periodically. It sends a
// reminder for every active appointment inside the lead window that has not
// been reminded yet, and returns how many went out.
func (s *Service) DispatchDueReminders(ctx context.Context) (int, error) {
	today := dateOnly(s.engine.clock.Now())
	until := today.AddDate(0, 0, s.cfg.ReminderLead)

	due, err := s.appointments.FindDueForReminder(ctx, today, until)
	if err != nil {
		return 0, fmt.Errorf("find appointments due for reminder: %w", err)
	}

	sent := 0
	for _, appt := range due {
		if _, err := s.SendReminder(ctx, appt.ID, s.cfg.ReminderLead, ""); err != nil {
			s.log.Warn().Err(err).Str("appointment_id", appt.ID.String()).Msg("skip reminder")
			continue
		}
		sent++
	}

	return sent, nil
}

func toSummary(a *appointment.Appointment) BookedAppointmentSummary {
	return BookedAppointmentSummary{
		AppointmentID: a.ID,
		StaffID:       a.StaffID,
		Department:    a.Department,
		Date:          a.Date,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Status:        string(a.Status),
		Reason:        a.Reason,
	}
}

func (s *Service) logEvent(ctx context.Context, appointmentID uuid.UUID, eventType string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error().Err(err).Str("event_type", eventType).Msg("marshal event payload")
		data = nil
	}

	apptID := appointmentID

	ev := appointment.EventLog{
		EventType:     eventType,
		AppointmentID: &apptID,
		Payload:       data,
		CreatedAt:     time.Now(),
	}

	if err := s.appointments.InsertEvent(ctx, ev); err != nil {
		s.log.Error().Err(err).
			Str("event_type", eventType).
			Str("appointment_id", appointmentID.String()).
			Msg("insert event log")
	}
}
