package prenatal

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/maternity-scheduling/internal/appointment"
	"github.com/careops/maternity-scheduling/internal/config"
	redisclient "github.com/careops/maternity-scheduling/internal/redis"
	"github.com/careops/maternity-scheduling/internal/registry"
)

type fakeRegistry struct {
	patients      map[uuid.UUID]*registry.Patient
	hospitals     map[uuid.UUID]*registry.Hospital
	staff         map[uuid.UUID]*registry.Staff
	pregnancies   map[uuid.UUID]*registry.Pregnancy
	registrations map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		patients:      make(map[uuid.UUID]*registry.Patient),
		hospitals:     make(map[uuid.UUID]*registry.Hospital),
		staff:         make(map[uuid.UUID]*registry.Staff),
		pregnancies:   make(map[uuid.UUID]*registry.Pregnancy),
		registrations: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (r *fakeRegistry) GetPatientByID(_ context.Context, id uuid.UUID) (*registry.Patient, error) {
	if p, ok := r.patients[id]; ok {
		return p, nil
	}
	return nil, registry.ErrPatientNotFound
}

func (r *fakeRegistry) GetHospitalByID(_ context.Context, id uuid.UUID) (*registry.Hospital, error) {
	if h, ok := r.hospitals[id]; ok {
		return h, nil
	}
	return nil, registry.ErrHospitalNotFound
}

func (r *fakeRegistry) GetStaffByID(_ context.Context, id uuid.UUID) (*registry.Staff, error) {
	if s, ok := r.staff[id]; ok {
		return s, nil
	}
	return nil, registry.ErrStaffNotFound
}

func (r *fakeRegistry) IsPatientRegistered(_ context.Context, patientID, hospitalID uuid.UUID) (bool, error) {
	return r.registrations[patientID][hospitalID], nil
}

func (r *fakeRegistry) GetActivePregnancy(_ context.Context, patientID uuid.UUID) (*registry.Pregnancy, error) {
	if p, ok := r.pregnancies[patientID]; ok {
		return p, nil
	}
	return nil, registry.ErrPregnancyNotFound
}

func (r *fakeRegistry) register(patientID, hospitalID uuid.UUID) {
	if r.registrations[patientID] == nil {
		r.registrations[patientID] = make(map[uuid.UUID]bool)
	}
	r.registrations[patientID][hospitalID] = true
}

type fakeAppointments struct {
	byID     map[uuid.UUID]*appointment.Appointment
	listed   []appointment.Appointment
	due      []appointment.Appointment
	events   []appointment.EventLog
	reminded []uuid.UUID
}

func newFakeAppointments() *fakeAppointments {
	return &fakeAppointments{byID: make(map[uuid.UUID]*appointment.Appointment)}
}

func (f *fakeAppointments) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	if a, ok := f.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, appointment.ErrAppointmentNotFound
}

func (f *fakeAppointments) ListByPatientAndHospital(_ context.Context, _, _ uuid.UUID) ([]appointment.Appointment, error) {
	return f.listed, nil
}

func (f *fakeAppointments) UpdateSchedule(_ context.Context, id uuid.UUID, date time.Time, start, end time.Time, reason string) (*appointment.Appointment, error) {
	a, ok := f.byID[id]
	if !ok || !a.Status.Active() {
		return nil, appointment.ErrAppointmentNotFound
	}
	a.Date = date
	a.StartTime = &start
	a.EndTime = &end
	a.Reason = reason
	a.Status = appointment.StatusRescheduled
	a.ReminderSentAt = nil
	cp := *a
	return &cp, nil
}

func (f *fakeAppointments) FindDueForReminder(_ context.Context, _, _ time.Time) ([]appointment.Appointment, error) {
	return f.due, nil
}

func (f *fakeAppointments) MarkReminderSent(_ context.Context, id uuid.UUID, _ time.Time) error {
	f.reminded = append(f.reminded, id)
	return nil
}

func (f *fakeAppointments) InsertEvent(_ context.Context, ev appointment.EventLog) error {
	f.events = append(f.events, ev)
	return nil
}

type fakeLocker struct {
	busy   bool
	locked []uuid.UUID
}

func (l *fakeLocker) WithAppointmentLock(ctx context.Context, appointmentID uuid.UUID, fn func(ctx context.Context) error) error {
	if l.busy {
		return redisclient.ErrLockNotAcquired
	}
	l.locked = append(l.locked, appointmentID)
	return fn(ctx)
}

type fakeSender struct {
	recipients []uuid.UUID
	messages   []string
}

func (s *fakeSender) Send(_ context.Context, recipient uuid.UUID, message string) error {
	s.recipients = append(s.recipients, recipient)
	s.messages = append(s.messages, message)
	return nil
}

type serviceFixture struct {
	svc      *Service
	registry *fakeRegistry
	appts    *fakeAppointments
	locker   *fakeLocker
	sender   *fakeSender
}

func newServiceFixture() *serviceFixture {
	reg := newFakeRegistry()
	appts := newFakeAppointments()
	locker := &fakeLocker{}
	sender := &fakeSender{}

	svc := NewService(reg, appts, testEngine(), locker, sender,
		config.Config{ReminderLead: 2}, zerolog.Nop())

	return &serviceFixture{svc: svc, registry: reg, appts: appts, locker: locker, sender: sender}
}

func (f *serviceFixture) addPatient(withPortal bool) *registry.Patient {
	p := &registry.Patient{ID: uuid.New(), Name: "Asha Verma"}
	if withPortal {
		userID := uuid.New()
		p.UserID = &userID
	}
	f.registry.patients[p.ID] = p
	return p
}

func (f *serviceFixture) addHospital() *registry.Hospital {
	h := &registry.Hospital{ID: uuid.New(), Name: "City Maternity"}
	f.registry.hospitals[h.ID] = h
	return h
}

func TestServiceBuildScheduleFiltersInactiveAppointments(t *testing.T) {
	f := newServiceFixture()
	patient := f.addPatient(true)
	hospital := f.addHospital()
	f.registry.register(patient.ID, hospital.ID)

	lmp := testToday.AddDate(0, 0, -10*7)
	// A cancelled appointment at an off-cadence week must not show up as an
	// ad-hoc recommendation.
	f.appts.listed = []appointment.Appointment{
		{ID: uuid.New(), Date: lmp.AddDate(0, 0, 12*7), Status: appointment.StatusCancelled},
	}

	res, err := f.svc.BuildSchedule(context.Background(), ScheduleRequest{
		PatientID:           patient.ID,
		HospitalID:          hospital.ID,
		LastMenstrualPeriod: lmp,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{10, 14, 18, 22, 26, 30, 34, 36, 37, 38, 39, 40}, recommendedWeeks(res.Recommendations))
	for _, rec := range res.Recommendations {
		assert.False(t, rec.Scheduled)
	}
}

func TestServiceBuildScheduleReconcilesActiveAppointment(t *testing.T) {
	f := newServiceFixture()
	patient := f.addPatient(true)
	hospital := f.addHospital()
	f.registry.register(patient.ID, hospital.ID)

	lmp := testToday.AddDate(0, 0, -10*7)
	start := lmp.AddDate(0, 0, 14*7).Add(9 * time.Hour)
	end := start.Add(30 * time.Minute)
	apptID := uuid.New()
	f.appts.listed = []appointment.Appointment{
		{ID: apptID, Date: lmp.AddDate(0, 0, 14*7), StartTime: &start, EndTime: &end, Status: appointment.StatusScheduled},
	}

	res, err := f.svc.BuildSchedule(context.Background(), ScheduleRequest{
		PatientID:           patient.ID,
		HospitalID:          hospital.ID,
		LastMenstrualPeriod: lmp,
	})
	require.NoError(t, err)

	rec := findByWeek(res.Recommendations, 14)
	require.NotNil(t, rec)
	assert.True(t, rec.Scheduled)
	require.NotNil(t, rec.AppointmentID)
	assert.Equal(t, apptID, *rec.AppointmentID)
}

func TestServiceBuildScheduleFromRecord(t *testing.T) {
	f := newServiceFixture()
	patient := f.addPatient(true)
	hospital := f.addHospital()
	f.registry.register(patient.ID, hospital.ID)

	f.registry.pregnancies[patient.ID] = &registry.Pregnancy{
		ID:                  uuid.New(),
		PatientID:           patient.ID,
		LastMenstrualPeriod: testToday.AddDate(0, 0, -10*7),
		HighRisk:            true,
		Status:              "active",
	}

	res, err := f.svc.BuildScheduleFromRecord(context.Background(), patient.ID, hospital.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, res.CurrentWeek)
	assert.True(t, res.HighRisk)
	assert.Contains(t, res.Alerts, "High-risk pregnancy flagged – planner switched to accelerated monitoring.")
}

func TestServiceBuildScheduleFromRecordNoPregnancy(t *testing.T) {
	f := newServiceFixture()
	patient := f.addPatient(true)
	hospital := f.addHospital()
	f.registry.register(patient.ID, hospital.ID)

	_, err := f.svc.BuildScheduleFromRecord(context.Background(), patient.ID, hospital.ID)

	assert.ErrorIs(t, err, registry.ErrPregnancyNotFound)
}

func TestServiceBuildScheduleUnknownPatient(t *testing.T) {
	f := newServiceFixture()
	hospital := f.addHospital()

	_, err := f.svc.BuildSchedule(context.Background(), ScheduleRequest{
		PatientID:           uuid.New(),
		HospitalID:          hospital.ID,
		LastMenstrualPeriod: testToday.AddDate(0, 0, -70),
	})

	assert.ErrorIs(t, err, registry.ErrPatientNotFound)
}

func TestServiceBuildScheduleStaffFromOtherHospital(t *testing.T) {
	f := newServiceFixture()
	patient := f.addPatient(true)
	hospital := f.addHospital()
	other := f.addHospital()
	f.registry.register(patient.ID, hospital.ID)

	staff := &registry.Staff{ID: uuid.New(), HospitalID: other.ID, Name: "Dr. Rao"}
	f.registry.staff[staff.ID] = staff

	_, err := f.svc.BuildSchedule(context.Background(), ScheduleRequest{
		PatientID:           patient.ID,
		HospitalID:          hospital.ID,
		StaffID:             &staff.ID,
		LastMenstrualPeriod: testToday.AddDate(0, 0, -70),
	})

	assert.ErrorIs(t, err, ErrStaffHospitalMismatch)
}

func TestServiceBuildScheduleUnregisteredPatient(t *testing.T) {
	f := newServiceFixture()
	patient := f.addPatient(true)
	hospital := f.addHospital()

	_, err := f.svc.BuildSchedule(context.Background(), ScheduleRequest{
		PatientID:           patient.ID,
		HospitalID:          hospital.ID,
		LastMenstrualPeriod: testToday.AddDate(0, 0, -70),
	})

	assert.ErrorIs(t, err, ErrPatientNotRegistered)
}

func TestServiceReschedule(t *testing.T) {
	f := newServiceFixture()
	hospital := f.addHospital()

	apptID := uuid.New()
	f.appts.byID[apptID] = &appointment.Appointment{
		ID:         apptID,
		HospitalID: hospital.ID,
		Date:       testToday.AddDate(0, 0, 7),
		Status:     appointment.StatusScheduled,
		Reason:     "ultrasound",
	}

	newStart := testToday.AddDate(0, 0, 9).Add(11 * time.Hour)
	updated, err := f.svc.Reschedule(context.Background(), apptID, hospital.ID, newStart, 0, "")
	require.NoError(t, err)

	assert.Equal(t, appointment.StatusRescheduled, updated.Status)
	assert.Equal(t, newStart, *updated.StartTime)
	assert.Equal(t, newStart.Add(30*time.Minute), *updated.EndTime)
	assert.Equal(t, "ultrasound", updated.Reason)

	assert.Equal(t, []uuid.UUID{apptID}, f.locker.locked)
	require.Len(t, f.appts.events, 1)
	assert.Equal(t, EventAppointmentRescheduled, f.appts.events[0].EventType)
}

func TestServiceRescheduleHospitalMismatch(t *testing.T) {
	f := newServiceFixture()
	hospital := f.addHospital()
	other := f.addHospital()

	apptID := uuid.New()
	f.appts.byID[apptID] = &appointment.Appointment{
		ID:         apptID,
		HospitalID: hospital.ID,
		Date:       testToday.AddDate(0, 0, 7),
		Status:     appointment.StatusScheduled,
	}

	_, err := f.svc.Reschedule(context.Background(), apptID, other.ID, testToday.AddDate(0, 0, 9), 0, "")
	assert.ErrorIs(t, err, ErrAppointmentHospitalMismatch)
}

func TestServiceRescheduleLockConflict(t *testing.T) {
	f := newServiceFixture()
	hospital := f.addHospital()
	f.locker.busy = true

	apptID := uuid.New()
	f.appts.byID[apptID] = &appointment.Appointment{
		ID:         apptID,
		HospitalID: hospital.ID,
		Date:       testToday.AddDate(0, 0, 7),
		Status:     appointment.StatusScheduled,
	}

	_, err := f.svc.Reschedule(context.Background(), apptID, uuid.Nil, testToday.AddDate(0, 0, 9), 0, "")

	assert.ErrorIs(t, err, ErrAppointmentBeingModified)
	assert.Empty(t, f.appts.events)
}

func TestServiceSendReminder(t *testing.T) {
	f := newServiceFixture()
	patient := f.addPatient(true)

	apptID := uuid.New()
	start := testToday.AddDate(0, 0, 5).Add(10 * time.Hour)
	f.appts.byID[apptID] = &appointment.Appointment{
		ID:        apptID,
		PatientID: patient.ID,
		Date:      testToday.AddDate(0, 0, 5),
		StartTime: &start,
		Status:    appointment.StatusScheduled,
	}

	plan, err := f.svc.SendReminder(context.Background(), apptID, 2, "")
	require.NoError(t, err)

	assert.False(t, plan.Immediate)
	require.Len(t, f.sender.messages, 1)
	assert.Equal(t, plan.Message, f.sender.messages[0])
	assert.Equal(t, []uuid.UUID{*patient.UserID}, f.sender.recipients)
	assert.Equal(t, []uuid.UUID{apptID}, f.appts.reminded)
	require.Len(t, f.appts.events, 1)
	assert.Equal(t, EventReminderSent, f.appts.events[0].EventType)
}

func TestServiceSendReminderPatientWithoutPortal(t *testing.T) {
	f := newServiceFixture()
	patient := f.addPatient(false)

	apptID := uuid.New()
	f.appts.byID[apptID] = &appointment.Appointment{
		ID:        apptID,
		PatientID: patient.ID,
		Date:      testToday.AddDate(0, 0, 5),
		Status:    appointment.StatusScheduled,
	}

	_, err := f.svc.SendReminder(context.Background(), apptID, 2, "")

	assert.ErrorIs(t, err, ErrPatientUnreachable)
	assert.Empty(t, f.sender.messages)
	assert.Empty(t, f.appts.reminded)
}

func TestServiceDispatchDueReminders(t *testing.T) {
	f := newServiceFixture()
	reachable := f.addPatient(true)
	unreachable := f.addPatient(false)

	a1 := appointment.Appointment{
		ID:        uuid.New(),
		PatientID: reachable.ID,
		Date:      testToday.AddDate(0, 0, 2),
		Status:    appointment.StatusScheduled,
	}
	a2 := appointment.Appointment{
		ID:        uuid.New(),
		PatientID: unreachable.ID,
		Date:      testToday.AddDate(0, 0, 1),
		Status:    appointment.StatusScheduled,
	}
	f.appts.byID[a1.ID] = &a1
	f.appts.byID[a2.ID] = &a2
	f.appts.due = []appointment.Appointment{a1, a2}

	sent, err := f.svc.DispatchDueReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sent, "unreachable patients are skipped, not fatal")
	assert.Equal(t, []uuid.UUID{a1.ID}, f.appts.reminded)
}
