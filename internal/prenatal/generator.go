package prenatal

import (
	"fmt"
	"sort"
	"time"
)

// Engine computes prenatal visit schedules. It is pure: all inputs are
// in-memory values fetched by the caller, and the only time source is the
// injected clock.
type Engine struct {
	clock Clock
}

func NewEngine(clock Clock) *Engine {
	return &Engine{clock: clock}
}

// BuildSchedule generates the policy-driven visit cadence for a pregnancy,
// reconciles it against the booked appointments, and evaluates alerts.
func (e *Engine) BuildSchedule(req ScheduleRequest, booked []BookedAppointmentSummary) *ScheduleResult {
	today := dateOnly(e.clock.Now())
	lmp := dateOnly(req.LastMenstrualPeriod)
	currentWeek := GestationalWeek(lmp, today)
	dueDate := EstimatedDueDate(lmp, req.DueDateOverride)

	existing := make([]BookedAppointmentSummary, len(booked))
	copy(existing, booked)
	for i := range existing {
		existing[i].GestationalWeek = GestationalWeek(lmp, existing[i].Date)
	}
	sort.SliceStable(existing, func(i, j int) bool {
		return existing[i].Date.Before(existing[j].Date)
	})

	pool := newReconcilePool(existing)
	recs := generate(lmp, today, currentWeek, req.HighRisk, req.SupplementalWeeks, pool)

	unplanned := pool.promoteUnclaimed()
	if len(unplanned) > 0 {
		recs = append(recs, unplanned...)
		sortByWeek(recs)
	}

	return &ScheduleResult{
		PatientID:            req.PatientID,
		HospitalID:           req.HospitalID,
		StaffID:              req.StaffID,
		EstimatedDueDate:     dueDate,
		CurrentWeek:          currentWeek,
		HighRisk:             req.HighRisk,
		Recommendations:      recs,
		ExistingAppointments: existing,
		Alerts:               EvaluateAlerts(today, dueDate, req.HighRisk, existing),
	}
}

func generate(lmp, today time.Time, currentWeek int, highRisk bool, supplementalWeeks []int, pool *reconcilePool) []*VisitRecommendation {
	var recs []*VisitRecommendation
	planned := make(map[int]bool)

	// The main loop never recommends before week 8 nor past week 40.
	week := currentWeek
	if week < minPlannedWeek {
		week = minPlannedWeek
	}
	if week > maxPlannedWeek {
		week = maxPlannedWeek
	}

	first := true
	for week <= maxPlannedWeek {
		visitType := VisitTypeFor(week, first)
		rec := buildRecommendation(lmp, today, week, visitType)
		pool.claim(rec)
		recs = append(recs, rec)
		planned[week] = true

		week += FrequencyWeeks(week, highRisk)
		first = false
	}

	for _, w := range dedupeWeeks(supplementalWeeks) {
		if w < 1 || w > maxSupplementWeek || planned[w] {
			continue
		}
		recs = append(recs, buildRecommendation(lmp, today, w, VisitRoutineCheck))
		planned[w] = true
	}

	sortByWeek(recs)
	return recs
}

func buildRecommendation(lmp, today time.Time, week int, visitType VisitType) *VisitRecommendation {
	duration := DurationMinutes(visitType)
	target := nextOrSameMonday(lmp.AddDate(0, 0, week*7))

	// Clinic day starts at 09:00; reconciliation overwrites these when a
	// real booking matches.
	start := target.Add(9 * time.Hour)

	return &VisitRecommendation{
		TargetDate:      target,
		WindowStart:     maxDate(today, target.AddDate(0, 0, -3)),
		WindowEnd:       target.AddDate(0, 0, 3),
		StartTime:       start,
		EndTime:         start.Add(time.Duration(duration) * time.Minute),
		GestationalWeek: week,
		DurationMinutes: duration,
		VisitType:       visitType,
		Notes:           visitNotes(visitType),
		Recommendation:  fmt.Sprintf("Week %d: %s recommended", week, visitLabel(visitType)),
	}
}

func dedupeWeeks(weeks []int) []int {
	seen := make(map[int]bool, len(weeks))
	var out []int
	for _, w := range weeks {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func sortByWeek(recs []*VisitRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].GestationalWeek < recs[j].GestationalWeek
	})
}
