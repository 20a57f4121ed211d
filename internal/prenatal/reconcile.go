package prenatal

import (
	"fmt"
	"time"
)

const unplannedRecommendation = "Existing prenatal appointment without matching guideline"

// reconcilePool tracks which booked appointments have been matched to a
// recommendation. Claims are recorded in a parallel index set rather than by
// removing elements, so the pool is never mutated while being scanned.
type reconcilePool struct {
	appointments []BookedAppointmentSummary
	claimed      []bool
}

func newReconcilePool(appointments []BookedAppointmentSummary) *reconcilePool {
	return &reconcilePool{
		appointments: appointments,
		claimed:      make([]bool, len(appointments)),
	}
}

// toleranceWeeks is how far a booking's gestational week may sit from the
// recommendation's. Late-pregnancy visits are weekly, so they match exactly.
func toleranceWeeks(t VisitType) int {
	if t == VisitLatePregnancy {
		return 0
	}
	return 1
}

// claim finds the first unclaimed booking within tolerance of the
// recommendation's week, in pool order, and folds it into the
// recommendation. It reports whether a match was found.
func (p *reconcilePool) claim(rec *VisitRecommendation) bool {
	tolerance := toleranceWeeks(rec.VisitType)

	for i := range p.appointments {
		if p.claimed[i] {
			continue
		}
		a := &p.appointments[i]
		if absInt(a.GestationalWeek-rec.GestationalWeek) > tolerance {
			continue
		}

		p.claimed[i] = true
		applyMatch(rec, a)
		return true
	}

	return false
}

func applyMatch(rec *VisitRecommendation, a *BookedAppointmentSummary) {
	rec.Scheduled = true
	id := a.AppointmentID
	rec.AppointmentID = &id

	if a.StartTime != nil {
		rec.StartTime = *a.StartTime
	}
	if a.EndTime != nil {
		rec.EndTime = *a.EndTime
	}
	if a.StartTime != nil && a.EndTime != nil {
		rec.DurationMinutes = int(a.EndTime.Sub(*a.StartTime).Minutes())
	}

	rec.Notes = mergeNotes(rec.Notes, a.Reason)
}

// promoteUnclaimed turns every booking left in the pool into its own
// ad-hoc recommendation so the result accounts for all real appointments.
func (p *reconcilePool) promoteUnclaimed() []*VisitRecommendation {
	var out []*VisitRecommendation

	for i := range p.appointments {
		if p.claimed[i] {
			continue
		}
		a := &p.appointments[i]

		duration := 15
		if a.StartTime != nil && a.EndTime != nil {
			duration = int(a.EndTime.Sub(*a.StartTime).Minutes())
		}

		date := dateOnly(a.Date)
		id := a.AppointmentID
		rec := &VisitRecommendation{
			TargetDate:      date,
			WindowStart:     date,
			WindowEnd:       date,
			StartTime:       date,
			EndTime:         date.Add(time.Duration(duration) * time.Minute),
			GestationalWeek: a.GestationalWeek,
			DurationMinutes: duration,
			VisitType:       VisitRoutineCheck,
			Scheduled:       true,
			AppointmentID:   &id,
			Notes:           a.Reason,
			Recommendation:  unplannedRecommendation,
		}
		if a.StartTime != nil {
			rec.StartTime = *a.StartTime
		}
		if a.EndTime != nil {
			rec.EndTime = *a.EndTime
		}

		out = append(out, rec)
	}

	return out
}

func mergeNotes(generated, existing string) string {
	switch {
	case generated != "" && existing != "":
		return fmt.Sprintf("%s | Notes: %s", generated, existing)
	case existing != "":
		return existing
	default:
		return generated
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
