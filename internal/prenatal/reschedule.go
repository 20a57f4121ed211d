package prenatal

import (
	"strings"
	"time"
)

// RescheduleAdvice holds the computed fields for a reschedule request. The
// advisor does not touch appointment state; the caller applies the advice
// through the appointment repository.
type RescheduleAdvice struct {
	Date            time.Time
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Reason          string
}

// ResolveDuration picks the visit length for a reschedule: an explicit
// positive override wins, otherwise the reason text is inspected for the
// visit kind it describes.
func ResolveDuration(overrideMinutes int, reason string) int {
	if overrideMinutes > 0 {
		return overrideMinutes
	}

	lower := strings.ToLower(reason)
	switch {
	case strings.Contains(lower, "ultrasound"):
		return DurationMinutes(VisitUltrasound)
	case strings.Contains(lower, "intake"):
		return DurationMinutes(VisitInitialIntake)
	default:
		return DurationMinutes(VisitRoutineCheck)
	}
}

// AdviseReschedule computes the new start/end and duration for moving an
// appointment to newStart. The original reason is preserved unless an
// override is supplied.
func AdviseReschedule(newStart time.Time, durationOverride int, originalReason, reasonOverride string) RescheduleAdvice {
	reason := originalReason
	if reasonOverride != "" {
		reason = reasonOverride
	}

	duration := ResolveDuration(durationOverride, reason)

	return RescheduleAdvice{
		Date:            dateOnly(newStart),
		StartTime:       newStart,
		EndTime:         newStart.Add(time.Duration(duration) * time.Minute),
		DurationMinutes: duration,
		Reason:          reason,
	}
}
