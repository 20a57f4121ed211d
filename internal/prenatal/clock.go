package prenatal

import "time"

// Clock abstracts "now" so that schedule generation is reproducible in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

const gestationDays = 280 // 40 weeks

// GestationalWeek returns whole weeks elapsed between the LMP and the
// reference date, floored and never negative.
func GestationalWeek(lmp, ref time.Time) int {
	days := daysBetween(lmp, ref)
	if days < 0 {
		return 0
	}
	return days / 7
}

// EstimatedDueDate returns the override when present, else LMP + 280 days.
// Plausibility is not checked here; implausible dates surface as alerts.
func EstimatedDueDate(lmp time.Time, override *time.Time) time.Time {
	if override != nil {
		return dateOnly(*override)
	}
	return dateOnly(lmp).AddDate(0, 0, gestationDays)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

// nextOrSameMonday normalizes a raw target date to the Monday on or after
// it, producing a stable weekly clinic cadence.
func nextOrSameMonday(t time.Time) time.Time {
	d := dateOnly(t)
	offset := (int(time.Monday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
