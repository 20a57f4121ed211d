package prenatal

import (
	"fmt"
	"sort"
	"time"
)

const (
	alertDueDatePast = "Estimated due date is in the past – verify patient details."
	alertHighRisk    = "High-risk pregnancy flagged – planner switched to accelerated monitoring."
)

// EvaluateAlerts inspects the due date, risk flag and the reconciled
// appointment set and returns ordered human-readable warnings.
func EvaluateAlerts(today, dueDate time.Time, highRisk bool, existing []BookedAppointmentSummary) []string {
	var alerts []string

	if dueDate.Before(today) {
		alerts = append(alerts, alertDueDatePast)
	}

	if highRisk {
		alerts = append(alerts, alertHighRisk)
	}

	if weeks := duplicateWeeks(existing); len(weeks) > 0 {
		alerts = append(alerts, fmt.Sprintf("Multiple appointments scheduled for weeks: %v", weeks))
	}

	return alerts
}

func duplicateWeeks(existing []BookedAppointmentSummary) []int {
	counts := make(map[int]int)
	for _, a := range existing {
		counts[a.GestationalWeek]++
	}

	var weeks []int
	for week, n := range counts {
		if n >= 2 {
			weeks = append(weeks, week)
		}
	}
	sort.Ints(weeks)
	return weeks
}
