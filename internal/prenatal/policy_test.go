package prenatal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitTypeFor(t *testing.T) {
	tests := []struct {
		name  string
		week  int
		first bool
		want  VisitType
	}{
		{"first visit is an intake regardless of week", 22, true, VisitInitialIntake},
		{"first visit at week eight", 8, true, VisitInitialIntake},
		{"ultrasound at week twelve", 12, false, VisitUltrasound},
		{"ultrasound at week twenty", 20, false, VisitUltrasound},
		{"ultrasound at week thirty-two", 32, false, VisitUltrasound},
		{"no ultrasound at week sixteen", 16, false, VisitRoutineCheck},
		{"late pregnancy from week thirty-seven", 37, false, VisitLatePregnancy},
		{"late pregnancy at week forty", 40, false, VisitLatePregnancy},
		{"late pregnancy beats the intake rule at term", 40, true, VisitLatePregnancy},
		{"routine otherwise", 24, false, VisitRoutineCheck},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VisitTypeFor(tc.week, tc.first))
		})
	}
}

func TestFrequencyWeeks(t *testing.T) {
	tests := []struct {
		name     string
		week     int
		highRisk bool
		want     int
	}{
		{"monthly below thirty-two", 10, false, 4},
		{"monthly at thirty-one", 31, false, 4},
		{"fortnightly from thirty-two", 32, false, 2},
		{"fortnightly at thirty-five", 35, false, 2},
		{"weekly from thirty-six", 36, false, 1},
		{"weekly at forty", 40, false, 1},
		{"high risk still monthly before twenty-eight", 24, true, 4},
		{"high risk weekly from twenty-eight", 28, true, 1},
		{"high risk weekly at thirty", 30, true, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FrequencyWeeks(tc.week, tc.highRisk))
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 45, DurationMinutes(VisitInitialIntake))
	assert.Equal(t, 30, DurationMinutes(VisitUltrasound))
	assert.Equal(t, 15, DurationMinutes(VisitRoutineCheck))
	assert.Equal(t, 15, DurationMinutes(VisitLatePregnancy))
}
