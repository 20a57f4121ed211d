package prenatal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveDuration(t *testing.T) {
	tests := []struct {
		name     string
		override int
		reason   string
		want     int
	}{
		{"override wins", 50, "ultrasound follow-up", 50},
		{"zero override falls through", 0, "", 15},
		{"negative override ignored", -10, "", 15},
		{"ultrasound inferred from reason", 0, "Growth ultrasound", 30},
		{"intake inferred from reason", 0, "Initial INTAKE visit", 45},
		{"ultrasound outranks intake in mixed text", 0, "intake ultrasound", 30},
		{"anything else is routine", 0, "blood pressure check", 15},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveDuration(tc.override, tc.reason))
		})
	}
}

func TestAdviseReschedule(t *testing.T) {
	newStart := time.Date(2025, 6, 9, 10, 30, 0, 0, time.UTC)

	advice := AdviseReschedule(newStart, 0, "ultrasound", "")

	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), advice.Date)
	assert.Equal(t, newStart, advice.StartTime)
	assert.Equal(t, newStart.Add(30*time.Minute), advice.EndTime)
	assert.Equal(t, 30, advice.DurationMinutes)
	assert.Equal(t, "ultrasound", advice.Reason)
}

func TestAdviseRescheduleReasonOverride(t *testing.T) {
	newStart := time.Date(2025, 6, 9, 10, 30, 0, 0, time.UTC)

	advice := AdviseReschedule(newStart, 0, "ultrasound", "routine follow-up")

	assert.Equal(t, "routine follow-up", advice.Reason)
	assert.Equal(t, 15, advice.DurationMinutes, "duration is inferred from the effective reason")
}

func TestAdviseRescheduleOverrideDuration(t *testing.T) {
	newStart := time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)

	advice := AdviseReschedule(newStart, 60, "checkup", "")

	assert.Equal(t, 60, advice.DurationMinutes)
	assert.Equal(t, newStart.Add(time.Hour), advice.EndTime)
}
