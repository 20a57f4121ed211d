package prenatal

// VisitType is the closed set of prenatal visit kinds. Policy functions
// switch exhaustively over it so a new type forces a review of every table.
type VisitType string

const (
	VisitInitialIntake VisitType = "INITIAL_INTAKE"
	VisitRoutineCheck  VisitType = "ROUTINE_CHECK"
	VisitUltrasound    VisitType = "ULTRASOUND"
	VisitLatePregnancy VisitType = "LATE_PREGNANCY"
)

const (
	latePregnancyWeek = 37
	minPlannedWeek    = 8
	maxPlannedWeek    = 40
	maxSupplementWeek = 44
)

var ultrasoundWeeks = map[int]bool{12: true, 20: true, 32: true}

// VisitTypeFor picks the visit type for a gestational week. Late-pregnancy
// reviews win over everything, including the intake rule: a patient whose
// care starts at week 37+ goes straight into birth-planning visits. Below
// that, the first recommendation is always an intake regardless of week,
// since a patient can enter care mid-pregnancy.
func VisitTypeFor(week int, firstRecommendation bool) VisitType {
	switch {
	case week >= latePregnancyWeek:
		return VisitLatePregnancy
	case firstRecommendation:
		return VisitInitialIntake
	case ultrasoundWeeks[week]:
		return VisitUltrasound
	default:
		return VisitRoutineCheck
	}
}

// FrequencyWeeks is the step size to the next recommended visit. High-risk
// pregnancies switch to weekly monitoring from week 28.
func FrequencyWeeks(week int, highRisk bool) int {
	switch {
	case highRisk && week >= 28:
		return 1
	case week < 32:
		return 4
	case week < 36:
		return 2
	default:
		return 1
	}
}

// DurationMinutes is the default visit length per type.
func DurationMinutes(t VisitType) int {
	switch t {
	case VisitInitialIntake:
		return 45
	case VisitUltrasound:
		return 30
	case VisitRoutineCheck, VisitLatePregnancy:
		return 15
	default:
		return 15
	}
}

func visitNotes(t VisitType) string {
	switch t {
	case VisitInitialIntake:
		return "Comprehensive intake: full history, baseline labs and dating confirmation."
	case VisitUltrasound:
		return "Ultrasound assessment of fetal growth and anatomy."
	case VisitLatePregnancy:
		return "Late pregnancy review: fetal position, cervical status and birth planning."
	default:
		return "Routine prenatal check: blood pressure, weight, fundal height and fetal heart rate."
	}
}

func visitLabel(t VisitType) string {
	switch t {
	case VisitInitialIntake:
		return "initial intake"
	case VisitUltrasound:
		return "ultrasound"
	case VisitLatePregnancy:
		return "late pregnancy review"
	default:
		return "routine check"
	}
}
