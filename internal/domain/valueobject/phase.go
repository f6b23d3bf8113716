// Package valueobject contains domain value objects for the CareSync system.
package valueobject

// Phase is a stage of the menstrual cycle. Exactly one phase applies to any cycle day.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulation  Phase = "ovulation"
	PhaseLuteal     Phase = "luteal"
)

// OvulationWindowDays is the fixed length of the ovulation window.
const OvulationWindowDays = 2

// PMSDays is the number of final luteal days labelled as PMS.
const PMSDays = 4

// Phases lists every phase in cycle order.
var Phases = []Phase{PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal}

// IsValid reports whether p is one of the known phases.
func (p Phase) IsValid() bool {
	switch p {
	case PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (p Phase) String() string {
	return string(p)
}
