package model

// LifecycleStage is a donor's current engagement category, recomputed fresh
// at each evaluation instant from transaction history. It is not a stored
// state machine: exactly one stage holds per donor per evaluation.
type LifecycleStage string

// Lifecycle stage constants, ordered by engagement depth for reporting.
const (
	StageProspect  LifecycleStage = "prospect"
	StageFirstTime LifecycleStage = "first_time"
	StageRepeat    LifecycleStage = "repeat"
	StageMajor     LifecycleStage = "major"
	StageLapsed    LifecycleStage = "lapsed"
	StageLost      LifecycleStage = "lost"
)

// AllStages returns every lifecycle stage in reporting order. Stage summaries
// are emitted for all six stages even when a stage holds zero donors.
func AllStages() []LifecycleStage {
	return []LifecycleStage{
		StageProspect,
		StageFirstTime,
		StageRepeat,
		StageMajor,
		StageLapsed,
		StageLost,
	}
}

// Valid reports whether the stage is one of the defined constants.
func (s LifecycleStage) Valid() bool {
	switch s {
	case StageProspect, StageFirstTime, StageRepeat, StageMajor, StageLapsed, StageLost:
		return true
	default:
		return false
	}
}
