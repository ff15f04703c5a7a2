package lead

// Stage is one discrete position in the lead lifecycle.
type Stage string

const (
	StageImported     Stage = "imported"
	StageQualified    Stage = "qualified"
	StageBrochureSent Stage = "brochure-sent"
	StageTracking     Stage = "tracking"
	StageSigned       Stage = "signed"
	StageFollowingUp  Stage = "following-up"
	StageProspective  Stage = "prospective"
	StageConverted    Stage = "converted"
	StageReturned     Stage = "returned"
	StageClosed       Stage = "closed"
)

// nextStage maps each stage to its single canonical successor. Terminal
// stages map to the empty stage.
var nextStage = map[Stage]Stage{
	StageImported:     StageQualified,
	StageQualified:    StageBrochureSent,
	StageBrochureSent: StageTracking,
	StageTracking:     StageSigned,
	StageSigned:       StageFollowingUp,
	StageFollowingUp:  StageProspective,
	StageProspective:  StageConverted,
	StageConverted:    "",
	StageReturned:     StageClosed,
	StageClosed:       "",
}

// overrideTargets are reachable from any non-terminal stage regardless of
// the canonical ordering (a lead can drop out of the funnel at any point).
var overrideTargets = map[Stage]bool{
	StageReturned: true,
	StageClosed:   true,
}

func (s Stage) String() string {
	return string(s)
}

func (s Stage) IsValid() bool {
	_, ok := nextStage[s]
	return ok
}

// IsTerminal reports whether the stage has no successor. Terminal stages
// admit no outgoing transition, forced or otherwise.
func (s Stage) IsTerminal() bool {
	next, ok := nextStage[s]
	return ok && next == ""
}

// Next returns the canonical successor stage, or the empty stage for
// terminal stages.
func (s Stage) Next() Stage {
	return nextStage[s]
}

// CanTransition reports whether a regular operator may move a lead from s
// to target: either the canonical next stage or one of the universal
// override targets. Moves out of a terminal stage are never allowed.
func (s Stage) CanTransition(target Stage) bool {
	if s.IsTerminal() || !target.IsValid() {
		return false
	}
	return target == s.Next() || overrideTargets[target]
}

// AllStages returns every stage in funnel order.
func AllStages() []Stage {
	return []Stage{
		StageImported,
		StageQualified,
		StageBrochureSent,
		StageTracking,
		StageSigned,
		StageFollowingUp,
		StageProspective,
		StageConverted,
		StageReturned,
		StageClosed,
	}
}
