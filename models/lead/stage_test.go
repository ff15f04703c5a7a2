package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageFunnelOrder(t *testing.T) {
	assert.Equal(t, StageQualified, StageImported.Next())
	assert.Equal(t, StageBrochureSent, StageQualified.Next())
	assert.Equal(t, StageTracking, StageBrochureSent.Next())
	assert.Equal(t, StageSigned, StageTracking.Next())
	assert.Equal(t, StageFollowingUp, StageSigned.Next())
	assert.Equal(t, StageProspective, StageFollowingUp.Next())
	assert.Equal(t, StageConverted, StageProspective.Next())
	assert.Equal(t, StageClosed, StageReturned.Next())
}

func TestStageTerminal(t *testing.T) {
	assert.True(t, StageConverted.IsTerminal())
	assert.True(t, StageClosed.IsTerminal())

	for _, s := range AllStages() {
		if s == StageConverted || s == StageClosed {
			continue
		}
		assert.False(t, s.IsTerminal(), "stage %s should not be terminal", s)
	}
}

func TestStageCanTransitionNextOnly(t *testing.T) {
	assert.True(t, StageImported.CanTransition(StageQualified))
	assert.False(t, StageImported.CanTransition(StageBrochureSent))
	assert.False(t, StageImported.CanTransition(StageImported))
	assert.False(t, StageQualified.CanTransition(StageImported))
}

func TestStageOverrideTargetsReachableFromAnywhere(t *testing.T) {
	for _, s := range AllStages() {
		if s.IsTerminal() {
			continue
		}
		assert.True(t, s.CanTransition(StageReturned), "returned should be reachable from %s", s)
		assert.True(t, s.CanTransition(StageClosed), "closed should be reachable from %s", s)
	}
}

func TestStageTerminalAdmitsNoTransition(t *testing.T) {
	for _, target := range AllStages() {
		assert.False(t, StageConverted.CanTransition(target))
		assert.False(t, StageClosed.CanTransition(target))
	}
}

func TestStageInvalidTargetRejected(t *testing.T) {
	assert.False(t, StageImported.CanTransition(Stage("unknown")))
	assert.False(t, Stage("unknown").IsValid())
	assert.True(t, StageTracking.IsValid())
}
