package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApprovalState_Valid(t *testing.T) {
	for _, s := range AllApprovalStates() {
		assert.True(t, s.Valid(), "state %q", s)
	}
	assert.False(t, ApprovalState("approved").Valid())
	assert.False(t, ApprovalState("").Valid())
}

func TestCanTransition_EveryPairAllowed(t *testing.T) {
	// The transition table is deliberately permissive: administrators
	// may correct any record to any state.
	for _, from := range AllApprovalStates() {
		for _, to := range AllApprovalStates() {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_UnknownStateBlocked(t *testing.T) {
	assert.False(t, CanTransition(ApprovalState("bogus"), ApprovalAccepted))
}
