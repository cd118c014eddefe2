package attendance

// ApprovalState is the administrative review state of a record.
type ApprovalState string

const (
	ApprovalPending       ApprovalState = "pending"
	ApprovalAskPermission ApprovalState = "ask_permission"
	ApprovalAccepted      ApprovalState = "accepted"
	ApprovalRejected      ApprovalState = "rejected"
)

// AllApprovalStates returns every valid approval state.
func AllApprovalStates() []ApprovalState {
	return []ApprovalState{
		ApprovalPending,
		ApprovalAskPermission,
		ApprovalAccepted,
		ApprovalRejected,
	}
}

// Valid reports whether s is one of the four approval states.
func (s ApprovalState) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalAskPermission, ApprovalAccepted, ApprovalRejected:
		return true
	}
	return false
}

// approvalTransitions is the full transition table. Administrators may
// correct mistakes freely, so every transition is currently allowed;
// the table keeps that permissiveness an explicit, reviewable policy.
var approvalTransitions = map[ApprovalState][]ApprovalState{
	ApprovalPending:       {ApprovalPending, ApprovalAskPermission, ApprovalAccepted, ApprovalRejected},
	ApprovalAskPermission: {ApprovalPending, ApprovalAskPermission, ApprovalAccepted, ApprovalRejected},
	ApprovalAccepted:      {ApprovalPending, ApprovalAskPermission, ApprovalAccepted, ApprovalRejected},
	ApprovalRejected:      {ApprovalPending, ApprovalAskPermission, ApprovalAccepted, ApprovalRejected},
}

// CanTransition reports whether an administrator may move a record
// from one approval state to another.
func CanTransition(from, to ApprovalState) bool {
	allowed, ok := approvalTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
