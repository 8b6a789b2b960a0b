package collaboration

import (
	"fmt"

	"github.com/unishowcase/server/internal/model"
)

// Action is an owner decision on a pending request.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
)

// TargetStatus returns the status an action moves a request to.
func (a Action) TargetStatus() (model.CollaborationStatus, error) {
	switch a {
	case ActionAccept:
		return model.CollaborationStatusAccepted, nil
	case ActionReject:
		return model.CollaborationStatusRejected, nil
	default:
		return "", ErrInvalidAction
	}
}

// StateMachine holds the allowed review transitions.
// Cancellation is a delete and the accept rollback is a compensating write,
// so neither appears here.
type StateMachine struct {
	transitions map[model.CollaborationStatus][]model.CollaborationStatus
}

// NewStateMachine creates the collaboration request state machine.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		transitions: map[model.CollaborationStatus][]model.CollaborationStatus{
			model.CollaborationStatusPending: {
				model.CollaborationStatusAccepted,
				model.CollaborationStatusRejected,
			},
		},
	}
}

// CanTransition reports whether from → to is allowed.
func (sm *StateMachine) CanTransition(from, to model.CollaborationStatus) bool {
	for _, allowed := range sm.transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Validate returns ErrAlreadyReviewed for a disallowed transition.
func (sm *StateMachine) Validate(from, to model.CollaborationStatus) error {
	if !sm.CanTransition(from, to) {
		return fmt.Errorf("%w: cannot transition from %s to %s", ErrAlreadyReviewed, from, to)
	}
	return nil
}
