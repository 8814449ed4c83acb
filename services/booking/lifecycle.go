package booking

import (
	"fmt"

	"sevahub/models"
)

// Action is a lifecycle trigger issued by one party of a request.
type Action string

const (
	ActionAccept         Action = "accept"
	ActionReject         Action = "reject"
	ActionConfirmArrival Action = "confirm_arrival"
	ActionConfirmStart   Action = "confirm_start"
	ActionMarkDone       Action = "mark_done"
	ActionVerifyAndPay   Action = "verify_and_pay"
)

type transition struct {
	from  models.RequestStatus
	actor models.Role
	to    models.RequestStatus
}

var transitions = map[Action]transition{
	ActionAccept:         {models.StatusPending, models.RoleWorker, models.StatusAccepted},
	ActionReject:         {models.StatusPending, models.RoleWorker, models.StatusRejected},
	ActionConfirmArrival: {models.StatusAccepted, models.RoleUser, models.StatusUserStarted},
	ActionConfirmStart:   {models.StatusUserStarted, models.RoleWorker, models.StatusInProgress},
	ActionMarkDone:       {models.StatusInProgress, models.RoleWorker, models.StatusWorkerCompleted},
	ActionVerifyAndPay:   {models.StatusWorkerCompleted, models.RoleUser, models.StatusCompleted},
}

// TransitionError reports an action that is not allowed from the current status.
type TransitionError struct {
	From   models.RequestStatus
	Action Action
	Actor  models.Role
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s as %s from %q: %s", e.Action, e.Actor, e.From, e.Reason)
}

// NextState returns the status reached by applying action as actor.
// Repeating the action that produced the current status returns the current status.
func NextState(current models.RequestStatus, action Action, actor models.Role) (models.RequestStatus, error) {
	t, ok := transitions[action]
	if !ok {
		return current, &TransitionError{From: current, Action: action, Actor: actor, Reason: "unknown action"}
	}
	if actor != t.actor {
		return current, &TransitionError{From: current, Action: action, Actor: actor, Reason: fmt.Sprintf("only the %s may do this", t.actor)}
	}
	if current == t.to {
		return current, nil
	}
	if current.IsTerminal() {
		return current, &TransitionError{From: current, Action: action, Actor: actor, Reason: "request is closed"}
	}
	if current != t.from {
		return current, &TransitionError{From: current, Action: action, Actor: actor, Reason: fmt.Sprintf("requires status %q", t.from)}
	}
	return t.to, nil
}

// AllowedActions lists the actions actor may take from current.
func AllowedActions(current models.RequestStatus, actor models.Role) []Action {
	var actions []Action
	for _, a := range []Action{ActionAccept, ActionReject, ActionConfirmArrival, ActionConfirmStart, ActionMarkDone, ActionVerifyAndPay} {
		t := transitions[a]
		if t.from == current && t.actor == actor {
			actions = append(actions, a)
		}
	}
	return actions
}
