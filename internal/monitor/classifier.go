package monitor

import "time"

// Kind categorizes a status transition.
type Kind string

const (
	// KindFirstSeen marks a container observed for the first time in a bad
	// state. A first observation in a good state produces no event.
	KindFirstSeen Kind = "first_seen"
	// KindAlert marks a transition into a bad state, including a change
	// between two distinct bad states.
	KindAlert Kind = "alert"
	// KindRecovery marks a transition from a bad state into a good one.
	KindRecovery Kind = "recovery"
	// KindStateChange marks a change between two distinct good states.
	KindStateChange Kind = "state_change"
)

// Transition records one container's status change within a cycle.
type Transition struct {
	Container string    `json:"container"`
	From      Status    `json:"from,omitempty"` // empty on first observation
	To        Status    `json:"to"`
	Kind      Kind      `json:"kind"`
	At        time.Time `json:"observed_at"`
}

// Classify decides whether a container's current status against its
// previous one constitutes a notable transition, and of which kind.
// seen is false when the container has no entry in the previous snapshot;
// that case is distinct from any recorded status, including unknown.
// Returns nil when nothing is newsworthy. Total and side-effect free.
func Classify(container string, prev Status, seen bool, cur Status, at time.Time) *Transition {
	switch {
	case !seen:
		if cur.Good() {
			return nil
		}
		return &Transition{Container: container, To: cur, Kind: KindFirstSeen, At: at}
	case cur == prev:
		return nil
	case !cur.Good():
		// Bad after anything else, including a different bad state, is
		// alert-worthy rather than a mere state change.
		return &Transition{Container: container, From: prev, To: cur, Kind: KindAlert, At: at}
	case !prev.Good():
		return &Transition{Container: container, From: prev, To: cur, Kind: KindRecovery, At: at}
	default:
		return &Transition{Container: container, From: prev, To: cur, Kind: KindStateChange, At: at}
	}
}
