// SPDX-License-Identifier: MPL-2.0

package build

// Build states. Unsupported, BuildFailed, PushFailed and Done are terminal.
const (
	StateIdle State = iota
	StateResolving
	StateUnsupported
	StateBuilding
	StateBuildFailed
	StateBuilt
	StatePushing
	StatePushFailed
	StateDone
)

// State is a step of the build state machine.
type State int

var stateNames = [...]string{
	StateIdle:        "idle",
	StateResolving:   "resolving",
	StateUnsupported: "unsupported",
	StateBuilding:    "building",
	StateBuildFailed: "build-failed",
	StateBuilt:       "built",
	StatePushing:     "pushing",
	StatePushFailed:  "push-failed",
	StateDone:        "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// IsTerminal reports whether no transition leaves s.
func (s State) IsTerminal() bool {
	switch s {
	case StateUnsupported, StateBuildFailed, StatePushFailed, StateDone:
		return true
	default:
		return false
	}
}

// IsFailure reports whether s is a terminal error state.
func (s State) IsFailure() bool {
	return s == StateUnsupported || s == StateBuildFailed || s == StatePushFailed
}
