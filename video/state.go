package video

import "strconv"

// State is a step of a conversion.
type State uint8

const (
	StateOpening State = iota
	StateDecoding
	StateRendering
	StateEncoding
	StateClosing
	StateMuxing
	StateDone
	StateFailed
)

var stateNames = [...]string{
	"opening", "decoding", "rendering", "encoding", "closing", "muxing", "done", "failed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// next lists the legal transitions out of each state. Failed is reachable
// from everywhere and is checked separately.
var next = map[State][]State{
	StateOpening:   {StateDecoding},
	StateDecoding:  {StateRendering, StateClosing},
	StateRendering: {StateEncoding},
	StateEncoding:  {StateDecoding},
	StateClosing:   {StateMuxing},
	StateMuxing:    {StateDone},
}

// canMove reports whether from -> to is a legal transition.
func canMove(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	for _, s := range next[from] {
		if s == to {
			return true
		}
	}
	return false
}
