package program

import (
	"fmt"
	"slices"
)

// State of a session.
type State uint8

const (
	StateEmpty State = iota
	StateActive
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateActive:
		return "active"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

var transitions = map[State][]State{
	StateEmpty:  {StateEmpty, StateActive, StateFailed, StateClosed},
	StateActive: {StateEmpty, StateActive, StateFailed, StateClosed},
	StateFailed: {StateEmpty, StateActive, StateFailed, StateClosed},
	StateClosed: {StateClosed},
}

// transition is the only place the state changes.
func (p *Program) transition(to State) {
	from := p.state
	if !slices.Contains(transitions[from], to) {
		panic(fmt.Sprintf("program: invalid transition %s -> %s", from, to))
	}
	p.state = to
	if from != to {
		p.point("state", from.String()+" -> "+to.String())
	}
}
