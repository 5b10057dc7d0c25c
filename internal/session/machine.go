package session

import (
	"errors"
	"fmt"
)

// State is a step of the interactive session
type State int

const (
	StatePrompting State = iota
	StateLoaded
	StatePaginating
	StateReporting
	StateDone
)

func (s State) String() string {
	switch s {
	case StatePrompting:
		return "prompting"
	case StateLoaded:
		return "loaded"
	case StatePaginating:
		return "paginating"
	case StateReporting:
		return "reporting"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Event is a user decision that moves the session forward
type Event int

const (
	// EventFiltersChosen: region, month and day are valid and the data is loaded
	EventFiltersChosen Event = iota
	// EventShowRows: the user asked for the next 5 raw rows
	EventShowRows
	// EventRestart: start over with new filters
	EventRestart
	// EventProceed: go on to the statistics
	EventProceed
	// EventQuit: leave the session
	EventQuit
)

func (e Event) String() string {
	switch e {
	case EventFiltersChosen:
		return "filters_chosen"
	case EventShowRows:
		return "show_rows"
	case EventRestart:
		return "restart"
	case EventProceed:
		return "proceed"
	case EventQuit:
		return "quit"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// ErrInvalidTransition is returned when an event is not allowed in the
// current state
var ErrInvalidTransition = errors.New("invalid session transition")

var transitions = map[State]map[Event]State{
	StatePrompting: {
		EventFiltersChosen: StateLoaded,
		EventQuit:          StateDone,
	},
	StateLoaded: {
		EventShowRows: StatePaginating,
		EventProceed:  StateReporting,
		EventRestart:  StatePrompting,
		EventQuit:     StateDone,
	},
	StatePaginating: {
		EventShowRows: StatePaginating,
		EventProceed:  StateReporting,
		EventRestart:  StatePrompting,
		EventQuit:     StateDone,
	},
	StateReporting: {
		EventRestart: StatePrompting,
		EventQuit:    StateDone,
	},
}

// Machine tracks the session state. It holds no data and performs no I/O.
type Machine struct {
	state State
}

// NewMachine starts a machine in StatePrompting
func NewMachine() *Machine {
	return &Machine{state: StatePrompting}
}

// State returns the current state
func (m *Machine) State() State {
	return m.state
}

// Can reports whether ev is allowed in the current state
func (m *Machine) Can(ev Event) bool {
	_, ok := transitions[m.state][ev]
	return ok
}

// Fire applies ev and returns the new state. An illegal event leaves the
// state unchanged.
func (m *Machine) Fire(ev Event) (State, error) {
	next, ok := transitions[m.state][ev]
	if !ok {
		return m.state, fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, ev, m.state)
	}
	m.state = next
	return next, nil
}
