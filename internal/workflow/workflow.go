// Package workflow defines the status machines for applications and reports.
// Each machine is a table of legal (state, event) pairs with a single
// transition function; illegal pairs are rejected uniformly instead of being
// checked ad hoc at every call site.
package workflow

import (
	"fmt"

	"internhub/internal/errors"
)

// State is a workflow state.
type State string

// Event is a workflow event triggering a transition.
type Event string

// Machine validates transitions against a fixed table.
type Machine struct {
	name        string
	transitions map[State]map[Event]State
	terminal    map[State]bool
}

// NewMachine builds a machine from a transition table.
func NewMachine(name string, transitions map[State]map[Event]State, terminal []State) *Machine {
	term := make(map[State]bool, len(terminal))
	for _, s := range terminal {
		term[s] = true
	}
	return &Machine{name: name, transitions: transitions, terminal: term}
}

// Next returns the state reached by firing event from the given state. It
// returns a PreconditionError if the pair is not in the table, leaving the
// caller's record untouched.
func (m *Machine) Next(from State, event Event) (State, error) {
	if events, ok := m.transitions[from]; ok {
		if to, ok := events[event]; ok {
			return to, nil
		}
	}
	return "", errors.NewPrecondition(
		fmt.Sprintf("%s: cannot %s while %s", m.name, event, from))
}

// Can reports whether event may fire from the given state.
func (m *Machine) Can(from State, event Event) bool {
	_, err := m.Next(from, event)
	return err == nil
}

// IsTerminal reports whether no further transitions are allowed from s.
func (m *Machine) IsTerminal(s State) bool {
	return m.terminal[s]
}
