package state

import "github.com/looplab/fsm"

// MachineFactory builds the survey state machine for a new session.
type MachineFactory interface {
	NewSurveyMachine() *fsm.FSM
}
