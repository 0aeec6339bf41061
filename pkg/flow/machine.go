// Package flow drives the survey conversation: a per-user finite state
// machine over the question steps, text and callback dispatch, the
// multi-select toggle engine, the edit overlay and the finalizer.
package flow

import (
	"context"
	"errors"

	"driverprofilebot/pkg/state"

	"github.com/looplab/fsm"
)

// newSurveyMachine builds the question-step machine. Every enter callback is
// the same: render the prompt for the state just entered. Args carry the
// handler, session, chat and the message to edit in place.
func newSurveyMachine() *fsm.FSM {
	events := fsm.Events{
		{Name: EventBegin, Src: []string{StateIdle}, Dst: StateName},
		{Name: EventToPhone, Src: []string{StateName}, Dst: StatePhone},
		{Name: EventToAge, Src: []string{StatePhone}, Dst: StateAge},
		{Name: EventToRegion, Src: []string{StateAge}, Dst: StateRegion},
		{Name: EventToCity, Src: []string{StateRegion}, Dst: StateCity},
		{Name: EventToCategories, Src: []string{StateCity}, Dst: StateCategories},
		{Name: EventToExperience, Src: []string{StateCategories}, Dst: StateExperience},
		{Name: EventToSemiTrailers, Src: []string{StateExperience}, Dst: StateSemiTrailers},
		{Name: EventToWorkTypes, Src: []string{StateExperience, StateSemiTrailers}, Dst: StateWorkTypes},
		{Name: EventToVehicles, Src: []string{StateWorkTypes}, Dst: StateVehicles},
		{Name: EventToADR, Src: []string{StateVehicles}, Dst: StateADR},
		{Name: EventToRaceDuration, Src: []string{StateADR}, Dst: StateRaceDuration},
		{Name: EventToSalary, Src: []string{StateRaceDuration}, Dst: StateSalary},
		{Name: EventToDocs, Src: []string{StateSalary}, Dst: StateDocsAbroad},
		{Name: EventToMilitary, Src: []string{StateDocsAbroad}, Dst: StateMilitary},
		{Name: EventToDescription, Src: []string{StateMilitary}, Dst: StateDescription},
		{Name: EventFinish, Src: []string{StateDescription}, Dst: StateIdle},
		{Name: EventCancel, Src: []string{
			StateName, StatePhone, StateAge, StateRegion, StateCity,
			StateCategories, StateExperience, StateSemiTrailers, StateWorkTypes,
			StateVehicles, StateADR, StateRaceDuration, StateSalary,
			StateDocsAbroad, StateMilitary, StateDescription,
		}, Dst: StateIdle},
	}

	callbacks := fsm.Callbacks{
		"enter_state": enterState,
	}

	return fsm.NewFSM(StateIdle, events, callbacks)
}

func enterState(ctx context.Context, e *fsm.Event) {
	// Idle has no prompt of its own, the event handlers render the menu or
	// the final summary themselves.
	if e.Dst == StateIdle {
		return
	}
	if len(e.Args) < 4 {
		return
	}
	h, okH := e.Args[0].(*Handler)
	sess, okS := e.Args[1].(*state.Session)
	chatID, okC := e.Args[2].(int64)
	messageID, _ := e.Args[3].(int)
	if !okH || !okS || !okC || h == nil || sess == nil {
		return
	}
	h.promptState(ctx, sess, chatID, messageID)
}

// machineFactory wires newSurveyMachine into the session store.
type machineFactory struct{}

func (machineFactory) NewSurveyMachine() *fsm.FSM {
	return newSurveyMachine()
}

// NewMachineFactory returns the factory the session store needs.
func NewMachineFactory() state.MachineFactory {
	return machineFactory{}
}

func isNoTransitionError(err error) bool {
	var nte fsm.NoTransitionError
	return errors.As(err, &nte)
}
