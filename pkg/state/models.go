package state

import (
	"sync"
	"time"

	"driverprofilebot/pkg/survey"

	"github.com/looplab/fsm"
)

// Draft accumulates validated answers for an in-progress survey or edit.
type Draft struct {
	Name      string
	Phone     string
	Age       int
	RegionKey string
	City      string

	Categories []string
	// CategoryQueue holds categories still awaiting an experience value,
	// consumed front to back in selection order.
	CategoryQueue []string
	Experience    map[string]float64
	SemiTrailers  []string

	WorkTypes       []string
	VehiclesText    string
	ADRLicense      bool
	RaceDurations   []string
	DesiredSalary   int
	DocsAbroad      []string
	MilitaryBooking bool
	Description     string

	// Selections holds the working multi-select sets keyed by field,
	// in toggle order, before submit freezes them.
	Selections map[string][]string
}

// NewDraft returns an empty draft with initialized collections.
func NewDraft() *Draft {
	return &Draft{
		Experience: make(map[string]float64),
		Selections: make(map[string][]string),
	}
}

// Editing marks a session as a single-field edit of a stored profile. The
// owner identity is captured once at edit entry and reused for every
// persistence call in the edit, never re-derived from later events.
type Editing struct {
	Field         string
	Snapshot      *survey.Profile
	OwnerID       int64
	OwnerUsername string
}

// Session is the per-user conversation state. Callers must hold Mu for the
// whole handling of one inbound event.
type Session struct {
	UserID   int64
	Username string

	Machine *fsm.FSM
	Draft   *Draft
	Editing *Editing

	LastMessageID   int
	SurveyStartedAt time.Time

	Mu sync.Mutex
}

// ResetFlow drops all in-progress survey/edit data. The machine state itself
// is reset by the flow layer.
func (s *Session) ResetFlow() {
	s.Draft = NewDraft()
	s.Editing = nil
	s.LastMessageID = 0
	s.SurveyStartedAt = time.Time{}
}
