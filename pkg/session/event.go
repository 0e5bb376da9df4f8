package session

import "github.com/bastiangx/wordkey/pkg/cursor"

// Event is anything the host delivers to a session.
type Event interface {
	event()
}

// CharacterKey is a tap on a primary key.
type CharacterKey struct{ Row, Col int }

// TypeText inserts host-supplied characters the way a primary key would.
type TypeText struct{ Text string }

// SecondaryKey is a swipe up on a key.
type SecondaryKey struct{ Row, Col int }

// TertiaryKey is a swipe down on a key.
type TertiaryKey struct{ Row, Col int }

type ShiftPress struct{}

// Delete removes text before the cursor according to Gesture.
type Delete struct{ Gesture cursor.Gesture }

type Space struct{}

type Tab struct{}

type Return struct{}

// AcceptSuggestion replaces the word being typed with Word.
type AcceptSuggestion struct{ Word string }

// NextLanguage and PrevLanguage move through the language cycle.
type NextLanguage struct{}
type PrevLanguage struct{}

// HoldKey identifies a key that repeats while held.
type HoldKey int

const (
	HoldDelete HoldKey = iota
	HoldSpace
)

func (k HoldKey) String() string {
	if k == HoldSpace {
		return "space"
	}
	return "delete"
}

// HoldBegin arms key repeat. The host then delivers Tick events on its own
// timer until HoldEnd.
type HoldBegin struct{ Key HoldKey }

// Tick is one repeat interval elapsing.
type Tick struct{}

// HoldEnd is the release or cancellation of a held key.
type HoldEnd struct{}

func (CharacterKey) event()     {}
func (TypeText) event()         {}
func (SecondaryKey) event()     {}
func (TertiaryKey) event()      {}
func (ShiftPress) event()       {}
func (Delete) event()           {}
func (Space) event()            {}
func (Tab) event()              {}
func (Return) event()           {}
func (AcceptSuggestion) event() {}
func (NextLanguage) event()     {}
func (PrevLanguage) event()     {}
func (HoldBegin) event()        {}
func (Tick) event()             {}
func (HoldEnd) event()          {}
