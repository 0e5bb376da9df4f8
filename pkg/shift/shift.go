// Package shift implements the keyboard's three-state shift key and the
// auto-capitalization trigger.
package shift

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode is the state of the shift key.
type Mode int

const (
	// Off inserts lower case.
	Off Mode = iota
	// On inserts upper case once, then falls back to Off.
	On
	// Caps inserts upper case until shift is pressed again.
	Caps
)

func (m Mode) String() string {
	switch m {
	case Off:
		return "off"
	case On:
		return "on"
	case Caps:
		return "caps"
	}
	return "unknown"
}

// ParseMode maps the String form back to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "off":
		return Off, true
	case "on":
		return On, true
	case "caps":
		return Caps, true
	}
	return Off, false
}

// SuffixMatcher reports whether text ends with any trigger suffix.
type SuffixMatcher interface {
	MatchAny(text string) bool
}

// Machine tracks the shift mode. Every assignment of the mode, including one
// to the current value, is reported to the observers so labels can re-render.
type Machine struct {
	mode      Mode
	observers []func(Mode)
	upper     cases.Caser
	lower     cases.Caser
}

// New creates a machine in Off using the casing rules of the BCP 47 tag.
func New(tag string) *Machine {
	m := &Machine{}
	m.SetLocale(tag)
	return m
}

// SetLocale switches the casing rules, e.g. "tr" maps i to İ.
func (m *Machine) SetLocale(tag string) {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.Und
	}
	m.upper = cases.Upper(t)
	m.lower = cases.Lower(t)
}

// OnChange registers fn to be called after every mode assignment.
func (m *Machine) OnChange(fn func(Mode)) {
	m.observers = append(m.observers, fn)
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Set assigns mode and notifies the observers.
func (m *Machine) Set(mode Mode) {
	m.mode = mode
	for _, fn := range m.observers {
		fn(mode)
	}
}

// Press cycles Off -> On -> Caps -> Off.
func (m *Machine) Press() Mode {
	switch m.mode {
	case Off:
		m.Set(On)
	case On:
		m.Set(Caps)
	default:
		m.Set(Off)
	}
	return m.mode
}

// Apply returns s cased for insertion and consumes a one-shot On.
func (m *Machine) Apply(s string) string {
	out := m.Label(s)
	m.Consume()
	return out
}

// Consume ends a one-shot On after a character was inserted. Caps is kept.
func (m *Machine) Consume() {
	if m.mode == On {
		m.Set(Off)
	}
}

// Label returns s cased for the current mode without changing it.
func (m *Machine) Label(s string) string {
	if m.mode == Off {
		return m.lower.String(s)
	}
	return m.upper.String(s)
}

// AutoCapitalize switches to On when before ends with a trigger suffix,
// whatever the current mode. It reports whether it fired.
func (m *Machine) AutoCapitalize(before string, triggers SuffixMatcher) bool {
	if before == "" || triggers == nil || !triggers.MatchAny(before) {
		return false
	}
	m.Set(On)
	return true
}
