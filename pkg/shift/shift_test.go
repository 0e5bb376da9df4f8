package shift

import (
	"strings"
	"testing"
)

type suffixes []string

func (s suffixes) MatchAny(text string) bool {
	for _, suf := range s {
		if strings.HasSuffix(text, suf) {
			return true
		}
	}
	return false
}

func TestPressCycle(t *testing.T) {
	m := New("en")
	want := []Mode{On, Caps, Off, On}
	for i, w := range want {
		if got := m.Press(); got != w {
			t.Errorf("press %d: got %v, want %v", i+1, got, w)
		}
	}
}

func TestOneShot(t *testing.T) {
	m := New("en")
	m.Press()
	if got := m.Apply("a"); got != "A" {
		t.Errorf("expected upper case insert, got %q", got)
	}
	if m.Mode() != Off {
		t.Errorf("expected Off after one insert, got %v", m.Mode())
	}
	if got := m.Apply("a"); got != "a" {
		t.Errorf("expected lower case insert, got %q", got)
	}
}

func TestCapsPersists(t *testing.T) {
	m := New("en")
	m.Press()
	m.Press()
	for _, ch := range []string{"a", "b", "c"} {
		if got := m.Apply(ch); got != strings.ToUpper(ch) {
			t.Errorf("expected %q upper, got %q", ch, got)
		}
	}
	if m.Mode() != Caps {
		t.Errorf("expected Caps to persist, got %v", m.Mode())
	}
}

func TestAutoCapitalize(t *testing.T) {
	triggers := suffixes{".", "!", "?"}
	tests := []struct {
		name   string
		start  Mode
		before string
		fired  bool
		want   Mode
	}{
		{"after period", Off, "Hello.", true, On},
		{"caps overridden", Caps, "Done!", true, On},
		{"no trigger", Off, "Hello", false, Off},
		{"empty text", Off, "", false, Off},
		{"trigger not at end", Caps, "a. b", false, Caps},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New("en")
			m.Set(tt.start)
			if fired := m.AutoCapitalize(tt.before, triggers); fired != tt.fired {
				t.Errorf("fired = %v, want %v", fired, tt.fired)
			}
			if m.Mode() != tt.want {
				t.Errorf("mode = %v, want %v", m.Mode(), tt.want)
			}
		})
	}

	m := New("en")
	if m.AutoCapitalize("Hi.", nil) {
		t.Error("nil matcher must never fire")
	}
}

func TestObserverSeesEveryTransition(t *testing.T) {
	m := New("en")
	var seen []Mode
	m.OnChange(func(mode Mode) { seen = append(seen, mode) })

	m.Press()     // On
	m.Apply("x")  // Off
	m.Apply("y")  // no transition
	m.Press()     // On
	m.Press()     // Caps
	m.Apply("z")  // stays Caps, no transition

	want := []Mode{On, Off, On, Caps}
	if len(seen) != len(want) {
		t.Fatalf("observed %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("transition %d: %v, want %v", i, seen[i], want[i])
		}
	}
}

func TestLocaleCasing(t *testing.T) {
	m := New("tr")
	m.Press()
	if got := m.Label("i"); got != "İ" {
		t.Errorf("turkish upper i = %q", got)
	}
	m.SetLocale("en")
	if got := m.Label("i"); got != "I" {
		t.Errorf("english upper i = %q", got)
	}
}

func TestParseMode(t *testing.T) {
	for _, mode := range []Mode{Off, On, Caps} {
		got, ok := ParseMode(mode.String())
		if !ok || got != mode {
			t.Errorf("ParseMode(%s) = %v, %v", mode, got, ok)
		}
	}
	if _, ok := ParseMode("shouting"); ok {
		t.Error("expected unknown mode to fail")
	}
}

func TestConsumeKeepsCaps(t *testing.T) {
	m := New("en")
	m.Set(Caps)
	m.Consume()
	if m.Mode() != Caps {
		t.Errorf("Consume must not leave Caps, got %v", m.Mode())
	}
	m.Set(On)
	m.Consume()
	if m.Mode() != Off {
		t.Errorf("Consume must end On, got %v", m.Mode())
	}
}
