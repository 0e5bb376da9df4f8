package cli

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/bastiangx/wordkey/pkg/config"
	"github.com/bastiangx/wordkey/pkg/dictionary"
	"github.com/bastiangx/wordkey/pkg/language"
	"github.com/bastiangx/wordkey/pkg/shift"
	"github.com/eiannone/keyboard"
)

func newTestHandler(t *testing.T) *InputHandler {
	t.Helper()
	profiles, err := language.LoadProfiles([]string{"english", "highlevel"}, "", dictionary.Options{})
	if err != nil {
		t.Fatal(err)
	}
	cycle, err := language.NewCycle(profiles...)
	if err != nil {
		t.Fatal(err)
	}
	return newInputHandler(cycle, config.DefaultConfig(), &bytes.Buffer{})
}

func typeString(h *InputHandler, s string) {
	for _, r := range s {
		if r == ' ' {
			h.HandleKey(0, keyboard.KeySpace)
			continue
		}
		h.HandleKey(r, 0)
	}
}

func TestTypeAndAccept(t *testing.T) {
	h := newTestHandler(t)
	typeString(h, "hel")
	if h.Text() != "hel" {
		t.Fatalf("text = %q", h.Text())
	}
	if len(h.view.suggestions) == 0 || h.view.suggestions[0] != "hello" {
		t.Fatalf("suggestions = %v", h.view.suggestions)
	}

	h.HandleKey('1', 0)
	if h.Text() != "hello " {
		t.Errorf("text after accept = %q", h.Text())
	}
}

func TestDigitWithoutSuggestionTypes(t *testing.T) {
	h := newTestHandler(t)
	h.HandleKey('7', 0)
	if h.Text() != "7" {
		t.Errorf("text = %q", h.Text())
	}
}

func TestControlKeys(t *testing.T) {
	h := newTestHandler(t)
	typeString(h, "say hello")

	h.HandleKey(0, keyboard.KeyCtrlW)
	if h.Text() != "say " {
		t.Errorf("swipe delete left %q", h.Text())
	}
	h.HandleKey(0, keyboard.KeyBackspace2)
	if h.Text() != "say" {
		t.Errorf("backspace left %q", h.Text())
	}

	h.HandleKey(0, keyboard.KeyArrowUp)
	if h.view.mode != shift.On {
		t.Errorf("mode = %v", h.view.mode)
	}
	h.HandleKey('x', 0)
	if h.Text() != "sayX" {
		t.Errorf("text = %q", h.Text())
	}

	h.HandleKey(0, keyboard.KeyArrowRight)
	if h.view.language != "High Level" {
		t.Errorf("language = %q", h.view.language)
	}
	h.HandleKey(0, keyboard.KeyCtrlT)
	h.HandleKey('q', 0)
	if !strings.HasSuffix(h.Text(), "func ") {
		t.Errorf("tertiary layer not used: %q", h.Text())
	}
	h.HandleKey(0, keyboard.KeyArrowLeft)
	if h.view.language != "English" {
		t.Errorf("language = %q", h.view.language)
	}

	if !h.HandleKey(0, keyboard.KeyEsc) || !h.HandleKey(0, keyboard.KeyCtrlC) {
		t.Error("Esc and Ctrl+C should quit")
	}
}

func TestUpperCaseAndPunctuation(t *testing.T) {
	h := newTestHandler(t)
	typeString(h, "Hi. ok")
	if h.Text() != "Hi. Ok" {
		t.Errorf("text = %q", h.Text())
	}
}

func TestRender(t *testing.T) {
	h := newTestHandler(t)
	typeString(h, "he")
	out := h.view.Render(h.Text())

	for _, want := range []string{"English", "shift off", "hello", "he"} {
		if !strings.Contains(out, want) {
			t.Errorf("render is missing %q:\n%s", want, out)
		}
	}
	if got := h.view.labels.Primary[0]; !reflect.DeepEqual(got[:3], []string{"q", "w", "e"}) {
		t.Errorf("labels = %v", got)
	}
}
