// Package cli runs an interactive keyboard playground in the terminal for
// testing sessions and language profiles by hand.
package cli

import (
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/bastiangx/wordkey/pkg/config"
	"github.com/bastiangx/wordkey/pkg/cursor"
	"github.com/bastiangx/wordkey/pkg/language"
	"github.com/bastiangx/wordkey/pkg/session"
	"github.com/charmbracelet/log"
	"github.com/eiannone/keyboard"
)

// layerMode selects which layer the next letter key is read from.
type layerMode int

const (
	layerPrimary layerMode = iota
	layerSecondary
	layerTertiary
)

// InputHandler maps raw terminal keys to session events and redraws the
// screen after each one.
//
//	letters          primary keys        Backspace   tab-aware delete
//	Ctrl+W           swipe delete        Tab, Enter, Space
//	Up               shift               Left/Right  previous/next language
//	Ctrl+E, Ctrl+T   next letter from the secondary/tertiary layer
//	1..9             accept a suggestion Esc, Ctrl+C quit
type InputHandler struct {
	session *session.Session
	doc     *session.Buffer
	view    *view
	out     io.Writer
	layer   layerMode
	events  int
}

// NewInputHandler creates a playground over an empty document.
func NewInputHandler(cycle *language.Cycle, cfg *config.Config) *InputHandler {
	return newInputHandler(cycle, cfg, os.Stdout)
}

func newInputHandler(cycle *language.Cycle, cfg *config.Config, out io.Writer) *InputHandler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	settings := cfg.SessionSettings()
	settings.SuggestLimit = cfg.CLI.DefaultLimit

	doc := session.NewBuffer("")
	v := newView(cfg.CLI.ShowLayers)
	h := &InputHandler{
		session: session.New(doc, v, cycle, settings),
		doc:     doc,
		view:    v,
		out:     out,
	}
	h.session.Activate()
	return h
}

// Start opens the terminal in raw mode and loops until Esc or Ctrl+C.
func (h *InputHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("failed to open keyboard: %w", err)
	}
	defer keyboard.Close()

	h.redraw()
	for {
		ch, key, err := keyboard.GetKey()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		if h.HandleKey(ch, key) {
			fmt.Fprint(h.out, "\r\n")
			log.Debugf("Playground closed after %d events", h.events)
			return nil
		}
		h.redraw()
	}
}

// HandleKey processes one key press and reports whether to quit.
func (h *InputHandler) HandleKey(ch rune, key keyboard.Key) bool {
	var ev session.Event
	switch key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return true
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		ev = session.Delete{Gesture: cursor.TabAware}
	case keyboard.KeyCtrlW:
		ev = session.Delete{Gesture: cursor.SwipeDelete}
	case keyboard.KeyTab:
		ev = session.Tab{}
	case keyboard.KeyEnter:
		ev = session.Return{}
	case keyboard.KeySpace:
		ev = session.Space{}
	case keyboard.KeyArrowUp:
		ev = session.ShiftPress{}
	case keyboard.KeyArrowRight:
		ev = session.NextLanguage{}
	case keyboard.KeyArrowLeft:
		ev = session.PrevLanguage{}
	case keyboard.KeyCtrlE:
		h.layer = layerSecondary
		return false
	case keyboard.KeyCtrlT:
		h.layer = layerTertiary
		return false
	default:
		if ch == 0 {
			return false
		}
		ev = h.characterEvent(ch)
	}

	if ev == nil {
		return false
	}
	h.events++
	h.session.Handle(ev)
	return false
}

func (h *InputHandler) characterEvent(ch rune) session.Event {
	if ch >= '1' && ch <= '9' {
		n := int(ch - '1')
		if suggestions := h.session.Suggestions(); n < len(suggestions) {
			return session.AcceptSuggestion{Word: suggestions[n]}
		}
	}

	row, col, onGrid := language.PrimaryGrid.Find(string(unicode.ToLower(ch)))
	layer := h.layer
	h.layer = layerPrimary

	switch {
	case onGrid && layer == layerSecondary:
		return session.SecondaryKey{Row: row, Col: col}
	case onGrid && layer == layerTertiary:
		return session.TertiaryKey{Row: row, Col: col}
	case onGrid && unicode.IsLower(ch):
		return session.CharacterKey{Row: row, Col: col}
	}
	return session.TypeText{Text: string(ch)}
}

func (h *InputHandler) redraw() {
	fmt.Fprint(h.out, "\033[H\033[2J")
	fmt.Fprint(h.out, h.view.Render(h.doc.String()))
}

// Text returns the playground document.
func (h *InputHandler) Text() string {
	return h.doc.String()
}
