// Package session turns keyboard events into document edits.
//
// A Session owns the shift state, the language cycle and the suggestion index
// of one text field. Events are handled one at a time on the caller's
// goroutine; every handled event returns the edits it applied to the Document
// in order. Key repeat is driven by the host: HoldBegin arms it, each Tick
// repeats the held key and HoldEnd disarms it and refreshes suggestions once.
package session

import (
	"github.com/bastiangx/wordkey/pkg/cursor"
	"github.com/bastiangx/wordkey/pkg/language"
	"github.com/bastiangx/wordkey/pkg/shift"
	"github.com/bastiangx/wordkey/pkg/suggest"
	"github.com/charmbracelet/log"
)

// State is the session lifecycle.
type State int

const (
	Uninitialized State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "uninitialized"
}

// DefaultSuggestLimit is the number of suggestions shown.
const DefaultSuggestLimit = 12

// Settings are the tunables a session can change at runtime.
type Settings struct {
	IndentUnit   string
	SuggestLimit int
	// FoldCase also matches lower-case words when capitals are typed, copying
	// the typed capitals onto them.
	FoldCase  bool
	CacheSize int
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		IndentUnit:   cursor.DefaultIndentUnit,
		SuggestLimit: DefaultSuggestLimit,
		FoldCase:     true,
		CacheSize:    suggest.DefaultCacheSize,
	}
}

// Session is the input state of one text field. It is not safe for
// concurrent use.
type Session struct {
	doc       Document
	presenter Presenter
	settings  Settings

	state   State
	cycle   *language.Cycle
	index   *suggest.Index
	shift   *shift.Machine
	planner cursor.Planner
	folder  *suggest.CaseFolder

	holding bool
	held    HoldKey

	suggestions []string
}

// New creates a session editing doc. presenter may be nil.
func New(doc Document, presenter Presenter, cycle *language.Cycle, settings Settings) *Session {
	if presenter == nil {
		presenter = nopPresenter{}
	}
	settings = normalize(settings)

	s := &Session{
		doc:         doc,
		presenter:   presenter,
		settings:    settings,
		cycle:       cycle,
		index:       suggest.NewIndexWithCache(settings.CacheSize),
		shift:       shift.New(cycle.Current().Locale),
		planner:     cursor.NewPlanner(settings.IndentUnit),
		folder:      suggest.NewCaseFolder(cycle.Current().Locale),
		suggestions: []string{},
	}
	s.shift.OnChange(func(mode shift.Mode) {
		s.presenter.RenderCaseChange(mode)
		s.presenter.RenderKeyLabels(s.Labels())
	})
	return s
}

func normalize(settings Settings) Settings {
	def := DefaultSettings()
	if settings.IndentUnit == "" {
		settings.IndentUnit = def.IndentUnit
	}
	if settings.SuggestLimit <= 0 {
		settings.SuggestLimit = def.SuggestLimit
	}
	if settings.CacheSize < 0 {
		settings.CacheSize = 0
	}
	return settings
}

// Activate loads the current language and renders the initial view.
// Calling it again is a no-op.
func (s *Session) Activate() {
	if s.state == Ready {
		return
	}
	s.state = Ready
	s.switchLanguage(s.cycle.Current())
}

// Handle applies ev to the document and returns the edits it made.
// A session that was never activated activates itself first.
func (s *Session) Handle(ev Event) []EditIntent {
	if s.state == Uninitialized {
		s.Activate()
	}

	var out []EditIntent
	emit := func(intent EditIntent) {
		switch intent.Kind {
		case DeleteBackward:
			if intent.Count <= 0 {
				return
			}
			s.doc.DeleteBackward(intent.Count)
		case InsertText:
			if intent.Text == "" {
				return
			}
			s.doc.InsertText(intent.Text)
		}
		out = append(out, intent)
	}

	switch e := ev.(type) {
	case CharacterKey:
		label, ok := language.PrimaryGrid.At(e.Row, e.Col)
		if !ok {
			log.Debugf("Ignoring key outside the grid: %d,%d", e.Row, e.Col)
			return nil
		}
		s.typeCharacters(s.shift.Label(label), emit)

	case TypeText:
		if e.Text == "" {
			return nil
		}
		text := e.Text
		switch s.shift.Mode() {
		case shift.On:
			first, rest := cursor.SplitFirst(text)
			text = s.shift.Label(first) + rest
		case shift.Caps:
			text = s.shift.Label(text)
		}
		s.typeCharacters(text, emit)

	case SecondaryKey:
		s.insertLayer(s.cycle.Current().Secondary, e.Row, e.Col, emit)

	case TertiaryKey:
		s.insertLayer(s.cycle.Current().Tertiary, e.Row, e.Col, emit)

	case ShiftPress:
		s.shift.Press()

	case Delete:
		count := s.planner.Plan(cursor.Derive(s.doc.TextBeforeCursor()), e.Gesture)
		emit(DeleteIntent(count))
		s.refresh()

	case Space:
		s.shift.AutoCapitalize(s.doc.TextBeforeCursor(), s.cycle.Current().AutoCapitalizeAfter)
		emit(InsertIntent(" "))
		s.refresh()

	case Tab:
		emit(InsertIntent(s.settings.IndentUnit))

	case Return:
		emit(InsertIntent("\n"))
		s.refresh()

	case AcceptSuggestion:
		if e.Word == "" {
			return nil
		}
		word := cursor.TrailingWord(s.doc.TextBeforeCursor())
		if word == "" {
			return nil
		}
		emit(DeleteIntent(cursor.Graphemes(word)))
		emit(InsertIntent(e.Word + " "))
		s.setSuggestions([]string{})

	case NextLanguage:
		s.switchLanguage(s.cycle.Increment())

	case PrevLanguage:
		s.switchLanguage(s.cycle.Decrement())

	case HoldBegin:
		s.holding = true
		s.held = e.Key

	case Tick:
		if !s.holding {
			return nil
		}
		switch s.held {
		case HoldDelete:
			emit(DeleteIntent(s.planner.Plan(cursor.Derive(s.doc.TextBeforeCursor()), cursor.Tap)))
		case HoldSpace:
			emit(InsertIntent(" "))
		}

	case HoldEnd:
		if !s.holding {
			return nil
		}
		s.holding = false
		s.refresh()

	default:
		log.Warnf("Unhandled event %T", ev)
	}
	return out
}

// typeCharacters inserts already cased text, then lets a one-shot shift
// lapse and refreshes suggestions.
func (s *Session) typeCharacters(text string, emit func(EditIntent)) {
	emit(InsertIntent(text))
	s.shift.Consume()
	s.refresh()
}

// insertLayer inserts the layer string at row, col. Strings longer than one
// character are words and get a trailing space.
func (s *Session) insertLayer(grid language.Grid, row, col int, emit func(EditIntent)) {
	text, ok := grid.At(row, col)
	if !ok || text == "" {
		return
	}
	if cursor.Graphemes(text) > 1 {
		text += " "
	}
	emit(InsertIntent(text))
	s.refresh()
}

// switchLanguage makes p active. The index, casing rules and labels are all
// updated before anything is rendered so the view never mixes languages.
func (s *Session) switchLanguage(p *language.Profile) {
	s.index.Load(p)
	s.shift.SetLocale(p.Locale)
	s.folder = suggest.NewCaseFolder(p.Locale)
	s.suggestions = s.query()

	log.Debugf("Active language %s (%d/%d), %d words", p.Name, s.cycle.Index()+1, s.cycle.Len(), s.index.Len())
	s.presenter.RenderKeyLabels(s.Labels())
	s.presenter.RenderActiveLanguage(p.Name)
	s.presenter.RenderSuggestions(s.Suggestions())
}

func (s *Session) query() []string {
	word := cursor.TrailingWord(s.doc.TextBeforeCursor())
	if s.settings.FoldCase {
		return s.folder.Suggest(s.index, word, s.settings.SuggestLimit)
	}
	return s.index.Suggest(word, s.settings.SuggestLimit)
}

// Refresh recomputes suggestions for the current document text. Hosts call
// it after replacing the document behind the session's back.
func (s *Session) Refresh() {
	if s.state == Ready {
		s.refresh()
	}
}

func (s *Session) refresh() {
	s.setSuggestions(s.query())
}

func (s *Session) setSuggestions(words []string) {
	s.suggestions = words
	s.presenter.RenderSuggestions(s.Suggestions())
}

// ApplySettings swaps the tunables and refreshes suggestions. A new cache
// size rebuilds the index for the current language.
func (s *Session) ApplySettings(settings Settings) {
	settings = normalize(settings)
	rebuild := settings.CacheSize != s.settings.CacheSize
	s.settings = settings
	s.planner = cursor.NewPlanner(settings.IndentUnit)

	if rebuild {
		s.index = suggest.NewIndexWithCache(settings.CacheSize)
		if s.state == Ready {
			s.index.Load(s.cycle.Current())
		}
	}
	if s.state == Ready {
		s.refresh()
	}
}

// Settings returns the active tunables.
func (s *Session) Settings() Settings {
	return s.settings
}

// Suggestions returns a copy of the displayed suggestions.
func (s *Session) Suggestions() []string {
	return append([]string{}, s.suggestions...)
}

// Shift returns the shift mode.
func (s *Session) Shift() shift.Mode {
	return s.shift.Mode()
}

// Language returns the active profile.
func (s *Session) Language() *language.Profile {
	return s.cycle.Current()
}

// LanguageIndex returns the position of the active profile in the cycle.
func (s *Session) LanguageIndex() int {
	return s.cycle.Index()
}

func (s *Session) State() State {
	return s.state
}

// Holding reports whether key repeat is armed.
func (s *Session) Holding() bool {
	return s.holding
}

// IndexStats exposes the suggestion index statistics.
func (s *Session) IndexStats() map[string]int {
	return s.index.Stats()
}

// Labels returns the current key labels, primary keys cased by shift.
func (s *Session) Labels() KeyLabels {
	p := s.cycle.Current()
	primary := make(language.Grid, len(language.PrimaryGrid))
	for r, row := range language.PrimaryGrid {
		primary[r] = make([]string, len(row))
		for c, cell := range row {
			primary[r][c] = s.shift.Label(cell)
		}
	}
	return KeyLabels{Primary: primary, Secondary: p.Secondary, Tertiary: p.Tertiary}
}
