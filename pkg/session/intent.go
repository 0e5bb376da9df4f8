package session

import (
	"fmt"

	"github.com/bastiangx/wordkey/pkg/language"
	"github.com/bastiangx/wordkey/pkg/shift"
)

// IntentKind tells which edit an EditIntent requests.
type IntentKind int

const (
	DeleteBackward IntentKind = iota
	InsertText
)

// EditIntent is one edit requested of the host document.
// Count is in user-perceived characters.
type EditIntent struct {
	Kind  IntentKind
	Count int
	Text  string
}

func DeleteIntent(count int) EditIntent   { return EditIntent{Kind: DeleteBackward, Count: count} }
func InsertIntent(text string) EditIntent { return EditIntent{Kind: InsertText, Text: text} }

func (e EditIntent) String() string {
	if e.Kind == DeleteBackward {
		return fmt.Sprintf("delete(%d)", e.Count)
	}
	return fmt.Sprintf("insert(%q)", e.Text)
}

// Document is the host text buffer. The session only ever touches the text
// before the cursor.
type Document interface {
	TextBeforeCursor() string
	InsertText(text string)
	DeleteBackward(count int)
}

// KeyLabels is what every key currently shows.
type KeyLabels struct {
	Primary   language.Grid
	Secondary language.Grid
	Tertiary  language.Grid
}

// Presenter receives push notifications for the view layer.
type Presenter interface {
	RenderSuggestions(words []string)
	RenderCaseChange(mode shift.Mode)
	RenderActiveLanguage(name string)
	RenderKeyLabels(labels KeyLabels)
}

type nopPresenter struct{}

func (nopPresenter) RenderSuggestions([]string)  {}
func (nopPresenter) RenderCaseChange(shift.Mode) {}
func (nopPresenter) RenderActiveLanguage(string) {}
func (nopPresenter) RenderKeyLabels(KeyLabels)   {}
