package session

import (
	"strings"

	"github.com/bastiangx/wordkey/pkg/cursor"
)

// Buffer is an in-memory Document with the cursor at the end of the text.
type Buffer struct {
	text strings.Builder
}

// NewBuffer creates a buffer holding text.
func NewBuffer(text string) *Buffer {
	b := &Buffer{}
	b.text.WriteString(text)
	return b
}

func (b *Buffer) TextBeforeCursor() string {
	return b.text.String()
}

func (b *Buffer) InsertText(text string) {
	b.text.WriteString(text)
}

// DeleteBackward removes count user-perceived characters.
func (b *Buffer) DeleteBackward(count int) {
	b.Reset(cursor.TrimGraphemes(b.text.String(), count))
}

// Reset replaces the whole text.
func (b *Buffer) Reset(text string) {
	b.text.Reset()
	b.text.WriteString(text)
}

func (b *Buffer) String() string {
	return b.text.String()
}
