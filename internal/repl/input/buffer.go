package input

import (
	"slices"
	"unicode"
)

// Buffer holds the text content and cursor position for line input. Text is
// stored as runes so cursor movement and editing are character-based.
type Buffer struct {
	text []rune
	pos  int
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Text returns the current content as a string.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Len returns the content length in runes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Pos returns the cursor position.
func (b *Buffer) Pos() int {
	return b.pos
}

// SetText replaces the content and moves the cursor to the end.
func (b *Buffer) SetText(text string) {
	b.text = []rune(text)
	b.pos = len(b.text)
}

// Clear removes all content and resets the cursor.
func (b *Buffer) Clear() {
	b.text = nil
	b.pos = 0
}

// SetPos moves the cursor, clamping to the valid range.
func (b *Buffer) SetPos(pos int) {
	b.pos = min(max(pos, 0), len(b.text))
}

// CursorStart moves the cursor to the start of the line.
func (b *Buffer) CursorStart() {
	b.pos = 0
}

// CursorEnd moves the cursor to the end of the line.
func (b *Buffer) CursorEnd() {
	b.pos = len(b.text)
}

// InsertRunes inserts runes at the cursor and advances past them.
func (b *Buffer) InsertRunes(runes []rune) {
	if len(runes) == 0 {
		return
	}
	b.text = slices.Insert(b.text, b.pos, runes...)
	b.pos += len(runes)
}

// Insert inserts a string at the cursor.
func (b *Buffer) Insert(text string) {
	b.InsertRunes([]rune(text))
}

// DeleteCharBackward removes the character before the cursor. It returns
// true if a character was removed.
func (b *Buffer) DeleteCharBackward() bool {
	if b.pos == 0 {
		return false
	}
	b.text = slices.Delete(b.text, b.pos-1, b.pos)
	b.pos--
	return true
}

// DeleteCharForward removes the character at the cursor. It returns true if
// a character was removed.
func (b *Buffer) DeleteCharForward() bool {
	if b.pos >= len(b.text) {
		return false
	}
	b.text = slices.Delete(b.text, b.pos, b.pos+1)
	return true
}

// DeleteBeforeCursor removes everything before the cursor.
func (b *Buffer) DeleteBeforeCursor() {
	b.text = slices.Delete(b.text, 0, b.pos)
	b.pos = 0
}

// DeleteAfterCursor removes everything after the cursor.
func (b *Buffer) DeleteAfterCursor() {
	b.text = b.text[:b.pos]
}

// DeleteWordBackward removes the word to the left of the cursor.
func (b *Buffer) DeleteWordBackward() {
	start := b.prevWordStart()
	b.text = slices.Delete(b.text, start, b.pos)
	b.pos = start
}

// DeleteWordForward removes the word to the right of the cursor.
func (b *Buffer) DeleteWordForward() {
	end := b.nextWordEnd()
	b.text = slices.Delete(b.text, b.pos, end)
}

// WordBackward moves the cursor one word to the left.
func (b *Buffer) WordBackward() {
	b.pos = b.prevWordStart()
}

// WordForward moves the cursor one word to the right.
func (b *Buffer) WordForward() {
	b.pos = b.nextWordEnd()
}

// prevWordStart finds the start of the word left of the cursor: skip any
// whitespace, then the word itself.
func (b *Buffer) prevWordStart() int {
	i := b.pos
	for i > 0 && unicode.IsSpace(b.text[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(b.text[i-1]) {
		i--
	}
	return i
}

// nextWordEnd finds the end of the word right of the cursor.
func (b *Buffer) nextWordEnd() int {
	i := b.pos
	for i < len(b.text) && unicode.IsSpace(b.text[i]) {
		i++
	}
	for i < len(b.text) && !unicode.IsSpace(b.text[i]) {
		i++
	}
	return i
}

// TextBeforeCursor returns the text left of the cursor.
func (b *Buffer) TextBeforeCursor() string {
	return string(b.text[:b.pos])
}

// TextAfterCursor returns the text right of the cursor.
func (b *Buffer) TextAfterCursor() string {
	return string(b.text[b.pos:])
}

// RuneAtCursor returns the rune under the cursor, or 0 at end of line.
func (b *Buffer) RuneAtCursor() rune {
	if b.pos >= len(b.text) {
		return 0
	}
	return b.text[b.pos]
}
