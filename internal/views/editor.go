package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"rhystmorgan/waLink/internal/composer"
)

// MessageEditor is a multi-line text buffer with a caret and a selection.
// Positions are rune offsets. anchor is -1 when nothing is selected.
type MessageEditor struct {
	runes       []rune
	cursor      int
	anchor      int
	focused     bool
	Placeholder string
}

func NewMessageEditor() *MessageEditor {
	return &MessageEditor{anchor: -1, Placeholder: "Type your message..."}
}

func (e *MessageEditor) Value() string {
	return string(e.runes)
}

// SetValue replaces the buffer and moves the caret to the end.
func (e *MessageEditor) SetValue(s string) {
	e.Apply(composer.ApplyTemplate(s))
}

func (e *MessageEditor) Focus() {
	e.focused = true
}

func (e *MessageEditor) Blur() {
	e.focused = false
}

func (e *MessageEditor) Focused() bool {
	return e.focused
}

// Selection returns the selected range, collapsed to the caret when nothing is
// selected. An unfocused editor has no addressable cursor and reports NoCursor.
func (e *MessageEditor) Selection() (int, int) {
	if !e.focused {
		return composer.NoCursor, composer.NoCursor
	}
	if e.anchor < 0 || e.anchor == e.cursor {
		return e.cursor, e.cursor
	}
	if e.anchor < e.cursor {
		return e.anchor, e.cursor
	}
	return e.cursor, e.anchor
}

// Apply loads the result of a composer transform, restoring its selection.
func (e *MessageEditor) Apply(edit composer.Edit) {
	e.runes = []rune(edit.Message)
	e.cursor = clamp(edit.SelectionEnd, 0, len(e.runes))
	e.anchor = -1
	if edit.SelectionStart != edit.SelectionEnd {
		e.anchor = clamp(edit.SelectionStart, 0, len(e.runes))
	}
}

// Wrap surrounds the selection with marker. Unfocused, the markers are appended.
func (e *MessageEditor) Wrap(marker string) {
	start, end := e.Selection()
	e.Apply(composer.WrapSelection(e.Value(), start, end, marker))
}

func (e *MessageEditor) Insert(text string) {
	start, end := e.Selection()
	e.Apply(composer.InsertAtCursor(e.Value(), start, end, text))
}

func (e *MessageEditor) Update(msg tea.Msg) {
	if !e.focused {
		return
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return
	}

	switch key.Type {
	case tea.KeyRunes:
		e.Insert(string(key.Runes))
	case tea.KeySpace:
		e.Insert(" ")
	case tea.KeyEnter:
		e.Insert("\n")
	case tea.KeyBackspace:
		e.deleteBackward()
	case tea.KeyDelete:
		e.deleteForward()
	case tea.KeyLeft:
		e.move(e.cursor-1, false)
	case tea.KeyRight:
		e.move(e.cursor+1, false)
	case tea.KeyShiftLeft:
		e.move(e.cursor-1, true)
	case tea.KeyShiftRight:
		e.move(e.cursor+1, true)
	case tea.KeyUp:
		e.move(e.verticalTarget(-1), false)
	case tea.KeyDown:
		e.move(e.verticalTarget(1), false)
	case tea.KeyHome:
		e.move(e.lineStart(e.cursor), false)
	case tea.KeyEnd:
		e.move(e.lineEnd(e.cursor), false)
	case tea.KeyShiftHome:
		e.move(e.lineStart(e.cursor), true)
	case tea.KeyShiftEnd:
		e.move(e.lineEnd(e.cursor), true)
	case tea.KeyCtrlA:
		e.anchor = 0
		e.cursor = len(e.runes)
	case tea.KeyEsc:
		e.anchor = -1
	}
}

func (e *MessageEditor) View() string {
	if len(e.runes) == 0 && !e.focused {
		return mutedStyle.Render(e.Placeholder)
	}

	start, end := e.Selection()
	var b strings.Builder
	for i := 0; i <= len(e.runes); i++ {
		atCursor := e.focused && i == e.cursor

		if i == len(e.runes) {
			if atCursor {
				b.WriteString(cursorStyle.Render(" "))
			}
			break
		}

		r := e.runes[i]
		if r == '\n' {
			if atCursor {
				b.WriteString(cursorStyle.Render(" "))
			}
			b.WriteRune('\n')
			continue
		}

		switch {
		case atCursor:
			b.WriteString(cursorStyle.Render(string(r)))
		case e.focused && i >= start && i < end:
			b.WriteString(highlightStyle.Render(string(r)))
		default:
			b.WriteString(textStyle.Render(string(r)))
		}
	}
	return b.String()
}

func (e *MessageEditor) move(to int, extend bool) {
	to = clamp(to, 0, len(e.runes))
	if extend {
		if e.anchor < 0 {
			e.anchor = e.cursor
		}
	} else {
		e.anchor = -1
	}
	e.cursor = to
}

func (e *MessageEditor) deleteBackward() {
	start, end := e.Selection()
	if start == end {
		if start == 0 {
			return
		}
		start--
	}
	e.Apply(composer.InsertAtCursor(e.Value(), start, end, ""))
}

func (e *MessageEditor) deleteForward() {
	start, end := e.Selection()
	if start == end {
		if end == len(e.runes) {
			return
		}
		end++
	}
	e.Apply(composer.InsertAtCursor(e.Value(), start, end, ""))
}

func (e *MessageEditor) lineStart(pos int) int {
	for pos > 0 && e.runes[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (e *MessageEditor) lineEnd(pos int) int {
	for pos < len(e.runes) && e.runes[pos] != '\n' {
		pos++
	}
	return pos
}

// verticalTarget keeps the column when moving one line up (dir < 0) or down.
func (e *MessageEditor) verticalTarget(dir int) int {
	start := e.lineStart(e.cursor)
	column := e.cursor - start

	var target int
	if dir < 0 {
		if start == 0 {
			return 0
		}
		target = e.lineStart(start - 1)
	} else {
		end := e.lineEnd(e.cursor)
		if end == len(e.runes) {
			return len(e.runes)
		}
		target = end + 1
	}

	return min(target+column, e.lineEnd(target))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
