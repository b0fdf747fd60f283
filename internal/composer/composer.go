// Package composer implements the text transforms behind the message editor.
// Offsets are rune offsets into the message.
package composer

// NoCursor as a start offset means the editor has no addressable selection.
const NoCursor = -1

// Formatting markers understood by WhatsApp.
const (
	MarkerBold          = "*"
	MarkerItalic        = "_"
	MarkerStrikethrough = "~"
)

// Edit is the result of a transform: the new message and the selection the
// editor should restore. A collapsed selection is a caret.
type Edit struct {
	Message        string
	SelectionStart int
	SelectionEnd   int
}

// Caret returns the caret position of a collapsed edit.
func (e Edit) Caret() int {
	return e.SelectionEnd
}

// InsertAtCursor replaces message[start:end) with text and puts the caret after it.
// With start == NoCursor the text is appended.
func InsertAtCursor(message string, start, end int, text string) Edit {
	runes := []rune(message)
	inserted := []rune(text)

	if start == NoCursor {
		caret := len(runes) + len(inserted)
		return Edit{Message: message + text, SelectionStart: caret, SelectionEnd: caret}
	}

	start, end = clampRange(start, end, len(runes))
	caret := start + len(inserted)
	return Edit{
		Message:        splice(runes, start, end, inserted),
		SelectionStart: caret,
		SelectionEnd:   caret,
	}
}

// WrapSelection surrounds message[start:end) with marker on both sides and
// selects the original text inside the new markers. With start == NoCursor a
// pair of markers is appended with the caret between them.
func WrapSelection(message string, start, end int, marker string) Edit {
	runes := []rune(message)
	markerRunes := []rune(marker)

	if start == NoCursor {
		caret := len(runes) + len(markerRunes)
		return Edit{Message: message + marker + marker, SelectionStart: caret, SelectionEnd: caret}
	}

	start, end = clampRange(start, end, len(runes))
	selected := runes[start:end]

	wrapped := make([]rune, 0, len(selected)+2*len(markerRunes))
	wrapped = append(wrapped, markerRunes...)
	wrapped = append(wrapped, selected...)
	wrapped = append(wrapped, markerRunes...)

	selStart := start + len(markerRunes)
	return Edit{
		Message:        splice(runes, start, end, wrapped),
		SelectionStart: selStart,
		SelectionEnd:   selStart + len(selected),
	}
}

// ApplyTemplate replaces the whole message with text, caret at the end.
func ApplyTemplate(text string) Edit {
	caret := len([]rune(text))
	return Edit{Message: text, SelectionStart: caret, SelectionEnd: caret}
}

func clampRange(start, end, length int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	if start > length {
		start = length
	}
	if end > length {
		end = length
	}
	if start > end {
		start, end = end, start
	}
	return start, end
}

func splice(runes []rune, start, end int, replacement []rune) string {
	out := make([]rune, 0, len(runes)-(end-start)+len(replacement))
	out = append(out, runes[:start]...)
	out = append(out, replacement...)
	out = append(out, runes[end:]...)
	return string(out)
}
