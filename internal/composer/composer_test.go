package composer

import "testing"

func TestInsertAtCursor(t *testing.T) {
	tests := []struct {
		name    string
		message string
		start   int
		end     int
		text    string
		want    string
		caret   int
	}{
		{"insert at caret", "hello world", 5, 5, ",", "hello, world", 6},
		{"replace selection", "hello world", 6, 11, "there", "hello there", 11},
		{"insert at start", "world", 0, 0, "hello ", "hello world", 6},
		{"empty message", "", 0, 0, "hi", "hi", 2},
		{"reversed range", "abcdef", 4, 2, "X", "abXef", 3},
		{"end past length", "abc", 1, 99, "Z", "aZ", 2},
		{"no cursor appends", "abc", NoCursor, NoCursor, "de", "abcde", 5},
		{"multibyte offsets", "héllo", 1, 2, "e", "hello", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InsertAtCursor(tt.message, tt.start, tt.end, tt.text)
			if got.Message != tt.want {
				t.Errorf("Expected message %q, got %q", tt.want, got.Message)
			}
			if got.Caret() != tt.caret || got.SelectionStart != got.SelectionEnd {
				t.Errorf("Expected collapsed caret at %d, got [%d,%d)", tt.caret, got.SelectionStart, got.SelectionEnd)
			}
		})
	}
}

func TestWrapSelection(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		start    int
		end      int
		marker   string
		want     string
		selStart int
		selEnd   int
	}{
		{"wrap whole", "hello", 0, 5, "*", "*hello*", 1, 6},
		{"wrap word", "say hello now", 4, 9, "_", "say _hello_ now", 5, 10},
		{"empty selection", "ab", 1, 1, "~", "a~~b", 2, 2},
		{"multi rune marker", "x", 0, 1, "```", "```x```", 3, 4},
		{"no cursor", "hi", NoCursor, NoCursor, "*", "hi**", 3, 3},
		{"no cursor empty message", "", NoCursor, NoCursor, "_", "__", 1, 1},
		{"unicode selection", "añb", 1, 2, "*", "a*ñ*b", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapSelection(tt.message, tt.start, tt.end, tt.marker)
			if got.Message != tt.want {
				t.Errorf("Expected message %q, got %q", tt.want, got.Message)
			}
			if got.SelectionStart != tt.selStart || got.SelectionEnd != tt.selEnd {
				t.Errorf("Expected selection [%d,%d), got [%d,%d)", tt.selStart, tt.selEnd, got.SelectionStart, got.SelectionEnd)
			}
		})
	}
}

func TestWrapSelectionRewrap(t *testing.T) {
	first := WrapSelection("hello", 0, 5, MarkerBold)
	second := WrapSelection(first.Message, first.SelectionStart, first.SelectionEnd, MarkerItalic)

	if second.Message != "*_hello_*" {
		t.Errorf("Expected *_hello_*, got %q", second.Message)
	}
	if second.SelectionStart != 2 || second.SelectionEnd != 7 {
		t.Errorf("Expected selection [2,7), got [%d,%d)", second.SelectionStart, second.SelectionEnd)
	}
}

func TestApplyTemplate(t *testing.T) {
	got := ApplyTemplate("I would like to schedule an appointment.")
	if got.Message != "I would like to schedule an appointment." {
		t.Errorf("Unexpected message %q", got.Message)
	}
	if got.Caret() != 40 {
		t.Errorf("Expected caret 40, got %d", got.Caret())
	}

	empty := ApplyTemplate("")
	if empty.Message != "" || empty.Caret() != 0 {
		t.Errorf("Expected empty edit, got %+v", empty)
	}
}
