package vtcore

import "testing"

func TestExtractJoinsSoftWrappedScrollbackLinesWithoutNewline(t *testing.T) {
	term := New(10, 1)
	term.WriteString("foo")
	term.grid.SetWrapped(0, false) // "foo" scrolls off as a hard newline
	term.WriteString("\r\nbar")
	term.grid.SetWrapped(0, true) // "bar" scrolls off as a soft-wrap continuation
	term.WriteString("\r\nbaz")

	if term.ScrollbackLen() != 2 {
		t.Fatalf("expected 2 scrollback lines, got %d", term.ScrollbackLen())
	}

	sel := Selection{Start: BufferPos{Line: 0, Col: 0}, End: BufferPos{Line: 1, Col: 2}}
	got := term.ExtractText(sel)
	if got != "foobar" {
		t.Errorf("extractText = %q, want %q", got, "foobar")
	}
}

func TestExtractSpansScrollbackAndViewportWithNewlines(t *testing.T) {
	term := New(10, 2)
	term.WriteString("aa\r\nbb\r\ncc\r\ndd")

	if term.ScrollbackLen() != 2 {
		t.Fatalf("expected 2 scrollback lines, got %d", term.ScrollbackLen())
	}

	sel := Selection{Start: BufferPos{Line: 1, Col: 0}, End: BufferPos{Line: 3, Col: 1}}
	got := term.ExtractText(sel)
	want := "bb\ncc\ndd"
	if got != want {
		t.Errorf("extractText = %q, want %q", got, want)
	}
}

func TestSelectWordTunedForPaths(t *testing.T) {
	term := New(40, 1)
	term.WriteString("foo-bar/baz")

	sel := term.SelectWord(BufferPos{Line: 0, Col: 4})
	got := term.ExtractText(sel)
	if got != "foo-bar/baz" {
		t.Errorf("word selection = %q, want %q", got, "foo-bar/baz")
	}
}

func TestSelectWordStopsAtWhitespace(t *testing.T) {
	term := New(40, 1)
	term.WriteString("abc def")

	sel := term.SelectWord(BufferPos{Line: 0, Col: 5})
	got := term.ExtractText(sel)
	if got != "def" {
		t.Errorf("word selection = %q, want %q", got, "def")
	}
}

func TestSelectWordWhitespaceRun(t *testing.T) {
	term := New(40, 1)
	term.WriteString("abc   def")

	sel := term.SelectWord(BufferPos{Line: 0, Col: 4})
	if sel.Start.Col != 3 || sel.End.Col != 5 {
		t.Errorf("whitespace selection = %+v, want cols [3,5]", sel)
	}
}

func TestSelectLineSelectsWholeRow(t *testing.T) {
	term := New(10, 1)
	term.WriteString("hi")

	sel := term.SelectLine(0)
	if sel.Start.Col != 0 || sel.End.Col != 9 {
		t.Errorf("line selection = %+v, want cols [0,9]", sel)
	}
}

func TestSelectCharExpandsToWideSpan(t *testing.T) {
	term := New(10, 1)
	term.WriteString("中")

	// Probing the continuation column should expand back to the lead.
	sel := term.SelectChar(BufferPos{Line: 0, Col: 1})
	if sel.Start.Col != 0 || sel.End.Col != 1 {
		t.Errorf("wide char selection = %+v, want cols [0,1]", sel)
	}

	text := term.ExtractText(sel)
	if text != "中" {
		t.Errorf("extracted wide char = %q, want %q", text, "中")
	}
}

func TestSelectCharNarrowIsSingleColumn(t *testing.T) {
	term := New(10, 1)
	term.WriteString("a")

	sel := term.SelectChar(BufferPos{Line: 0, Col: 0})
	if sel.Start.Col != 0 || sel.End.Col != 0 {
		t.Errorf("narrow char selection = %+v, want cols [0,0]", sel)
	}
}

func TestSelectionRoundTripMatchesRowText(t *testing.T) {
	term := New(20, 3)
	term.WriteString("Hello, World!")

	sel := term.SelectLine(term.ScrollbackLen())
	got := term.ExtractText(sel)
	if got != term.RowText(0) {
		t.Errorf("round-trip extract = %q, want %q", got, term.RowText(0))
	}
}

func TestNormalizedSwapsOutOfOrderEndpoints(t *testing.T) {
	sel := Selection{Start: BufferPos{Line: 3, Col: 1}, End: BufferPos{Line: 1, Col: 0}}
	norm := sel.Normalized()
	if norm.Start != (BufferPos{Line: 1, Col: 0}) || norm.End != (BufferPos{Line: 3, Col: 1}) {
		t.Errorf("normalized = %+v, want swapped endpoints", norm)
	}
}

func TestExtractTextTrimsTrailingSpaces(t *testing.T) {
	term := New(10, 1)
	term.WriteString("hi")

	sel := term.SelectLine(0)
	got := term.ExtractText(sel)
	if got != "hi" {
		t.Errorf("extractText = %q, want %q (trailing spaces trimmed)", got, "hi")
	}
}

func TestFromViewportAddsScrollbackOffset(t *testing.T) {
	term := New(10, 2)
	term.WriteString("aa\r\nbb\r\ncc")

	pos := FromViewport(term.ScrollbackLen(), 1, 2)
	if pos.Line != term.ScrollbackLen()+1 {
		t.Errorf("FromViewport line = %d, want %d", pos.Line, term.ScrollbackLen()+1)
	}
}
