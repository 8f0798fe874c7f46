package vtcore

import "testing"

func cellsOf(s string) []Cell {
	cells := make([]Cell, len(s))
	for i, r := range s {
		cells[i] = Cell{Char: r}
	}
	return cells
}

func TestRingScrollbackEvictsFromFront(t *testing.T) {
	sb := NewScrollback(3)
	sb.Push(cellsOf("aaa"), false)
	sb.Push(cellsOf("bbb"), false)
	sb.Push(cellsOf("ccc"), false)
	sb.Push(cellsOf("ddd"), false)

	if sb.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", sb.Len())
	}
	line, ok := sb.Line(0)
	if !ok || rowToText(line) != "bbb" {
		t.Errorf("Line(0) = %q, %v, want %q, true", rowToText(line), ok, "bbb")
	}
}

func TestRingScrollbackUnboundedWhenMaxZero(t *testing.T) {
	sb := NewScrollback(0)
	for i := 0; i < 50; i++ {
		sb.Push(cellsOf("x"), false)
	}
	if sb.Len() != 50 {
		t.Errorf("Len() = %d, want 50", sb.Len())
	}
}

func TestRingScrollbackWrappedFlag(t *testing.T) {
	sb := NewScrollback(10)
	sb.Push(cellsOf("foo"), false)
	sb.Push(cellsOf("bar"), true)

	if sb.Wrapped(0) {
		t.Error("row 0 should not be marked wrapped")
	}
	if !sb.Wrapped(1) {
		t.Error("row 1 should be marked wrapped")
	}
}

func TestRingScrollbackClear(t *testing.T) {
	sb := NewScrollback(10)
	sb.Push(cellsOf("foo"), false)
	sb.Clear()
	if sb.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", sb.Len())
	}
	if _, ok := sb.Line(0); ok {
		t.Error("Line(0) should report false after Clear()")
	}
}

func TestRingScrollbackSetMaxLinesEvictsImmediately(t *testing.T) {
	sb := NewScrollback(0)
	for i := 0; i < 5; i++ {
		sb.Push(cellsOf("x"), false)
	}
	sb.SetMaxLines(2)
	if sb.Len() != 2 {
		t.Errorf("Len() after shrinking max = %d, want 2", sb.Len())
	}
}

func TestRingScrollbackLineOutOfRange(t *testing.T) {
	sb := NewScrollback(10)
	sb.Push(cellsOf("a"), false)
	if _, ok := sb.Line(-1); ok {
		t.Error("Line(-1) should report false")
	}
	if _, ok := sb.Line(1); ok {
		t.Error("Line(1) should report false for a single-row buffer")
	}
}

func TestWithScrollbackProviderReplacesDefault(t *testing.T) {
	custom := NewScrollback(2)
	term := New(5, 1, WithScrollbackProvider(custom))
	term.WriteString("A\r\nB\r\nC")

	if term.ScrollbackLen() != custom.Len() {
		t.Errorf("Terminal ScrollbackLen() = %d, custom provider Len() = %d", term.ScrollbackLen(), custom.Len())
	}
	if term.ScrollbackLen() != 2 {
		t.Errorf("ScrollbackLen() = %d, want 2 (bounded by custom provider)", term.ScrollbackLen())
	}
}

func TestWithMaxScrollbackBoundsDefaultProvider(t *testing.T) {
	term := New(5, 1, WithMaxScrollback(1))
	term.WriteString("A\r\nB\r\nC")
	if term.ScrollbackLen() != 1 {
		t.Errorf("ScrollbackLen() = %d, want 1", term.ScrollbackLen())
	}
	line, ok := term.ScrollbackLine(0)
	if !ok || line != "B" {
		t.Errorf("ScrollbackLine(0) = %q, %v, want %q, true", line, ok, "B")
	}
}
