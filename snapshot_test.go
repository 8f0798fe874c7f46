package vtcore

import "testing"

func TestSnapshotText(t *testing.T) {
	term := New(10, 3)
	term.WriteString("Hello")
	term.WriteString("\x1b[2;1H")
	term.WriteString("World")

	snap := term.Snapshot(SnapshotDetailText)

	if snap.Size.Rows != 3 || snap.Size.Cols != 10 {
		t.Fatalf("Size = %+v, want {3 10}", snap.Size)
	}
	if len(snap.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(snap.Lines))
	}
	if snap.Lines[0].Text != "Hello" {
		t.Errorf("Lines[0].Text = %q, want %q", snap.Lines[0].Text, "Hello")
	}
	if snap.Lines[1].Text != "World" {
		t.Errorf("Lines[1].Text = %q, want %q", snap.Lines[1].Text, "World")
	}
	if snap.Lines[0].Segments != nil || snap.Lines[0].Cells != nil {
		t.Error("text detail should not populate segments or cells")
	}
}

func TestSnapshotCursor(t *testing.T) {
	term := New(10, 3)
	term.WriteString("\x1b[2;5H")

	snap := term.Snapshot(SnapshotDetailText)
	if snap.Cursor.Row != 1 || snap.Cursor.Col != 4 {
		t.Errorf("Cursor = %+v, want row=1 col=4", snap.Cursor)
	}
	if !snap.Cursor.Visible {
		t.Error("cursor should default to visible")
	}
}

func TestSnapshotStyledSegments(t *testing.T) {
	term := New(10, 1)
	term.WriteString("\x1b[1mAB\x1b[0mCD")

	snap := term.Snapshot(SnapshotDetailStyled)
	segs := snap.Lines[0].Segments
	if len(segs) < 2 {
		t.Fatalf("expected at least 2 segments, got %d: %+v", len(segs), segs)
	}
	if !segs[0].Attributes.Bold {
		t.Error("first segment should be bold")
	}
	if segs[0].Text != "AB" {
		t.Errorf("first segment text = %q, want %q", segs[0].Text, "AB")
	}
}

func TestSnapshotFullCellsMarkContinuation(t *testing.T) {
	term := New(10, 1)
	term.WriteString("語A")

	snap := term.Snapshot(SnapshotDetailFull)
	cells := snap.Lines[0].Cells
	if len(cells) != 10 {
		t.Fatalf("len(Cells) = %d, want 10", len(cells))
	}
	if !cells[1].Continuation {
		t.Error("cell 1 should be marked as a wide-char continuation")
	}
	if cells[2].Char != "A" {
		t.Errorf("cells[2].Char = %q, want %q", cells[2].Char, "A")
	}
}

func TestSnapshotColorHex(t *testing.T) {
	term := New(5, 1)
	term.WriteString("\x1b[31mX")

	snap := term.Snapshot(SnapshotDetailFull)
	if snap.Lines[0].Cells[0].Fg != "#aa0000" {
		t.Errorf("Fg = %q, want #aa0000", snap.Lines[0].Cells[0].Fg)
	}
}
