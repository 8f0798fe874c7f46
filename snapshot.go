package vtcore

import (
	"fmt"
	"image/color"
)

// SnapshotDetail specifies the level of detail in a snapshot.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text with style segments per line.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns full cell-by-cell data.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot is a JSON-friendly capture of a terminal screen.
type Snapshot struct {
	Size   SnapshotSize   `json:"size"`
	Cursor SnapshotCursor `json:"cursor"`
	Lines  []SnapshotLine `json:"lines"`
}

// SnapshotSize holds terminal dimensions.
type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SnapshotCursor holds cursor state.
type SnapshotCursor struct {
	Row     int  `json:"row"`
	Col     int  `json:"col"`
	Visible bool `json:"visible"`
}

// SnapshotLine represents a single line in the snapshot.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
	Cells    []SnapshotCell    `json:"cells,omitempty"`
}

// SnapshotSegment represents a run of cells sharing one style.
type SnapshotSegment struct {
	Text       string        `json:"text"`
	Fg         string        `json:"fg,omitempty"`
	Bg         string        `json:"bg,omitempty"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
}

// SnapshotCell represents a single cell with full attributes.
type SnapshotCell struct {
	Char       string        `json:"char"`
	Fg         string        `json:"fg"`
	Bg         string        `json:"bg"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Continuation bool        `json:"continuation,omitempty"`
}

// SnapshotAttrs holds text formatting attributes.
type SnapshotAttrs struct {
	Bold          bool `json:"bold,omitempty"`
	Dim           bool `json:"dim,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Blink         bool `json:"blink,omitempty"`
	Reverse       bool `json:"reverse,omitempty"`
	Hidden        bool `json:"hidden,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
}

// Snapshot creates a snapshot of the current terminal state. detail
// controls how much per-cell information is attached to each line.
func (t *Terminal) Snapshot(detail SnapshotDetail) *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	width, height := t.grid.Width(), t.grid.Height()
	snap := &Snapshot{
		Size: SnapshotSize{Rows: height, Cols: width},
		Cursor: SnapshotCursor{
			Row:     t.cursorY,
			Col:     t.cursorX,
			Visible: t.modes.cursorVisible,
		},
		Lines: make([]SnapshotLine, height),
	}

	for y := 0; y < height; y++ {
		snap.Lines[y] = t.snapshotLine(y, detail)
	}
	return snap
}

func (t *Terminal) snapshotLine(y int, detail SnapshotDetail) SnapshotLine {
	line := SnapshotLine{Text: rowToText(t.grid.Row(y))}

	switch detail {
	case SnapshotDetailStyled:
		line.Segments = t.lineToSegments(y)
	case SnapshotDetailFull:
		line.Cells = t.lineToCells(y)
	}
	return line
}

func (t *Terminal) lineToSegments(y int) []SnapshotSegment {
	row := t.grid.Row(y)
	var segments []SnapshotSegment
	var current *SnapshotSegment
	var chars []rune

	flush := func() {
		if current != nil && len(chars) > 0 {
			current.Text = string(chars)
			segments = append(segments, *current)
		}
	}

	for _, cell := range row {
		if cell.IsContinuation() {
			continue
		}
		fg := colorToHex(cell.Style.Fg)
		bg := colorToHex(cell.Style.Bg)
		attrs := styleToAttrs(cell.Style)

		if current == nil || current.Fg != fg || current.Bg != bg || current.Attributes != attrs {
			flush()
			current = &SnapshotSegment{Fg: fg, Bg: bg, Attributes: attrs}
			chars = nil
		}
		chars = append(chars, cell.Char)
	}
	flush()
	return segments
}

func (t *Terminal) lineToCells(y int) []SnapshotCell {
	row := t.grid.Row(y)
	cells := make([]SnapshotCell, len(row))
	for x, cell := range row {
		ch := cell.Char
		if cell.IsContinuation() {
			ch = ' '
		}
		cells[x] = SnapshotCell{
			Char:         string(ch),
			Fg:           colorToHex(cell.Style.Fg),
			Bg:           colorToHex(cell.Style.Bg),
			Attributes:   styleToAttrs(cell.Style),
			Continuation: cell.IsContinuation(),
		}
	}
	return cells
}

func styleToAttrs(s Style) SnapshotAttrs {
	return SnapshotAttrs{
		Bold:          s.Bold,
		Dim:           s.Dim,
		Italic:        s.Italic,
		Underline:     s.Underline,
		Blink:         s.Blink,
		Reverse:       s.Reverse,
		Hidden:        s.Hidden,
		Strikethrough: s.Strikethrough,
	}
}

func colorToHex(c *color.RGBA) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
