package vtcore

import (
	"strings"
	"unicode"
)

// BufferPos is a cell position in the combined buffer: scrollback rows
// followed by viewport rows. Line 0 is the oldest scrollback row (or
// viewport row 0 if there is no scrollback); Col is a zero-indexed viewport
// column.
type BufferPos struct {
	Line, Col int
}

// FromViewport converts a viewport (row, col) into a combined-buffer
// position given the current scrollback length.
func FromViewport(scrollbackLen, row, col int) BufferPos {
	return BufferPos{Line: scrollbackLen + row, Col: col}
}

// Selection is an inclusive span over the combined buffer. Its start and
// end need not already be ordered; Normalized restores
// (start.Line, start.Col) <= (end.Line, end.Col).
type Selection struct {
	Start, End BufferPos
}

// Normalized returns s with Start and End swapped if they are out of order.
func (s Selection) Normalized() Selection {
	if less(s.Start, s.End) || s.Start == s.End {
		return s
	}
	return Selection{Start: s.End, End: s.Start}
}

func less(a, b BufferPos) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Col < b.Col
}

type charClass int

const (
	classWhitespace charClass = iota
	classWord
	classOther
)

// isWordChar matches identifiers plus the punctuation that shows up in
// paths and URLs, so double-click selection grabs a whole path or URL
// instead of stopping at every '/' or '.'.
func isWordChar(r rune) bool {
	if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
		return true
	}
	switch r {
	case '_', '-', '.', '/', '\\', ':', '@':
		return true
	}
	return false
}

func classify(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classWhitespace
	case isWordChar(r):
		return classWord
	default:
		return classOther
	}
}

// totalLines returns the combined-buffer line count: scrollback rows plus
// viewport rows.
func (t *Terminal) totalLines() int {
	return t.scrollback.Len() + t.grid.Height()
}

// cellAt returns the cell at a combined-buffer position, or false if line
// or col is out of range.
func (t *Terminal) cellAt(line, col int) (Cell, bool) {
	width := t.grid.Width()
	if col < 0 || col >= width {
		return Cell{}, false
	}
	sbLen := t.scrollback.Len()
	if line < 0 {
		return Cell{}, false
	}
	if line < sbLen {
		row, ok := t.scrollback.Line(line)
		if !ok || col >= len(row) {
			return Cell{}, false
		}
		return row[col], true
	}
	row := line - sbLen
	if row >= t.grid.Height() {
		return Cell{}, false
	}
	return t.grid.Row(row)[col], true
}

// normalizeToWideLead moves col back one position if it holds a
// continuation sentinel, so every probe starts from the lead cell.
func (t *Terminal) normalizeToWideLead(line, col int) int {
	if col <= 0 {
		return col
	}
	cell, ok := t.cellAt(line, col)
	if !ok || !cell.IsContinuation() {
		return col
	}
	return col - 1
}

// wideEndCol returns the last column occupied by the character whose lead
// is at leadCol: leadCol itself for a narrow character, leadCol+1 (clamped
// to the last column) when the next cell is that lead's continuation.
func (t *Terminal) wideEndCol(line, leadCol int) int {
	width := t.grid.Width()
	next := leadCol + 1
	if next >= width {
		return leadCol
	}
	cell, ok := t.cellAt(line, next)
	if ok && cell.IsContinuation() {
		return next
	}
	return leadCol
}

// SelectChar selects exactly the character at pos, expanding to both
// columns of a wide character when pos lands on its lead or continuation.
func (t *Terminal) SelectChar(pos BufferPos) Selection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectChar(pos)
}

func (t *Terminal) selectChar(pos BufferPos) Selection {
	width := t.grid.Width()
	if width == 0 {
		return Selection{Start: pos, End: pos}
	}
	col := clamp(pos.Col, 0, width-1)
	lead := t.normalizeToWideLead(pos.Line, col)
	end := t.wideEndCol(pos.Line, lead)
	return Selection{
		Start: BufferPos{Line: pos.Line, Col: lead},
		End:   BufferPos{Line: pos.Line, Col: end},
	}
}

// SelectLine selects every column of the given combined-buffer line.
func (t *Terminal) SelectLine(line int) Selection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectLine(line)
}

func (t *Terminal) selectLine(line int) Selection {
	width := t.grid.Width()
	total := t.totalLines()
	if width == 0 || total == 0 {
		return Selection{Start: BufferPos{Line: line}, End: BufferPos{Line: line}}
	}
	line = clamp(line, 0, total-1)
	return Selection{
		Start: BufferPos{Line: line, Col: 0},
		End:   BufferPos{Line: line, Col: width - 1},
	}
}

// SelectWord expands left and right from pos while adjacent cells share
// the same character class (word, whitespace, or other).
func (t *Terminal) SelectWord(pos BufferPos) Selection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selectWord(pos)
}

func (t *Terminal) selectWord(pos BufferPos) Selection {
	width := t.grid.Width()
	total := t.totalLines()
	if width == 0 || total == 0 {
		return Selection{Start: pos, End: pos}
	}

	line := clamp(pos.Line, 0, total-1)
	col := clamp(pos.Col, 0, width-1)
	col = t.normalizeToWideLead(line, col)

	seed, _ := t.cellAt(line, col)
	target := classify(charAt(seed))

	startCol := col
	endCol := t.wideEndCol(line, col)

	for startCol > 0 {
		probe := t.normalizeToWideLead(line, startCol-1)
		cell, ok := t.cellAt(line, probe)
		if !ok || classify(charAt(cell)) != target {
			break
		}
		startCol = probe
	}

	for {
		next := endCol + 1
		if next >= width {
			break
		}
		next = t.normalizeToWideLead(line, next)
		cell, ok := t.cellAt(line, next)
		if !ok || classify(charAt(cell)) != target {
			break
		}
		endCol = t.wideEndCol(line, next)
		if endCol >= width-1 {
			break
		}
	}

	return Selection{
		Start: BufferPos{Line: line, Col: startCol},
		End:   BufferPos{Line: line, Col: endCol},
	}
}

func charAt(c Cell) rune {
	if c.IsContinuation() {
		return ' '
	}
	return c.Char
}

// ExtractText renders the textual content of a normalized selection.
// Continuation cells are skipped, each emitted line has trailing ASCII
// spaces trimmed, and consecutive lines are joined without a newline when
// the following scrollback row has its soft-wrap flag set.
func (t *Terminal) ExtractText(sel Selection) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.extractText(sel)
}

func (t *Terminal) extractText(sel Selection) string {
	width := t.grid.Width()
	total := t.totalLines()
	if width == 0 || total == 0 {
		return ""
	}

	sel = sel.Normalized()
	startLine := clamp(sel.Start.Line, 0, total-1)
	endLine := clamp(sel.End.Line, 0, total-1)

	var out strings.Builder
	for line := startLine; line <= endLine; line++ {
		sc := 0
		if line == startLine {
			sc = clamp(sel.Start.Col, 0, width-1)
		}
		ec := width - 1
		if line == endLine {
			ec = clamp(sel.End.Col, 0, width-1)
		}

		var lineBuf strings.Builder
		for col := sc; col <= ec; col++ {
			cell, ok := t.cellAt(line, col)
			if !ok {
				lineBuf.WriteByte(' ')
				continue
			}
			if cell.IsContinuation() {
				continue
			}
			lineBuf.WriteRune(cell.Char)
		}
		out.WriteString(strings.TrimRight(lineBuf.String(), " "))

		if line != endLine && t.shouldInsertNewline(line+1) {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// shouldInsertNewline reports whether a newline belongs between the line
// before nextLine and nextLine. It is false only when nextLine is itself a
// scrollback row flagged as the soft-wrap continuation of its predecessor.
func (t *Terminal) shouldInsertNewline(nextLine int) bool {
	sbLen := t.scrollback.Len()
	if nextLine < sbLen {
		return !t.scrollback.Wrapped(nextLine)
	}
	return true
}
