package vtcore

import (
	"strings"
	"sync"
)

// cursorPos is a saved (x, y) pair, used for DECSC/DECRC and for the
// alternate-screen saved cursor.
type cursorPos struct {
	X, Y int
}

// Terminal is a headless VT100/VT220/xterm state machine: a byte decoder
// driving a cell grid. It has no I/O of its own — callers feed it bytes
// read from a PTY and read its state back through the inspector methods.
//
// All methods are safe for concurrent use; Terminal serializes access with
// an internal RWMutex.
type Terminal struct {
	mu sync.RWMutex

	decoder *Decoder

	grid *Grid

	cursorX, cursorY int
	savedCursor      *cursorPos

	pen Style

	charsets      charsetSlots
	activeCharset int
	singleShift   int // -1 means no pending single shift

	scrollTop, scrollBottom int

	tabStops []bool

	modes  modes
	quirks QuirkSet

	lastChar *rune

	scrollback    ScrollbackProvider
	maxScrollback int

	title string

	altGrid         *Grid
	altCursor       *cursorPos
	alternateActive bool
}

// Option configures a Terminal at construction time.
type Option func(*Terminal)

// WithQuirks installs a non-default quirk profile.
func WithQuirks(q QuirkSet) Option {
	return func(t *Terminal) { t.quirks = q }
}

// WithMaxScrollback bounds the default scrollback provider to n lines.
// A value of 0 means unbounded.
func WithMaxScrollback(n int) Option {
	return func(t *Terminal) {
		t.maxScrollback = n
		t.scrollback.SetMaxLines(n)
	}
}

// WithScrollbackProvider replaces the default bounded ring buffer with a
// caller-supplied ScrollbackProvider.
func WithScrollbackProvider(p ScrollbackProvider) Option {
	return func(t *Terminal) { t.scrollback = p }
}

// New constructs a Terminal with the given size. Panics if width or height
// is less than 1.
func New(width, height int, opts ...Option) *Terminal {
	if width < 1 || height < 1 {
		panic("vtcore: terminal dimensions must be >= 1")
	}

	t := &Terminal{
		grid:          NewGrid(width, height),
		modes:         defaultModes(),
		charsets:      defaultCharsetSlots(),
		activeCharset: 0,
		singleShift:   -1,
		scrollTop:     0,
		scrollBottom:  height - 1,
		tabStops:      defaultTabStops(width),
		scrollback:    NewScrollback(10000),
		maxScrollback: 10000,
	}
	t.decoder = newDecoder(t)

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Feed processes bytes through the decoder. It runs to completion
// synchronously and never fails.
func (t *Terminal) Feed(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.decoder.feed(data)
}

// Write implements io.Writer by feeding p through the decoder.
func (t *Terminal) Write(p []byte) (int, error) {
	t.Feed(p)
	return len(p), nil
}

// WriteString feeds s through the decoder.
func (t *Terminal) WriteString(s string) {
	t.Feed([]byte(s))
}

// ---- inspectors -----------------------------------------------------------

// Width returns the grid's column count.
func (t *Terminal) Width() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.grid.Width()
}

// Height returns the grid's row count.
func (t *Terminal) Height() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.grid.Height()
}

// Cursor returns the cursor's column and row. x may equal Width() — the
// pending-wrap state — which callers must treat as an intent, not a
// drawable position.
func (t *Terminal) Cursor() (x, y int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursorX, t.cursorY
}

// CursorVisible reports the DECTCEM state.
func (t *Terminal) CursorVisible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.modes.cursorVisible
}

// IsAlternateScreen reports whether the alternate screen buffer is active.
func (t *Terminal) IsAlternateScreen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.alternateActive
}

// Title returns the window title last set via OSC 0 or OSC 2.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// CharAt returns the code point at (x, y). Continuation cells report the
// sentinel scalar U+0000, which callers must filter when building text.
func (t *Terminal) CharAt(x, y int) (rune, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cell := t.grid.At(x, y)
	if cell == nil {
		return 0, false
	}
	return cell.Char, true
}

// StyleAt returns the style at (x, y).
func (t *Terminal) StyleAt(x, y int) (Style, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cell := t.grid.At(x, y)
	if cell == nil {
		return Style{}, false
	}
	return cell.Style, true
}

// RowText returns row y's content with continuation cells dropped and
// trailing ASCII spaces trimmed.
func (t *Terminal) RowText(y int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if y < 0 || y >= t.grid.Height() {
		return ""
	}
	return rowToText(t.grid.Row(y))
}

// ScreenText returns every row joined by '\n', each trimmed the same way
// as RowText.
func (t *Terminal) ScreenText() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	height := t.grid.Height()
	lines := make([]string, height)
	for y := 0; y < height; y++ {
		lines[y] = rowToText(t.grid.Row(y))
	}
	return strings.Join(lines, "\n")
}

// ScrollbackLen returns the number of stored scrollback rows.
func (t *Terminal) ScrollbackLen() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scrollback.Len()
}

// ScrollbackLine returns the text of scrollback row idx (0 is the oldest),
// using the same trimming/continuation rules as RowText.
func (t *Terminal) ScrollbackLine(idx int) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	cells, ok := t.scrollback.Line(idx)
	if !ok {
		return "", false
	}
	return rowToText(cells), true
}

func rowToText(cells []Cell) string {
	var b strings.Builder
	for _, c := range cells {
		if c.IsContinuation() {
			continue
		}
		b.WriteRune(c.Char)
	}
	return strings.TrimRight(b.String(), " ")
}

// ---- printing ---------------------------------------------------------------

func (t *Terminal) putChar(ch rune) {
	designator := t.charsets[t.activeCharset]
	if t.singleShift >= 0 {
		designator = t.charsets[t.singleShift]
		t.singleShift = -1
	}
	ch = translateCharset(designator, ch)

	w := runeWidth(ch)
	if w <= 0 {
		return
	}

	width := t.grid.Width()
	row := t.grid.Row(t.cursorY)

	if t.cursorX >= width {
		if t.modes.autowrap {
			t.cursorX = 0
			t.linefeed()
			t.grid.SetWrapped(t.cursorY, true)
			row = t.grid.Row(t.cursorY)
		} else {
			t.cursorX = width - 1
		}
	}

	if w == 2 && t.cursorX+1 >= width {
		if t.modes.autowrap {
			row[t.cursorX] = blankCell(t.pen)
			t.cursorX = 0
			t.linefeed()
			t.grid.SetWrapped(t.cursorY, true)
			row = t.grid.Row(t.cursorY)
		} else {
			t.cursorX = width - 1
		}
	}

	if t.modes.insertMode {
		start := t.cursorX
		end := width
		for x := end - 1; x >= start+w; x-- {
			row[x] = row[x-w]
		}
		for x := start; x < start+w && x < end; x++ {
			row[x] = blankCell(t.pen)
		}
	}

	blankOrphanedLead(row, t.cursorX, t.pen)
	if w == 1 {
		blankOrphanedContinuation(row, t.cursorX+1, t.pen)
	}

	row[t.cursorX] = Cell{Char: ch, Style: t.pen}
	if w == 2 && t.cursorX+1 < width {
		row[t.cursorX+1] = continuationCell(t.pen)
	}

	last := ch
	t.lastChar = &last
	origCol := t.cursorX
	t.cursorX += w

	if t.quirks.ScreenImmediateWrap && w == 1 && origCol == width-1 {
		t.cursorX = 0
		t.linefeed()
		t.grid.SetWrapped(t.cursorY, true)
	}
}

// ---- vertical movement & scrolling -----------------------------------------

func (t *Terminal) linefeed() {
	if t.cursorY == t.scrollBottom {
		t.scrollUp()
	} else if t.cursorY < t.grid.Height()-1 {
		t.cursorY++
	}
}

func (t *Terminal) reverseIndex() {
	if t.cursorY == t.scrollTop {
		t.scrollDown()
	} else if t.cursorY > 0 {
		t.cursorY--
	}
}

func (t *Terminal) nel() {
	t.cursorX = 0
	t.linefeed()
}

func (t *Terminal) carriageReturn() {
	t.cursorX = 0
}

func (t *Terminal) backspace() {
	if t.cursorX > 0 {
		t.cursorX--
	}
}

// scrollUp pushes the row at scrollTop into scrollback unconditionally,
// whether or not the alternate screen is active (see DESIGN.md).
func (t *Terminal) scrollUp() {
	top, bottom := t.scrollTop, t.scrollBottom
	off := make([]Cell, t.grid.Width())
	copy(off, t.grid.Row(top))
	wrapped := t.grid.Wrapped(top)
	t.grid.ShiftUp(top, bottom, 1, t.pen)
	t.scrollback.Push(off, wrapped)
}

func (t *Terminal) scrollDown() {
	t.grid.ShiftDown(t.scrollTop, t.scrollBottom, 1, t.pen)
}

// ---- cursor motion ----------------------------------------------------------

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (t *Terminal) setCursorPosition(row, col int) {
	width, height := t.grid.Width(), t.grid.Height()
	col = clamp(col, 0, width-1)
	if t.modes.originMode {
		row = clamp(row+t.scrollTop, t.scrollTop, t.scrollBottom)
	} else {
		row = clamp(row, 0, height-1)
	}
	t.cursorY = row
	t.cursorX = col
}

func (t *Terminal) setCursorRow(row int) {
	height := t.grid.Height()
	if t.modes.originMode {
		row = clamp(row+t.scrollTop, t.scrollTop, t.scrollBottom)
	} else {
		row = clamp(row, 0, height-1)
	}
	t.cursorY = row
}

func (t *Terminal) tabForward() {
	width := t.grid.Width()
	for x := t.cursorX + 1; x < width; x++ {
		if t.tabStops[x] {
			t.cursorX = x
			return
		}
	}
	t.cursorX = width - 1
}

func (t *Terminal) tabBackward() {
	for x := t.cursorX - 1; x >= 0; x-- {
		if t.tabStops[x] {
			t.cursorX = x
			return
		}
	}
	t.cursorX = 0
}

func (t *Terminal) setTabStop() {
	if t.cursorX >= 0 && t.cursorX < len(t.tabStops) {
		t.tabStops[t.cursorX] = true
	}
}

func defaultTabStops(width int) []bool {
	stops := make([]bool, width)
	for c := 8; c < width; c += 8 {
		stops[c] = true
	}
	return stops
}

// setScrollRegion implements DECSTBM (CSI top;bottom r). The distilled
// operation table omits an explicit entry for it, but the scroll region it
// governs is part of the data model and the original source implements it
// (see DESIGN.md).
func (t *Terminal) setScrollRegion(top, bottom int) {
	height := t.grid.Height()
	top--
	bottom--
	top = clamp(top, 0, height-1)
	if bottom > height-1 {
		bottom = height - 1
	}
	if top >= bottom {
		return
	}
	t.scrollTop = top
	t.scrollBottom = bottom
	if t.modes.originMode {
		t.cursorY = t.scrollTop
	} else {
		t.cursorY = 0
	}
	t.cursorX = 0
}

// ---- erase family -----------------------------------------------------------

func (t *Terminal) eraseRowRange(y, fromX, toX int) {
	if fromX > toX {
		return
	}
	row := t.grid.Row(y)
	blankOrphanedLead(row, fromX, t.pen)
	blankOrphanedContinuation(row, toX+1, t.pen)
	for x := fromX; x <= toX; x++ {
		row[x] = blankCell(t.pen)
	}
}

func (t *Terminal) eraseLine(mode int) {
	width := t.grid.Width()
	switch mode {
	case 0:
		t.eraseRowRange(t.cursorY, t.cursorX, width-1)
	case 1:
		t.eraseRowRange(t.cursorY, 0, t.cursorX)
	case 2:
		t.eraseRowRange(t.cursorY, 0, width-1)
	}
}

func (t *Terminal) eraseScreenRange(fromY, fromX, toY, toX int) {
	width := t.grid.Width()
	if fromY == toY {
		t.eraseRowRange(fromY, fromX, toX)
		return
	}
	t.eraseRowRange(fromY, fromX, width-1)
	for y := fromY + 1; y < toY; y++ {
		t.eraseRowRange(y, 0, width-1)
	}
	t.eraseRowRange(toY, 0, toX)
}

func (t *Terminal) eraseScreen(mode int) {
	width, height := t.grid.Width(), t.grid.Height()
	switch mode {
	case 0:
		t.eraseScreenRange(t.cursorY, t.cursorX, height-1, width-1)
	case 1:
		t.eraseScreenRange(0, 0, t.cursorY, t.cursorX)
	case 2:
		t.grid.Clear(t.pen)
		t.clearAllWrapped()
	case 3:
		t.grid.Clear(t.pen)
		t.clearAllWrapped()
		t.scrollback.Clear()
	}
}

func (t *Terminal) clearAllWrapped() {
	for y := 0; y < t.grid.Height(); y++ {
		t.grid.SetWrapped(y, false)
	}
}

func (t *Terminal) eraseChars(n int) {
	if n < 1 {
		n = 1
	}
	width := t.grid.Width()
	to := t.cursorX + n - 1
	if to > width-1 {
		to = width - 1
	}
	t.eraseRowRange(t.cursorY, t.cursorX, to)
}

// ---- line insert/delete -----------------------------------------------------

func (t *Terminal) insertLines(n int) {
	if t.cursorY < t.scrollTop || t.cursorY > t.scrollBottom {
		return
	}
	if n < 1 {
		n = 1
	}
	t.grid.ShiftDown(t.cursorY, t.scrollBottom, n, t.pen)
}

func (t *Terminal) deleteLines(n int) {
	if t.cursorY < t.scrollTop || t.cursorY > t.scrollBottom {
		return
	}
	if n < 1 {
		n = 1
	}
	t.grid.ShiftUp(t.cursorY, t.scrollBottom, n, t.pen)
}

// ---- character insert/delete/repeat -----------------------------------------

func (t *Terminal) insertChars(n int) {
	width := t.grid.Width()
	if n < 1 {
		n = 1
	}
	if n > width-t.cursorX {
		n = width - t.cursorX
	}
	if n <= 0 {
		return
	}
	row := t.grid.Row(t.cursorY)

	blankOrphanedLead(row, width-n, t.pen)

	for x := width - 1; x >= t.cursorX+n; x-- {
		row[x] = row[x-n]
	}
	for x := t.cursorX; x < t.cursorX+n; x++ {
		row[x] = blankCell(t.pen)
	}

	blankOrphanedContinuation(row, t.cursorX+n, t.pen)
}

func (t *Terminal) deleteChars(n int) {
	width := t.grid.Width()
	if n < 1 {
		n = 1
	}
	if n > width-t.cursorX {
		n = width - t.cursorX
	}
	if n <= 0 {
		return
	}
	row := t.grid.Row(t.cursorY)

	blankOrphanedLead(row, t.cursorX, t.pen)
	blankOrphanedContinuation(row, t.cursorX+n, t.pen)

	for x := t.cursorX; x < width-n; x++ {
		row[x] = row[x+n]
	}
	for x := width - n; x < width; x++ {
		row[x] = blankCell(t.pen)
	}
}

func (t *Terminal) repeatLastChar(n int) {
	if n < 1 {
		n = 1
	}
	if t.lastChar == nil {
		return
	}
	ch := *t.lastChar
	for i := 0; i < n; i++ {
		t.putChar(ch)
	}
}

// ---- modes ------------------------------------------------------------------

func (t *Terminal) dispatchPrivateMode(params []int, set bool) {
	for _, p := range params {
		switch p {
		case 6:
			t.modes.originMode = set
			if set {
				t.cursorX, t.cursorY = 0, t.scrollTop
			} else {
				t.cursorX, t.cursorY = 0, 0
			}
		case 7:
			t.modes.autowrap = set
		case 25:
			t.modes.cursorVisible = set
		case 1047:
			if !t.quirks.WindowsNoAltScreen {
				t.setAltScreen(set, false)
			}
		case 1049:
			if !t.quirks.WindowsNoAltScreen {
				t.setAltScreen(set, true)
			}
		}
	}
}

func (t *Terminal) setAltScreen(enable, saveCursor bool) {
	if enable {
		if t.alternateActive {
			return
		}
		t.altGrid = t.grid
		t.grid = NewGrid(t.grid.Width(), t.grid.Height())
		t.alternateActive = true
		if saveCursor {
			t.altCursor = &cursorPos{X: t.cursorX, Y: t.cursorY}
			t.cursorX, t.cursorY = 0, 0
		}
		return
	}

	if !t.alternateActive {
		return
	}
	t.grid = t.altGrid
	t.altGrid = nil
	t.alternateActive = false
	if saveCursor && t.altCursor != nil {
		t.cursorX, t.cursorY = t.altCursor.X, t.altCursor.Y
		t.altCursor = nil
	}
}

// ---- reset -------------------------------------------------------------------

func (t *Terminal) ris() {
	width, height := t.grid.Width(), t.grid.Height()
	t.grid = NewGrid(width, height)
	t.cursorX, t.cursorY = 0, 0
	t.modes = defaultModes()
	t.pen = Style{}
	t.scrollback.Clear()
	t.savedCursor = nil
	t.scrollTop, t.scrollBottom = 0, height-1
	t.title = ""
	t.altGrid = nil
	t.altCursor = nil
	t.alternateActive = false
	t.lastChar = nil
	t.decoder.resetUTF8()
	t.tabStops = defaultTabStops(width)
	t.charsets = defaultCharsetSlots()
	t.activeCharset = 0
	t.singleShift = -1
}

func (t *Terminal) softReset() {
	t.pen = Style{}
	t.modes.cursorVisible = true
	t.modes.originMode = false
	t.scrollTop, t.scrollBottom = 0, t.grid.Height()-1
	t.modes.insertMode = false
	t.modes.autowrap = true
	t.charsets = defaultCharsetSlots()
	t.activeCharset = 0
	t.singleShift = -1
}

func (t *Terminal) decaln() {
	width, height := t.grid.Width(), t.grid.Height()
	for y := 0; y < height; y++ {
		row := t.grid.Row(y)
		for x := 0; x < width; x++ {
			row[x] = Cell{Char: 'E'}
		}
		t.grid.SetWrapped(y, false)
	}
	t.scrollTop, t.scrollBottom = 0, height-1
	t.cursorX, t.cursorY = 0, 0
}

// ---- quirk-gated cursor save/restore -----------------------------------------

func (t *Terminal) decsc() {
	if t.quirks.TmuxNestedCursorSaveRestore && t.alternateActive {
		return
	}
	t.savedCursor = &cursorPos{X: t.cursorX, Y: t.cursorY}
}

func (t *Terminal) decrc() {
	if t.quirks.TmuxNestedCursorSaveRestore && t.alternateActive {
		return
	}
	if t.savedCursor != nil {
		t.cursorX, t.cursorY = t.savedCursor.X, t.savedCursor.Y
	}
}

// ---- charsets -----------------------------------------------------------------

func (t *Terminal) designateCharset(slot int, b byte) {
	if slot >= 0 && slot < len(t.charsets) {
		t.charsets[slot] = b
	}
}

func (t *Terminal) setActiveCharset(idx int) {
	t.activeCharset = idx
}

func (t *Terminal) setSingleShift(idx int) {
	t.singleShift = idx
}

func (t *Terminal) setTitle(s string) {
	t.title = s
}

// ---- CSI dispatch -----------------------------------------------------------

func (t *Terminal) dispatchCSI(params []int, private byte, intermediate byte, final byte) {
	get := func(idx, def int) int {
		if idx < len(params) && params[idx] > 0 {
			return params[idx]
		}
		return def
	}

	if private == '?' {
		t.dispatchPrivateMode(params, final == 'h')
		return
	}
	if private == '!' && final == 'p' {
		t.softReset()
		return
	}

	width, height := t.grid.Width(), t.grid.Height()

	switch final {
	case 'A':
		t.cursorY = clamp(t.cursorY-get(0, 1), 0, height-1)
	case 'B':
		t.cursorY = clamp(t.cursorY+get(0, 1), 0, height-1)
	case 'C':
		t.cursorX = clamp(t.cursorX+get(0, 1), 0, width-1)
	case 'D':
		t.cursorX = clamp(t.cursorX-get(0, 1), 0, width-1)
	case 'E':
		t.cursorY = clamp(t.cursorY+get(0, 1), 0, height-1)
		t.cursorX = 0
	case 'F':
		t.cursorY = clamp(t.cursorY-get(0, 1), 0, height-1)
		t.cursorX = 0
	case 'G':
		t.cursorX = clamp(get(0, 1)-1, 0, width-1)
	case 'H', 'f':
		t.setCursorPosition(get(0, 1)-1, get(1, 1)-1)
	case 'd':
		t.setCursorRow(get(0, 1) - 1)
	case 'Z':
		t.tabBackward()
	case 'K':
		t.eraseLine(get(0, 0))
	case 'J':
		t.eraseScreen(get(0, 0))
	case 'X':
		t.eraseChars(get(0, 1))
	case 'L':
		t.insertLines(get(0, 1))
	case 'M':
		t.deleteLines(get(0, 1))
	case 'S':
		for i, n := 0, get(0, 1); i < n; i++ {
			t.scrollUp()
		}
	case 'T':
		for i, n := 0, get(0, 1); i < n; i++ {
			t.scrollDown()
		}
	case '@':
		t.insertChars(get(0, 1))
	case 'P':
		t.deleteChars(get(0, 1))
	case 'b':
		t.repeatLastChar(get(0, 1))
	case 'm':
		t.applySGR(params)
	case 'h':
		t.setANSIMode(params, true)
	case 'l':
		t.setANSIMode(params, false)
	case 'r':
		t.setScrollRegion(get(0, 1), get(1, height))
	}
}

func (t *Terminal) setANSIMode(params []int, set bool) {
	for _, p := range params {
		if p == 4 {
			t.modes.insertMode = set
		}
	}
}
