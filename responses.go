package vtcore

import "fmt"

// BuildCPR builds the Cursor Position Report for cursor column x and row y
// (both zero-indexed): ESC [ <y+1> ; <x+1> R.
func BuildCPR(x, y int) []byte {
	return []byte(fmt.Sprintf("\x1b[%d;%dR", y+1, x+1))
}

// BuildDA1 builds the canonical Primary Device Attributes response:
// ESC [ ? 62 ; 22 c (VT220 with ANSI color).
func BuildDA1() []byte {
	return []byte("\x1b[?62;22c")
}

// CPRResponse returns the Cursor Position Report for the terminal's current
// cursor position. The core never writes this anywhere; callers write it
// back to the child process themselves.
func (t *Terminal) CPRResponse() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	x := t.cursorX
	if x >= t.grid.Width() {
		x = t.grid.Width() - 1
	}
	return BuildCPR(x, t.cursorY)
}

// DA1Response returns the Primary Device Attributes response.
func (t *Terminal) DA1Response() []byte {
	return BuildDA1()
}
