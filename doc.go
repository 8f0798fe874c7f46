// Package vtcore implements a headless VT100/VT220/xterm-compatible
// terminal state machine: a byte decoder driving a cell grid, with no I/O,
// rendering, or event loop of its own. Callers feed it bytes read from a
// PTY and read the resulting screen state back through the Terminal's
// inspector methods.
//
// # Quick start
//
//	term := vtcore.New(80, 24)
//	term.WriteString("\x1b[31mHello\x1b[0m, World!")
//	fmt.Println(term.RowText(0)) // "Hello, World!"
//
// # Architecture
//
// The package decomposes into three synchronous, single-threaded pieces:
//
//   - [Decoder]: a six-state parser (Ground, Escape, EscapeHash,
//     EscapeCharset, CSI, OSC) that decodes UTF-8 and dispatches printable
//     code points and control/escape/CSI/OSC events.
//   - [Grid] and [Terminal]: the mutator. Terminal owns the Grid, cursor,
//     current pen, scroll region, tab stops, charset tables, and mode
//     flags, and applies every decoded event to them.
//   - Selection extraction ([Terminal.SelectChar], [Terminal.SelectWord],
//     [Terminal.SelectLine], [Terminal.ExtractText]): reads the grid and
//     scrollback to produce copy-paste text, independent of styling.
//
// Terminal is the only exported entry point; Decoder is an internal detail
// reachable only through [Terminal.Feed] and [Terminal.Write].
//
// # Construction
//
//	term := vtcore.New(80, 24,
//	    vtcore.WithMaxScrollback(10000),
//	    vtcore.WithQuirks(vtcore.QuirkSet{}.WithScreenImmediateWrap()),
//	)
//
// Width and height must be at least 1; New panics otherwise, per the
// construction contract (there is no other recoverable error surface: a
// feed call never fails).
//
// # Feeding bytes
//
// Terminal implements [io.Writer], so it can be plugged directly into a
// PTY read loop:
//
//	cmd := exec.Command("ls", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
// Feed/Write may be called with any split of a byte stream — a multi-byte
// UTF-8 sequence or CSI parameter list straddling two calls decodes
// identically to one call with the concatenated bytes.
//
// # Cells, styles, and wide characters
//
//	ch, ok := term.CharAt(x, y)
//	style, ok := term.StyleAt(x, y)
//
// Each [Cell] carries a code point and a [Style] (24-bit fg/bg plus the
// usual SGR boolean attributes). East-Asian-wide characters occupy two
// columns: the lead cell holds the glyph, and the cell to its right holds
// the continuation sentinel (U+0000), which inspectors filter out of
// extracted text automatically.
//
// # Scrollback
//
// Rows scrolled off the top of the active scroll region are retained in a
// bounded [ScrollbackProvider], evicted from the front once the bound is
// exceeded:
//
//	term := vtcore.New(80, 24, vtcore.WithMaxScrollback(5000))
//	for i := 0; i < term.ScrollbackLen(); i++ {
//	    line, _ := term.ScrollbackLine(i)
//	}
//
// Supply [WithScrollbackProvider] to plug in an alternate backing store.
//
// # Alternate screen
//
//	if term.IsAlternateScreen() {
//	    // a full-screen app (vim, less, htop) is driving the terminal
//	}
//
// DEC private modes 1047 and 1049 (CSI ? 1047/1049 h/l) swap in a fresh
// blank grid; 1049 additionally saves and restores the cursor position.
//
// # Selections and copy extraction
//
// Selection endpoints live in the combined coordinate space of scrollback
// rows followed by viewport rows:
//
//	pos := vtcore.FromViewport(term.ScrollbackLen(), row, col)
//	sel := term.SelectWord(pos)
//	text := term.ExtractText(sel)
//
// [Terminal.SelectChar] expands to a wide character's full span,
// [Terminal.SelectLine] selects an entire row, and [Terminal.SelectWord]
// expands across a run of same-class characters (word, whitespace, or
// other — tuned so path- and URL-like runs select as one word).
//
// # Query responses
//
// The core never writes to a file descriptor; it only builds the canonical
// reply bytes for the caller to forward to the child process:
//
//	pty.Write(term.CPRResponse()) // CSI n -> cursor position report
//	pty.Write(term.DA1Response()) // CSI c -> primary device attributes
//
// # Snapshots
//
// [Terminal.Snapshot] captures the screen as a JSON-friendly value, at
// three levels of detail ([SnapshotDetailText], [SnapshotDetailStyled],
// [SnapshotDetailFull]), useful for golden-file tests or building a
// renderer outside this package.
//
// # Quirk profiles
//
// [QuirkSet] composes non-default behaviors that specific host programs
// rely on (tmux's nested cursor save/restore, GNU screen's immediate wrap,
// hosts that never switch to the alternate screen). The zero value is
// strict VT100/VT220/xterm behavior.
//
// # Thread safety
//
// All Terminal methods are safe for concurrent use; Terminal serializes
// access to its internal state with a [sync.RWMutex]. Callers needing to
// perform several operations atomically (e.g. feed then immediately
// inspect) should hold their own higher-level synchronization, since the
// lock is released between calls.
package vtcore
