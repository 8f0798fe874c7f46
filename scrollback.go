package vtcore

// ScrollbackProvider stores rows scrolled off the top of the scroll region.
// Implementations are append-only from the mutator's perspective; callers
// needing a different backing store (disk-spooled, capped by bytes rather
// than lines, etc.) can supply their own.
type ScrollbackProvider interface {
	// Push appends a full-width row. wrapped records whether this row is
	// the soft-wrapped continuation of the row pushed immediately before it.
	Push(row []Cell, wrapped bool)
	// Len returns the number of stored rows.
	Len() int
	// Line returns the row at idx (0 is the oldest) and whether it exists.
	Line(idx int) ([]Cell, bool)
	// Wrapped reports whether the row at idx is a soft-wrap continuation.
	Wrapped(idx int) bool
	// Clear discards all stored rows.
	Clear()
	// SetMaxLines bounds the provider, evicting from the front as needed.
	SetMaxLines(n int)
	// MaxLines returns the current bound, or 0 for unbounded.
	MaxLines() int
}

type scrollbackRow struct {
	cells   []Cell
	wrapped bool
}

// ringScrollback is the default bounded, front-evicting ScrollbackProvider.
type ringScrollback struct {
	rows []scrollbackRow
	max  int
}

// NewScrollback returns a ScrollbackProvider bounded to maxLines rows. A
// maxLines of 0 means unbounded.
func NewScrollback(maxLines int) ScrollbackProvider {
	return &ringScrollback{max: maxLines}
}

func (s *ringScrollback) Push(row []Cell, wrapped bool) {
	cp := make([]Cell, len(row))
	copy(cp, row)
	s.rows = append(s.rows, scrollbackRow{cells: cp, wrapped: wrapped})
	if s.max > 0 {
		for len(s.rows) > s.max {
			s.rows = s.rows[1:]
		}
	}
}

func (s *ringScrollback) Len() int { return len(s.rows) }

func (s *ringScrollback) Line(idx int) ([]Cell, bool) {
	if idx < 0 || idx >= len(s.rows) {
		return nil, false
	}
	return s.rows[idx].cells, true
}

func (s *ringScrollback) Wrapped(idx int) bool {
	if idx < 0 || idx >= len(s.rows) {
		return false
	}
	return s.rows[idx].wrapped
}

func (s *ringScrollback) Clear() {
	s.rows = nil
}

func (s *ringScrollback) SetMaxLines(n int) {
	s.max = n
	if n > 0 {
		for len(s.rows) > n {
			s.rows = s.rows[1:]
		}
	}
}

func (s *ringScrollback) MaxLines() int { return s.max }

// NewDiscardingScrollback returns a ScrollbackProvider that discards every
// pushed row. Pass it to WithScrollbackProvider for hosts that want
// scrollback capture suppressed outright, despite the source's
// unconditional push during scroll-up (see DESIGN.md).
func NewDiscardingScrollback() ScrollbackProvider {
	return noopScrollback{}
}

// noopScrollback discards every pushed row. Installed as a Terminal's
// provider, it suppresses scrollback capture on both the main and the
// alternate screen.
type noopScrollback struct{}

func (noopScrollback) Push([]Cell, bool)     {}
func (noopScrollback) Len() int              { return 0 }
func (noopScrollback) Line(int) ([]Cell, bool) { return nil, false }
func (noopScrollback) Wrapped(int) bool      { return false }
func (noopScrollback) Clear()                {}
func (noopScrollback) SetMaxLines(int)       {}
func (noopScrollback) MaxLines() int         { return 0 }

var _ ScrollbackProvider = (*ringScrollback)(nil)
var _ ScrollbackProvider = noopScrollback{}
