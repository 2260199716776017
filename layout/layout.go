// Package layout maps the control surface's observed width to a
// discrete column count.
package layout

// Defaults for the single-breakpoint rule: narrow surfaces get the
// compact grid, everything else the wide one.
const (
	DefaultBreakpoint     = 600
	DefaultCompactColumns = 4
	DefaultWideColumns    = 6
)

// Manager tracks the observed container width and the column count
// derived from it. It never forces a render itself; it marks the
// derived state dirty and the next render pass picks it up.
type Manager struct {
	breakpoint int
	compact    int
	wide       int

	width   int
	columns int
	dirty   bool
}

// New creates a manager and computes the initial column count for
// width 0 (compact) so Columns is valid before the first resize.
func New(breakpoint, compact, wide int) *Manager {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	if compact <= 0 {
		compact = DefaultCompactColumns
	}
	if wide <= 0 {
		wide = DefaultWideColumns
	}
	m := &Manager{breakpoint: breakpoint, compact: compact, wide: wide}
	m.Observe(0)
	m.dirty = false
	return m
}

// Observe records a container resize and recomputes the column count.
func (m *Manager) Observe(width int) {
	m.width = width
	cols := m.ColumnsFor(width)
	if cols != m.columns {
		m.columns = cols
		m.dirty = true
	}
}

// ColumnsFor is the pure breakpoint rule: width at or below the
// breakpoint gets the compact column count.
func (m *Manager) ColumnsFor(width int) int {
	if width <= m.breakpoint {
		return m.compact
	}
	return m.wide
}

// Columns returns the current derived column count.
func (m *Manager) Columns() int { return m.columns }

// Width returns the last observed width.
func (m *Manager) Width() int { return m.width }

// Dirty reports whether the column count changed since the last render
// pass, and clears the flag.
func (m *Manager) Dirty() bool {
	d := m.dirty
	m.dirty = false
	return d
}
