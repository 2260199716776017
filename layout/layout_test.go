package layout

import "testing"

func TestColumnsForBreakpoint(t *testing.T) {
	m := New(0, 0, 0) // defaults: breakpoint 600, 4/6 columns

	tests := []struct {
		width int
		want  int
	}{
		{0, 4},
		{300, 4},
		{599, 4},
		{600, 4}, // boundary is inclusive on the compact side
		{601, 6},
		{1920, 6},
	}
	for _, tt := range tests {
		if got := m.ColumnsFor(tt.width); got != tt.want {
			t.Errorf("ColumnsFor(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestObserveUpdatesColumns(t *testing.T) {
	m := New(0, 0, 0)

	m.Observe(1024)
	if m.Columns() != 6 {
		t.Fatalf("Columns = %d, want 6", m.Columns())
	}
	if m.Width() != 1024 {
		t.Errorf("Width = %d, want 1024", m.Width())
	}

	m.Observe(480)
	if m.Columns() != 4 {
		t.Fatalf("Columns = %d, want 4", m.Columns())
	}
}

func TestDirtyOnlyWhenColumnsChange(t *testing.T) {
	m := New(0, 0, 0)
	m.Dirty() // clear attach state

	m.Observe(500) // compact -> compact, no change
	if m.Dirty() {
		t.Error("dirty after same-column resize")
	}

	m.Observe(800)
	if !m.Dirty() {
		t.Error("not dirty after column change")
	}
	if m.Dirty() {
		t.Error("Dirty did not clear the flag")
	}
}

func TestCustomBreakpoint(t *testing.T) {
	m := New(1000, 2, 8)

	if got := m.ColumnsFor(1000); got != 2 {
		t.Errorf("ColumnsFor(1000) = %d, want 2", got)
	}
	if got := m.ColumnsFor(1001); got != 8 {
		t.Errorf("ColumnsFor(1001) = %d, want 8", got)
	}
}

func TestInitialColumnsValidBeforeFirstResize(t *testing.T) {
	m := New(0, 0, 0)
	if m.Columns() != DefaultCompactColumns {
		t.Errorf("Columns = %d before first resize, want %d", m.Columns(), DefaultCompactColumns)
	}
}
