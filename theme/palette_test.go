package theme

import "testing"

func TestLookupBounds(t *testing.T) {
	p := PromptWheel()

	if got := p.Lookup(-1); got != p.Colors[0] {
		t.Errorf("Lookup(-1) = %v, want first color", got)
	}
	if got := p.Lookup(2); got != p.Colors[len(p.Colors)-1] {
		t.Errorf("Lookup(2) = %v, want last color", got)
	}
}

func TestLookupInterpolates(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}

	got := p.Lookup(0.5)
	want := RGB{100, 50, 25}
	if got != want {
		t.Errorf("Lookup(0.5) = %v, want %v", got, want)
	}
}

func TestLookupSingleEntryPalette(t *testing.T) {
	p := &Palette{Colors: []RGB{{10, 20, 30}}}

	for _, norm := range []float64{0, 0.5, 1} {
		if got := p.Lookup(norm); got != p.Colors[0] {
			t.Errorf("Lookup(%v) = %v, want the only color", norm, got)
		}
	}
}

func TestIndexWrapsAroundWheel(t *testing.T) {
	p := PromptWheel()
	n := len(p.Colors)

	if p.Index(0) != p.Index(n) {
		t.Errorf("Index(%d) did not wrap to Index(0)", n)
	}
	if p.Index(-3) != p.Colors[0] {
		t.Errorf("negative index did not clamp to first color")
	}
}

func TestPromptColorIsHex(t *testing.T) {
	th := New(nil)

	got := th.PromptColor(0)
	if len(got) != 7 || got[0] != '#' {
		t.Errorf("PromptColor(0) = %q, want #rrggbb", got)
	}
	if got != "#9900ff" {
		t.Errorf("PromptColor(0) = %q, want first wheel color", got)
	}
}
