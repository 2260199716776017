package midi

import (
	"math"
	"testing"
)

func TestCCEventNorm(t *testing.T) {
	tests := []struct {
		value uint8
		want  float64
	}{
		{0, 0},
		{64, 0.5},
		{127, 1},
		{32, 32.0 / 128},
		{63, 63.0 / 128},
		{65, 64.0 / 126},
		{100, 99.0 / 126},
	}
	for _, tt := range tests {
		ev := CCEvent{Value: tt.value}
		if got := ev.Norm(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Norm(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestCCEventWeightSpansPromptDomain(t *testing.T) {
	if got := (CCEvent{Value: 0}).Weight(); got != 0 {
		t.Errorf("Weight(0) = %v, want 0", got)
	}
	if got := (CCEvent{Value: 64}).Weight(); got != 1 {
		t.Errorf("Weight(64) = %v, want 1", got)
	}
	if got := (CCEvent{Value: 127}).Weight(); got != 2 {
		t.Errorf("Weight(127) = %v, want 2", got)
	}

	// Monotone across the raw range
	prev := -1.0
	for v := 0; v <= 127; v++ {
		w := (CCEvent{Value: uint8(v)}).Weight()
		if w < prev {
			t.Fatalf("Weight not monotone at value %d: %v < %v", v, w, prev)
		}
		prev = w
	}
}
