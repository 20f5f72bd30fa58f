package textrun

import "testing"

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirectionLTR, "LTR"},
		{DirectionRTL, "RTL"},
		{DirectionTTB, "TTB"},
		{DirectionBTT, "BTT"},
		{Direction(99), "Unknown"},
	}

	for _, tt := range tests {
		got := tt.dir.String()
		if got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestDirectionAxes(t *testing.T) {
	tests := []struct {
		dir        Direction
		horizontal bool
	}{
		{DirectionLTR, true},
		{DirectionRTL, true},
		{DirectionTTB, false},
		{DirectionBTT, false},
	}

	for _, tt := range tests {
		if got := tt.dir.IsHorizontal(); got != tt.horizontal {
			t.Errorf("%s.IsHorizontal() = %v, want %v", tt.dir, got, tt.horizontal)
		}
		if got := tt.dir.IsVertical(); got == tt.horizontal {
			t.Errorf("%s.IsVertical() = %v, want %v", tt.dir, got, !tt.horizontal)
		}
	}
}

func TestRect(t *testing.T) {
	r := Rect{MinX: 1, MinY: 2, MaxX: 4, MaxY: 8}
	if r.Width() != 3 {
		t.Errorf("Width() = %g, want 3", r.Width())
	}
	if r.Height() != 6 {
		t.Errorf("Height() = %g, want 6", r.Height())
	}
	if r.Empty() {
		t.Error("non-degenerate rect reported empty")
	}
	if !(Rect{MinX: 1, MaxX: 1}).Empty() {
		t.Error("zero-width rect must be empty")
	}
}

func TestRange(t *testing.T) {
	r := Range{Start: 2, End: 5}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
	if r.Empty() {
		t.Error("non-empty range reported empty")
	}
	if !r.Contains(2) || !r.Contains(4) || r.Contains(5) || r.Contains(1) {
		t.Error("Contains() wrong on half-open boundaries")
	}
	if !(Range{Start: 3, End: 3}).Empty() {
		t.Error("zero-length range must be empty")
	}
}
