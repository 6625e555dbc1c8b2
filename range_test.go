package poster

import (
	"errors"
	"math"
	"testing"
)

func TestRange_Extend(t *testing.T) {
	var r Range[float64]
	if r.IsValid() {
		t.Fatalf("zero range should be invalid")
	}
	for _, v := range []float64{5, -2, 8, 3} {
		r.Extend(v)
	}
	if !r.IsValid() {
		t.Fatalf("range should be valid after extend")
	}
	if r.Lower() != -2 || r.Upper() != 8 {
		t.Errorf("bounds mismatched! want [-2, 8], got [%v, %v]", r.Lower(), r.Upper())
	}
	if d := r.Diameter(); d != 10 {
		t.Errorf("diameter mismatched! want 10, got %v", d)
	}
	r.Clear()
	if r.IsValid() {
		t.Errorf("range should be invalid after clear")
	}
}

func TestRange_Invalid(t *testing.T) {
	var r Range[Distance]
	if _, err := r.Interpolate(0.5); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("interpolate: expected ErrInvalidRange, got %v", err)
	}
	if _, err := r.RelativePosition(1); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("relative position: expected ErrInvalidRange, got %v", err)
	}
}

func TestRange_RelativePosition(t *testing.T) {
	r := RangeFromPair(Distance(1000), 3000)
	tests := []struct {
		Value Distance
		Want  float64
	}{
		{Value: 0, Want: 0},
		{Value: 1000, Want: 0},
		{Value: 1500, Want: 0.25},
		{Value: 2000, Want: 0.5},
		{Value: 3000, Want: 1},
		{Value: 9000, Want: 1},
	}
	for _, tt := range tests {
		got, err := r.RelativePosition(tt.Value)
		if err != nil {
			t.Fatalf("%v: unexpected error: %s", tt.Value, err)
		}
		if got != tt.Want {
			t.Errorf("%v: position mismatched! want %v, got %v", tt.Value, tt.Want, got)
		}
	}
}

func TestRange_Degenerate(t *testing.T) {
	r := RangeFromPair(2.0, 2.0)
	got, err := r.RelativePosition(2)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != 0 {
		t.Errorf("position mismatched! want 0, got %v", got)
	}
}

func TestRange_Interpolate(t *testing.T) {
	r := RangeFromPair(10.0, 20.0)
	for ratio, want := range map[float64]float64{0: 10, 0.5: 15, 1: 20} {
		got, err := r.Interpolate(ratio)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if got != want {
			t.Errorf("%v: interpolation mismatched! want %v, got %v", ratio, want, got)
		}
	}
}

func TestRange_Contains(t *testing.T) {
	const eps = 1e-6
	for _, pair := range [][2]float64{{0, 1}, {-5, 5}, {3, 3}, {100, 250.5}} {
		r := RangeFromPair(pair[0], pair[1])
		if !r.Contains(pair[0]) || !r.Contains(pair[1]) {
			t.Errorf("%s should contain its bounds", r)
		}
		if r.Contains(pair[0]-eps) || r.Contains(pair[1]+eps) {
			t.Errorf("%s should not contain values outside of its bounds", r)
		}
	}
}

func TestRange_RoundTrip(t *testing.T) {
	r := RangeFromPair(Distance(250), 12000)
	for _, ratio := range []float64{0, 0.1, 0.25, 0.5, 0.9, 1} {
		v, err := r.Interpolate(ratio)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		got, err := r.RelativePosition(v)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if math.Abs(got-ratio) > 1e-9 {
			t.Errorf("%v: round trip mismatched! got %v", ratio, got)
		}
	}
}
