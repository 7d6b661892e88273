package utils

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{9.999, 10.00},
		{24.0000000001, 24.00},
		{10.344, 10.34},
		{10.346, 10.35},
		{-3.128, -3.13},
		{19.9899999999, 19.99},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRound2AppliedOnceDoesNotCompound(t *testing.T) {
	// summing thirds then rounding once stays exact
	sum := 0.0
	for i := 0; i < 3; i++ {
		sum += 3.333333
	}
	if got := Round2(sum); got != 10.00 {
		t.Errorf("Round2(%v) = %v, want 10.00", sum, got)
	}
}
