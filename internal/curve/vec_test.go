package curve

import (
	"math"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a := Vec(1, 2)
	b := Vec(4, 6)

	if got := a.Add(b); got != Vec(5, 8) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != Vec(3, 4) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Mul(3); got != Vec(3, 6) {
		t.Errorf("Mul failed: got %v", got)
	}
	if got := b.Sub(a).Hypot(); got != 5 {
		t.Errorf("Hypot failed: got %v", got)
	}
	if got := a.Dot(b); got != 16 {
		t.Errorf("Dot failed: got %v", got)
	}
	if got := a.Lerp(b, 0.5); got != Vec(2.5, 4) {
		t.Errorf("Lerp failed: got %v", got)
	}
}

func TestVecNormalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want Vec2
	}{
		{"zero", Vec(0, 0), Vec(0, 0)},
		{"axis", Vec(0, -7), Vec(0, -1)},
		{"diag", Vec(3, 4), Vec(0.6, 0.8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Normalize()
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestVecRotate(t *testing.T) {
	got := Vec(1, 0).Rotate(math.Pi / 2)
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-1) > 1e-12 {
		t.Errorf("Rotate failed: got %v", got)
	}
}
