package render

import (
	"image/color"
	"testing"

	"github.com/san-kum/bezdyn/internal/curve"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#4cc9f0", color.NRGBA{R: 0x4c, G: 0xc9, B: 0xf0, A: 255}},
		{"0a0e17", color.NRGBA{R: 0x0a, G: 0x0e, B: 0x17, A: 255}},
		{"#fff", color.NRGBA{A: 255}},
		{"#zzzzzz", color.NRGBA{A: 255}},
	}

	for _, tt := range tests {
		if got := Hex(tt.in); got != tt.want {
			t.Errorf("Hex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCSS(t *testing.T) {
	if got := CSS(Hex("#f72585")); got != "#f72585" {
		t.Errorf("expected #f72585, got %s", got)
	}
	if got := CSS(RGBA(76, 201, 240, 0.2)); got != "rgba(76,201,240,0.2)" {
		t.Errorf("expected rgba(76,201,240,0.2), got %s", got)
	}
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(Hex("#ffffff"), 0.5)
	if c.A != 128 {
		t.Errorf("expected alpha 128, got %d", c.A)
	}
}

func TestGradientAt(t *testing.T) {
	g := &Gradient{From: curve.Vec(100, 300), To: curve.Vec(500, 300), Stops: curveStops}

	tests := []struct {
		name string
		p    curve.Vec2
		want color.NRGBA
	}{
		{"start", curve.Vec(100, 300), Hex("#4cc9f0")},
		{"before start", curve.Vec(0, 0), Hex("#4cc9f0")},
		{"middle", curve.Vec(300, 100), Hex("#7209b7")},
		{"end", curve.Vec(500, 300), Hex("#f72585")},
		{"past end", curve.Vec(900, 300), Hex("#f72585")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.At(tt.p); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	quarter := g.At(curve.Vec(200, 300))
	if quarter == Hex("#4cc9f0") || quarter == Hex("#7209b7") {
		t.Errorf("expected a blended colour at 0.25, got %v", quarter)
	}
}

func TestGradientDegenerate(t *testing.T) {
	g := &Gradient{From: curve.Vec(1, 1), To: curve.Vec(1, 1), Stops: curveStops}
	if got := g.At(curve.Vec(5, 5)); got != Hex("#4cc9f0") {
		t.Errorf("expected first stop, got %v", got)
	}
}
