package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/san-kum/bezdyn/internal/curve"
	"github.com/san-kum/bezdyn/internal/render"
)

// PNGSurface rasterises frames in memory.
type PNGSurface struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas

	regular, bold *canvas.Font
	width, height float64
}

func NewPNGSurface(width, height int) (*PNGSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("export: invalid png size %dx%d", width, height)
	}
	backend := softwarebackend.New(width, height)
	cv := canvas.New(backend)

	regular, err := cv.LoadFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("export: load font: %w", err)
	}
	bold, err := cv.LoadFont(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("export: load font: %w", err)
	}
	return &PNGSurface{
		backend: backend,
		cv:      cv,
		regular: regular,
		bold:    bold,
		width:   float64(width),
		height:  float64(height),
	}, nil
}

func (s *PNGSurface) Size() (float64, float64) { return s.width, s.height }
func (s *PNGSurface) Image() image.Image        { return s.backend.Image }

func (s *PNGSurface) Clear(c color.NRGBA) {
	s.cv.SetGlobalAlpha(1)
	s.cv.SetShadowBlur(0)
	s.cv.SetFillStyle(c)
	s.cv.FillRect(0, 0, s.width, s.height)
}

func (s *PNGSurface) FillRect(r curve.Rect, c color.NRGBA) {
	s.cv.SetFillStyle(c)
	s.cv.FillRect(r.Min.X, r.Min.Y, r.Width(), r.Height())
}

func (s *PNGSurface) StrokePath(pts []curve.Vec2, st render.Stroke) {
	if len(pts) < 2 {
		return
	}
	s.strokeStyle(st)
	s.cv.BeginPath()
	s.cv.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.cv.LineTo(p.X, p.Y)
	}
	s.cv.Stroke()
}

func (s *PNGSurface) strokeStyle(st render.Stroke) {
	s.cv.SetLineWidth(st.Width)
	if g := st.Gradient; g != nil {
		lg := s.cv.CreateLinearGradient(g.From.X, g.From.Y, g.To.X, g.To.Y)
		for _, stop := range g.Stops {
			lg.AddColorStop(stop.Offset, stop.Color)
		}
		s.cv.SetStrokeStyle(lg)
		return
	}
	s.cv.SetStrokeStyle(st.Color)
}

func (s *PNGSurface) FillCircle(center curve.Vec2, r float64, c color.NRGBA) {
	s.cv.SetFillStyle(c)
	s.cv.BeginPath()
	s.cv.Arc(center.X, center.Y, r, 0, 2*math.Pi, false)
	s.cv.Fill()
}

func (s *PNGSurface) StrokeCircle(center curve.Vec2, r float64, st render.Stroke) {
	s.strokeStyle(st)
	s.cv.BeginPath()
	s.cv.Arc(center.X, center.Y, r, 0, 2*math.Pi, false)
	s.cv.Stroke()
}

func (s *PNGSurface) FillPolygon(pts []curve.Vec2, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	s.cv.SetFillStyle(c)
	s.cv.BeginPath()
	s.cv.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.cv.LineTo(p.X, p.Y)
	}
	s.cv.ClosePath()
	s.cv.Fill()
}

func (s *PNGSurface) Text(str string, pos curve.Vec2, size float64, bold bool, c color.NRGBA) {
	font := s.regular
	if bold {
		font = s.bold
	}
	s.cv.SetFont(font, size)
	s.cv.SetFillStyle(c)
	s.cv.FillText(str, pos.X, pos.Y)
}

func (s *PNGSurface) SetAlpha(a float64) { s.cv.SetGlobalAlpha(a) }

func (s *PNGSurface) SetShadow(blur float64, c color.NRGBA) {
	s.cv.SetShadowBlur(blur)
	s.cv.SetShadowColor(c)
}

func (s *PNGSurface) WritePNG(w io.Writer) error {
	return png.Encode(w, s.backend.Image)
}

func (s *PNGSurface) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	return f.Close()
}
