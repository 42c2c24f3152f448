package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	brailleBase = 0x2800
	// DotLife is how many fades a freshly set dot survives.
	DotLife = 6
)

// Canvas is a Braille grid of Width×Height cells, each holding 2×4 dots.
// Dots carry an age so trails can fade out; cells carry the colour of the
// last dot set in them and an optional text rune that hides the dots.
type Canvas struct {
	Width, Height int

	dots   [][]uint8
	colors [][]lipgloss.Color
	text   [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.dots = make([][]uint8, h*4)
	for i := range c.dots {
		c.dots[i] = make([]uint8, w*2)
	}
	c.colors = make([][]lipgloss.Color, h)
	c.text = make([][]rune, h)
	for i := range c.colors {
		c.colors[i] = make([]lipgloss.Color, w)
		c.text[i] = make([]rune, w)
	}
	return c
}

// SubWidth and SubHeight are the canvas size in dots.
func (c *Canvas) SubWidth() int  { return c.Width * 2 }
func (c *Canvas) SubHeight() int { return c.Height * 4 }

// Set lights the dot at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int, col lipgloss.Color) {
	if x < 0 || y < 0 || x >= c.SubWidth() || y >= c.SubHeight() {
		return
	}
	c.dots[y][x] = DotLife
	if col != "" {
		c.colors[y/4][x/2] = col
	}
}

func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 || x >= c.SubWidth() || y >= c.SubHeight() {
		return
	}
	c.dots[y][x] = 0
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.SubWidth() || y >= c.SubHeight() {
		return false
	}
	return c.dots[y][x] > 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for _, row := range c.dots {
		clear(row)
	}
	for i := range c.colors {
		clear(c.colors[i])
		clear(c.text[i])
	}
}

// Fade ages every dot by one and drops the text layer.
func (c *Canvas) Fade() {
	for _, row := range c.dots {
		for x, v := range row {
			if v > 0 {
				row[x] = v - 1
			}
		}
	}
	for i := range c.text {
		clear(c.text[i])
	}
}

// Label writes s starting at cell (col, row), clipped to the canvas.
func (c *Canvas) Label(col, row int, s string, color lipgloss.Color) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		if col >= 0 && col < c.Width {
			c.text[row][col] = r
			if color != "" {
				c.colors[row][col] = color
			}
		}
		col++
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col lipgloss.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillDisc sets every dot within r of (cx, cy).
func (c *Canvas) FillDisc(cx, cy, r int, col lipgloss.Color) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.Set(cx+x, cy+y, col)
			}
		}
	}
}

// Cell returns the rune and colour shown in cell (col, row).
func (c *Canvas) Cell(col, row int) (rune, lipgloss.Color) {
	if t := c.text[row][col]; t != 0 {
		return t, c.colors[row][col]
	}
	pattern := 0
	for dy := 0; dy < 4; dy++ {
		for dx := 0; dx < 2; dx++ {
			if c.dots[row*4+dy][col*2+dx] > 0 {
				pattern |= pixelMap[dy][dx]
			}
		}
	}
	return rune(brailleBase + pattern), c.colors[row][col]
}

// String renders the grid without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, _ := c.Cell(col, row)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render renders the grid with per-cell colour. A non-empty ink overrides
// every cell colour.
func (c *Canvas) Render(ink lipgloss.Color) string {
	var b strings.Builder
	style := lipgloss.NewStyle()
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, fg := c.Cell(col, row)
			if ink != "" {
				fg = ink
			}
			if r == brailleBase || fg == "" {
				b.WriteRune(r)
				continue
			}
			b.WriteString(style.Foreground(fg).Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
