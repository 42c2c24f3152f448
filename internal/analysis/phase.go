package analysis

import (
	"strings"
)

type Point struct {
	X, Y float64
}

// PhasePortrait pairs a position series with its velocity.
type PhasePortrait struct {
	Label  string
	Points []Point
}

func NewPhasePortrait(label string, pos, vel []float64) *PhasePortrait {
	n := min(len(pos), len(vel))
	p := &PhasePortrait{Label: label, Points: make([]Point, n)}
	for i := 0; i < n; i++ {
		p.Points[i] = Point{X: pos[i], Y: vel[i]}
	}
	return p
}

// ASCII plots the portrait into a width×height character grid, drawing the
// zero-velocity axis when visible.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			grid[row][col] = '─'
		}
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// UpCrossings returns the sample indices where data rises through
// threshold.
func UpCrossings(data []float64, threshold float64) []int {
	var out []int
	for i := 1; i < len(data); i++ {
		if data[i-1] < threshold && data[i] >= threshold {
			out = append(out, i)
		}
	}
	return out
}
