package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/scribblepad/internal/dynamo"
	"github.com/san-kum/scribblepad/internal/integrators"
)

// Axis selects a coordinate of a 3D state.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) Of(s dynamo.State) float64 {
	switch a {
	case AxisX:
		return s.X
	case AxisY:
		return s.Y
	}
	return s.Z
}

type Point2 struct{ X, Y float64 }

// PoincareSection records the (u, v) coordinates of every upward crossing
// of the plane cross == threshold, linearly interpolated between steps.
func PoincareSection(sys dynamo.System, x0 dynamo.State, dt float64, steps int, cross Axis, threshold float64, u, v Axis) ([]Point2, error) {
	euler := integrators.NewEuler()
	points := make([]Point2, 0)
	x := x0
	prev := cross.Of(x)

	for i := 0; i < steps; i++ {
		st, err := euler.Advance(sys, x, dt, 1)
		if err != nil {
			return points, &dynamo.StepError{Step: i, Time: float64(i) * dt, State: x, Wrapped: err}
		}
		curr := cross.Of(st.State)

		if prev < threshold && curr >= threshold {
			frac := (threshold - prev) / (curr - prev)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			at := x.Add(st.State.Sub(x).Scale(frac))
			points = append(points, Point2{X: u.Of(at), Y: v.Of(at)})
		}

		x, prev = st.State, curr
	}
	return points, nil
}

// ScatterASCII plots points on a width x height character grid with 10%
// padding, drawing the axes when they are in view.
func ScatterASCII(points []Point2, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
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

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && grid[row][col] == ' ' {
				grid[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && grid[row][col] == ' ' {
				grid[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
