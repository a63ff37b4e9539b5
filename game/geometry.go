package game

import "math"

// Point is a pointer position in board coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in board coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive so that adjacent rectangles never both claim a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Layout is the ordered list of slot rectangles.
type Layout []Rect

// GridLayout lays out cols*rows slots row by row.
func GridLayout(cols, rows int, cardW, cardH, gap, margin float64) Layout {
	layout := make(Layout, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			layout = append(layout, Rect{
				X: margin + float64(col)*(cardW+gap),
				Y: margin + float64(row)*(cardH+gap),
				W: cardW,
				H: cardH,
			})
		}
	}

	return layout
}

// WebLayout is the 4x2 board the browser client draws.
func WebLayout() Layout {
	return GridLayout(4, 2, 150, 210, 24, 24)
}

// Bounds returns the smallest rectangle from the origin that holds every slot
// plus the right and bottom margin mirrored from the top-left one.
func (l Layout) Bounds() Rect {
	if len(l) == 0 {
		return Rect{}
	}

	minX, minY := l[0].X, l[0].Y
	var maxX, maxY float64
	for _, r := range l {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.X+r.W)
		maxY = math.Max(maxY, r.Y+r.H)
	}

	return Rect{W: maxX + minX, H: maxY + minY}
}
