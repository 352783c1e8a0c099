package arena

import (
	"fmt"
	"math"
)

// Point is an integer arena coordinate. Y grows downward.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies both components by k.
func (p Point) Scale(k int) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// IsZero reports whether p is the zero displacement.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// Direction returns the dominant axis direction of a displacement.
func (p Point) Direction() Direction {
	switch {
	case p.IsZero():
		return DirNone
	case abs(p.X) >= abs(p.Y) && p.X > 0:
		return DirRight
	case abs(p.X) >= abs(p.Y):
		return DirLeft
	case p.Y > 0:
		return DirDown
	default:
		return DirUp
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four axis directions, or DirNone.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirRight
	DirDown
	DirLeft
)

// Delta returns the unit step for the direction.
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{0, -1}
	case DirRight:
		return Point{1, 0}
	case DirDown:
		return Point{0, 1}
	case DirLeft:
		return Point{-1, 0}
	default:
		return Point{}
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirNone
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "none"
	}
}

// Segment is a line between two grid points. Color is a palette index
// used only by adversary trail snapshots.
type Segment struct {
	A, B  Point
	Color int
}

// IsVertical reports whether the segment runs along a single column.
func (s Segment) IsVertical() bool {
	return s.A.X == s.B.X && s.A.Y != s.B.Y
}

// IsHorizontal reports whether the segment runs along a single row.
func (s Segment) IsHorizontal() bool {
	return s.A.Y == s.B.Y && s.A.X != s.B.X
}

// WalkLine visits every cell on the rasterized line from p1 to p2, in order
// and including both endpoints. Axis-aligned lines are exact; others use
// integer Bresenham stepping. The walk stops early when visit returns false.
// It reports whether the walk reached p2.
func WalkLine(p1, p2 Point, visit func(Point) bool) bool {
	dx := abs(p2.X - p1.X)
	dy := -abs(p2.Y - p1.Y)
	sx, sy := 1, 1
	if p1.X > p2.X {
		sx = -1
	}
	if p1.Y > p2.Y {
		sy = -1
	}

	err := dx + dy
	x, y := p1.X, p1.Y
	for {
		if !visit(Point{x, y}) {
			return false
		}
		if x == p2.X && y == p2.Y {
			return true
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Polygon is a closed ring of vertices; the closing edge from the last
// vertex back to the first is implicit.
type Polygon []Point

// Bounds returns the minimum and maximum vertex coordinates.
func (pg Polygon) Bounds() (lo, hi Point) {
	if len(pg) == 0 {
		return Point{}, Point{}
	}
	lo, hi = pg[0], pg[0]
	for _, v := range pg[1:] {
		lo.X = min(lo.X, v.X)
		lo.Y = min(lo.Y, v.Y)
		hi.X = max(hi.X, v.X)
		hi.Y = max(hi.Y, v.Y)
	}
	return lo, hi
}

// crossings reports the x coordinate of every edge crossing the
// horizontal line y = yc. Edges are half-open in y so a vertex lying on
// the line is counted once.
func (pg Polygon) crossings(yc float64, fn func(x float64)) {
	n := len(pg)
	for i := range n {
		a, b := pg[i], pg[(i+1)%n]
		ay, by := float64(a.Y), float64(b.Y)
		if (ay > yc) == (by > yc) {
			continue
		}
		ax, bx := float64(a.X), float64(b.X)
		fn(ax + (yc-ay)*(bx-ax)/(by-ay))
	}
}

// Contains is the even-odd point-in-polygon test.
func (pg Polygon) Contains(x, y float64) bool {
	inside := false
	pg.crossings(y, func(cx float64) {
		if x < cx {
			inside = !inside
		}
	})
	return inside
}

// ContainsCell tests the centre of cell p, which keeps containment in
// agreement with the scanline fill.
func (pg Polygon) ContainsCell(p Point) bool {
	return pg.Contains(float64(p.X)+0.5, float64(p.Y)+0.5)
}

// CellArea counts the cells whose centre lies inside the polygon.
func (pg Polygon) CellArea() int {
	if len(pg) < 3 {
		return 0
	}
	lo, hi := pg.Bounds()
	area := 0
	for y := lo.Y; y < hi.Y; y++ {
		for x := lo.X; x < hi.X; x++ {
			if pg.ContainsCell(Point{x, y}) {
				area++
			}
		}
	}
	return area
}

// ShoelaceArea is the analytic enclosed area.
func (pg Polygon) ShoelaceArea() float64 {
	n := len(pg)
	sum := 0
	for i := range n {
		a, b := pg[i], pg[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(float64(sum)) / 2
}

// Clone returns an independent copy.
func (pg Polygon) Clone() Polygon {
	out := make(Polygon, len(pg))
	copy(out, pg)
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// normAngle maps a into [0, 2π).
func normAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
