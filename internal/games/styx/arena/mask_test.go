package arena

import (
	"errors"
	"math"
	"testing"
)

func isBorder(m *Mask, p Point) bool {
	return p.X == 0 || p.Y == 0 || p.X == m.Width()-1 || p.Y == m.Height()-1
}

func TestMaskReset(t *testing.T) {
	sizes := []struct{ w, h int }{{3, 3}, {10, 7}, {64, 64}}
	for _, sz := range sizes {
		m := NewMask(sz.w, sz.h)
		m.Set(Pt(1, 1), CellArea)
		m.Set(Pt(0, 0), CellEmpty)
		m.Reset()

		for y := 0; y < sz.h; y++ {
			for x := 0; x < sz.w; x++ {
				p := Pt(x, y)
				expected := CellEmpty
				if isBorder(m, p) {
					expected = CellWall
				}
				if got := m.Get(p); got != expected {
					t.Fatalf("%dx%d: Get(%s) = %s, expected %s", sz.w, sz.h, p, got, expected)
				}
			}
		}

		border := 2*sz.w + 2*sz.h - 4
		if m.Count(CellWall) != border {
			t.Errorf("%dx%d: Count(wall) = %d, expected %d", sz.w, sz.h, m.Count(CellWall), border)
		}
		if m.Count(CellEmpty) != sz.w*sz.h-border {
			t.Errorf("%dx%d: Count(empty) = %d, expected %d", sz.w, sz.h, m.Count(CellEmpty), sz.w*sz.h-border)
		}
	}
}

func TestMaskOutOfBounds(t *testing.T) {
	m := NewMask(10, 10)
	for _, p := range []Point{{-1, 0}, {0, -1}, {10, 0}, {0, 10}, {100, 100}} {
		if got := m.Get(p); got != CellError {
			t.Errorf("Get(%s) = %s, expected error", p, got)
		}
		m.Set(p, CellArea) // ignored
	}
	if m.Count(CellArea) != 0 {
		t.Errorf("out-of-bounds Set changed counts: area = %d", m.Count(CellArea))
	}
}

func TestDrawLinePaintsRasterizedPath(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		color  Cell
	}{
		{"horizontal line", Pt(2, 5), Pt(40, 5), CellLine},
		{"vertical line", Pt(7, 40), Pt(7, 3), CellLine},
		{"diagonal line", Pt(3, 3), Pt(30, 17), CellLine},
		{"steep line", Pt(20, 2), Pt(25, 45), CellLine},
		{"interior wall", Pt(5, 20), Pt(40, 20), CellWall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMask(50, 50)
			m.DrawLine(tt.p1, tt.p2, tt.color)

			WalkLine(tt.p1, tt.p2, func(p Point) bool {
				if got := m.Get(p); got != tt.color {
					t.Errorf("Get(%s) = %s, expected %s", p, got, tt.color)
				}
				return true
			})
		})
	}
}

func TestDrawLineWallMerge(t *testing.T) {
	m := NewMask(20, 20)
	// Two captured blocks either side of row 10.
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			if y != 10 {
				m.Set(Pt(x, y), CellArea)
			}
		}
	}
	m.DrawLine(Pt(3, 10), Pt(16, 10), CellWall)

	for x := 3; x <= 16; x++ {
		expected := CellWall
		if x >= 5 && x < 15 {
			expected = CellArea
		}
		if got := m.Get(Pt(x, 10)); got != expected {
			t.Errorf("Get(%d,10) = %s, expected %s", x, got, expected)
		}
	}
}

func TestDrawLineWallMergeOnBorder(t *testing.T) {
	m := NewMask(20, 20)
	for x := 1; x < 8; x++ {
		m.Set(Pt(x, 1), CellArea)
		m.Set(Pt(1, x), CellArea)
	}

	m.DrawLine(Pt(0, 0), Pt(19, 0), CellWall)
	m.DrawLine(Pt(0, 0), Pt(0, 19), CellWall)

	if got := m.Get(Pt(4, 0)); got != CellArea {
		t.Errorf("top border above area = %s, expected area", got)
	}
	if got := m.Get(Pt(10, 0)); got != CellWall {
		t.Errorf("top border above empty = %s, expected wall", got)
	}
	if got := m.Get(Pt(0, 4)); got != CellArea {
		t.Errorf("left border beside area = %s, expected area", got)
	}
}

func TestFillPolygonMatchesContainment(t *testing.T) {
	tests := []struct {
		name string
		pg   Polygon
	}{
		{"rectangle", Polygon{{10, 10}, {40, 10}, {40, 30}, {10, 30}}},
		{"triangle", Polygon{{5, 5}, {55, 12}, {20, 50}}},
		{"L shape", Polygon{{5, 5}, {30, 5}, {30, 20}, {15, 20}, {15, 45}, {5, 45}}},
		{"concave notch", Polygon{{5, 5}, {50, 5}, {50, 50}, {30, 50}, {30, 20}, {20, 20}, {20, 50}, {5, 50}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMask(60, 60)
			if err := m.FillPolygon(tt.pg); err != nil {
				t.Fatalf("FillPolygon() error = %v", err)
			}

			painted := 0
			for y := 1; y < 59; y++ {
				for x := 1; x < 59; x++ {
					p := Pt(x, y)
					inside := tt.pg.ContainsCell(p)
					isArea := m.Get(p) == CellArea
					if inside != isArea {
						t.Fatalf("cell %s: area = %v, contains = %v", p, isArea, inside)
					}
					if isArea {
						painted++
					}
				}
			}

			analytic := tt.pg.ShoelaceArea()
			lo, hi := tt.pg.Bounds()
			tolerance := float64(2 * ((hi.X - lo.X) + (hi.Y - lo.Y)))
			if math.Abs(float64(painted)-analytic) > tolerance {
				t.Errorf("painted %d cells, analytic area %.1f", painted, analytic)
			}
			if painted != tt.pg.CellArea() {
				t.Errorf("painted %d cells, CellArea() = %d", painted, tt.pg.CellArea())
			}
		})
	}
}

func TestFillPolygonRectangleExact(t *testing.T) {
	m := NewMask(1000, 1000)
	pg := Polygon{{500, 0}, {700, 0}, {700, 400}, {500, 400}}
	if err := m.FillPolygon(pg); err != nil {
		t.Fatalf("FillPolygon() error = %v", err)
	}
	if m.Count(CellArea) != 200*400 {
		t.Errorf("Count(area) = %d, expected %d", m.Count(CellArea), 200*400)
	}
}

func TestFillPolygonDegenerate(t *testing.T) {
	m := NewMask(20, 20)
	err := m.FillPolygon(Polygon{{1, 1}, {10, 10}})

	var ce *ConsistencyError
	if !errors.As(err, &ce) {
		t.Fatalf("FillPolygon() error = %v, expected ConsistencyError", err)
	}
	if !errors.Is(err, ErrConsistency) {
		t.Error("ConsistencyError should unwrap to ErrConsistency")
	}
	if m.Count(CellArea) != 0 {
		t.Errorf("rejected fill painted %d cells", m.Count(CellArea))
	}
}

func TestValidMove(t *testing.T) {
	m := NewMask(100, 100)
	m.DrawLine(Pt(50, 0), Pt(50, 40), CellWall)

	tests := []struct {
		name     string
		start    Point
		delta    Point
		expected Point
	}{
		{"along top wall", Pt(10, 0), Pt(5, 0), Pt(5, 0)},
		{"into the field", Pt(10, 0), Pt(0, 5), Pt(0, 0)},
		{"past the corner", Pt(97, 0), Pt(5, 0), Pt(2, 0)},
		{"down an interior wall", Pt(50, 0), Pt(0, 10), Pt(0, 10)},
		{"off the end of a wall", Pt(50, 38), Pt(0, 5), Pt(0, 2)},
		{"zero delta", Pt(10, 0), Pt(0, 0), Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.ValidMove(tt.start, tt.delta); got != tt.expected {
				t.Errorf("ValidMove(%s, %s) = %s, expected %s", tt.start, tt.delta, got, tt.expected)
			}
		})
	}
}

func TestValidDraw(t *testing.T) {
	m := NewMask(100, 100)
	m.DrawLine(Pt(30, 20), Pt(30, 80), CellWall) // thin interior wall
	m.Set(Pt(60, 50), CellLine)

	tests := []struct {
		name     string
		start    Point
		delta    Point
		expected Point
	}{
		{"open field", Pt(10, 0), Pt(0, 5), Pt(0, 5)},
		{"touch down on far wall", Pt(10, 96), Pt(0, 5), Pt(0, 3)},
		{"stop on first wall cell", Pt(25, 50), Pt(5, 0), Pt(5, 0)},
		{"overshooting a thin wall", Pt(25, 50), Pt(10, 0), Pt(0, 0)},
		{"crossing a wall", Pt(28, 50), Pt(5, 0), Pt(0, 0)},
		{"stop before own line", Pt(55, 50), Pt(10, 0), Pt(4, 0)},
		{"blocked by own line", Pt(59, 50), Pt(5, 0), Pt(0, 0)},
		{"along a wall", Pt(10, 0), Pt(5, 0), Pt(1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.ValidDraw(tt.start, tt.delta); got != tt.expected {
				t.Errorf("ValidDraw(%s, %s) = %s, expected %s", tt.start, tt.delta, got, tt.expected)
			}
		})
	}
}

func TestWallSpan(t *testing.T) {
	m := NewMask(100, 100)
	m.DrawLine(Pt(40, 30), Pt(40, 70), CellWall)

	tests := []struct {
		name       string
		p          Point
		ok         bool
		horizontal bool
		vertical   bool
	}{
		{"top border", Pt(20, 0), true, true, false},
		{"left border", Pt(0, 20), true, false, true},
		{"interior wall", Pt(40, 50), true, false, true},
		{"past right edge", Pt(100, 40), true, false, true},
		{"past bottom edge", Pt(40, 100), true, true, false},
		{"empty cell", Pt(50, 50), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := m.WallSpan(tt.p)
			if ok != tt.ok {
				t.Fatalf("WallSpan(%s) ok = %v, expected %v", tt.p, ok, tt.ok)
			}
			if s.IsHorizontal() != tt.horizontal || s.IsVertical() != tt.vertical {
				t.Errorf("WallSpan(%s) = %v, horizontal %v vertical %v", tt.p, s, s.IsHorizontal(), s.IsVertical())
			}
		})
	}

	corner, ok := m.WallSpan(Pt(-1, -1))
	if !ok || corner.A != corner.B {
		t.Errorf("WallSpan past corner = %v, expected zero-length span", corner)
	}
}

func TestCapturedPercent(t *testing.T) {
	m := NewMask(10, 10)
	for x := 0; x < 10; x++ {
		m.Set(Pt(x, 0), CellArea)
	}
	if got := m.CapturedPercent(); got != 10 {
		t.Errorf("CapturedPercent() = %v, expected 10", got)
	}
}
