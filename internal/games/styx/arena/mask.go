package arena

import (
	"math"
	"sort"
)

// Cell classifies one grid cell of the arena.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellWall
	CellArea
	CellLine
	CellError // returned for out-of-bounds reads, never stored
)

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellArea:
		return "area"
	case CellLine:
		return "line"
	default:
		return "error"
	}
}

// Mask is the row-major cell classification grid backing the arena.
// It is the single source of truth for what every point currently is.
// Mask is not safe for concurrent use; the Arena serializes access.
type Mask struct {
	w, h   int
	cells  []Cell
	counts [CellError]int
}

// NewMask creates a w×h mask in its reset state.
func NewMask(w, h int) *Mask {
	m := &Mask{
		w:     w,
		h:     h,
		cells: make([]Cell, w*h),
	}
	m.Reset()
	return m
}

// Width returns the number of columns.
func (m *Mask) Width() int { return m.w }

// Height returns the number of rows.
func (m *Mask) Height() int { return m.h }

// InBounds reports whether p addresses a cell.
func (m *Mask) InBounds(p Point) bool {
	return p.X >= 0 && p.X < m.w && p.Y >= 0 && p.Y < m.h
}

// Reset clears every cell to empty and repaints the border ring as wall.
func (m *Mask) Reset() {
	for i := range m.cells {
		m.cells[i] = CellEmpty
	}
	m.counts = [CellError]int{}
	m.counts[CellEmpty] = len(m.cells)

	right, bottom := m.w-1, m.h-1
	m.DrawLine(Pt(0, 0), Pt(right, 0), CellWall)
	m.DrawLine(Pt(right, 0), Pt(right, bottom), CellWall)
	m.DrawLine(Pt(right, bottom), Pt(0, bottom), CellWall)
	m.DrawLine(Pt(0, bottom), Pt(0, 0), CellWall)
}

// Get returns the cell at p, or CellError when p is outside the grid.
func (m *Mask) Get(p Point) Cell {
	if !m.InBounds(p) {
		return CellError
	}
	return m.cells[p.Y*m.w+p.X]
}

// Set stores c at p. Out-of-bounds writes are ignored.
func (m *Mask) Set(p Point, c Cell) {
	if !m.InBounds(p) || c >= CellError {
		return
	}
	i := p.Y*m.w + p.X
	m.counts[m.cells[i]]--
	m.cells[i] = c
	m.counts[c]++
}

// Count returns how many cells currently hold c.
func (m *Mask) Count(c Cell) int {
	if c >= CellError {
		return 0
	}
	return m.counts[c]
}

// CapturedPercent is the share of area cells over all cells, 0..100.
func (m *Mask) CapturedPercent() float64 {
	total := len(m.cells)
	if total == 0 {
		return 0
	}
	return float64(m.counts[CellArea]) * 100 / float64(total)
}

// DrawLine paints c along the line from p1 to p2. Walls painted along a
// row or column become area where the cells on both sides are already
// area; on the border ring only the inward neighbour is consulted.
func (m *Mask) DrawLine(p1, p2 Point, c Cell) {
	switch {
	case c == CellWall && p1.Y == p2.Y:
		WalkLine(p1, p2, func(p Point) bool {
			m.Set(p, m.mergeRow(p))
			return true
		})
	case c == CellWall && p1.X == p2.X:
		WalkLine(p1, p2, func(p Point) bool {
			m.Set(p, m.mergeColumn(p))
			return true
		})
	default:
		WalkLine(p1, p2, func(p Point) bool {
			m.Set(p, c)
			return true
		})
	}
}

func (m *Mask) mergeRow(p Point) Cell {
	above := m.Get(Pt(p.X, p.Y-1))
	below := m.Get(Pt(p.X, p.Y+1))
	switch {
	case p.Y == 0 && below == CellArea:
		return CellArea
	case p.Y == m.h-1 && above == CellArea:
		return CellArea
	case above == CellArea && below == CellArea:
		return CellArea
	}
	return CellWall
}

func (m *Mask) mergeColumn(p Point) Cell {
	left := m.Get(Pt(p.X-1, p.Y))
	right := m.Get(Pt(p.X+1, p.Y))
	switch {
	case p.X == 0 && right == CellArea:
		return CellArea
	case p.X == m.w-1 && left == CellArea:
		return CellArea
	case left == CellArea && right == CellArea:
		return CellArea
	}
	return CellWall
}

// Overlay paints c along the line from p1 to p2, touching only cells that
// currently hold onto.
func (m *Mask) Overlay(p1, p2 Point, c, onto Cell) {
	WalkLine(p1, p2, func(p Point) bool {
		if m.Get(p) == onto {
			m.Set(p, c)
		}
		return true
	})
}

// DrawOutline paints every edge of pg, including the closing edge, as wall.
func (m *Mask) DrawOutline(pg Polygon) {
	n := len(pg)
	for i := range n {
		m.DrawLine(pg[i], pg[(i+1)%n], CellWall)
	}
}

type span struct {
	y, x0, x1 int // x1 exclusive
}

// FillPolygon paints every cell whose centre lies inside pg as area,
// using a scanline pass over the polygon's rows. Every row is checked
// before any cell is written, so a rejected polygon leaves the mask
// untouched.
func (m *Mask) FillPolygon(pg Polygon) error {
	if len(pg) < 3 {
		return &ConsistencyError{Row: -1, Nodes: len(pg)}
	}

	lo, hi := pg.Bounds()
	var spans []span
	nodes := make([]float64, 0, 8)
	for y := lo.Y; y < hi.Y; y++ {
		nodes = nodes[:0]
		pg.crossings(float64(y)+0.5, func(x float64) {
			nodes = append(nodes, x)
		})
		if len(nodes)%2 != 0 {
			return &ConsistencyError{Row: y, Nodes: len(nodes)}
		}
		sort.Float64s(nodes)

		for i := 0; i < len(nodes); i += 2 {
			x0 := int(math.Ceil(nodes[i] - 0.5))
			x1 := int(math.Ceil(nodes[i+1] - 0.5))
			x0 = max(x0, 0)
			x1 = min(x1, m.w)
			if x0 < x1 {
				spans = append(spans, span{y: y, x0: x0, x1: x1})
			}
		}
	}

	for _, s := range spans {
		for x := s.x0; x < s.x1; x++ {
			m.Set(Pt(x, s.y), CellArea)
		}
	}
	return nil
}

// cellsAlong lists the cells from start (exclusive) to start+delta.
func cellsAlong(start, delta Point) []Point {
	if delta.IsZero() {
		return nil
	}
	var out []Point
	WalkLine(start, start.Add(delta), func(p Point) bool {
		if p != start {
			out = append(out, p)
		}
		return true
	})
	return out
}

// ValidMove returns the longest prefix of delta whose every cell is wall,
// keeping edge movement on the boundary contour. It returns the zero
// displacement when the first step already leaves the wall.
func (m *Mask) ValidMove(start, delta Point) Point {
	var last Point
	for _, p := range cellsAlong(start, delta) {
		if m.Get(p) != CellWall {
			break
		}
		last = p.Sub(start)
	}
	return last
}

// ValidDraw returns the longest prefix of delta that crosses only empty
// cells, optionally ending on the first cell of a wall run so a drawn
// line can touch down on the far boundary. A wall run followed by more
// empty cells means the move would cross a wall and yields zero. A line,
// area or out-of-bounds cell ends the prefix before it.
func (m *Mask) ValidDraw(start, delta Point) Point {
	cells := cellsAlong(start, delta)
	n := len(cells)

	i := 0
	for i < n && m.Get(cells[i]) == CellEmpty {
		i++
	}

	if i < n && m.Get(cells[i]) == CellWall {
		j := i
		for j < n && m.Get(cells[j]) == CellWall {
			j++
		}
		if j < n && m.Get(cells[j]) == CellEmpty {
			return Point{}
		}
		return cells[i].Sub(start)
	}

	if i == 0 {
		return Point{}
	}
	return cells[i-1].Sub(start)
}

// WallSpan returns the boundary that contains p, used to orient a
// reflection. For a wall cell it is the longer of the horizontal and
// vertical wall runs through p. For a point outside the grid it is the
// arena edge that was crossed; a point past a corner yields a zero-length
// span. ok is false when p is inside the grid but not a wall.
func (m *Mask) WallSpan(p Point) (s Segment, ok bool) {
	if !m.InBounds(p) {
		outX := p.X < 0 || p.X >= m.w
		outY := p.Y < 0 || p.Y >= m.h
		switch {
		case outX && outY:
			return Segment{A: p, B: p}, true
		case outX:
			return Segment{A: Pt(p.X, 0), B: Pt(p.X, m.h-1)}, true
		default:
			return Segment{A: Pt(0, p.Y), B: Pt(m.w-1, p.Y)}, true
		}
	}
	if m.Get(p) != CellWall {
		return Segment{}, false
	}

	left, right := p, p
	for m.Get(left.Add(Pt(-1, 0))) == CellWall {
		left.X--
	}
	for m.Get(right.Add(Pt(1, 0))) == CellWall {
		right.X++
	}
	top, bottom := p, p
	for m.Get(top.Add(Pt(0, -1))) == CellWall {
		top.Y--
	}
	for m.Get(bottom.Add(Pt(0, 1))) == CellWall {
		bottom.Y++
	}

	hLen := right.X - left.X
	vLen := bottom.Y - top.Y
	switch {
	case hLen == 0 && vLen == 0:
		return Segment{A: p, B: p}, true
	case hLen >= vLen:
		return Segment{A: left, B: right}, true
	default:
		return Segment{A: top, B: bottom}, true
	}
}
