package arena

// Handedness selects which way a wall-follow trace runs around the free
// region's wall loop.
type Handedness int

const (
	Clockwise Handedness = iota
	CounterClockwise
)

func (h Handedness) String() string {
	if h == Clockwise {
		return "clockwise"
	}
	return "counter-clockwise"
}

// followPriority is the fixed neighbour order each trace tries at every
// cell. The two orders leave a straight wall in opposite directions.
var followPriority = [2][4]Direction{
	Clockwise:        {DirDown, DirLeft, DirRight, DirUp},
	CounterClockwise: {DirUp, DirRight, DirDown, DirLeft},
}

// DefaultMaxVertices bounds the corners a single trace may record.
const DefaultMaxVertices = 100

// Waypoint is one vertex of the open path plus the direction of the leg
// that leaves it.
type Waypoint struct {
	Point
	Dir Direction
}

// Contour is the result of one wall-follow trace from the path start to
// the path stop.
type Contour struct {
	Hand     Handedness
	Vertices []Point // start plus every corner, stop excluded
	First    Direction
	Steps    int
}

// SelectionRule records why a capture candidate won.
type SelectionRule int

const (
	SelectAvoidAdversary SelectionRule = iota
	SelectSmallerArea
)

func (r SelectionRule) String() string {
	if r == SelectAvoidAdversary {
		return "avoid-adversary"
	}
	return "smaller-area"
}

// Capture is a finalized closure: the selected polygon and the rejected
// complement.
type Capture struct {
	Polygon  Polygon
	Rejected Polygon
	Rule     SelectionRule
}

// Tracer accumulates the player's open path and closes it into a capture
// polygon by following the wall contour both ways.
type Tracer struct {
	mask        *Mask
	maxVertices int
	waypoints   []Waypoint
	moves       int
	fastMoves   int
}

// NewTracer creates a tracer painting into m.
func NewTracer(m *Mask, maxVertices int) *Tracer {
	if maxVertices <= 0 {
		maxVertices = DefaultMaxVertices
	}
	return &Tracer{mask: m, maxVertices: maxVertices}
}

// Len returns the number of waypoints.
func (t *Tracer) Len() int { return len(t.waypoints) }

// Legs returns the number of straight segments between waypoints.
func (t *Tracer) Legs() int { return max(len(t.waypoints)-1, 0) }

// Last returns the most recent waypoint.
func (t *Tracer) Last() (Waypoint, bool) {
	if len(t.waypoints) == 0 {
		return Waypoint{}, false
	}
	return t.waypoints[len(t.waypoints)-1], true
}

// Waypoints returns a copy of the path vertices.
func (t *Tracer) Waypoints() []Waypoint {
	out := make([]Waypoint, len(t.waypoints))
	copy(out, t.waypoints)
	return out
}

// Points returns the path vertices without directions.
func (t *Tracer) Points() []Point {
	out := make([]Point, len(t.waypoints))
	for i, w := range t.waypoints {
		out[i] = w.Point
	}
	return out
}

// NoteMove records one drawing step and whether it was made slowly.
func (t *Tracer) NoteMove(slow bool) {
	t.moves++
	if !slow {
		t.fastMoves++
	}
}

// Slow reports whether every recorded drawing step was slow.
func (t *Tracer) Slow() bool {
	return t.moves > 0 && t.fastMoves == 0
}

// AddWaypoint appends p. A repeated point is ignored and a point that
// extends a straight run replaces the run's end. The new leg is painted
// as line over empty cells, so anchors on the wall keep their class.
func (t *Tracer) AddWaypoint(p Point, dir Direction) {
	n := len(t.waypoints)
	if n > 0 && t.waypoints[n-1].Point == p {
		return
	}
	if n > 0 {
		prev := t.waypoints[n-1].Point
		t.mask.Overlay(prev, p, CellLine, CellEmpty)
	}
	if n >= 2 && extends(t.waypoints[n-2].Point, t.waypoints[n-1].Point, p) {
		t.waypoints[n-1] = Waypoint{Point: p, Dir: t.waypoints[n-1].Dir}
		return
	}
	t.waypoints = append(t.waypoints, Waypoint{Point: p, Dir: dir})
}

// extends reports whether c continues the straight run a→b past b.
func extends(a, b, c Point) bool {
	switch {
	case a.X == b.X && b.X == c.X:
		return (b.Y-a.Y)*(c.Y-b.Y) > 0
	case a.Y == b.Y && b.Y == c.Y:
		return (b.X-a.X)*(c.X-b.X) > 0
	}
	return false
}

// Clear forgets the path without touching the mask.
func (t *Tracer) Clear() {
	t.waypoints = t.waypoints[:0]
	t.moves = 0
	t.fastMoves = 0
}

// Erase reverts the painted path, including an unfinished tail ending at
// tail, back to empty and then forgets it.
func (t *Tracer) Erase(tail Point) {
	for i := 1; i < len(t.waypoints); i++ {
		t.mask.Overlay(t.waypoints[i-1].Point, t.waypoints[i].Point, CellEmpty, CellLine)
	}
	if last, ok := t.Last(); ok {
		t.mask.Overlay(last.Point, tail, CellEmpty, CellLine)
	}
	t.Clear()
}

// followWall picks the next step from p. last is the previous step of
// the same trace, DirNone on the first step; its reversal is never taken.
// skip is never taken either; DirNone disables it.
func (t *Tracer) followWall(p Point, hand Handedness, last, skip Direction) Direction {
	back := last.Opposite()
	for _, d := range followPriority[hand] {
		if last != DirNone && d == back {
			continue
		}
		if skip != DirNone && d == skip {
			continue
		}
		if t.mask.Get(p.Add(d.Delta())) == CellWall {
			return d
		}
	}
	return DirNone
}

// Trace walks the wall from s to e one cell at a time. Each call owns its
// direction state. It fails on a dead end, on revisiting a cell, or when
// more than the vertex budget of corners is recorded.
func (t *Tracer) Trace(s, e Point, hand Handedness) (Contour, error) {
	return t.trace(s, e, hand, DirNone)
}

// trace is Trace with the first step barred from leaving s towards
// notFirst.
func (t *Tracer) trace(s, e Point, hand Handedness, notFirst Direction) (Contour, error) {
	c := Contour{Hand: hand, Vertices: []Point{s}}
	visited := map[Point]struct{}{s: {}}

	cur := s
	last := DirNone
	for cur != e {
		skip := DirNone
		if last == DirNone {
			skip = notFirst
		}
		dir := t.followWall(cur, hand, last, skip)
		if dir == DirNone {
			return c, &GeometryError{Hand: hand, At: cur, Reason: "dead end"}
		}
		if last == DirNone {
			c.First = dir
		}
		if last != DirNone && dir != last {
			c.Vertices = append(c.Vertices, cur)
			if len(c.Vertices) > t.maxVertices {
				return c, &GeometryError{Hand: hand, At: cur, Reason: "vertex budget exceeded"}
			}
		}

		cur = cur.Add(dir.Delta())
		c.Steps++
		last = dir

		if cur == e {
			break
		}
		if _, seen := visited[cur]; seen {
			return c, &GeometryError{Hand: hand, At: cur, Reason: "revisited cell"}
		}
		visited[cur] = struct{}{}
	}
	return c, nil
}

// closeContour joins a traced contour with the reversed path.
func closeContour(c Contour, path []Point) Polygon {
	pg := make(Polygon, 0, len(c.Vertices)+len(path))
	pg = append(pg, c.Vertices...)
	for i := len(path) - 1; i > 0; i-- {
		pg = append(pg, path[i])
	}
	return pg
}

// Finalize anchors both path ends to the wall, traces the contour both
// ways and selects the captured polygon. The counter-clockwise trace may
// not leave the start the way the clockwise one did: an anchor on a
// territory corner can have both priority orders agree on its first step.
// When avoid is non-nil the polygon that does not contain it wins; if
// both or neither contain it, or avoid is nil, the smaller polygon wins.
func (t *Tracer) Finalize(avoid *Point) (Capture, error) {
	if len(t.waypoints) < 2 {
		return Capture{}, ErrNoPath
	}
	path := t.Points()
	s, e := path[0], path[len(path)-1]
	t.mask.Set(s, CellWall)
	t.mask.Set(e, CellWall)

	cw, err := t.Trace(s, e, Clockwise)
	if err != nil {
		return Capture{}, err
	}
	ccw, err := t.trace(s, e, CounterClockwise, cw.First)
	if err != nil {
		return Capture{}, err
	}
	if cw.First == ccw.First {
		return Capture{}, &GeometryError{Hand: CounterClockwise, At: s, Reason: "both traces leave the start the same way"}
	}

	return selectCapture(closeContour(cw, path), closeContour(ccw, path), avoid), nil
}

func selectCapture(a, b Polygon, avoid *Point) Capture {
	if avoid != nil {
		inA, inB := a.ContainsCell(*avoid), b.ContainsCell(*avoid)
		if inA != inB {
			if inA {
				return Capture{Polygon: b, Rejected: a, Rule: SelectAvoidAdversary}
			}
			return Capture{Polygon: a, Rejected: b, Rule: SelectAvoidAdversary}
		}
	}
	if a.ShoelaceArea() <= b.ShoelaceArea() {
		return Capture{Polygon: a, Rejected: b, Rule: SelectSmallerArea}
	}
	return Capture{Polygon: b, Rejected: a, Rule: SelectSmallerArea}
}
