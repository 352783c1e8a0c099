package arena

import (
	"errors"
	"reflect"
	"testing"
)

func TestTraceBothWays(t *testing.T) {
	m := NewMask(1000, 1000)
	tr := NewTracer(m, 0)

	tests := []struct {
		hand     Handedness
		vertices []Point
		steps    int
	}{
		{Clockwise, []Point{{500, 0}, {0, 0}}, 1000},
		{CounterClockwise, []Point{{500, 0}, {999, 0}, {999, 999}, {0, 999}}, 2996},
	}

	for _, tt := range tests {
		t.Run(tt.hand.String(), func(t *testing.T) {
			c, err := tr.Trace(Pt(500, 0), Pt(0, 500), tt.hand)
			if err != nil {
				t.Fatalf("Trace() error = %v", err)
			}
			if !reflect.DeepEqual(c.Vertices, tt.vertices) {
				t.Errorf("Vertices = %v, expected %v", c.Vertices, tt.vertices)
			}
			if c.Steps != tt.steps {
				t.Errorf("Steps = %d, expected %d", c.Steps, tt.steps)
			}
		})
	}
}

func TestTraceFailures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(m *Mask)
		s, e   Point
		budget int
		reason string
	}{
		{
			name:   "dead end",
			setup:  func(m *Mask) { m.Set(Pt(5, 5), CellWall) },
			s:      Pt(5, 5),
			e:      Pt(0, 0),
			reason: "dead end",
		},
		{
			name:   "stop not on the wall loop",
			s:      Pt(5, 0),
			e:      Pt(5, 5),
			reason: "revisited cell",
		},
		{
			name:   "vertex budget",
			s:      Pt(5, 0),
			e:      Pt(5, 5),
			budget: 2,
			reason: "vertex budget exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMask(10, 10)
			if tt.setup != nil {
				tt.setup(m)
			}
			tr := NewTracer(m, tt.budget)

			_, err := tr.Trace(tt.s, tt.e, Clockwise)
			if !errors.Is(err, ErrGeometry) {
				t.Fatalf("Trace() error = %v, expected ErrGeometry", err)
			}
			var ge *GeometryError
			if !errors.As(err, &ge) || ge.Reason != tt.reason {
				t.Errorf("Trace() error = %v, expected reason %q", err, tt.reason)
			}
		})
	}
}

func TestAddWaypointCollapsesRuns(t *testing.T) {
	m := NewMask(1000, 1000)
	tr := NewTracer(m, 0)

	tr.AddWaypoint(Pt(500, 0), DirDown)
	tr.AddWaypoint(Pt(500, 100), DirDown)
	tr.AddWaypoint(Pt(500, 100), DirDown)
	tr.AddWaypoint(Pt(500, 200), DirDown)

	expected := []Point{{500, 0}, {500, 200}}
	if got := tr.Points(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Points() = %v, expected %v", got, expected)
	}
	if got := m.Get(Pt(500, 0)); got != CellWall {
		t.Errorf("anchor cell = %s, expected wall", got)
	}
	if got := m.Count(CellLine); got != 200 {
		t.Errorf("Count(line) = %d, expected 200", got)
	}

	tr.AddWaypoint(Pt(600, 200), DirRight)
	if tr.Len() != 3 || tr.Legs() != 2 {
		t.Errorf("Len() = %d, Legs() = %d, expected 3 and 2", tr.Len(), tr.Legs())
	}
}

func TestErase(t *testing.T) {
	m := NewMask(1000, 1000)
	tr := NewTracer(m, 0)

	tr.AddWaypoint(Pt(500, 0), DirDown)
	tr.AddWaypoint(Pt(500, 100), DirRight)
	m.Overlay(Pt(500, 100), Pt(540, 100), CellLine, CellEmpty)

	tr.Erase(Pt(540, 100))

	if got := m.Count(CellLine); got != 0 {
		t.Errorf("Count(line) after Erase = %d, expected 0", got)
	}
	if tr.Len() != 0 {
		t.Errorf("Len() after Erase = %d, expected 0", tr.Len())
	}
	if got := m.Get(Pt(500, 0)); got != CellWall {
		t.Errorf("anchor cell after Erase = %s, expected wall", got)
	}
}

func TestSlow(t *testing.T) {
	tests := []struct {
		name     string
		moves    []bool
		expected bool
	}{
		{"no moves", nil, false},
		{"all slow", []bool{true, true, true}, true},
		{"one fast step", []bool{true, false, true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracer(NewMask(10, 10), 0)
			for _, slow := range tt.moves {
				tr.NoteMove(slow)
			}
			if got := tr.Slow(); got != tt.expected {
				t.Errorf("Slow() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func rectanglePath(tr *Tracer) {
	tr.AddWaypoint(Pt(500, 0), DirDown)
	tr.AddWaypoint(Pt(500, 400), DirRight)
	tr.AddWaypoint(Pt(700, 400), DirUp)
	tr.AddWaypoint(Pt(700, 0), DirUp)
}

func TestFinalizeSelection(t *testing.T) {
	rect := Polygon{{500, 0}, {700, 0}, {700, 400}, {500, 400}}

	tests := []struct {
		name     string
		avoid    *Point
		wantRect bool
		rule     SelectionRule
	}{
		{"adversary outside the rectangle", &Point{500, 500}, true, SelectAvoidAdversary},
		{"adversary inside the rectangle", &Point{600, 200}, false, SelectAvoidAdversary},
		{"no adversary", nil, true, SelectSmallerArea},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMask(1000, 1000)
			tr := NewTracer(m, 0)
			rectanglePath(tr)

			c, err := tr.Finalize(tt.avoid)
			if err != nil {
				t.Fatalf("Finalize() error = %v", err)
			}
			if c.Rule != tt.rule {
				t.Errorf("Rule = %s, expected %s", c.Rule, tt.rule)
			}

			got := c.Polygon
			if !tt.wantRect {
				got = c.Rejected
			}
			if !reflect.DeepEqual(got, rect) {
				t.Errorf("rectangle polygon = %v, expected %v", got, rect)
			}
			if area := rect.CellArea(); area != 80000 {
				t.Errorf("CellArea() = %d, expected 80000", area)
			}
		})
	}
}

func TestFinalizeWithoutPath(t *testing.T) {
	tr := NewTracer(NewMask(10, 10), 0)
	tr.AddWaypoint(Pt(5, 0), DirDown)

	if _, err := tr.Finalize(nil); !errors.Is(err, ErrNoPath) {
		t.Errorf("Finalize() error = %v, expected ErrNoPath", err)
	}
}

func TestFinalizeFromTerritoryCorner(t *testing.T) {
	m := NewMask(1000, 1000)
	owned := Polygon{{0, 600}, {200, 600}, {200, 999}, {0, 999}}
	if err := m.FillPolygon(owned); err != nil {
		t.Fatalf("FillPolygon() error = %v", err)
	}
	m.DrawOutline(owned)

	tr := NewTracer(m, 0)
	tr.AddWaypoint(Pt(200, 600), DirRight)
	tr.AddWaypoint(Pt(400, 600), DirUp)
	tr.AddWaypoint(Pt(400, 0), DirUp)

	avoid := Pt(800, 800)
	c, err := tr.Finalize(&avoid)
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if c.Rule != SelectAvoidAdversary {
		t.Errorf("Rule = %s, expected %s", c.Rule, SelectAvoidAdversary)
	}
	expected := Polygon{{200, 600}, {0, 600}, {0, 0}, {400, 0}, {400, 600}}
	if !reflect.DeepEqual(c.Polygon, expected) {
		t.Errorf("Polygon = %v, expected %v", c.Polygon, expected)
	}
	if c.Polygon.ContainsCell(avoid) {
		t.Errorf("captured polygon %v contains %s", c.Polygon, avoid)
	}
	if !c.Rejected.ContainsCell(avoid) {
		t.Errorf("rejected polygon %v does not contain %s", c.Rejected, avoid)
	}
}

func TestTracesLeaveCornerApart(t *testing.T) {
	m := NewMask(1000, 1000)
	owned := Polygon{{0, 600}, {200, 600}, {200, 999}, {0, 999}}
	if err := m.FillPolygon(owned); err != nil {
		t.Fatalf("FillPolygon() error = %v", err)
	}
	m.DrawOutline(owned)
	m.Overlay(Pt(200, 600), Pt(400, 600), CellLine, CellEmpty)

	tr := NewTracer(m, 0)
	s, e := Pt(200, 600), Pt(400, 0)
	m.Set(e, CellWall)

	cw, err := tr.Trace(s, e, Clockwise)
	if err != nil {
		t.Fatalf("Trace(clockwise) error = %v", err)
	}
	if cw.First != DirDown {
		t.Errorf("clockwise First = %v, expected %v", cw.First, DirDown)
	}
	ccw, err := tr.trace(s, e, CounterClockwise, cw.First)
	if err != nil {
		t.Fatalf("trace(counter-clockwise) error = %v", err)
	}
	if ccw.First != DirLeft {
		t.Errorf("counter-clockwise First = %v, expected %v", ccw.First, DirLeft)
	}
}

func TestFinalizePathBackToStart(t *testing.T) {
	tr := NewTracer(NewMask(10, 10), 0)
	tr.AddWaypoint(Pt(5, 0), DirDown)
	tr.AddWaypoint(Pt(5, 3), DirUp)
	tr.AddWaypoint(Pt(5, 0), DirUp)

	_, err := tr.Finalize(nil)
	var ge *GeometryError
	if !errors.As(err, &ge) {
		t.Fatalf("Finalize() error = %v, expected *GeometryError", err)
	}
	if ge.Reason != "both traces leave the start the same way" {
		t.Errorf("Reason = %q, expected %q", ge.Reason, "both traces leave the start the same way")
	}
}
