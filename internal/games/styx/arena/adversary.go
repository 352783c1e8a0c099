package arena

import (
	"math"
	"math/rand"
	"sync"
)

// PaletteSize is the number of colour tags trail snapshots cycle through.
const PaletteSize = 6

// AdversaryConfig holds the bouncing adversary's geometry and motion.
type AdversaryConfig struct {
	SegmentLength float64 // length of each trail segment
	StepLength    float64 // distance advanced per tick
	TrailLength   int     // snapshots kept, lead included
	MaxTurnDeg    float64 // free-flight heading perturbation bound
	JitterDeg     float64 // bounce jitter bound
}

// DefaultAdversaryConfig returns the classic adversary tuning.
func DefaultAdversaryConfig() AdversaryConfig {
	return AdversaryConfig{
		SegmentLength: 250,
		StepLength:    5,
		TrailLength:   10,
		MaxTurnDeg:    30,
		JitterDeg:     2.5,
	}
}

// HitKind classifies the outcome of an adversary collision scan.
type HitKind int

const (
	HitNone HitKind = iota
	HitWall
	HitLine
)

func (k HitKind) String() string {
	switch k {
	case HitWall:
		return "wall"
	case HitLine:
		return "line"
	default:
		return "none"
	}
}

// Hit is the result of one adversary step.
type Hit struct {
	Kind     HitKind
	At       Point
	Boundary Segment // set for wall hits
}

// Adversary is a fixed-length trail of segments that drifts across the
// arena, bounces off walls and catches unfinished paths. Its state has
// its own lock so renders never see a torn trail.
type Adversary struct {
	mu      sync.RWMutex
	cfg     AdversaryConfig
	rng     *rand.Rand
	x, y    float64
	heading float64
	trail   []Segment // most recent first
	color   int
}

// NewAdversary creates an adversary centred on start with heading 0.
func NewAdversary(cfg AdversaryConfig, rng *rand.Rand, start Point) *Adversary {
	if cfg.TrailLength < 1 {
		cfg.TrailLength = 1
	}
	a := &Adversary{cfg: cfg, rng: rng}
	a.Reset(start, 0)
	return a
}

// Reset recentres the adversary and clears its trail.
func (a *Adversary) Reset(start Point, heading float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.x, a.y = float64(start.X), float64(start.Y)
	a.heading = normAngle(heading)
	a.trail = a.trail[:0]
	a.color = 0
}

// SetStepLength changes the per-tick advance.
func (a *Adversary) SetStepLength(step float64) {
	a.mu.Lock()
	a.cfg.StepLength = step
	a.mu.Unlock()
}

// StepLength returns the per-tick advance.
func (a *Adversary) StepLength() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg.StepLength
}

// Position returns the centre rounded to the grid.
func (a *Adversary) Position() Point {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Pt(int(math.Round(a.x)), int(math.Round(a.y)))
}

// Heading returns the heading in radians, [0, 2π). Zero points along +X
// and angles grow toward +Y.
func (a *Adversary) Heading() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.heading
}

// Trail returns a copy of the trail, most recent first.
func (a *Adversary) Trail() []Segment {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Segment, len(a.trail))
	copy(out, a.trail)
	return out
}

// Lead returns the segment the next step will test against walls.
func (a *Adversary) Lead() Segment {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.segment()
}

func (a *Adversary) segment() Segment {
	half := a.cfg.SegmentLength / 2
	end := func(angle float64) Point {
		return Pt(
			int(math.Round(a.x+math.Cos(angle)*half)),
			int(math.Round(a.y+math.Sin(angle)*half)),
		)
	}
	return Segment{
		A:     end(a.heading + math.Pi/4),
		B:     end(a.heading - math.Pi/4),
		Color: a.color,
	}
}

// Step runs one simulation tick against m. On a line hit the adversary
// does not move and the trail is unchanged. The caller must keep m stable
// for the duration of the call.
func (a *Adversary) Step(m *Mask) Hit {
	a.mu.Lock()
	defer a.mu.Unlock()

	lead := a.segment()
	if hit, ok := scanLine(m, lead, a.trail); ok {
		return hit
	}

	hit := scanWall(m, lead)
	switch {
	case hit.Kind == HitWall && a.facing(hit.Boundary):
		a.heading = Reflect(a.heading, hit.Boundary) + a.jitter(a.cfg.JitterDeg)
	case hit.Kind == HitNone:
		a.heading += a.jitter(a.cfg.MaxTurnDeg)
	}
	a.heading = normAngle(a.heading)

	a.x += math.Cos(a.heading) * a.cfg.StepLength
	a.y += math.Sin(a.heading) * a.cfg.StepLength
	a.x = math.Max(0, math.Min(a.x, float64(m.Width()-1)))
	a.y = math.Max(0, math.Min(a.y, float64(m.Height()-1)))

	a.color = (a.color + 1) % PaletteSize
	a.trail = append([]Segment{a.segment()}, a.trail...)
	if len(a.trail) > a.cfg.TrailLength {
		a.trail = a.trail[:a.cfg.TrailLength]
	}
	return hit
}

// facing reports whether the heading points into an axis-aligned
// boundary. Reflecting a heading that already leaves the wall would pin
// the adversary against it.
func (a *Adversary) facing(b Segment) bool {
	switch {
	case b.IsVertical():
		return (float64(b.A.X)-a.x)*math.Cos(a.heading) > 0
	case b.IsHorizontal():
		return (float64(b.A.Y)-a.y)*math.Sin(a.heading) > 0
	}
	return true
}

func (a *Adversary) jitter(limitDeg float64) float64 {
	if limitDeg <= 0 || a.rng == nil {
		return 0
	}
	return (a.rng.Float64()*2 - 1) * limitDeg * math.Pi / 180
}

// scanLine finds the first line cell under the lead or any trail segment.
func scanLine(m *Mask, lead Segment, trail []Segment) (Hit, bool) {
	var hit Hit
	found := false
	probe := func(s Segment) {
		WalkLine(s.A, s.B, func(p Point) bool {
			if m.Get(p) == CellLine {
				hit = Hit{Kind: HitLine, At: p}
				found = true
				return false
			}
			return true
		})
	}

	probe(lead)
	for _, s := range trail {
		if found {
			break
		}
		probe(s)
	}
	return hit, found
}

// scanWall finds the first wall or out-of-bounds cell under the lead.
func scanWall(m *Mask, lead Segment) Hit {
	hit := Hit{Kind: HitNone}
	WalkLine(lead.A, lead.B, func(p Point) bool {
		c := m.Get(p)
		if c != CellWall && c != CellError {
			return true
		}
		if span, ok := m.WallSpan(p); ok {
			hit = Hit{Kind: HitWall, At: p, Boundary: span}
		}
		return false
	})
	return hit
}

// Reflect mirrors heading across the boundary. Axis-aligned boundaries
// use exact mirrors, a zero-length boundary (a corner) reverses the
// heading and any other slope mirrors across its angle.
func Reflect(heading float64, boundary Segment) float64 {
	switch {
	case boundary.A == boundary.B:
		return normAngle(heading + math.Pi)
	case boundary.IsVertical():
		return normAngle(math.Pi - heading)
	case boundary.IsHorizontal():
		return normAngle(2*math.Pi - heading)
	}
	theta := math.Atan2(float64(boundary.B.Y-boundary.A.Y), float64(boundary.B.X-boundary.A.X))
	return normAngle(2*theta - heading)
}
