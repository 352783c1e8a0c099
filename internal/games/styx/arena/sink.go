package arena

// StatusSink receives score and level readouts. Calls are made while the
// arena holds its lock, so implementations must not call back into it.
type StatusSink interface {
	ShowPercent(percent int)
	ShowScore(score int)
	ShowLives(lives int)
	ShowLevel(level int)
	ShowDrawMode(active bool)
}

type nopStatus struct{}

func (nopStatus) ShowPercent(int)   {}
func (nopStatus) ShowScore(int)     {}
func (nopStatus) ShowLives(int)     {}
func (nopStatus) ShowLevel(int)     {}
func (nopStatus) ShowDrawMode(bool) {}

// Pacer scales the adversary's step length by level.
type Pacer interface {
	LevelSpeed(base float64, level int) float64
}

// Status is a point-in-time readout of the session.
type Status struct {
	Percent  float64
	Score    int
	Lives    int
	Level    int
	Captures int // committed this session, across levels
	Drawing  bool
	Dying    bool
	Paused   bool
	Over     bool
	Won      bool
}

// TerritoryView is a committed polygon as handed to the display.
type TerritoryView struct {
	Polygon Polygon
	Slow    bool
}

// HitView is the transient death indicator.
type HitView struct {
	At       Point
	Progress float64 // 0 at the hit, 1 when the arena resets
}

// Frame is everything a display needs for one frame. It is geometry
// only and shares no memory with the arena.
type Frame struct {
	Width, Height int
	Territories   []TerritoryView
	Path          []Point // waypoints, then the player if drawing
	Player        Point
	Trail         []Segment
	Hit           *HitView
	Status        Status
}
