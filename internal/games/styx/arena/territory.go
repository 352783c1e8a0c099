package arena

// Entry is one committed capture.
type Entry struct {
	Polygon Polygon
	Slow    bool

	area  int
	sized bool
}

// Area returns the number of cells inside the polygon, computed on first
// use.
func (e *Entry) Area() int {
	if !e.sized {
		e.area = e.Polygon.CellArea()
		e.sized = true
	}
	return e.area
}

// Territory is the ledger of captures committed during the current level.
type Territory struct {
	entries []*Entry
}

// Add commits pg and returns its entry.
func (t *Territory) Add(pg Polygon, slow bool) *Entry {
	e := &Entry{Polygon: pg.Clone(), Slow: slow}
	t.entries = append(t.entries, e)
	return e
}

// Len returns the number of entries.
func (t *Territory) Len() int {
	return len(t.entries)
}

// Each calls fn for every entry in commit order until fn returns false.
func (t *Territory) Each(fn func(*Entry) bool) {
	for _, e := range t.entries {
		if !fn(e) {
			return
		}
	}
}

// Contains reports whether any committed polygon covers cell p.
func (t *Territory) Contains(p Point) bool {
	for _, e := range t.entries {
		if e.Polygon.ContainsCell(p) {
			return true
		}
	}
	return false
}

// TotalArea sums the memoized entry areas.
func (t *Territory) TotalArea() int {
	total := 0
	for _, e := range t.entries {
		total += e.Area()
	}
	return total
}

// Polygons returns copies of the committed polygons in commit order.
func (t *Territory) Polygons() []Polygon {
	out := make([]Polygon, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Polygon.Clone()
	}
	return out
}

// Reset drops every entry.
func (t *Territory) Reset() {
	t.entries = nil
}
