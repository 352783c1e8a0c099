package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrGeometry marks a capture closure the wall follower could not trace.
	ErrGeometry = errors.New("arena: geometry error")

	// ErrConsistency marks a polygon the scanline fill refused to paint.
	ErrConsistency = errors.New("arena: consistency error")

	// ErrInvariant marks a call that breaks the drawing state machine.
	ErrInvariant = errors.New("arena: invariant violation")

	// ErrNoPath is returned by Finalize when fewer than two waypoints exist.
	ErrNoPath = errors.New("arena: no path to close")
)

// GeometryError describes a failed wall-follow trace.
type GeometryError struct {
	Hand   Handedness
	At     Point
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("arena: %s trace failed at %s: %s", e.Hand, e.At, e.Reason)
}

func (e *GeometryError) Unwrap() error {
	return ErrGeometry
}

// ConsistencyError describes a scanline row with an odd crossing count,
// or a polygon too small to have an interior.
type ConsistencyError struct {
	Row   int
	Nodes int
}

func (e *ConsistencyError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("arena: degenerate polygon with %d vertices", e.Nodes)
	}
	return fmt.Sprintf("arena: odd node count %d on row %d", e.Nodes, e.Row)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrConsistency
}
