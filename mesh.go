package snowfield

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is raw triangulated geometry in world space, consumed once at engine
// construction. Indices is optional: when present, every group of three
// entries describes one triangle over Positions; when empty, the vertex
// stream is sampled directly.
//
// The mesh is the only geometry input to the engine. How it was produced
// (procedural tree generation, file import) is a collaborator concern.
type Mesh struct {
	Positions []r3.Vec
	Indices   []int
}

// validate rejects geometry that would poison downstream positions: any
// non-finite vertex component, or an index outside the vertex range.
// An empty mesh is valid; it just yields zero segments.
func (m Mesh) validate() error {
	for i, p := range m.Positions {
		if !isFinite(p.X) || !isFinite(p.Y) || !isFinite(p.Z) {
			return fmt.Errorf("mesh: vertex %d is not finite: (%v, %v, %v)", i, p.X, p.Y, p.Z)
		}
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Positions) {
			return fmt.Errorf("mesh: index %d out of range at %d (have %d vertices)", idx, i, len(m.Positions))
		}
	}
	return nil
}

// isFinite reports whether f is neither NaN nor an infinity.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
