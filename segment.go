package snowfield

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// BranchSegment is one piece of branch skeleton: an oriented line with an
// estimated thickness, derived from mesh edges. Immutable once extracted.
type BranchSegment struct {
	Start, End r3.Vec
	Radius     float64
}

// Length returns the segment's endpoint distance.
func (s BranchSegment) Length() float64 {
	return r3.Norm(r3.Sub(s.End, s.Start))
}

// Midpoint returns the segment's midpoint.
func (s BranchSegment) Midpoint() r3.Vec {
	return r3.Scale(0.5, r3.Add(s.Start, s.End))
}

// Edge acceptance thresholds. An edge only qualifies as branch skeleton when
// it sits clear of the ground and has a plausible branch length.
const (
	groundClearance = 0.5 // minimum midpoint height
	minEdgeLength   = 0.1 // rejects degenerate edges
	maxEdgeLength   = 2.0 // rejects implausibly long edges
)

// Synthetic radius estimate: branch thickness data is not available per
// edge, so radius tapers linearly with height, clamped to a minimum.
const (
	radiusAtGround = 0.25
	radiusTaper    = 0.012 // per length unit of height
	radiusFloor    = 0.03
)

// maxFallbackSamples caps the vertex-stream sampling when no index buffer is
// present, so huge unindexed meshes still produce a bounded segment set.
const maxFallbackSamples = 500

// ExtractSegments converts mesh triangle data into a deduplicated set of
// branch segments. With an index buffer, every unique triangle edge
// (deduplicated by unordered vertex pair) is considered. Without one, the
// vertex stream is sampled at a stride producing at most maxFallbackSamples
// points, with consecutive samples paired as pseudo-edges.
//
// A mesh with zero qualifying edges yields an empty (valid) result.
// Non-finite geometry is rejected here, before it can poison placement.
func ExtractSegments(m Mesh) ([]BranchSegment, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	var segs []BranchSegment
	if len(m.Indices) >= 3 {
		seen := make(map[[2]int]struct{})
		triangles := len(m.Indices) / 3
		for t := 0; t < triangles; t++ {
			a := m.Indices[t*3]
			b := m.Indices[t*3+1]
			c := m.Indices[t*3+2]
			for _, e := range [3][2]int{{a, b}, {b, c}, {c, a}} {
				key := e
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				if seg, ok := qualifyEdge(m.Positions[e[0]], m.Positions[e[1]]); ok {
					segs = append(segs, seg)
				}
			}
		}
		return segs, nil
	}

	// No index buffer: stride-sample the vertex stream and pair neighbors.
	n := len(m.Positions)
	stride := 1
	if n > maxFallbackSamples {
		stride = (n + maxFallbackSamples - 1) / maxFallbackSamples
	}
	var prev r3.Vec
	havePrev := false
	for i := 0; i < n; i += stride {
		p := m.Positions[i]
		if havePrev {
			if seg, ok := qualifyEdge(prev, p); ok {
				segs = append(segs, seg)
			}
		}
		prev = p
		havePrev = true
	}
	return segs, nil
}

// qualifyEdge applies the clearance and length filters to an endpoint pair
// and derives the synthetic radius. Returns ok=false when the edge does not
// qualify as branch skeleton.
func qualifyEdge(a, b r3.Vec) (BranchSegment, bool) {
	midY := (a.Y + b.Y) * 0.5
	if midY <= groundClearance {
		return BranchSegment{}, false
	}
	length := r3.Norm(r3.Sub(b, a))
	if length <= minEdgeLength || length >= maxEdgeLength {
		return BranchSegment{}, false
	}
	radius := radiusAtGround - midY*radiusTaper
	if radius < radiusFloor {
		radius = radiusFloor
	}
	return BranchSegment{Start: a, End: b, Radius: radius}, true
}
