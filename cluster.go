package snowfield

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

// ClusterID indexes into the engine's cluster arena. Patches hold a
// ClusterID back-reference rather than a pointer; clusters outlive any
// single frame operation and are addressed by id from several components.
type ClusterID int

// MatchRule is a cluster's fixed matching tuple: one value from each of the
// four label dimensions. Assigned once at construction.
type MatchRule struct {
	Chord  Chord
	Volume VolumeBand
	Filter FilterBand
	Bass   BassNote
}

// ResonanceCluster is a fixed group of patches sharing one matching rule and
// one clear/fall fate. Membership is assigned once and is immutable; Cleared
// is monotonic (false to true, never back).
type ResonanceCluster struct {
	ID      ClusterID
	Members []int // patch ids, fixed after construction
	Rule    MatchRule

	Cleared    bool
	Resonating bool
	Strength   float64 // in [0, 1], matches/totalChecks from the last scoring
}

// buildClusters partitions every patch into disjoint spatial clusters and
// draws each cluster's rule from rng. It runs exactly once, after placement.
//
// Grouping is greedy distance-to-seed: patches are visited in id order; each
// unassigned patch seeds a new cluster, then claims every later unassigned
// patch within radius of the seed's position. A patch joins on distance to
// the seed, not to any member, so cluster shape depends on id order. That
// order dependence is deliberate and load-bearing: downstream expectations
// are pinned to it, so it must not be "fixed" into full single-linkage.
//
// Every patch lands in exactly one cluster; a cluster has at least its seed.
func buildClusters(pool *InstancePool, radius float64, rng *rand.Rand) []ResonanceCluster {
	n := pool.Len()
	var clusters []ResonanceCluster
	assigned := make([]bool, n)

	for i := 0; i < n; i++ {
		if assigned[i] {
			continue
		}
		id := ClusterID(len(clusters))
		c := ResonanceCluster{
			ID:      id,
			Members: []int{i},
			Rule:    drawRule(rng),
		}
		assigned[i] = true
		pool.patches[i].Cluster = id

		seedPos := pool.patches[i].Original.Position
		for j := i + 1; j < n; j++ {
			if assigned[j] {
				continue
			}
			if r3.Norm(r3.Sub(pool.patches[j].Original.Position, seedPos)) < radius {
				assigned[j] = true
				pool.patches[j].Cluster = id
				c.Members = append(c.Members, j)
			}
		}
		clusters = append(clusters, c)
	}
	return clusters
}

// drawRule draws one value uniformly and independently from each label
// dimension.
func drawRule(rng *rand.Rand) MatchRule {
	return MatchRule{
		Chord:  chordLabels[rng.IntN(len(chordLabels))],
		Volume: volumeBands[rng.IntN(len(volumeBands))],
		Filter: filterBands[rng.IntN(len(filterBands))],
		Bass:   bassNotes[rng.IntN(len(bassNotes))],
	}
}
