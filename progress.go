package snowfield

// Progress is the aggregate completion state derived each frame for the UI
// collaborator.
type Progress struct {
	// PatchesFallen is the fraction of patches retired into the falling
	// system, in [0, 1]. Retirement is permanent, so this is monotonic.
	PatchesFallen float64
	// ClustersCleared is the fraction of clusters cleared, in [0, 1].
	ClustersCleared float64
	// Complete reports whether every cluster has cleared. Zero clusters is
	// not complete: an empty tree must not report false success.
	Complete bool
}

// computeProgress derives the aggregate metrics from pool and cluster state.
func computeProgress(pool *InstancePool, clusters []ResonanceCluster) Progress {
	var p Progress

	if n := pool.Len(); n > 0 {
		p.PatchesFallen = float64(n-pool.ActiveCount()) / float64(n)
	}

	if len(clusters) == 0 {
		return p
	}
	cleared := 0
	for i := range clusters {
		if clusters[i].Cleared {
			cleared++
		}
	}
	p.ClustersCleared = float64(cleared) / float64(len(clusters))
	p.Complete = cleared == len(clusters)
	return p
}
