package snowfield

// resonanceGate is the strength above which a cluster counts as resonating.
const resonanceGate = 0.6

// decayFactor is how much faster the accumulation timer drains than it
// fills. Losing the matching signal erases progress twice as fast as
// holding it accumulates, which discourages flicker-matching.
const decayFactor = 2.0

// resonanceEngine scores every uncleared cluster against the control signal
// each frame and owns the per-cluster accumulation timers.
//
// The timer map is deliberately separate from the cluster records: the
// accumulate/decay policy resets constantly, while cluster identity data is
// immutable. Both are addressed by the same ClusterID.
type resonanceEngine struct {
	clusters  []ResonanceCluster
	timers    map[ClusterID]float64 // accumulated milliseconds
	threshold float64               // clear threshold in milliseconds
}

func newResonanceEngine(clusters []ResonanceCluster, thresholdMS float64) *resonanceEngine {
	return &resonanceEngine{
		clusters:  clusters,
		timers:    make(map[ClusterID]float64),
		threshold: thresholdMS,
	}
}

// score evaluates the signal against every non-cleared cluster. For each
// rule dimension whose signal field is present, totalChecks increments and
// matches increments on a bucketed equality. The bass dimension is only
// checked on the frame a bass note was struck. When no field is present at
// all, the cluster's prior resonance state is left untouched: absence of
// signal is not evidence of mismatch.
func (r *resonanceEngine) score(sig ControlSignal) {
	volBand, hasVol := sig.volumeBand()
	filtBand, hasFilt := sig.filterBand()

	for i := range r.clusters {
		c := &r.clusters[i]
		if c.Cleared {
			continue
		}

		totalChecks := 0
		matches := 0

		if sig.Chord != "" {
			totalChecks++
			if sig.Chord == c.Rule.Chord {
				matches++
			}
		}
		if hasVol {
			totalChecks++
			if volBand == c.Rule.Volume {
				matches++
			}
		}
		if hasFilt {
			totalChecks++
			if filtBand == c.Rule.Filter {
				matches++
			}
		}
		if sig.Bass != "" && sig.BassJustTriggered {
			totalChecks++
			if sig.Bass == c.Rule.Bass {
				matches++
			}
		}

		if totalChecks == 0 {
			continue
		}
		c.Strength = float64(matches) / float64(totalChecks)
		c.Resonating = c.Strength > resonanceGate
	}
}

// tick advances the accumulation timers by deltaMS and returns the ids of
// clusters that crossed the clear threshold this frame, in id order.
// Resonating clusters accumulate delta; others decay at decayFactor times
// the rate, with the timer entry dropped once it reaches zero. A cluster
// that clears has its entry dropped immediately; Cleared is absorbing.
func (r *resonanceEngine) tick(deltaMS float64) []ClusterID {
	var cleared []ClusterID
	for i := range r.clusters {
		c := &r.clusters[i]
		if c.Cleared {
			continue
		}

		if c.Resonating {
			t := r.timers[c.ID] + deltaMS
			if t >= r.threshold {
				c.Cleared = true
				c.Resonating = false
				delete(r.timers, c.ID)
				cleared = append(cleared, c.ID)
				continue
			}
			r.timers[c.ID] = t
			continue
		}

		t, held := r.timers[c.ID]
		if !held {
			continue
		}
		t -= decayFactor * deltaMS
		if t <= 0 {
			delete(r.timers, c.ID)
			continue
		}
		r.timers[c.ID] = t
	}
	return cleared
}

// progress returns the cluster's accumulation progress in [0, 1]
// (timer / threshold). Cleared clusters report 1; clusters with no timer
// entry report 0.
func (r *resonanceEngine) progress(id ClusterID) float64 {
	if int(id) < 0 || int(id) >= len(r.clusters) {
		return 0
	}
	if r.clusters[id].Cleared {
		return 1
	}
	return clamp(r.timers[id]/r.threshold, 0, 1)
}

// cluster returns the cluster record for id, or nil when out of range.
func (r *resonanceEngine) cluster(id ClusterID) *ResonanceCluster {
	if int(id) < 0 || int(id) >= len(r.clusters) {
		return nil
	}
	return &r.clusters[id]
}
