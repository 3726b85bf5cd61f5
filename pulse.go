package snowfield

import (
	"math"

	"github.com/tanema/gween/ease"
)

// applyClusterVisuals stages this frame's transient transforms and colors
// for every active patch: members of resonating clusters get a sinusoidal
// shake (amplitude scaled by cluster strength, phase offset by patch id)
// and a color lerp toward the highlight with an eased t; everything else is
// reset to its original transform and base color.
//
// Only the staged buffers change; original placements are never touched, so
// a cluster that stops resonating snaps back exactly.
func (e *Engine) applyClusterVisuals() {
	elapsed := e.elapsedMS / 1000
	amp := e.cfg.ShakeAmplitude
	freq := e.cfg.ShakeFrequency

	for ci := range e.resonance.clusters {
		c := &e.resonance.clusters[ci]
		if c.Cleared {
			continue
		}

		if !c.Resonating {
			for _, id := range c.Members {
				_ = e.pool.Reset(id)
			}
			continue
		}

		colorT := float64(ease.InOutSine(float32(c.Strength), 0, 1, 1))
		for _, id := range c.Members {
			pa := &e.pool.patches[id]
			if !pa.Active {
				continue
			}
			shake := math.Sin(elapsed*freq+float64(id)*1.3) * amp * c.Strength
			pos := pa.Original.Position
			pos.X += shake
			pos.Z -= shake * 0.5
			_ = e.pool.ApplyTransient(id, pos, colorT)
		}
	}
}
