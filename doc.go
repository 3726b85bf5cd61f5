// Package snowfield is a frame-driven snow-instance simulation engine.
//
// Given an arbitrary tree-like mesh, snowfield derives placeable snow-patch
// locations along the branch skeleton, groups them into spatially coherent
// clusters each bound to a matching rule, scores a continuous control signal
// against every cluster each frame, and clears clusters whose rule has been
// matched for long enough, cascading their patches into a free-fall
// simulation until they leave the scene.
//
// # Quick start
//
// Build an [Engine] from geometry and drive it once per frame:
//
//	eng, err := snowfield.NewEngine(mesh, snowfield.Config{Seed: 1})
//	if err != nil {
//		// malformed geometry
//	}
//	for running {
//		eng.Advance(signal, deltaMS)
//		upload(eng.SnowTransforms(), eng.SnowColors())
//		upload(eng.FallingTransforms(), eng.FallingColors())
//	}
//
// Rendering, audio, and input capture are external collaborators: the engine
// consumes a [Mesh] once and a [ControlSignal] per frame, and exposes
// per-instance transform/color buffers, [Progress] metrics, and a
// cluster-cleared callback.
//
// # Frame order
//
// Each [Engine.Advance] runs a fixed synchronous sequence: score clusters,
// accumulate/decay resonance timers and clear crossed clusters (retiring
// their patches and seeding falling bodies as one operation), integrate
// falling bodies, re-derive the render buffers, recompute progress.
//
// The engine is single-threaded. No operation blocks or spawns
// goroutines, and a single caller owns an Engine for its lifetime.
//
// # Determinism
//
// All construction-time randomness (placement roll, cluster rule draws,
// fall jitter) flows through one seeded source; set [Config.Seed] to
// reproduce an exact field, which the package's own tests rely on.
package snowfield
