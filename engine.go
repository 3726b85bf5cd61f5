package snowfield

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine is the snow-instance simulation core. It owns the instance pool,
// the cluster arena, the resonance timers, and the falling-body simulator,
// and advances them all synchronously in a fixed order once per frame.
//
// An Engine is single-caller: no operation suspends or spawns concurrent
// work, and no two callers may invoke Advance on the same instance. A host
// that needs several independent simulations creates distinct engines.
type Engine struct {
	cfg Config
	rng *rand.Rand
	log *zap.Logger

	pool      *InstancePool
	resonance *resonanceEngine
	fall      *FallSimulator

	elapsedMS float64
	progress  Progress

	// OnClusterCleared, when set, is invoked synchronously during Advance
	// for every cluster that clears that frame, in id order. Intended for
	// the audio-cue/logging collaborator.
	OnClusterCleared func(ClusterID, MatchRule)
}

// NewEngine builds a complete simulation from raw tree geometry: segments
// are extracted and filtered, patches placed, clusters built and assigned
// rules, and the falling-body simulator prepared. Malformed (non-finite)
// geometry is rejected here, before it can poison any downstream state.
//
// A mesh with zero qualifying edges is not an error; the engine simply has
// no patches and never reports completion.
func NewEngine(mesh Mesh, cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	segs, err := ExtractSegments(mesh)
	if err != nil {
		return nil, fmt.Errorf("snowfield: %w", err)
	}
	placements := PlaceSegments(segs, rng)

	pool := newInstancePool(placements, cfg.BaseColor, cfg.HighlightColor)
	clusters := buildClusters(pool, cfg.ClusterRadius, rng)

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("engine_id", uuid.NewString()))

	e := &Engine{
		cfg:       cfg,
		rng:       rng,
		log:       log,
		pool:      pool,
		resonance: newResonanceEngine(clusters, cfg.ClearThresholdMS),
		fall: newFallSimulator(rng, fallParams{
			gravity:   cfg.Gravity,
			killY:     cfg.KillY,
			driftAmp:  cfg.DriftAmplitude,
			driftFreq: cfg.DriftFrequency,
			fadeDur:   cfg.FadeSeconds,
			baseColor: cfg.BaseColor,
			fadeColor: cfg.FadeColor,
		}),
		progress: computeProgress(pool, clusters),
	}

	log.Info("engine initialized",
		zap.Int("segments", len(segs)),
		zap.Int("patches", pool.Len()),
		zap.Int("clusters", len(clusters)),
	)
	return e, nil
}

// Advance runs one frame: the control signal is scored against every
// uncleared cluster, timers accumulate or decay, clusters crossing the
// threshold are cleared (retiring their patches and seeding falling
// bodies), falling bodies integrate, the render buffers are re-derived,
// and the aggregate progress is recomputed. deltaMS is the measured elapsed
// time since the previous frame; negative values are treated as zero.
func (e *Engine) Advance(sig ControlSignal, deltaMS float64) {
	if deltaMS < 0 {
		deltaMS = 0
	}
	e.elapsedMS += deltaMS
	dt := deltaMS / 1000

	var stats frameStats
	stats.start(e.cfg.Debug)

	e.resonance.score(sig)
	stats.mark(&stats.score)

	for _, id := range e.resonance.tick(deltaMS) {
		e.clearCluster(id)
	}
	stats.mark(&stats.clear)

	e.fall.update(dt, e.elapsedMS/1000)
	stats.mark(&stats.fall)

	e.applyClusterVisuals()
	e.fall.publish()
	stats.mark(&stats.publish)

	e.progress = computeProgress(e.pool, e.resonance.clusters)

	if e.cfg.Debug {
		stats.falling = e.fall.Len()
		e.debugLog(stats)
	}
}

// clearCluster cascades a cluster clear: every member patch is retired and a
// falling body seeded from its fixed pre-clear transform, as one operation.
// Clearing an already-cleared cluster is a no-op (tick never reports one
// twice, but timer races upstream must stay harmless).
func (e *Engine) clearCluster(id ClusterID) {
	c := e.resonance.cluster(id)
	if c == nil {
		return
	}
	for _, patchID := range c.Members {
		pa := &e.pool.patches[patchID]
		if !pa.Active {
			continue
		}
		// Retire and seed atomically: a retired slot without a body would
		// be a visually empty hole.
		_ = e.pool.retire(patchID)
		e.fall.seed(patchID, pa.Original)
	}

	e.log.Info("cluster cleared",
		zap.Int("cluster", int(id)),
		zap.Int("members", len(c.Members)),
		zap.String("chord", string(c.Rule.Chord)),
		zap.String("volume", string(c.Rule.Volume)),
		zap.String("filter", string(c.Rule.Filter)),
		zap.String("bass", string(c.Rule.Bass)),
	)
	if e.OnClusterCleared != nil {
		e.OnClusterCleared(id, c.Rule)
	}
}

// SnowTransforms returns the static pool's per-slot world transforms.
// Valid for one frame; re-derived each Advance.
func (e *Engine) SnowTransforms() []Mat4 {
	return e.pool.Transforms()
}

// SnowColors returns the static pool's per-slot colors.
func (e *Engine) SnowColors() []Color {
	return e.pool.Colors()
}

// FallingTransforms returns the falling-body transforms. Length varies with
// the live body count.
func (e *Engine) FallingTransforms() []Mat4 {
	return e.fall.Transforms()
}

// FallingColors returns the falling-body colors.
func (e *Engine) FallingColors() []Color {
	return e.fall.Colors()
}

// Progress returns the aggregate completion metrics as of the last Advance.
func (e *Engine) Progress() Progress {
	return e.progress
}

// ClusterProgress returns the cluster's resonance accumulation in [0, 1]
// (timer over clear threshold), for UI hinting. Cleared clusters report 1.
func (e *Engine) ClusterProgress(id ClusterID) (float64, error) {
	if e.resonance.cluster(id) == nil {
		return 0, fmt.Errorf("%w: cluster %d (engine has %d)", ErrInvalidID, id, len(e.resonance.clusters))
	}
	return e.resonance.progress(id), nil
}

// Cluster returns a copy of the cluster record for id.
func (e *Engine) Cluster(id ClusterID) (ResonanceCluster, error) {
	c := e.resonance.cluster(id)
	if c == nil {
		return ResonanceCluster{}, fmt.Errorf("%w: cluster %d (engine has %d)", ErrInvalidID, id, len(e.resonance.clusters))
	}
	return *c, nil
}

// ClusterCount returns the number of clusters.
func (e *Engine) ClusterCount() int {
	return len(e.resonance.clusters)
}

// Pool returns the engine's instance pool.
func (e *Engine) Pool() *InstancePool {
	return e.pool
}

// FallingCount returns the number of bodies currently falling.
func (e *Engine) FallingCount() int {
	return e.fall.Len()
}
