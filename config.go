package snowfield

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"
)

// Config tunes an Engine. The zero value is usable: every zero field is
// replaced by its default at construction, so callers set only what they
// care about. Load overrides from a file with LoadConfig.
type Config struct {
	// ClusterRadius is the greedy grouping radius in length units.
	ClusterRadius float64 `json:"cluster_radius"`
	// ClearThresholdMS is the sustained-resonance time needed to clear a
	// cluster, in milliseconds.
	ClearThresholdMS float64 `json:"clear_threshold_ms"`

	// Gravity is the downward acceleration on falling bodies, units/s^2.
	Gravity float64 `json:"gravity"`
	// KillY is the height below which falling bodies are retired.
	KillY float64 `json:"kill_y"`
	// DriftAmplitude and DriftFrequency shape the sinusoidal horizontal
	// drift of falling bodies.
	DriftAmplitude float64 `json:"drift_amplitude"`
	DriftFrequency float64 `json:"drift_frequency"`
	// FadeSeconds is how long a falling body fades toward FadeColor.
	FadeSeconds float64 `json:"fade_seconds"`

	// ShakeAmplitude and ShakeFrequency shape the transient shake applied
	// to patches in resonating clusters.
	ShakeAmplitude float64 `json:"shake_amplitude"`
	ShakeFrequency float64 `json:"shake_frequency"`

	// BaseColor is the resting snow tint; HighlightColor is the lerp target
	// while a cluster resonates; FadeColor is the falling-body fade target.
	BaseColor      Color `json:"base_color"`
	HighlightColor Color `json:"highlight_color"`
	FadeColor      Color `json:"fade_color"`

	// Seed pins the engine's random source (placement roll, rule draws,
	// fall jitter) for deterministic construction. Zero draws a fresh seed.
	Seed uint64 `json:"seed"`

	// Logger receives init and cluster-clear events. Nil means no logging.
	Logger *zap.Logger `json:"-"`
	// Debug enables per-frame phase timing output on stderr.
	Debug bool `json:"debug"`
}

// DefaultConfig returns the default tuning.
func DefaultConfig() Config {
	return Config{
		ClusterRadius:    2.5,
		ClearThresholdMS: 5000,
		Gravity:          3.5,
		KillY:            -0.5,
		DriftAmplitude:   0.4,
		DriftFrequency:   2.2,
		FadeSeconds:      4,
		ShakeAmplitude:   0.05,
		ShakeFrequency:   26,
		BaseColor:        Color{R: 0.93, G: 0.95, B: 0.98},
		HighlightColor:   Color{R: 0.65, G: 0.85, B: 1},
		FadeColor:        Color{R: 0.55, G: 0.6, B: 0.7},
	}
}

// withDefaults fills every zero field from DefaultConfig. KillY keeps an
// explicit negative value; only an exact zero is treated as unset.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ClusterRadius == 0 {
		c.ClusterRadius = d.ClusterRadius
	}
	if c.ClearThresholdMS == 0 {
		c.ClearThresholdMS = d.ClearThresholdMS
	}
	if c.Gravity == 0 {
		c.Gravity = d.Gravity
	}
	if c.KillY == 0 {
		c.KillY = d.KillY
	}
	if c.DriftAmplitude == 0 {
		c.DriftAmplitude = d.DriftAmplitude
	}
	if c.DriftFrequency == 0 {
		c.DriftFrequency = d.DriftFrequency
	}
	if c.FadeSeconds == 0 {
		c.FadeSeconds = d.FadeSeconds
	}
	if c.ShakeAmplitude == 0 {
		c.ShakeAmplitude = d.ShakeAmplitude
	}
	if c.ShakeFrequency == 0 {
		c.ShakeFrequency = d.ShakeFrequency
	}
	if (c.BaseColor == Color{}) {
		c.BaseColor = d.BaseColor
	}
	if (c.HighlightColor == Color{}) {
		c.HighlightColor = d.HighlightColor
	}
	if (c.FadeColor == Color{}) {
		c.FadeColor = d.FadeColor
	}
	return c
}

// LoadConfig reads JSON overrides from path on top of the defaults. A
// missing or unparsable file returns the defaults untouched; hosts can ship
// without a config file and add one later.
func LoadConfig(path string) Config {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig()
	}
	return cfg.withDefaults()
}
