package snowfield

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigZeroValueGetsDefaults(t *testing.T) {
	got := Config{}.withDefaults()
	want := DefaultConfig()
	if got.ClusterRadius != want.ClusterRadius ||
		got.ClearThresholdMS != want.ClearThresholdMS ||
		got.Gravity != want.Gravity ||
		got.KillY != want.KillY ||
		got.BaseColor != want.BaseColor {
		t.Errorf("withDefaults() = %+v, want defaults %+v", got, want)
	}
}

func TestConfigKeepsExplicitValues(t *testing.T) {
	got := Config{ClusterRadius: 4, ClearThresholdMS: 1000, Seed: 5}.withDefaults()
	if got.ClusterRadius != 4 {
		t.Errorf("ClusterRadius = %v, want 4", got.ClusterRadius)
	}
	if got.ClearThresholdMS != 1000 {
		t.Errorf("ClearThresholdMS = %v, want 1000", got.ClearThresholdMS)
	}
	if got.Seed != 5 {
		t.Errorf("Seed = %v, want 5", got.Seed)
	}
	// Untouched fields still default.
	if got.Gravity != DefaultConfig().Gravity {
		t.Errorf("Gravity = %v, want default", got.Gravity)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	got := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if got.ClusterRadius != DefaultConfig().ClusterRadius {
		t.Errorf("ClusterRadius = %v, want default", got.ClusterRadius)
	}
}

func TestLoadConfigInvalidFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	got := LoadConfig(path)
	if got.Gravity != DefaultConfig().Gravity {
		t.Errorf("Gravity = %v, want default", got.Gravity)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.json")
	if err := os.WriteFile(path, []byte(`{"cluster_radius": 1.25, "seed": 99}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got := LoadConfig(path)
	if got.ClusterRadius != 1.25 {
		t.Errorf("ClusterRadius = %v, want 1.25", got.ClusterRadius)
	}
	if got.Seed != 99 {
		t.Errorf("Seed = %v, want 99", got.Seed)
	}
	if got.ClearThresholdMS != DefaultConfig().ClearThresholdMS {
		t.Errorf("ClearThresholdMS = %v, want default", got.ClearThresholdMS)
	}
}
