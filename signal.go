package snowfield

// Label enumerations for the four matching-rule dimensions. Clusters draw
// one value from each; the control signal is bucketed into the same spaces.

// Chord identifies the harmonic label reported by the signal source.
type Chord string

// The chord label space.
const (
	ChordC  Chord = "C"
	ChordF  Chord = "F"
	ChordG  Chord = "G"
	ChordAm Chord = "Am"
)

// chordLabels is the draw space for cluster rules.
var chordLabels = [...]Chord{ChordC, ChordF, ChordG, ChordAm}

// VolumeBand is the coarse loudness bucket.
type VolumeBand string

// The volume band space.
const (
	VolumeLow  VolumeBand = "low"
	VolumeMid  VolumeBand = "mid"
	VolumeHigh VolumeBand = "high"
)

var volumeBands = [...]VolumeBand{VolumeLow, VolumeMid, VolumeHigh}

// FilterBand is the coarse filter-cutoff bucket.
type FilterBand string

// The filter band space.
const (
	FilterDark   FilterBand = "dark"
	FilterMedium FilterBand = "medium"
	FilterBright FilterBand = "bright"
)

var filterBands = [...]FilterBand{FilterDark, FilterMedium, FilterBright}

// BassNote identifies the bass label reported by the signal source.
type BassNote string

// The bass label space.
const (
	BassC BassNote = "C"
	BassE BassNote = "E"
	BassG BassNote = "G"
)

var bassNotes = [...]BassNote{BassC, BassE, BassG}

// ControlSignal is the per-frame external parameter vector produced by the
// hand-tracking/audio collaborator. Every field is optional: a missing field
// simply does not contribute to matching. Scalars carry an explicit Has flag;
// labels use the empty string as absent.
type ControlSignal struct {
	Chord     Chord // "" when absent
	VolumeDB  float64
	HasVolume bool
	FilterHz  float64
	HasFilter bool
	Bass      BassNote // "" when absent
	// BassJustTriggered gates the bass dimension: a bass note only counts
	// toward matching on the frame it was struck, so a previously played
	// note does not keep matching indefinitely.
	BassJustTriggered bool
}

// Physically sensible bounds. Out-of-range values are clamped at the
// scoring boundary, never rejected.
const (
	minVolumeDB = -80.0
	maxVolumeDB = 0.0
	minFilterHz = 20.0
	maxFilterHz = 20000.0
)

// volumeBand buckets the signal's volume, clamped to [-80, 0] dB.
// ok is false when the signal carries no volume.
func (s ControlSignal) volumeBand() (band VolumeBand, ok bool) {
	if !s.HasVolume {
		return "", false
	}
	db := clamp(s.VolumeDB, minVolumeDB, maxVolumeDB)
	switch {
	case db > -10:
		return VolumeHigh, true
	case db > -20:
		return VolumeMid, true
	default:
		return VolumeLow, true
	}
}

// filterBand buckets the signal's filter cutoff, clamped to [20, 20000] Hz.
// ok is false when the signal carries no cutoff.
func (s ControlSignal) filterBand() (band FilterBand, ok bool) {
	if !s.HasFilter {
		return "", false
	}
	hz := clamp(s.FilterHz, minFilterHz, maxFilterHz)
	switch {
	case hz > 4000:
		return FilterBright, true
	case hz > 1000:
		return FilterMedium, true
	default:
		return FilterDark, true
	}
}
