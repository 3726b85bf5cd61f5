package snowfield

import (
	"encoding/json"
	"fmt"
)

// SignalStep is one entry in a signal script: the control-signal fields to
// report, held for Frames frames. Absent JSON fields stay absent in the
// produced signals, so scripts can exercise partial-signal matching.
type SignalStep struct {
	Frames      int      `json:"frames"`
	Chord       string   `json:"chord,omitempty"`
	VolumeDB    *float64 `json:"volume_db,omitempty"`
	FilterHz    *float64 `json:"filter_hz,omitempty"`
	Bass        string   `json:"bass,omitempty"`
	BassTrigger bool     `json:"bass_trigger,omitempty"`
}

// signalScript is the top-level JSON structure.
type signalScript struct {
	Steps []SignalStep `json:"steps"`
}

// SignalScript replays a scripted sequence of control signals frame by
// frame, for headless runs and multi-frame tests. The bass trigger flag is
// only reported on a step's first frame, matching the transient nature of a
// just-struck note.
type SignalScript struct {
	steps     []SignalStep
	cursor    int
	remaining int
	done      bool
}

// LoadSignalScript parses a JSON signal script.
func LoadSignalScript(data []byte) (*SignalScript, error) {
	var script signalScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse signal script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse signal script: no steps")
	}
	return &SignalScript{steps: script.Steps}, nil
}

// Next returns the control signal for the next frame. ok is false once the
// script is exhausted; after that the zero signal is returned forever.
func (s *SignalScript) Next() (sig ControlSignal, ok bool) {
	if s.done {
		return ControlSignal{}, false
	}
	if s.remaining == 0 {
		if s.cursor >= len(s.steps) {
			s.done = true
			return ControlSignal{}, false
		}
		st := s.steps[s.cursor]
		s.cursor++
		s.remaining = st.Frames
		if s.remaining <= 0 {
			s.remaining = 1
		}
	}

	st := s.steps[s.cursor-1]
	firstFrame := s.remaining == max(st.Frames, 1)
	s.remaining--

	sig = ControlSignal{
		Chord: Chord(st.Chord),
		Bass:  BassNote(st.Bass),
	}
	if st.VolumeDB != nil {
		sig.VolumeDB = *st.VolumeDB
		sig.HasVolume = true
	}
	if st.FilterHz != nil {
		sig.FilterHz = *st.FilterHz
		sig.HasFilter = true
	}
	sig.BassJustTriggered = st.BassTrigger && firstFrame
	return sig, true
}

// Done reports whether the script has been fully consumed.
func (s *SignalScript) Done() bool {
	return s.done
}
