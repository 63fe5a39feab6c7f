package engine

import (
	"github.com/iburimskiy/audio-reactor/internal/features"
	"github.com/iburimskiy/audio-reactor/internal/particles"
	"github.com/iburimskiy/audio-reactor/internal/ring"
)

// Status is the engine lifecycle: Running from construction until Stop.
type Status int

const (
	Running Status = iota
	Stopped
)

func (s Status) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}

// State is everything carried from one tick to the next.
type State struct {
	// Smoothed is the extractor's persisted spectrum, read-only.
	Smoothed []float64
	Bands    features.Bands
	Ring     ring.State
	Field    *particles.Field
}
