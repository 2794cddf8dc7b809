package ui

import (
	"github.com/sboukortt/speedr/internal/meter"
)

// FileStartMsg indicates a worker has started analysing a file
type FileStartMsg struct {
	FileIndex int
}

// FileProgressMsg reports how far through a file the analysis is
type FileProgressMsg struct {
	FileIndex int
	Progress  float64 // 0.0 to 1.0
}

// FileCompleteMsg indicates a file has finished analysing
type FileCompleteMsg struct {
	FileIndex int
	Rating    meter.Rating
	Err       error
}

// AllCompleteMsg indicates all files have been analysed
type AllCompleteMsg struct{}
