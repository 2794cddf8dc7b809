// Package audio provides decoded sample streams for WAV and FLAC files
package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Stream delivers interleaved float32 samples from a decoded audio file.
// Samples are normalised to [-1, 1) regardless of the source bit depth.
type Stream interface {
	// SampleRate returns the stream sample rate in Hz
	SampleRate() int

	// Channels returns the number of audio channels (1=mono, 2=stereo)
	Channels() int

	// TotalFrames returns the total number of frames in the stream.
	// Used for sizing estimates and progress; not required to be exact.
	TotalFrames() int64

	// ReadFrames fills p with up to len(p)/Channels() interleaved frames
	// and returns the number of frames read. Returns 0 only at end of
	// stream.
	ReadFrames(p []float32) (int, error)

	// Close releases the underlying file handle
	Close() error
}

// Metadata contains audio file metadata
type Metadata struct {
	Path        string
	Format      string  // container/codec name, e.g. "WAV" or "FLAC"
	Duration    float64 // seconds
	SampleRate  int
	Channels    int
	BitDepth    int
	TotalFrames int64
}

// Open opens an audio file for streaming, dispatching on file extension.
// Files with more than two channels are rejected here so downstream
// analysis only ever sees mono or stereo input.
func Open(filename string) (Stream, *Metadata, error) {
	var (
		stream Stream
		meta   *Metadata
		err    error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		stream, meta, err = OpenWAV(filename)
	case ".flac":
		stream, meta, err = OpenFLAC(filename)
	default:
		return nil, nil, fmt.Errorf("unsupported file type %q (expected .wav or .flac)", filepath.Ext(filename))
	}
	if err != nil {
		return nil, nil, err
	}

	if meta.Channels < 1 || meta.Channels > 2 {
		stream.Close()
		return nil, nil, fmt.Errorf("this metric is only designed for mono and stereo input (%s has %d channels)", filename, meta.Channels)
	}
	if meta.SampleRate <= 0 {
		stream.Close()
		return nil, nil, fmt.Errorf("invalid sample rate %d in file: %s", meta.SampleRate, filename)
	}

	return stream, meta, nil
}
