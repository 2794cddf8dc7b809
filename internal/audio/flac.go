package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// flacStream streams interleaved samples from a FLAC file. Decoded frames
// arrive as planar per-channel subframes, so each one is interleaved into
// a holding buffer and handed out as callers ask for frames.
type flacStream struct {
	stream      *flac.Stream
	buf         []float32 // interleave buffer backing pending
	pending     []float32 // decoded samples not yet delivered
	scale       float32
	sampleRate  int
	channels    int
	totalFrames int64
}

// OpenFLAC opens a FLAC file for streaming.
func OpenFLAC(filename string) (Stream, *Metadata, error) {
	stream, err := flac.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s for audio decoding: %w", filename, err)
	}

	info := stream.Info
	bits := int(info.BitsPerSample)

	meta := &Metadata{
		Path:        filename,
		Format:      "FLAC",
		SampleRate:  int(info.SampleRate),
		Channels:    int(info.NChannels),
		BitDepth:    bits,
		TotalFrames: int64(info.NSamples),
	}
	if info.SampleRate > 0 {
		meta.Duration = float64(info.NSamples) / float64(info.SampleRate)
	}

	return &flacStream{
		stream:      stream,
		scale:       1 / float32(int64(1)<<(bits-1)),
		sampleRate:  int(info.SampleRate),
		channels:    int(info.NChannels),
		totalFrames: int64(info.NSamples),
	}, meta, nil
}

func (s *flacStream) SampleRate() int    { return s.sampleRate }
func (s *flacStream) Channels() int      { return s.channels }
func (s *flacStream) TotalFrames() int64 { return s.totalFrames }

func (s *flacStream) ReadFrames(p []float32) (int, error) {
	maxFrames := len(p) / s.channels
	if maxFrames == 0 {
		return 0, nil
	}

	want := maxFrames * s.channels
	filled := 0
	for filled < want {
		if len(s.pending) > 0 {
			n := copy(p[filled:want], s.pending)
			s.pending = s.pending[n:]
			filled += n
			continue
		}

		f, err := s.stream.ParseNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return filled / s.channels, fmt.Errorf("failed to decode FLAC frame: %w", err)
		}
		s.bufferFrame(f)
	}

	return filled / s.channels, nil
}

// bufferFrame interleaves one decoded FLAC frame's planar subframes into
// the pending buffer. Called only when pending is empty.
func (s *flacStream) bufferFrame(f *frame.Frame) {
	if len(f.Subframes) == 0 {
		return
	}
	need := len(f.Subframes[0].Samples) * s.channels
	if cap(s.buf) < need {
		s.buf = make([]float32, need)
	}
	s.buf = s.buf[:need]

	for ch := 0; ch < s.channels && ch < len(f.Subframes); ch++ {
		samples := f.Subframes[ch].Samples
		for i, v := range samples {
			s.buf[i*s.channels+ch] = float32(v) * s.scale
		}
	}
	s.pending = s.buf
}

func (s *flacStream) Close() error {
	return s.stream.Close()
}
