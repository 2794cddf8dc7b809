package audio

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// testWAVOptions configures the synthetic WAV file to generate
type testWAVOptions struct {
	SampleRate   int       // Sample rate (default: 44100)
	NumChannels  int       // Channel count (default: 1)
	BitDepth     int       // Bits per sample: 8, 16, 24 or 32 (default: 16)
	AudioFormat  uint16    // Format tag for the fmt chunk (default: 1, PCM)
	Samples      []int     // Raw interleaved sample values, already quantised
	FloatSamples []float32 // Interleaved float32 samples for format 3 files
}

// generateTestWAV writes a synthetic WAV file into a test temp dir and
// returns its path. Sample values are written verbatim at the requested
// bit depth, so tests control quantisation exactly.
func generateTestWAV(t *testing.T, opts testWAVOptions) string {
	t.Helper()

	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if opts.NumChannels == 0 {
		opts.NumChannels = 1
	}
	if opts.BitDepth == 0 {
		opts.BitDepth = 16
	}
	if opts.AudioFormat == 0 {
		opts.AudioFormat = 1 // PCM
	}

	path := filepath.Join(t.TempDir(), "speedr-test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := writeWAV(f, opts); err != nil {
		t.Fatalf("failed to write WAV file: %v", err)
	}
	return path
}

// writeWAV writes a minimal RIFF/WAVE file with a single data chunk
func writeWAV(f *os.File, opts testWAVOptions) error {
	bytesPerSample := opts.BitDepth / 8
	byteRate := opts.SampleRate * opts.NumChannels * bytesPerSample
	blockAlign := opts.NumChannels * bytesPerSample
	numSamples := len(opts.Samples)
	if opts.FloatSamples != nil {
		numSamples = len(opts.FloatSamples)
	}
	dataSize := numSamples * bytesPerSample
	fileSize := 36 + dataSize // Total file size minus 8 bytes for RIFF header

	// RIFF header
	if _, err := f.Write([]byte("RIFF")); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(fileSize)); err != nil {
		return err
	}
	if _, err := f.Write([]byte("WAVE")); err != nil {
		return err
	}

	// fmt subchunk
	if _, err := f.Write([]byte("fmt ")); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(16)); err != nil { // Subchunk size
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, opts.AudioFormat); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint16(opts.NumChannels)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(opts.SampleRate)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(byteRate)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint16(blockAlign)); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint16(opts.BitDepth)); err != nil {
		return err
	}

	// data subchunk
	if _, err := f.Write([]byte("data")); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(dataSize)); err != nil {
		return err
	}

	if opts.FloatSamples != nil {
		for _, sample := range opts.FloatSamples {
			if err := binary.Write(f, binary.LittleEndian, math.Float32bits(sample)); err != nil {
				return err
			}
		}
		return nil
	}

	for _, sample := range opts.Samples {
		switch opts.BitDepth {
		case 8:
			if err := binary.Write(f, binary.LittleEndian, uint8(sample)); err != nil {
				return err
			}
		case 16:
			if err := binary.Write(f, binary.LittleEndian, int16(sample)); err != nil {
				return err
			}
		case 24:
			b := [3]byte{byte(sample), byte(sample >> 8), byte(sample >> 16)}
			if _, err := f.Write(b[:]); err != nil {
				return err
			}
		case 32:
			if err := binary.Write(f, binary.LittleEndian, int32(sample)); err != nil {
				return err
			}
		}
	}

	return nil
}

// sineInt16 generates 16-bit quantised sine samples for file round trips.
func sineInt16(n int, freq float64, rate int, amp float64) []int {
	samples := make([]int, n)
	for i := range samples {
		t := float64(i) / float64(rate)
		samples[i] = int(amp * math.Sin(2*math.Pi*freq*t) * 32767)
	}
	return samples
}

// fakeStream is a minimal in-memory Stream for wrapper tests.
type fakeStream struct {
	frames     int64
	reported   int64
	sampleRate int
	channels   int
	pos        int64
	closed     bool
}

func (s *fakeStream) SampleRate() int    { return s.sampleRate }
func (s *fakeStream) Channels() int      { return s.channels }
func (s *fakeStream) TotalFrames() int64 { return s.reported }
func (s *fakeStream) Close() error       { s.closed = true; return nil }

func (s *fakeStream) ReadFrames(p []float32) (int, error) {
	maxFrames := int64(len(p) / s.channels)
	n := s.frames - s.pos
	if n > maxFrames {
		n = maxFrames
	}
	if n <= 0 {
		return 0, nil
	}
	for i := int64(0); i < n*int64(s.channels); i++ {
		p[i] = 0.25
	}
	s.pos += n
	return int(n), nil
}
