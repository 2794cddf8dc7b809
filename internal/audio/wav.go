package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV encoding tags from the format chunk. 0xFFFE marks extensible WAV,
// which carries integer PCM for the bit depths below.
const (
	wavFormatPCM        = 1
	wavFormatIEEEFloat  = 3
	wavFormatExtensible = 0xFFFE
)

// wavStream streams interleaved samples from a PCM WAV file. Integer PCM
// is decoded through go-audio; format-3 (IEEE float) data is read
// straight off the data chunk, since go-audio only decodes integer
// sample widths.
type wavStream struct {
	file        *os.File
	dec         *wav.Decoder
	buf         *gaudio.IntBuffer // integer PCM reads
	raw         []byte            // IEEE float reads
	isFloat     bool
	scale       float32
	offset      int
	sampleRate  int
	channels    int
	totalFrames int64
	remaining   int64 // frames not yet delivered on the float path
}

// OpenWAV opens a WAV file for streaming. Integer PCM at 8, 16, 24 or 32
// bits per sample and 32-bit IEEE float are supported; 8-bit data is
// stored unsigned and is re-centred during scaling.
func OpenWAV(filename string) (Stream, *Metadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s for audio decoding: %w", filename, err)
	}

	dec := wav.NewDecoder(file)
	if !dec.IsValidFile() {
		file.Close()
		return nil, nil, fmt.Errorf("failed to open %s for audio decoding: not a valid WAV file", filename)
	}
	isFloat := dec.WavAudioFormat == wavFormatIEEEFloat
	if !isFloat && dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		file.Close()
		return nil, nil, fmt.Errorf("unsupported WAV encoding %d in %s (only integer PCM and IEEE float are supported)", dec.WavAudioFormat, filename)
	}
	if err := dec.FwdToPCM(); err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to locate PCM data in %s: %w", filename, err)
	}

	bits := int(dec.BitDepth)
	var scale float32
	var offset int
	if isFloat {
		if bits != 32 {
			file.Close()
			return nil, nil, fmt.Errorf("unsupported WAV float depth %d in %s (only 32-bit IEEE float is supported)", bits, filename)
		}
		scale = 1
	} else {
		switch bits {
		case 8:
			// 8-bit WAV is unsigned with silence at 128
			scale, offset = 1.0/128, 128
		case 16:
			scale = 1.0 / 32768
		case 24:
			scale = 1.0 / 8388608
		case 32:
			scale = 1.0 / 2147483648
		default:
			file.Close()
			return nil, nil, fmt.Errorf("unsupported WAV bit depth %d in %s", bits, filename)
		}
	}

	channels := int(dec.NumChans)
	sampleRate := int(dec.SampleRate)
	totalFrames := dec.PCMLen() / int64(bits/8*channels)

	meta := &Metadata{
		Path:        filename,
		Format:      "WAV",
		SampleRate:  sampleRate,
		Channels:    channels,
		BitDepth:    bits,
		TotalFrames: totalFrames,
	}
	if sampleRate > 0 {
		meta.Duration = float64(totalFrames) / float64(sampleRate)
	}

	return &wavStream{
		file:        file,
		dec:         dec,
		isFloat:     isFloat,
		scale:       scale,
		offset:      offset,
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		remaining:   totalFrames,
	}, meta, nil
}

func (w *wavStream) SampleRate() int    { return w.sampleRate }
func (w *wavStream) Channels() int      { return w.channels }
func (w *wavStream) TotalFrames() int64 { return w.totalFrames }

func (w *wavStream) ReadFrames(p []float32) (int, error) {
	if w.isFloat {
		return w.readFloatFrames(p)
	}

	maxFrames := len(p) / w.channels
	if maxFrames == 0 {
		return 0, nil
	}

	want := maxFrames * w.channels
	if w.buf == nil || len(w.buf.Data) != want {
		w.buf = &gaudio.IntBuffer{Data: make([]int, want)}
	}

	n, err := w.dec.PCMBuffer(w.buf)
	if err != nil {
		return 0, fmt.Errorf("failed to read PCM data: %w", err)
	}

	frames := n / w.channels
	for i := 0; i < frames*w.channels; i++ {
		p[i] = float32(w.buf.Data[i]-w.offset) * w.scale
	}
	return frames, nil
}

// readFloatFrames reads format-3 samples directly from the data chunk:
// little-endian IEEE-754 float32, already normalised. Reads are capped at
// the frame count the header declared so trailing chunks are never
// consumed as audio.
func (w *wavStream) readFloatFrames(p []float32) (int, error) {
	maxFrames := int64(len(p) / w.channels)
	if maxFrames > w.remaining {
		maxFrames = w.remaining
	}
	if maxFrames <= 0 {
		return 0, nil
	}

	want := int(maxFrames) * w.channels * 4
	if cap(w.raw) < want {
		w.raw = make([]byte, want)
	}

	n, err := io.ReadFull(w.dec.PCMChunk, w.raw[:want])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("failed to read PCM data: %w", err)
	}

	frames := n / (4 * w.channels)
	for i := 0; i < frames*w.channels; i++ {
		p[i] = math.Float32frombits(binary.LittleEndian.Uint32(w.raw[4*i:]))
	}
	w.remaining -= int64(frames)
	return frames, nil
}

func (w *wavStream) Close() error {
	return w.file.Close()
}
