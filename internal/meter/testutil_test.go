package meter

import (
	"math"
)

// memStream is an in-memory Stream implementation over pre-generated
// interleaved samples. It honours the decoder contract: reads return whole
// frames, short reads happen only at the end, and a read at end of stream
// returns 0 frames with no error.
type memStream struct {
	samples    []float32
	sampleRate int
	channels   int
	pos        int
	// totalFrames is what TotalFrames reports; set it above the real
	// frame count to simulate an inaccurate container header.
	totalFrames int64
}

func newMemStream(sampleRate, channels int, samples []float32) *memStream {
	return &memStream{
		samples:     samples,
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: int64(len(samples) / channels),
	}
}

func (m *memStream) SampleRate() int    { return m.sampleRate }
func (m *memStream) Channels() int      { return m.channels }
func (m *memStream) TotalFrames() int64 { return m.totalFrames }
func (m *memStream) Close() error       { return nil }

func (m *memStream) ReadFrames(p []float32) (int, error) {
	maxFrames := len(p) / m.channels
	remaining := (len(m.samples) - m.pos) / m.channels
	n := maxFrames
	if remaining < n {
		n = remaining
	}
	if n <= 0 {
		return 0, nil
	}
	copy(p, m.samples[m.pos:m.pos+n*m.channels])
	m.pos += n * m.channels
	return n, nil
}

// sineSamples generates amp*sin(2*pi*freq*t) sampled at rate.
func sineSamples(n int, freq float64, rate int, amp float64) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		t := float64(i) / float64(rate)
		samples[i] = float32(amp * math.Sin(2*math.Pi*freq*t))
	}
	return samples
}

// noiseSamples generates deterministic white noise in [-amp, amp] using a
// small LCG so tests stay reproducible without math/rand seeding.
func noiseSamples(n int, amp float64, seed uint32) []float32 {
	// LCG parameters from Numerical Recipes
	state := seed
	samples := make([]float32, n)
	for i := range samples {
		state = state*1664525 + 1013904223
		samples[i] = float32(amp * ((float64(state)/float64(0xFFFFFFFF))*2 - 1))
	}
	return samples
}

// constSamples generates n copies of value; a stream of constant blocks
// has exactly known mean square (value squared) and peak (|value|).
func constSamples(n int, value float64) []float32 {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(value)
	}
	return samples
}

// interleave merges equal-length left and right channels into L,R pairs.
func interleave(left, right []float32) []float32 {
	samples := make([]float32, 2*len(left))
	for i := range left {
		samples[2*i] = left[i]
		samples[2*i+1] = right[i]
	}
	return samples
}

// refReduce is the plain scalar reference for reduceBlock: a sequential
// sum of squares and running max of absolute values.
func refReduce(x []float32) (sumSquares, peak float64) {
	for _, v := range x {
		f := float64(v)
		sumSquares += f * f
		if a := math.Abs(f); a > peak {
			peak = a
		}
	}
	return sumSquares, peak
}

// refReduceStereo is the scalar reference for reduceBlockStereo.
func refReduceStereo(x []float32) (sumL, sumR, peakL, peakR float64) {
	for i := 0; i+1 < len(x); i += 2 {
		l := float64(x[i])
		r := float64(x[i+1])
		sumL += l * l
		sumR += r * r
		if a := math.Abs(l); a > peakL {
			peakL = a
		}
		if a := math.Abs(r); a > peakR {
			peakR = a
		}
	}
	return sumL, sumR, peakL, peakR
}

// closeTo reports whether got is within relative tolerance of want, with
// an absolute floor for wants at or near zero.
func closeTo(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol*math.Abs(want)+1e-12
}
