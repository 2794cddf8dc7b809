package audio

// ProgressFunc receives the cumulative number of frames delivered so far
// and the stream's reported total. The total can be zero or inexact when
// the container header is; consumers should clamp their own percentages.
type ProgressFunc func(framesRead, totalFrames int64)

// progressStream counts frames as they pass through ReadFrames and
// reports after every delivery. Block-sized reads keep the callback rate
// low enough for direct UI updates.
type progressStream struct {
	Stream
	read int64
	fn   ProgressFunc
}

// NewProgressStream wraps s so fn observes reading progress. fn is called
// after each successful read, including the final zero-frame read at end
// of stream, and never concurrently.
func NewProgressStream(s Stream, fn ProgressFunc) Stream {
	if fn == nil {
		return s
	}
	return &progressStream{Stream: s, fn: fn}
}

func (p *progressStream) ReadFrames(buf []float32) (int, error) {
	n, err := p.Stream.ReadFrames(buf)
	if err != nil {
		return n, err
	}
	p.read += int64(n)
	p.fn(p.read, p.TotalFrames())
	return n, nil
}
