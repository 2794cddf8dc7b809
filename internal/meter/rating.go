package meter

import "math"

// Kind discriminates the two rating variants.
type Kind int

const (
	// Mono ratings carry a single DR value.
	Mono Kind = iota
	// Stereo ratings carry independent left and right DR values.
	Stereo
)

// Rating is the result of one track's DR computation. Construct values
// with MonoRating or StereoRating; the zero value is a mono rating of 0.
type Rating struct {
	kind  Kind
	left  float64
	right float64
}

// MonoRating returns a mono Rating with the given DR value.
func MonoRating(dr float64) Rating {
	return Rating{kind: Mono, left: dr}
}

// StereoRating returns a stereo Rating with the given per-channel DR values.
func StereoRating(left, right float64) Rating {
	return Rating{kind: Stereo, left: left, right: right}
}

// Kind reports whether the rating is mono or stereo.
func (r Rating) Kind() Kind { return r.kind }

// DR returns the DR value of a mono rating.
func (r Rating) DR() float64 { return r.left }

// Left returns the left-channel DR value of a stereo rating.
func (r Rating) Left() float64 { return r.left }

// Right returns the right-channel DR value of a stereo rating.
func (r Rating) Right() float64 { return r.right }

// TrackRating returns the rounded integer rating for the whole track:
// the mono DR, or the mean of the stereo channels. ok is false when the
// underlying DR values are not finite and no rating applies.
func (r Rating) TrackRating() (rating int, ok bool) {
	var v float64
	switch r.kind {
	case Mono:
		v = math.Round(r.left)
	case Stereo:
		v = math.Round((r.left + r.right) / 2)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return int(v), true
}

// AlbumRating averages the track ratings of a set of tracks, skipping
// tracks whose rating is not applicable. ok is false when no track
// contributed a rating.
func AlbumRating(ratings []Rating) (rating int, ok bool) {
	sum, count := 0, 0
	for _, r := range ratings {
		if v, ok := r.TrackRating(); ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return int(math.Round(float64(sum) / float64(count))), true
}
