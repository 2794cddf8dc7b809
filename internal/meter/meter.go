// Package meter computes Dynamic Range (DR) ratings for decoded audio
// streams. A track is cut into roughly three-second blocks; each block is
// reduced to a mean-square energy and a peak, the loudest 20% of blocks
// are averaged with AES17 calibration, and the rating is the decibel ratio
// of the second-highest block peak to that average. Mono and stereo inputs
// share the same pipeline; stereo channels are measured independently over
// shared block boundaries.
package meter

import (
	"fmt"
	"math"

	"github.com/sboukortt/speedr/internal/audio"
)

// ComputeMonoDR computes the DR value of a mono stream. The result may be
// non-finite for silent or empty input; callers should present such
// values as not applicable rather than treat them as errors.
func ComputeMonoDR(s audio.Stream) (float64, error) {
	stats, err := collectMono(s, BlockSize(s.SampleRate()))
	if err != nil {
		return 0, err
	}
	average, peak := aggregate(stats)
	return drValue(average, peak), nil
}

// ComputeStereoDR computes independent left and right DR values of an
// interleaved stereo stream in one pass.
func ComputeStereoDR(s audio.Stream) (float64, float64, error) {
	left, right, err := collectStereo(s, BlockSize(s.SampleRate()))
	if err != nil {
		return 0, 0, err
	}
	leftAverage, leftPeak := aggregate(left)
	rightAverage, rightPeak := aggregate(right)
	return drValue(leftAverage, leftPeak), drValue(rightAverage, rightPeak), nil
}

// ComputeRating dispatches on the stream's channel count and wraps the
// result in a Rating. Streams must be mono or stereo; anything else is
// rejected when the file is opened, so an unexpected count here is an
// error rather than a panic.
func ComputeRating(s audio.Stream) (Rating, error) {
	switch s.Channels() {
	case 1:
		dr, err := ComputeMonoDR(s)
		if err != nil {
			return Rating{}, err
		}
		return MonoRating(dr), nil
	case 2:
		left, right, err := ComputeStereoDR(s)
		if err != nil {
			return Rating{}, err
		}
		return StereoRating(left, right), nil
	default:
		return Rating{}, fmt.Errorf("unsupported channel count: %d", s.Channels())
	}
}

// drValue converts one channel's aggregate statistics to the decibel-scale
// DR value. A zero energy average yields a non-finite result.
func drValue(averageTopMeanSquare, peak float64) float64 {
	return 10 * math.Log10(peak*peak/averageTopMeanSquare)
}
