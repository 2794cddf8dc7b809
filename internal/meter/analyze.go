package meter

import (
	"fmt"

	"github.com/sboukortt/speedr/internal/audio"
)

// ChannelAnalysis carries one channel's full measurement detail: the
// per-block statistics in block order plus the aggregate values the
// rating derives from. Reports use it to show how the rating came about.
type ChannelAnalysis struct {
	// MeanSquare and Peak hold one entry per block, in block order.
	MeanSquare []float64
	Peak       []float64

	// AverageTopMeanSquare is the calibrated average of the loudest 20%
	// of blocks; SelectedPeak is the second-highest block peak.
	AverageTopMeanSquare float64
	SelectedPeak         float64

	// DR is the channel's rating, possibly non-finite.
	DR float64
}

// Analysis is the detailed result of measuring one track: the Rating the
// normal pipeline would produce plus per-channel block statistics.
type Analysis struct {
	Rating    Rating
	BlockSize int
	Channels  []ChannelAnalysis
}

// Analyze measures a stream like ComputeRating but retains the per-block
// statistics for reporting. Slightly more memory than the plain pipeline
// (the block lists survive aggregation), so it is only used when a
// detailed report was requested.
func Analyze(s audio.Stream) (*Analysis, error) {
	blockSize := BlockSize(s.SampleRate())

	switch s.Channels() {
	case 1:
		stats, err := collectMono(s, blockSize)
		if err != nil {
			return nil, err
		}
		ch := analyzeChannel(stats)
		return &Analysis{
			Rating:    MonoRating(ch.DR),
			BlockSize: blockSize,
			Channels:  []ChannelAnalysis{ch},
		}, nil
	case 2:
		left, right, err := collectStereo(s, blockSize)
		if err != nil {
			return nil, err
		}
		chL := analyzeChannel(left)
		chR := analyzeChannel(right)
		return &Analysis{
			Rating:    StereoRating(chL.DR, chR.DR),
			BlockSize: blockSize,
			Channels:  []ChannelAnalysis{chL, chR},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", s.Channels())
	}
}

// analyzeChannel aggregates a copy of the block statistics so the
// originals keep their block order for the report.
func analyzeChannel(stats channelStats) ChannelAnalysis {
	scratch := channelStats{
		meanSquare: append([]float64(nil), stats.meanSquare...),
		peak:       append([]float64(nil), stats.peak...),
	}
	average, peak := aggregate(scratch)
	return ChannelAnalysis{
		MeanSquare:           stats.meanSquare,
		Peak:                 stats.peak,
		AverageTopMeanSquare: average,
		SelectedPeak:         peak,
		DR:                   drValue(average, peak),
	}
}
