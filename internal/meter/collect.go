package meter

import (
	"fmt"
	"math"

	"github.com/sboukortt/speedr/internal/audio"
)

// channelStats holds one channel's per-block statistics in block order.
// Both slices always have the same length, one entry per block read.
type channelStats struct {
	meanSquare []float64
	peak       []float64
}

// collectMono reduces a mono stream to per-block statistics in a single
// streaming pass. Only one block of samples is resident at a time; the
// buffer is reused across iterations.
func collectMono(s audio.Stream, blockSize int) (channelStats, error) {
	numBlocks := NumBlocks(s.TotalFrames(), blockSize)
	stats := channelStats{
		meanSquare: make([]float64, 0, numBlocks),
		peak:       make([]float64, 0, numBlocks),
	}

	buf := make([]float32, blockSize)
	for i := 0; i < numBlocks; i++ {
		n, err := s.ReadFrames(buf)
		if err != nil {
			return channelStats{}, fmt.Errorf("failed to read block %d: %w", i, err)
		}
		if n == 0 {
			break
		}
		sumSquares, peak := reduceBlock(buf[:n])
		stats.meanSquare = append(stats.meanSquare, sumSquares/float64(n))
		stats.peak = append(stats.peak, peak)
	}

	return stats, nil
}

// collectStereo reduces an interleaved stereo stream to per-block
// statistics for each channel in a single shared pass: both channels see
// the same block boundaries but accumulate independently.
func collectStereo(s audio.Stream, blockSize int) (left, right channelStats, err error) {
	numBlocks := NumBlocks(s.TotalFrames(), blockSize)
	left = channelStats{
		meanSquare: make([]float64, 0, numBlocks),
		peak:       make([]float64, 0, numBlocks),
	}
	right = channelStats{
		meanSquare: make([]float64, 0, numBlocks),
		peak:       make([]float64, 0, numBlocks),
	}

	buf := make([]float32, 2*blockSize)
	for i := 0; i < numBlocks; i++ {
		n, err := s.ReadFrames(buf)
		if err != nil {
			return channelStats{}, channelStats{}, fmt.Errorf("failed to read block %d: %w", i, err)
		}
		if n == 0 {
			break
		}
		sumL, sumR, peakL, peakR := reduceBlockStereo(buf[:2*n])
		left.meanSquare = append(left.meanSquare, sumL/float64(n))
		left.peak = append(left.peak, peakL)
		right.meanSquare = append(right.meanSquare, sumR/float64(n))
		right.peak = append(right.peak, peakR)
	}

	return left, right, nil
}

// aggregate reduces one channel's block statistics to the two numbers the
// rating formula needs: the average of the top 20% mean squares (doubled,
// see below) and the second-highest block peak. Partial selection mutates
// the slices in place; stats must not be reused afterwards.
func aggregate(stats channelStats) (averageTopMeanSquare, selectedPeak float64) {
	numBlocks := len(stats.meanSquare)
	if numBlocks == 0 {
		return math.NaN(), 0
	}

	top := TopBlocks(numBlocks)
	selectDescending(stats.meanSquare, top-1)
	var sum float64
	for _, ms := range stats.meanSquare[:top] {
		sum += ms
	}
	// The doubling corresponds to AES17 calibration (+3dB)
	averageTopMeanSquare = sum * 2 / float64(top)

	// Second-highest peak, falling back to the only peak for a
	// single-block stream.
	nth := 1
	if numBlocks-1 < nth {
		nth = numBlocks - 1
	}
	selectDescending(stats.peak, nth)
	selectedPeak = stats.peak[nth]

	return averageTopMeanSquare, selectedPeak
}
