package meter

import (
	"math"
	"testing"
)

// TestAnalyzeMatchesComputeRating runs the same material through Analyze
// and through the plain pipeline; the ratings must be identical and the
// retained block statistics must be consistent with the aggregates.
func TestAnalyzeMatchesComputeRating(t *testing.T) {
	const sampleRate = 44100
	totalFrames := 3*BlockSize(sampleRate) + 1717

	tests := []struct {
		name     string
		channels int
		samples  []float32
	}{
		{
			name:     "mono",
			channels: 1,
			samples:  noiseSamples(totalFrames, 0.7, 42),
		},
		{
			name:     "stereo",
			channels: 2,
			samples: interleave(
				noiseSamples(totalFrames, 0.7, 42),
				sineSamples(totalFrames, 997, sampleRate, 0.4)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := Analyze(newMemStream(sampleRate, tt.channels, tt.samples))
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}

			want, err := ComputeRating(newMemStream(sampleRate, tt.channels, tt.samples))
			if err != nil {
				t.Fatalf("ComputeRating failed: %v", err)
			}

			if analysis.Rating != want {
				t.Errorf("Analyze rating = %+v, ComputeRating = %+v", analysis.Rating, want)
			}
			if len(analysis.Channels) != tt.channels {
				t.Fatalf("got %d channel analyses, want %d", len(analysis.Channels), tt.channels)
			}
			if analysis.BlockSize != BlockSize(sampleRate) {
				t.Errorf("BlockSize = %d, want %d", analysis.BlockSize, BlockSize(sampleRate))
			}

			wantBlocks := NumBlocks(int64(totalFrames), analysis.BlockSize)
			for i, ch := range analysis.Channels {
				if len(ch.MeanSquare) != wantBlocks || len(ch.Peak) != wantBlocks {
					t.Errorf("channel %d: %d/%d block entries, want %d",
						i, len(ch.MeanSquare), len(ch.Peak), wantBlocks)
				}
				if ch.DR != drValue(ch.AverageTopMeanSquare, ch.SelectedPeak) {
					t.Errorf("channel %d: DR inconsistent with aggregates", i)
				}
			}
		})
	}
}

// TestAnalyzePreservesBlockOrder feeds blocks of strictly increasing
// amplitude: the retained statistics must come back in block order even
// though aggregation internally reorders its own copy.
func TestAnalyzePreservesBlockOrder(t *testing.T) {
	const sampleRate = 44100
	blockSize := BlockSize(sampleRate)

	amplitudes := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	samples := make([]float32, 0, len(amplitudes)*blockSize)
	for _, amp := range amplitudes {
		samples = append(samples, constSamples(blockSize, amp)...)
	}

	analysis, err := Analyze(newMemStream(sampleRate, 1, samples))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	ch := analysis.Channels[0]
	for i := 1; i < len(ch.Peak); i++ {
		if ch.Peak[i] <= ch.Peak[i-1] {
			t.Fatalf("peaks not in block order at %d: %v", i, ch.Peak)
		}
		if ch.MeanSquare[i] <= ch.MeanSquare[i-1] {
			t.Fatalf("mean squares not in block order at %d: %v", i, ch.MeanSquare)
		}
	}
}

func TestAnalyzeSilence(t *testing.T) {
	analysis, err := Analyze(newMemStream(44100, 1, constSamples(5000, 0)))
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	ch := analysis.Channels[0]
	if ch.MeanSquare[0] != 0 || ch.Peak[0] != 0 {
		t.Errorf("silent block stats = (%v, %v), want (0, 0)", ch.MeanSquare[0], ch.Peak[0])
	}
	if !math.IsNaN(ch.DR) && !math.IsInf(ch.DR, 0) {
		t.Errorf("silent DR = %v, want non-finite", ch.DR)
	}
}

func TestAnalyzeUnsupportedChannels(t *testing.T) {
	if _, err := Analyze(newMemStream(44100, 3, noiseSamples(300, 0.5, 1))); err == nil {
		t.Error("expected error for 3-channel stream")
	}
}
