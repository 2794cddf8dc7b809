package meter

import "math"

// BlockSize returns the number of frames in one analysis block for the
// given sample rate. Blocks are nominally three seconds long, scaled by
// 44160/44100 to match the calibration convention of the reference metric.
func BlockSize(sampleRate int) int {
	return int(math.Round(3 * float64(sampleRate) * 44160 / 44100))
}

// NumBlocks returns the number of blocks a stream of totalFrames spans,
// never less than one.
func NumBlocks(totalFrames int64, blockSize int) int {
	n := (totalFrames + int64(blockSize) - 1) / int64(blockSize)
	if n < 1 {
		return 1
	}
	return int(n)
}

// TopBlocks returns the number of loudest blocks that contribute to the
// energy average: the top 20%, but always at least one.
func TopBlocks(numBlocks int) int {
	n := numBlocks / 5
	if n < 1 {
		return 1
	}
	return n
}
