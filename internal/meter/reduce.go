package meter

import "math"

// reduceBlock computes the sum of squared samples and the largest absolute
// sample over x in one fused pass. Sums accumulate in four independent
// float64 lanes so the loop vectorizes without changing the contract: the
// result matches a sequential scalar reduction to within reduction-order
// rounding. Squares of float32 values are exact in float64, so the peak is
// recovered exactly as the square root of the largest square.
func reduceBlock(x []float32) (sumSquares, peak float64) {
	if len(x) == 0 {
		return 0, 0
	}
	x = x[:len(x):len(x)]

	var s0, s1, s2, s3 float64
	var m0, m1, m2, m3 float64
	i := 0
	n := len(x) - 3
	for ; i < n; i += 4 {
		q0 := float64(x[i]) * float64(x[i])
		q1 := float64(x[i+1]) * float64(x[i+1])
		q2 := float64(x[i+2]) * float64(x[i+2])
		q3 := float64(x[i+3]) * float64(x[i+3])
		s0 += q0
		s1 += q1
		s2 += q2
		s3 += q3
		if q0 > m0 {
			m0 = q0
		}
		if q1 > m1 {
			m1 = q1
		}
		if q2 > m2 {
			m2 = q2
		}
		if q3 > m3 {
			m3 = q3
		}
	}
	for ; i < len(x); i++ {
		q := float64(x[i]) * float64(x[i])
		s0 += q
		if q > m0 {
			m0 = q
		}
	}

	return s0 + s1 + s2 + s3, math.Sqrt(max(m0, m1, m2, m3))
}

// reduceBlockStereo is the interleaved-stereo variant of reduceBlock: x
// holds len(x)/2 frames as L,R pairs, and sums and peaks accumulate
// independently per channel. The unrolled loop consumes two frames per
// iteration; a trailing frame that does not fill the unroll width is
// handled by the pair-at-a-time tail without reading past len(x).
func reduceBlockStereo(x []float32) (sumSquaresL, sumSquaresR, peakL, peakR float64) {
	if len(x) < 2 {
		return 0, 0, 0, 0
	}
	x = x[:len(x):len(x)]

	var sl0, sl1, sr0, sr1 float64
	var ml0, ml1, mr0, mr1 float64
	i := 0
	n := len(x) - 3
	for ; i < n; i += 4 {
		l0 := float64(x[i]) * float64(x[i])
		r0 := float64(x[i+1]) * float64(x[i+1])
		l1 := float64(x[i+2]) * float64(x[i+2])
		r1 := float64(x[i+3]) * float64(x[i+3])
		sl0 += l0
		sr0 += r0
		sl1 += l1
		sr1 += r1
		if l0 > ml0 {
			ml0 = l0
		}
		if r0 > mr0 {
			mr0 = r0
		}
		if l1 > ml1 {
			ml1 = l1
		}
		if r1 > mr1 {
			mr1 = r1
		}
	}
	for ; i+1 < len(x); i += 2 {
		l := float64(x[i]) * float64(x[i])
		r := float64(x[i+1]) * float64(x[i+1])
		sl0 += l
		sr0 += r
		if l > ml0 {
			ml0 = l
		}
		if r > mr0 {
			mr0 = r
		}
	}

	return sl0 + sl1, sr0 + sr1, math.Sqrt(max(ml0, ml1)), math.Sqrt(max(mr0, mr1))
}
