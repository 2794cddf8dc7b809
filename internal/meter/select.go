package meter

// selectDescending partially orders values so that values[nth] holds the
// element a full descending sort would place there, with everything before
// it greater than or equal to it. Equal elements land in arbitrary order.
// Average O(len(values)); quickselect with a median-of-three pivot.
func selectDescending(values []float64, nth int) {
	lo, hi := 0, len(values)-1
	for lo < hi {
		p := partitionDescending(values, lo, hi)
		switch {
		case p == nth:
			return
		case p < nth:
			lo = p + 1
		default:
			hi = p - 1
		}
	}
}

// partitionDescending partitions values[lo:hi+1] around a median-of-three
// pivot so elements greater than the pivot precede it. Returns the pivot's
// final index.
func partitionDescending(values []float64, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if values[mid] > values[lo] {
		values[mid], values[lo] = values[lo], values[mid]
	}
	if values[hi] > values[lo] {
		values[hi], values[lo] = values[lo], values[hi]
	}
	if values[hi] > values[mid] {
		values[hi], values[mid] = values[mid], values[hi]
	}
	// Median now at mid; park it at hi as the pivot.
	values[mid], values[hi] = values[hi], values[mid]
	pivot := values[hi]

	i := lo
	for j := lo; j < hi; j++ {
		if values[j] > pivot {
			values[i], values[j] = values[j], values[i]
			i++
		}
	}
	values[i], values[hi] = values[hi], values[i]
	return i
}
