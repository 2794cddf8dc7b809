// Package logging handles generation of analysis reports for measured
// audio files. This file provides console display of per-track results.

package logging

import (
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/sboukortt/speedr/internal/meter"
)

// FormatDR formats a DR value with two decimals; non-finite values
// render as "N/A".
func FormatDR(dr float64) string {
	if math.IsNaN(dr) || math.IsInf(dr, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", dr)
}

// TrackRatingString formats the integer track rating as "DR<n>", or
// "N/A" when no rating applies.
func TrackRatingString(r meter.Rating) string {
	n, ok := r.TrackRating()
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("DR%d", n)
}

// DisplayTrackResult writes one track's result block: the filename, the
// raw per-channel DR values, and the rounded track rating.
func DisplayTrackResult(w io.Writer, path string, r meter.Rating) {
	fmt.Fprintln(w, filepath.Base(path))
	switch r.Kind() {
	case meter.Mono:
		fmt.Fprintf(w, "\tRaw DR: %s\n", FormatDR(r.DR()))
	case meter.Stereo:
		fmt.Fprintf(w, "\tLeft DR: %s / Right DR: %s\n", FormatDR(r.Left()), FormatDR(r.Right()))
	}
	fmt.Fprintf(w, "\tTrack rating: %s\n", TrackRatingString(r))
}

// DisplayAlbumRating writes the album rating line derived from the given
// track ratings. Only meaningful for two or more tracks; the caller
// decides whether to print it.
func DisplayAlbumRating(w io.Writer, ratings []meter.Rating) {
	if n, ok := meter.AlbumRating(ratings); ok {
		fmt.Fprintf(w, "Album rating: DR%d\n", n)
	} else {
		fmt.Fprintln(w, "Album rating: N/A")
	}
}
