package meter

import (
	"math"
	"testing"
)

func TestTrackRating(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name   string
		rating Rating
		want   int
		wantOK bool
	}{
		{"mono_rounds_down", MonoRating(7.4), 7, true},
		{"mono_rounds_half_up", MonoRating(7.5), 8, true},
		{"mono_near_zero", MonoRating(-0.4), 0, true},
		{"mono_nan", MonoRating(nan), 0, false},
		{"mono_infinite", MonoRating(inf), 0, false},
		{"stereo_averages_channels", StereoRating(8, 9), 9, true},
		{"stereo_typical", StereoRating(11.3, 12.4), 12, true},
		{"stereo_one_channel_nan", StereoRating(nan, 5), 0, false},
		{"stereo_one_channel_infinite", StereoRating(6, inf), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.rating.TrackRating()
			if ok != tt.wantOK {
				t.Fatalf("TrackRating() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("TrackRating() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAlbumRating(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name    string
		ratings []Rating
		want    int
		wantOK  bool
	}{
		{"no_tracks", nil, 0, false},
		{"single_track", []Rating{MonoRating(7.2)}, 7, true},
		{"two_tracks_mean", []Rating{MonoRating(7.4), MonoRating(8.6)}, 8, true},
		{"half_rounds_up", []Rating{MonoRating(8.0), MonoRating(9.0)}, 9, true},
		{
			"skips_not_applicable",
			[]Rating{MonoRating(nan), MonoRating(9.0), MonoRating(7.0)},
			8,
			true,
		},
		{
			"mixed_mono_and_stereo",
			[]Rating{StereoRating(3.6, 4.4), MonoRating(6.0)},
			5,
			true,
		},
		{"all_not_applicable", []Rating{MonoRating(nan), StereoRating(nan, nan)}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AlbumRating(tt.ratings)
			if ok != tt.wantOK {
				t.Fatalf("AlbumRating() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("AlbumRating() = %d, want %d", got, tt.want)
			}
		})
	}
}
