// Package logging handles generation of analysis reports for measured audio files

package logging

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/thlib/go-timezone-local/tzlocal"
	"gonum.org/v1/gonum/stat"

	"github.com/sboukortt/speedr/internal/audio"
	"github.com/sboukortt/speedr/internal/meter"
)

// ReportData contains all the information needed to generate an analysis report
type ReportData struct {
	InputPath string
	StartTime time.Time
	EndTime   time.Time
	Metadata  *audio.Metadata
	Analysis  *meter.Analysis
}

// GenerateReport creates a detailed analysis report and saves it alongside
// the input file. The report filename will be <input>.dr.log
//
// Report structure:
// 1. Header - file info and timestamp
// 2. Stream Info - format, sample rate, block layout
// 3. Dynamic Range - per-channel DR values and the track rating
// 4. Block Statistics - distribution of block loudness per channel
func GenerateReport(data ReportData) error {
	logPath := strings.TrimSuffix(data.InputPath, filepath.Ext(data.InputPath)) + ".dr.log"

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	writeReportHeader(f, data)
	writeStreamInfo(f, data)
	writeDynamicRange(f, data.Analysis)
	writeBlockStatistics(f, data.Analysis)

	return nil
}

// writeSection writes a section header with title and dashed underline.
// The underline length matches the title length.
func writeSection(f *os.File, title string) {
	fmt.Fprintln(f, title)
	fmt.Fprintln(f, strings.Repeat("-", len(title)))
}

// writeReportHeader outputs the report header with file info and timestamp.
func writeReportHeader(f *os.File, data ReportData) {
	fmt.Fprintln(f, "SpeeDR Dynamic Range Report")
	fmt.Fprintln(f, "===========================")
	fmt.Fprintf(f, "File: %s\n", filepath.Base(data.InputPath))
	fmt.Fprintf(f, "Analysed: %s\n", localTimestamp(data.EndTime))
	if data.Metadata != nil {
		fmt.Fprintf(f, "Duration: %s\n", formatDuration(time.Duration(data.Metadata.Duration*float64(time.Second))))
	}
	fmt.Fprintf(f, "Analysis time: %s\n", formatDuration(data.EndTime.Sub(data.StartTime)))
	fmt.Fprintln(f, "")
}

// localTimestamp renders t in the runtime's local timezone. Falls back to
// whatever zone t already carries when detection fails (e.g. stripped
// container environments without zoneinfo).
func localTimestamp(t time.Time) string {
	if name, err := tzlocal.RuntimeTZ(); err == nil {
		if loc, err := time.LoadLocation(name); err == nil {
			t = t.In(loc)
		}
	}
	return t.Format("2006-01-02 15:04:05 MST")
}

// writeStreamInfo outputs the decoded stream parameters and block layout.
func writeStreamInfo(f *os.File, data ReportData) {
	writeSection(f, "Stream Info")

	m := data.Metadata
	if m != nil {
		fmt.Fprintf(f, "Format:      %s\n", m.Format)
		fmt.Fprintf(f, "Sample rate: %d Hz\n", m.SampleRate)
		fmt.Fprintf(f, "Channels:    %s\n", channelName(m.Channels))
		if m.BitDepth > 0 {
			fmt.Fprintf(f, "Bit depth:   %d bit\n", m.BitDepth)
		}
		fmt.Fprintf(f, "Frames:      %d\n", m.TotalFrames)
	}

	a := data.Analysis
	if a != nil && len(a.Channels) > 0 && m != nil && m.SampleRate > 0 {
		numBlocks := len(a.Channels[0].MeanSquare)
		fmt.Fprintf(f, "Block size:  %d frames (%.3f s)\n",
			a.BlockSize, float64(a.BlockSize)/float64(m.SampleRate))
		fmt.Fprintf(f, "Blocks:      %d (top %d by energy drive the rating)\n",
			numBlocks, meter.TopBlocks(numBlocks))
	}
	fmt.Fprintln(f, "")
}

// writeDynamicRange outputs the per-channel DR table and the track rating.
func writeDynamicRange(f *os.File, a *meter.Analysis) {
	writeSection(f, "Dynamic Range")

	if a == nil || len(a.Channels) == 0 {
		fmt.Fprintln(f, "No analysis available")
		fmt.Fprintln(f, "")
		return
	}

	table := NewMetricTable(channelHeaders(a)...)

	drs := make([]string, len(a.Channels))
	peaks := make([]string, len(a.Channels))
	rms := make([]string, len(a.Channels))
	for i, ch := range a.Channels {
		drs[i] = formatMetric(ch.DR, 2)
		peaks[i] = formatMetricDB(amplitudeDB(ch.SelectedPeak), 2)
		rms[i] = formatMetricDB(powerDB(ch.AverageTopMeanSquare), 2)
	}

	table.AddRow("Dynamic Range", drs, "dB", interpretDR(a.Rating))
	table.AddRow("Selected peak", peaks, "dBFS", "")
	table.AddRow("Top-20% loudness", rms, "dBFS", "")

	fmt.Fprint(f, table.String())
	fmt.Fprintln(f, "")
	fmt.Fprintf(f, "Track rating: %s\n", TrackRatingString(a.Rating))
	fmt.Fprintln(f, "")
}

// writeBlockStatistics outputs the distribution of block loudness per
// channel: how the quiet and loud parts of the track spread out around
// the values the rating selected.
func writeBlockStatistics(f *os.File, a *meter.Analysis) {
	writeSection(f, "Block Statistics")

	if a == nil || len(a.Channels) == 0 {
		fmt.Fprintln(f, "No analysis available")
		return
	}

	type summary struct {
		mean, stddev, median, p20, p95, min, max float64
	}
	summaries := make([]summary, len(a.Channels))
	for i, ch := range a.Channels {
		levels := blockLevelsDB(ch.MeanSquare)
		if len(levels) == 0 {
			nan := math.NaN()
			summaries[i] = summary{nan, nan, nan, nan, nan, nan, nan}
			continue
		}
		sort.Float64s(levels)
		summaries[i] = summary{
			mean:   stat.Mean(levels, nil),
			stddev: stat.StdDev(levels, nil),
			median: stat.Quantile(0.5, stat.Empirical, levels, nil),
			p20:    stat.Quantile(0.2, stat.Empirical, levels, nil),
			p95:    stat.Quantile(0.95, stat.Empirical, levels, nil),
			min:    levels[0],
			max:    levels[len(levels)-1],
		}
	}

	pick := func(get func(summary) float64, decimals int) []string {
		vals := make([]string, len(summaries))
		for i, s := range summaries {
			vals[i] = formatMetricDB(get(s), decimals)
		}
		return vals
	}

	table := NewMetricTable(channelHeaders(a)...)
	table.AddRow("Mean block loudness", pick(func(s summary) float64 { return s.mean }, 2), "dBFS", "")
	table.AddRow("Std deviation", pick(func(s summary) float64 { return s.stddev }, 2), "dB", "")
	table.AddRow("Median", pick(func(s summary) float64 { return s.median }, 2), "dBFS", "")
	table.AddRow("20th percentile", pick(func(s summary) float64 { return s.p20 }, 2), "dBFS", "")
	table.AddRow("95th percentile", pick(func(s summary) float64 { return s.p95 }, 2), "dBFS", "")
	table.AddRow("Quietest block", pick(func(s summary) float64 { return s.min }, 2), "dBFS", "")
	table.AddRow("Loudest block", pick(func(s summary) float64 { return s.max }, 2), "dBFS", "")

	fmt.Fprint(f, table.String())
}

// blockLevelsDB converts per-block mean squares to dBFS, dropping silent
// blocks whose level is -Inf so they cannot poison the summary statistics.
func blockLevelsDB(meanSquares []float64) []float64 {
	levels := make([]float64, 0, len(meanSquares))
	for _, ms := range meanSquares {
		db := powerDB(ms)
		if math.IsInf(db, -1) || math.IsNaN(db) {
			continue
		}
		levels = append(levels, db)
	}
	return levels
}

// channelHeaders returns the table headers matching the analysis layout.
func channelHeaders(a *meter.Analysis) []string {
	if len(a.Channels) == 2 {
		return []string{"Left", "Right"}
	}
	return []string{"Value"}
}

// interpretDR describes what a track rating means in mastering terms.
// Thresholds follow the qualitative bands the DR community uses for the
// PMF metric: modern loudness-war masters sit well under DR8, while
// untouched acoustic recordings commonly exceed DR14.
func interpretDR(r meter.Rating) string {
	n, ok := r.TrackRating()
	if !ok {
		return "not applicable"
	}
	switch {
	case n < 5:
		return "crushed, no dynamics left"
	case n < 8:
		return "heavily compressed"
	case n < 11:
		return "somewhat compressed, typical modern master"
	case n < 14:
		return "good dynamics"
	case n < 18:
		return "excellent dynamics"
	default:
		return "exceptional dynamics"
	}
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60

	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}

// channelName returns a human-readable channel name
func channelName(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%d channels", channels)
	}
}
