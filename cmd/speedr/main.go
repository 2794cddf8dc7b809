package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/sboukortt/speedr/internal/audio"
	"github.com/sboukortt/speedr/internal/cli"
	"github.com/sboukortt/speedr/internal/logging"
	"github.com/sboukortt/speedr/internal/meter"
	"github.com/sboukortt/speedr/internal/ui"
)

var (
	version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Version bool     `short:"v" help:"Show version information"`
	Plain   bool     `short:"p" help:"Plain line output without the progress UI"`
	Logs    bool     `short:"l" help:"Save a detailed .dr.log analysis report per track"`
	Workers int      `short:"w" default:"0" help:"Number of tracks to analyse in parallel (default: one per CPU)"`
	Files   []string `arg:"" name:"files" help:"Audio files to analyse (.wav, .flac)" type:"existingfile" optional:""`
}

// trackResult is one file's outcome, stored by argument index so output
// order matches argument order regardless of completion order.
type trackResult struct {
	rating meter.Rating
	err    error
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("speedr"),
		kong.Description("Dynamic range meter for audio files"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	// Handle version flag
	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	// Validate input
	if len(cliArgs.Files) == 0 {
		cli.PrintError("No input files specified")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	workers := cliArgs.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(cliArgs.Files) {
		workers = len(cliArgs.Files)
	}

	var results []trackResult
	if cliArgs.Plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		results = runPlain(cliArgs.Files, workers, cliArgs.Logs)
	} else {
		results = runTUI(cliArgs.Files, workers, cliArgs.Logs)
	}

	succeeded := 0
	for _, r := range results {
		if r.err == nil {
			succeeded++
		}
	}
	if succeeded == 0 {
		os.Exit(1)
	}
}

// runPool analyses every file through a bounded pool of worker
// goroutines. Each worker owns its own stream for the duration of one
// track, so no synchronisation is needed beyond the job channel.
func runPool(files []string, workers int, analyse func(index int, path string)) {
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				analyse(i, files[i])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// runPlain analyses all files and prints the reference line format: one
// result block per track in argument order, then the album rating when
// more than one file was given.
func runPlain(files []string, workers int, logs bool) []trackResult {
	results := make([]trackResult, len(files))

	runPool(files, workers, func(i int, path string) {
		rating, err := analyseTrack(path, logs, nil)
		results[i] = trackResult{rating: rating, err: err}
	})

	ratings := make([]meter.Rating, 0, len(files))
	for i, r := range results {
		if r.err != nil {
			cli.PrintError(fmt.Sprintf("%s: %v", files[i], r.err))
			continue
		}
		logging.DisplayTrackResult(os.Stdout, files[i], r.rating)
		ratings = append(ratings, r.rating)
	}

	if len(files) > 1 && len(ratings) > 0 {
		logging.DisplayAlbumRating(os.Stdout, ratings)
	}

	return results
}

// runTUI analyses all files behind the Bubbletea progress UI. The final
// completion summary stays on screen after the program exits.
func runTUI(files []string, workers int, logs bool) []trackResult {
	results := make([]trackResult, len(files))
	p := tea.NewProgram(ui.NewModel(files))

	done := make(chan struct{})
	go func() {
		defer close(done)
		runPool(files, workers, func(i int, path string) {
			p.Send(ui.FileStartMsg{FileIndex: i})

			lastPercent := -1
			progress := func(framesRead, totalFrames int64) {
				if totalFrames <= 0 {
					return
				}
				percent := int(100 * framesRead / totalFrames)
				if percent > 100 {
					percent = 100
				}
				if percent == lastPercent {
					return
				}
				lastPercent = percent
				p.Send(ui.FileProgressMsg{
					FileIndex: i,
					Progress:  float64(percent) / 100,
				})
			}

			rating, err := analyseTrack(path, logs, progress)
			results[i] = trackResult{rating: rating, err: err}
			p.Send(ui.FileCompleteMsg{FileIndex: i, Rating: rating, Err: err})
		})

		p.Send(ui.AllCompleteMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
	}

	// Done is only set once every worker has finished. If the user quit
	// before that, workers may still be writing into results, so the
	// slice is abandoned instead of read half-filled.
	if m, ok := finalModel.(ui.Model); !ok || !m.Done {
		os.Exit(1)
	}
	<-done

	return results
}

// analyseTrack opens one file, measures it, and optionally writes the
// detailed report. The stream is closed before returning.
func analyseTrack(path string, logs bool, progress audio.ProgressFunc) (meter.Rating, error) {
	stream, metadata, err := audio.Open(path)
	if err != nil {
		return meter.Rating{}, err
	}
	defer stream.Close()

	s := audio.NewProgressStream(stream, progress)
	start := time.Now()

	if !logs {
		return meter.ComputeRating(s)
	}

	analysis, err := meter.Analyze(s)
	if err != nil {
		return meter.Rating{}, err
	}
	err = logging.GenerateReport(logging.ReportData{
		InputPath: path,
		StartTime: start,
		EndTime:   time.Now(),
		Metadata:  metadata,
		Analysis:  analysis,
	})
	if err != nil {
		return analysis.Rating, fmt.Errorf("failed to write analysis report: %w", err)
	}
	return analysis.Rating, nil
}
