// Package ui provides the Bubbletea terminal user interface for speedr
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sboukortt/speedr/internal/meter"
)

// FileStatus represents the analysis state of a single file
type FileStatus int

const (
	StatusQueued FileStatus = iota
	StatusAnalysing
	StatusComplete
	StatusError
)

// FileProgress tracks progress for a single audio file
type FileProgress struct {
	Path   string
	Status FileStatus

	// Progress tracking (percentage-based)
	Progress  float64 // 0.0 to 1.0
	StartTime time.Time

	// Completion results
	Rating meter.Rating
	Err    error
}

// Model is the Bubbletea model for the analysis UI. Workers send
// per-index messages, so several files can be analysing at once.
type Model struct {
	Files          []FileProgress
	TotalFiles     int
	CompletedFiles int
	FailedFiles    int

	StartTime time.Time
	Done      bool

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates a new UI model with the given input files
func NewModel(inputFiles []string) Model {
	files := make([]FileProgress, len(inputFiles))
	for i, path := range inputFiles {
		files[i] = FileProgress{
			Path:   path,
			Status: StatusQueued,
		}
	}

	return Model{
		Files:      files,
		TotalFiles: len(inputFiles),
		StartTime:  time.Now(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case FileStartMsg:
		if msg.FileIndex >= 0 && msg.FileIndex < len(m.Files) {
			m.Files[msg.FileIndex].Status = StatusAnalysing
			m.Files[msg.FileIndex].StartTime = time.Now()
		}

	case FileProgressMsg:
		if msg.FileIndex >= 0 && msg.FileIndex < len(m.Files) {
			m.Files[msg.FileIndex].Progress = msg.Progress
		}

	case FileCompleteMsg:
		if msg.FileIndex >= 0 && msg.FileIndex < len(m.Files) {
			f := &m.Files[msg.FileIndex]
			f.Rating = msg.Rating
			f.Err = msg.Err
			if msg.Err != nil {
				f.Status = StatusError
				m.FailedFiles++
			} else {
				f.Status = StatusComplete
				f.Progress = 1.0
				m.CompletedFiles++
			}
		}

	case AllCompleteMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Done {
		return renderCompletionSummary(m)
	}
	return renderAnalysisView(m)
}

// SucceededRatings returns the ratings of all successfully analysed
// files, in argument order; used for the album rating line.
func (m Model) SucceededRatings() []meter.Rating {
	ratings := make([]meter.Rating, 0, len(m.Files))
	for _, f := range m.Files {
		if f.Status == StatusComplete {
			ratings = append(ratings, f.Rating)
		}
	}
	return ratings
}
