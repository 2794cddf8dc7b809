package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sboukortt/speedr/internal/logging"
	"github.com/sboukortt/speedr/internal/meter"
)

// renderAnalysisView renders the main analysis view
func renderAnalysisView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	b.WriteString(renderFileQueue(m))
	b.WriteString("\n")

	b.WriteString(renderOverallProgress(m))

	return b.String()
}

// renderHeader renders the application header
func renderHeader(m Model) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#005F87")).
		Render("SpeeDR 📊 - Dynamic Range Meter")

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true).
		Render(fmt.Sprintf("Analysing %d file(s)", m.TotalFiles))

	return title + "\n" + subtitle
}

// renderFileQueue renders the list of files with their status
func renderFileQueue(m Model) string {
	var b strings.Builder

	for _, file := range m.Files {
		b.WriteString(renderFileEntry(file))
		b.WriteString("\n")
	}

	return b.String()
}

// renderFileEntry renders a single file entry in the queue
func renderFileEntry(file FileProgress) string {
	fileName := filepath.Base(file.Path)

	switch file.Status {
	case StatusComplete:
		// ✓ completed file with its rating
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓")
		return fmt.Sprintf(" %s %s\n   %s | Track rating: %s",
			icon, fileName, drSummary(file.Rating), logging.TrackRatingString(file.Rating))

	case StatusAnalysing:
		// ⚙ active file with a progress bar
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("⚙")
		return fmt.Sprintf(" %s %s\n   %s",
			icon, fileName, renderProgressBar(file.Progress, 40))

	case StatusError:
		// ✗ failed file
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#A40000")).Render("✗")
		return fmt.Sprintf(" %s %s\n   Error: %v", icon, fileName, file.Err)

	default:
		// ○ queued file
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("○")
		return fmt.Sprintf(" %s %s\n   Queued...", icon, fileName)
	}
}

// drSummary renders the per-channel DR values on one line
func drSummary(r meter.Rating) string {
	if r.Kind() == meter.Stereo {
		return fmt.Sprintf("Left DR: %s / Right DR: %s",
			logging.FormatDR(r.Left()), logging.FormatDR(r.Right()))
	}
	return fmt.Sprintf("Raw DR: %s", logging.FormatDR(r.DR()))
}

// renderProgressBar renders a progress bar
func renderProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	percentage := int(progress * 100)

	return fmt.Sprintf("%s %d%%", bar, percentage)
}

// renderOverallProgress renders the overall progress footer
func renderOverallProgress(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#888888")).
		Padding(0, 1).
		Width(60)

	content := fmt.Sprintf("Overall Progress: %d/%d complete", m.CompletedFiles+m.FailedFiles, m.TotalFiles)
	if m.FailedFiles > 0 {
		content += fmt.Sprintf(" (%d failed)", m.FailedFiles)
	}

	return box.Render(content)
}

// renderCompletionSummary renders the final summary with every track's
// result and, for multi-track runs, the album rating.
func renderCompletionSummary(m Model) string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00AA00")).
		Render("✨ Analysis Complete")
	b.WriteString(header)
	b.WriteString("\n\n")

	for _, file := range m.Files {
		b.WriteString(renderFileEntry(file))
		b.WriteString("\n")
	}

	if m.TotalFiles > 1 {
		b.WriteString("\n")
		b.WriteString(strings.Repeat("─", 60))
		b.WriteString("\n")
		if n, ok := meter.AlbumRating(m.SucceededRatings()); ok {
			b.WriteString(fmt.Sprintf("Album rating: DR%d\n", n))
		} else {
			b.WriteString("Album rating: N/A\n")
		}
	}

	return b.String()
}
