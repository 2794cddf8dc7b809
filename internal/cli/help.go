package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA500")).MarginTop(1)
	taglineStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#FFA500"))
	flagStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AA00"))
	argStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AAAA"))
	defaultStyle = lipgloss.NewStyle().Italic(true).Foreground(mutedColor)
)

// helpEntry is one name/description pair in an aligned help section.
type helpEntry struct {
	name string
	help string
}

// StyledHelpPrinter returns a kong help printer that renders the
// application's usage with lipgloss. The tagline comes from the kong
// description, so help stays in sync with the entry point.
func StyledHelpPrinter(options kong.HelpOptions) func(options kong.HelpOptions, ctx *kong.Context) error {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		sb.WriteString(titleStyle.Render(appTitle))
		sb.WriteString("\n")
		if ctx.Model.Help != "" {
			sb.WriteString(taglineStyle.Render(ctx.Model.Help))
			sb.WriteString("\n")
		}

		sb.WriteString(sectionStyle.Render("Usage:"))
		fmt.Fprintf(&sb, "\n  %s [flags] <files> ...\n", ctx.Model.Name)

		if args := argEntries(ctx); len(args) > 0 {
			writeSection(&sb, "Arguments:", args, argStyle)
		}
		writeSection(&sb, "Flags:", flagEntries(ctx), flagStyle)

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

// writeSection renders a titled list of entries with the descriptions
// aligned to the widest name. Padding happens before styling so the
// escape codes cannot skew the columns.
func writeSection(sb *strings.Builder, title string, entries []helpEntry, style lipgloss.Style) {
	width := 0
	for _, e := range entries {
		if len(e.name) > width {
			width = len(e.name)
		}
	}

	sb.WriteString(sectionStyle.Render(title))
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString("  ")
		sb.WriteString(style.Render(fmt.Sprintf("%-*s", width, e.name)))
		if e.help != "" {
			sb.WriteString("  ")
			sb.WriteString(e.help)
		}
		sb.WriteString("\n")
	}
}

func argEntries(ctx *kong.Context) []helpEntry {
	var entries []helpEntry
	for _, p := range ctx.Model.Node.Positional {
		entries = append(entries, helpEntry{name: p.Summary(), help: p.Help})
	}
	return entries
}

func flagEntries(ctx *kong.Context) []helpEntry {
	entries := []helpEntry{{name: "-h, --help", help: "Show context-sensitive help."}}

	for _, f := range ctx.Model.Node.Flags {
		if f.Name == "help" {
			continue
		}

		name := "--" + f.Name
		if f.Short != 0 {
			name = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
		}
		if !f.IsBool() && f.PlaceHolder != "" {
			name += "=" + strings.ToUpper(f.PlaceHolder)
		}

		help := f.Help
		if f.Default != "" {
			help += " " + defaultStyle.Render("(default: "+f.Default+")")
		}
		entries = append(entries, helpEntry{name: name, help: help})
	}

	return entries
}
