package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/modcheck/modcheck/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	statusColors = map[string]lipgloss.Color{
		domain.StatusPass:    success,
		domain.StatusWarning: warning,
		domain.StatusError:   danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	labelStyle    = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a validation report for terminal output.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("modcheck")
	subtitle := dimStyle.Render(displayName(report))
	verdict := lipgloss.NewStyle().
		Bold(true).
		Foreground(statusColor(report.Status)).
		Render(strings.ToUpper(report.Status))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	// ── Declared metadata ──
	renderField(&b, "extension", orNone(report.Extension))
	renderField(&b, "project type", orNone(report.ProjectType))
	renderField(&b, "loaders", orNone(strings.Join(report.Loaders, ", ")))
	renderField(&b, "game versions", orNone(strings.Join(report.GameVersions, ", ")))

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Verdict ──
	switch report.Status {
	case domain.StatusPass:
		b.WriteString("  " + passStyle.Render("●") + " " + titleStyle.Render("Primary file") + "\n")
	case domain.StatusWarning:
		b.WriteString("  " + lipgloss.NewStyle().Foreground(warning).Render("●") + " " +
			titleStyle.Render("Accepted, not primary") + "\n")
	default:
		tag := lipgloss.NewStyle().Foreground(danger).Bold(true).Render(kindLabel(report.ErrorKind))
		b.WriteString("  " + failStyle.Render("●") + " " + tag + "\n")
	}
	if report.Reason != "" {
		b.WriteString("    " + dimStyle.Render(report.Reason) + "\n")
	}

	if report.Candidates != nil {
		renderCandidates(&b, report.Candidates)
	}

	b.WriteString("\n")
	return b.String()
}

func renderField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Render(padRight(label, 16)), value)
}

func renderCandidates(b *strings.Builder, candidates []domain.Candidate) {
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Candidates") + "\n")
	if len(candidates) == 0 {
		b.WriteString("    " + dimStyle.Render("No validator applies to this project type, loader and game version.") + "\n")
		return
	}
	for _, c := range candidates {
		icon := passStyle.Render("●")
		note := dimStyle.Render("extension accepted")
		if !c.ExtensionMatch {
			icon = failStyle.Render("○")
			note = faintStyle.Render("extension not accepted")
		}
		fmt.Fprintf(b, "    %s %s %s\n", icon, padRight(c.Validator, 16), note)
	}
}

func displayName(report *domain.Report) string {
	if report.File == "" {
		return "upload"
	}
	return filepath.Base(report.File)
}

func kindLabel(kind string) string {
	switch kind {
	case "archive":
		return "Unreadable archive"
	case "manifest":
		return "Invalid manifest"
	case "invalid_input":
		return "Invalid input"
	default:
		return "Error"
	}
}

func statusColor(status string) lipgloss.Color {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return fg
}

func orNone(s string) string {
	if s == "" {
		return faintStyle.Render("none")
	}
	return s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
