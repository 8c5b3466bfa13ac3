package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/modcheck/modcheck/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderValidators lists registered validators in dispatch order.
func RenderValidators(infos []domain.ValidatorInfo) string {
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n",
		sectionHeaderStyle.Render("Validators"),
		dimStyle.Render(fmt.Sprintf("(%d)", len(infos))),
	)
	b.WriteString("  " + separatorLine + "\n")

	for i, info := range infos {
		fmt.Fprintf(&b, "\n  %s %s\n", faintStyle.Render(fmt.Sprintf("%d.", i+1)), titleStyle.Render(info.Name))
		renderField(&b, "extensions", strings.Join(info.Extensions, ", "))
		renderField(&b, "project types", strings.Join(info.ProjectTypes, ", "))
		renderField(&b, "loaders", strings.Join(info.Loaders, ", "))
		renderField(&b, "game versions", describeSupport(info.GameVersions))
	}

	b.WriteString("\n")
	b.WriteString("  " + hintStyle.Render("The first validator matching type, loader, game version and extension decides."))
	b.WriteString("\n")
	return b.String()
}

func describeSupport(s domain.GameVersionSupport) string {
	const layout = "2006-01-02"
	switch s.Kind {
	case domain.SupportAll:
		return "all"
	case domain.SupportPastDate:
		return "released after " + s.After.UTC().Format(layout)
	case domain.SupportRange:
		return fmt.Sprintf("released between %s and %s", s.After.UTC().Format(layout), s.Before.UTC().Format(layout))
	case domain.SupportCustom:
		return strings.Join(s.Versions, ", ")
	default:
		return s.Kind.String()
	}
}
