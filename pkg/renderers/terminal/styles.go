package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-chanterelle/pkg/insight"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted   lipgloss.TerminalColor = ac("240", "245")
	colorAccent  lipgloss.TerminalColor = ac("27", "75")
	colorError   lipgloss.TerminalColor = ac("160", "203")
	colorWarning lipgloss.TerminalColor = ac("166", "214")
	colorInfo    lipgloss.TerminalColor = ac("27", "111")

	paletteBorders = map[insight.Color]lipgloss.TerminalColor{
		insight.ColorWhite:  ac("250", "240"),
		insight.ColorRed:    ac("160", "203"),
		insight.ColorGreen:  ac("28", "114"),
		insight.ColorBlue:   ac("27", "75"),
		insight.ColorYellow: ac("136", "227"),
		insight.ColorPurple: ac("91", "177"),
		insight.ColorOrange: ac("166", "214"),
	}
)

var (
	headingStyles = []lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Underline(true),
		lipgloss.NewStyle().Bold(true),
		lipgloss.NewStyle().Bold(true).Foreground(colorMuted),
	}
	itemTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	descriptionStyle = lipgloss.NewStyle().Foreground(colorMuted)
	commentStyle     = lipgloss.NewStyle().Italic(true).Foreground(colorMuted)
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	warningStyle     = lipgloss.NewStyle().Foreground(colorWarning)
	infoStyle        = lipgloss.NewStyle().Foreground(colorInfo)
	barStyle         = lipgloss.NewStyle().Foreground(colorAccent)
)

func headingStyle(level int) lipgloss.Style {
	switch {
	case level <= 1:
		return headingStyles[0]
	case level == 2:
		return headingStyles[1]
	default:
		return headingStyles[2]
	}
}

func sectionBox(color insight.Color, width int) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(paletteBorders[color.Normalized()]).
		Padding(0, 1)
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style
}
