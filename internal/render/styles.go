// Package render draws evaluation reports for human eyes: score bars,
// risk badges, disclosure-layer indicators, and aggregate summaries.
// Everything here consumes report fields read-only; no scoring logic.
package render

import "github.com/charmbracelet/lipgloss"

// Palette: semantic colors keyed to risk, not brand.
var (
	ColorHigh   = lipgloss.Color("#E74C3C") // red - high risk, core layer
	ColorMedium = lipgloss.Color("#F4D03F") // amber - medium risk
	ColorLow    = lipgloss.Color("#2ECC71") // green - low risk, safe
	ColorAccent = lipgloss.Color("#56B6C2") // cyan - headings, frames
	ColorFlag   = lipgloss.Color("#C678DD") // magenta - intimacy, pattern list
	ColorMuted  = lipgloss.Color("#6B7280") // gray - quoted text, empty bar
)

// Styles holds the pre-configured lipgloss styles used across the package.
var Styles = struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Italic   lipgloss.Style

	High   lipgloss.Style
	Medium lipgloss.Style
	Low    lipgloss.Style
	Accent lipgloss.Style
	Flag   lipgloss.Style

	BadgeHigh   lipgloss.Style
	BadgeMedium lipgloss.Style
	BadgeLow    lipgloss.Style

	Box       lipgloss.Style
	TheoryBox lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
	Subtitle: lipgloss.NewStyle().Foreground(ColorMuted),
	Bold:     lipgloss.NewStyle().Bold(true),
	Muted:    lipgloss.NewStyle().Foreground(ColorMuted),
	Italic:   lipgloss.NewStyle().Italic(true),

	High:   lipgloss.NewStyle().Foreground(ColorHigh),
	Medium: lipgloss.NewStyle().Foreground(ColorMedium),
	Low:    lipgloss.NewStyle().Foreground(ColorLow),
	Accent: lipgloss.NewStyle().Foreground(ColorAccent),
	Flag:   lipgloss.NewStyle().Foreground(ColorFlag),

	BadgeHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(ColorHigh).Padding(0, 1),
	BadgeMedium: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(ColorMedium).Padding(0, 1),
	BadgeLow:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(ColorLow).Padding(0, 1),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 2),
	TheoryBox: lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 2),
}
