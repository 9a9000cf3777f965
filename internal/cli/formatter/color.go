package formatter

import (
	"fmt"
	"strings"

	"github.com/capacinator/capacinator/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// BandColor returns the style for a utilization band.
func BandColor(band domain.UtilizationBand) lipgloss.Style {
	switch band {
	case domain.BandOver:
		return StyleRed
	case domain.BandFull:
		return StyleYellow
	case domain.BandHealthy:
		return StyleGreen
	default:
		return StyleDim
	}
}

// BandIndicator returns a colored band indicator string such as "● OVER".
func BandIndicator(band domain.UtilizationBand) string {
	switch band {
	case domain.BandOver:
		return StyleRed.Render("● OVER")
	case domain.BandFull:
		return StyleYellow.Render("● FULL")
	case domain.BandHealthy:
		return StyleGreen.Render("● OK")
	default:
		return StyleDim.Render("● IDLE")
	}
}

// StatusPill renders a scenario status as a short colored tag.
func StatusPill(status domain.ScenarioStatus) string {
	switch status {
	case domain.ScenarioActive:
		return StyleGreen.Render("[active]")
	case domain.ScenarioMerged:
		return StyleBlue.Render("[merged]")
	case domain.ScenarioArchived:
		return StyleDim.Render("[archived]")
	default:
		return StyleDim.Render("[" + string(status) + "]")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Error renders an inline error line.
func Error(text string) string {
	return StyleRed.Render("✗ " + text)
}

// Success renders an inline success line.
func Success(text string) string {
	return StyleGreen.Render("✓ " + text)
}
