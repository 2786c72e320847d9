package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danialarif/gigdesk/internal/domain"
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

// MilestoneStatusStyle returns the style used when rendering a
// milestone status badge.
func MilestoneStatusStyle(s domain.MilestoneStatus) lipgloss.Style {
	switch s {
	case domain.MilestoneApproved, domain.MilestonePaid:
		return StyleGreen
	case domain.MilestoneInProgress, domain.MilestoneSubmitted:
		return StyleYellow
	case domain.MilestoneDisputed, domain.MilestoneRejected:
		return StyleRed
	case domain.MilestoneLocked:
		return StyleBlue
	default:
		return StyleDim
	}
}

// MilestoneStatusBadge renders a colored "● STATUS" indicator.
func MilestoneStatusBadge(s domain.MilestoneStatus) string {
	label := string(s)
	if label == "" {
		label = "NEW"
	}
	return MilestoneStatusStyle(s).Render("● " + label)
}

// DisputeStatusBadge renders a colored dispute status indicator.
func DisputeStatusBadge(s domain.DisputeStatus) string {
	switch s {
	case domain.DisputeOpen:
		return StyleRed.Render("● OPEN")
	case domain.DisputeUnderReview:
		return StyleYellow.Render("● UNDER REVIEW")
	case domain.DisputeResolved:
		return StyleGreen.Render("● RESOLVED")
	case domain.DisputeClosed:
		return StyleDim.Render("● CLOSED")
	case domain.DisputeRejected:
		return StyleRed.Render("● REJECTED")
	default:
		return StyleDim.Render("● " + string(s))
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
