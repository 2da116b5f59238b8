package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/benjaminpeng/sql-audit/pkg/model"
)

// Palette. Severity colors match the web console badges.
var (
	Primary   = lipgloss.Color("#7D56F4")
	Secondary = lipgloss.Color("#00D4AA")

	SevError   = lipgloss.Color("#FF3838")
	SevWarning = lipgloss.Color("#FFB800")
	SevInfo    = lipgloss.Color("#4D96FF")

	Success = lipgloss.Color("#00D26A")
	Warning = SevWarning
	Error   = SevError
	Muted   = lipgloss.Color("#6B7280")

	Removed = lipgloss.Color("#FF6B6B")
	Added   = lipgloss.Color("#6BCB77")

	foreground = lipgloss.Color("#FAFAFA")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(foreground).
			Background(Primary).
			Padding(0, 1)

	BannerStyle  = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	VersionStyle = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	SectionStyle = lipgloss.NewStyle().Foreground(foreground).Bold(true)

	ConfigLabelStyle = lipgloss.NewStyle().Foreground(Muted)
	ConfigValueStyle = lipgloss.NewStyle().Foreground(foreground)

	StatLabelStyle = lipgloss.NewStyle().Foreground(Muted)
	StatValueStyle = lipgloss.NewStyle().Foreground(foreground).Bold(true)

	// BracketStyle dims "[custom]" and similar tags.
	BracketStyle = lipgloss.NewStyle().Foreground(Muted)

	PassStyle = lipgloss.NewStyle().Foreground(Success).Bold(true)
	FailStyle = lipgloss.NewStyle().Foreground(Error).Bold(true)
	WarnStyle = lipgloss.NewStyle().Foreground(Warning).Bold(true)

	// PathStyle heads each mapper file group.
	PathStyle = lipgloss.NewStyle().Foreground(Secondary).Bold(true)

	HelpStyle = lipgloss.NewStyle().Foreground(Muted).Italic(true)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(foreground).
			Background(lipgloss.Color("#3B3B4F"))

	RemovedStyle = lipgloss.NewStyle().Foreground(Removed)
	AddedStyle   = lipgloss.NewStyle().Foreground(Added)
)

// SeverityStyle returns the badge style for a severity level.
func SeverityStyle(sev model.Severity) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch sev {
	case model.Error:
		return base.Foreground(SevError)
	case model.Warning:
		return base.Foreground(SevWarning)
	case model.Info:
		return base.Foreground(SevInfo)
	default:
		return base.Foreground(Muted)
	}
}

// SeverityIcon returns the glyph used next to a severity, or an ASCII
// stand-in on terminals that cannot render emoji.
func SeverityIcon(sev model.Severity) string {
	switch sev {
	case model.Error:
		return Icon("❌", "x")
	case model.Warning:
		return Icon("⚠️", "!")
	case model.Info:
		return Icon("ℹ️", "i")
	default:
		return Icon("•", "-")
	}
}
