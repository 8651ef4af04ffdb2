package ui

import "github.com/charmbracelet/lipgloss"

// Color palette for status output
var (
	SuccessColor = lipgloss.Color("#43BF6D") // Green - connected, RX rate
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, TX rate
	AccentColor  = lipgloss.Color("#00AFFF") // Blue - active VFO marker
	WarningColor = lipgloss.Color("#FFA500") // Orange - squelch bar
	MutedColor   = lipgloss.Color("#626262") // Gray - labels, empty bar cells
	TextColor    = lipgloss.Color("#FFFFFF") // White - values
)

// Shared styles for status output
var (
	// LabelStyle is for field labels (e.g. "Frequency:")
	LabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// ValueStyle is for field values
	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// ActiveVfoStyle marks the currently selected VFO row
	ActiveVfoStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	// ConnectedStyle is for the connection banner
	ConnectedStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	// ErrorStyle is for error lines
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// BarFilledStyle is for filled meter cells
	BarFilledStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// BarEmptyStyle is for empty meter cells
	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// TxRateStyle and RxRateStyle color the throughput counters
	TxRateStyle = lipgloss.NewStyle().Foreground(ErrorColor)
	RxRateStyle = lipgloss.NewStyle().Foreground(SuccessColor)
)
