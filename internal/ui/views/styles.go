package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Input       lipgloss.Style
	InputBusy   lipgloss.Style
	Prompt      lipgloss.Style
	ClearMarker lipgloss.Style
	Card        lipgloss.Style
	CardBusy    lipgloss.Style
	Badge       lipgloss.Style
	BadgeWire   lipgloss.Style
	Label       lipgloss.Style
	Answer      lipgloss.Style
	Source      lipgloss.Style
	Spinner     lipgloss.Style
	Notice      lipgloss.Style
	NoticeTitle lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("111")).
			Padding(0, 1),
		InputBusy: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		ClearMarker: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("111")).
			Padding(0, 1).
			MarginTop(1),
		CardBusy: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1).
			MarginTop(1),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("111")).
			Padding(0, 1),
		BadgeWire: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("111")).
			Faint(true).
			PaddingRight(1),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		Answer:  lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("75")),
		Source:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Underline(true),
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("68")).
			Padding(0, 1).
			MarginTop(1),
		NoticeTitle: lipgloss.NewStyle().Bold(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
	}
}
