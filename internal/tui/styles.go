package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the day view.
type Styles struct {
	Header  lipgloss.Style
	Gutter  lipgloss.Style
	NowLine lipgloss.Style
	Status  lipgloss.Style
	Warning lipgloss.Style
	Empty   lipgloss.Style

	// Lanes carries one background style per column, cycled when a
	// cluster is wider than the palette.
	Lanes []lipgloss.Style
}

// NewStyles builds the default style set.
func NewStyles() *Styles {
	lane := func(bg string) lipgloss.Style {
		return lipgloss.NewStyle().
			Background(lipgloss.Color(bg)).
			Foreground(lipgloss.Color("230"))
	}

	return &Styles{
		Header:  lipgloss.NewStyle().Bold(true),
		Gutter:  lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		NowLine: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Lanes: []lipgloss.Style{
			lane("25"),  // blue
			lane("64"),  // green
			lane("97"),  // purple
			lane("130"), // orange
			lane("31"),  // teal
		},
	}
}

// Lane returns the style for a column index.
func (s *Styles) Lane(column int) lipgloss.Style {
	return s.Lanes[column%len(s.Lanes)]
}
