package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the journal browser.
type Theme struct {
	Footer FooterTheme
	List   ListTheme
	Panel  PanelTheme
	Modal  ModalTheme
}

// FooterTheme groups styles used by the bottom status line.
type FooterTheme struct {
	Status lipgloss.Style
	Error  lipgloss.Style
}

// ListTheme styles the entry list.
type ListTheme struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Date     lipgloss.Style
}

// PanelTheme styles the framed entry body.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
}

// ModalTheme styles the delete confirmation.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	title := lipgloss.NewStyle().Bold(true).Underline(true)

	return Theme{
		Footer: FooterTheme{
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
		List: ListTheme{
			Title: title,
			Selected: lipgloss.NewStyle().
				Foreground(lipgloss.Color("213")).
				Bold(true),
			Date: lipgloss.NewStyle().Faint(true),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: title,
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(0, 2),
			Title: lipgloss.NewStyle().Bold(true),
		},
	}
}
