package tui

import (
	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"

	"github.com/xonecas/gridsel/internal/highlight"
)

// Styles holds every lipgloss style the viewer renders with.
type Styles struct {
	BgFill lipgloss.Style
	Border lipgloss.Style

	Header         lipgloss.Style
	HeaderTouched  lipgloss.Style
	HeaderSelected lipgloss.Style

	Cell     lipgloss.Style
	Cursor   lipgloss.Style
	CopyArea lipgloss.Style

	StatusText lipgloss.Style
	StatusKey  lipgloss.Style
	Error      lipgloss.Style
}

func newStyles(p highlight.Palette) Styles {
	bg := lipgloss.Color(p.Bg)
	base := lipgloss.NewStyle().Background(bg)
	return Styles{
		BgFill: base,
		Border: base.Foreground(lipgloss.Color(p.Border)),

		Header:         lipgloss.NewStyle().Background(lipgloss.Color(p.Header)).Foreground(lipgloss.Color(p.Muted)),
		HeaderTouched:  lipgloss.NewStyle().Background(lipgloss.Color(p.Touched)).Foreground(lipgloss.Color(p.Fg)),
		HeaderSelected: lipgloss.NewStyle().Background(lipgloss.Color(p.SelectedHeader)).Foreground(lipgloss.Color(p.Fg)).Bold(true),

		Cell:     base.Foreground(lipgloss.Color(p.Fg)),
		Cursor:   lipgloss.NewStyle().Background(lipgloss.Color(p.SelectedHeader)).Bold(true),
		CopyArea: lipgloss.NewStyle().Underline(true),

		StatusText: base.Foreground(lipgloss.Color(p.Muted)),
		StatusKey:  base.Foreground(lipgloss.Color(p.Accent)),
		Error:      base.Foreground(lipgloss.Color(p.Error)),
	}
}

// cellStyle returns the style of a value, with the selection background
// applied when selected.
func (m Model) cellStyle(v string, selected bool) lipgloss.Style {
	st := m.styles.Cell.Foreground(lipgloss.Color(m.palette.ValueColor(v)))
	if selected {
		st = st.Background(lipgloss.Color(m.palette.Selected))
	}
	return st
}

func helpStyles(p highlight.Palette) help.Styles {
	key := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent))
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted))
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dim))
	return help.Styles{
		Ellipsis:       sep,
		ShortKey:       key,
		ShortDesc:      desc,
		ShortSeparator: sep,
		FullKey:        key,
		FullDesc:       desc,
		FullSeparator:  sep,
	}
}
