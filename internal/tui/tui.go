// Package tui is the interactive grid viewer: it renders one sheet, turns
// mouse and keyboard gestures into selection operations and copies the
// selection as TSV.
package tui

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/gridsel/internal/constants"
	"github.com/xonecas/gridsel/internal/highlight"
	"github.com/xonecas/gridsel/internal/selection"
	"github.com/xonecas/gridsel/internal/sheet"
)

// Options configures a viewer.
type Options struct {
	// Path is shown in the status bar.
	Path string
	// Theme is the Chroma style the palette is derived from.
	Theme string
	// ColumnWidth caps the display width of a column.
	ColumnWidth int
	Selection   selection.Options
}

// Model is the application model.
type Model struct {
	width  int
	height int
	layout layout

	palette highlight.Palette
	styles  Styles
	keys    keyMap
	help    help.Model

	path      string
	sheet     *sheet.Sheet
	sel       *selection.Model
	colLimit  int
	colWidths []int

	// cursor is the cell keyboard moves start from; anchor is the fixed
	// end of a shift or drag extension.
	cursor selection.Point
	anchor selection.Point
	// headerAnchor is the last clicked row or column header, for shift
	// ranges.
	headerAnchor int
	dragging     bool

	rowOff int
	colOff int

	status    string
	statusErr bool
}

// New creates a viewer for s.
func New(s *sheet.Sheet, opts Options) Model {
	if opts.Theme == "" {
		opts.Theme = constants.SyntaxTheme
	}
	if opts.ColumnWidth <= 0 {
		opts.ColumnWidth = constants.DefaultColumnWidth
	}

	sel := selection.New(s, s, opts.Selection)
	sel.OnChange(func() {
		log.Debug().
			Stringer("kind", sel.LastKind()).
			Int("regions", len(sel.Regions())).
			Msg("selection changed")
	})

	p := highlight.ThemePalette(opts.Theme)
	h := help.New()
	h.Styles = helpStyles(p)

	m := Model{
		palette:  p,
		styles:   newStyles(p),
		keys:     newKeyMap(),
		help:     h,
		path:     opts.Path,
		sheet:    s,
		sel:      sel,
		colLimit: opts.ColumnWidth,
	}
	m.measureColumns()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Selection exposes the selection model, mostly for tests and the CLI.
func (m Model) Selection() *selection.Model { return m.sel }

// Sheet returns the sheet being shown.
func (m Model) Sheet() *sheet.Sheet { return m.sheet }

// measureColumns caches the display width of every column.
func (m *Model) measureColumns() {
	n := m.sheet.ColumnCount()
	m.colWidths = make([]int, n)
	for x := range n {
		m.colWidths[x] = m.sheet.ColumnWidth(x, m.colLimit)
	}
}

// reload swaps in a freshly loaded sheet. Old selections may point past the
// new bounds, so they are dropped.
func (m *Model) reload(s *sheet.Sheet) {
	m.sheet = s
	m.sel.SetSource(s, s)
	m.sel.Reset()
	m.measureColumns()
	m.cursor, m.anchor = selection.Point{}, selection.Point{}
	m.dragging = false
	m.rowOff, m.colOff = 0, 0
	m.setStatus("reloaded " + s.Name)
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}
