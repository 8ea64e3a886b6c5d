package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	// -- Mouse ---------------------------------------------------------------
	case tea.MouseMsg:
		return m.handleMouse(msg)

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	// -- Workbook watcher ----------------------------------------------------
	case ReloadMsg:
		if msg.Sheet != nil {
			m.reload(msg.Sheet)
			m.scrollToCursor()
		}
	case ReloadErrMsg:
		log.Warn().Err(msg.Err).Str("path", m.path).Msg("reload failed")
		m.setError(fmt.Errorf("reload: %w", msg.Err))

	// -- Clipboard -----------------------------------------------------------
	case copiedMsg:
		if msg.err != nil {
			// OSC 52 was still sent; a missing native clipboard is normal over SSH.
			log.Debug().Err(msg.err).Msg("native clipboard unavailable")
		}
		m.setStatus(fmt.Sprintf("copied %d %s", msg.lines, plural(msg.lines, "line", "lines")))
	}

	return m, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
