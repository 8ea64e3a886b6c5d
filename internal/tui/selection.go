package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/xonecas/gridsel/internal/sheet"
)

// ---------------------------------------------------------------------------
// Selection and clipboard
// ---------------------------------------------------------------------------

// copySelection copies the selection as TSV to the clipboard using both
// OSC 52 (for SSH/tmux) and the native clipboard, and marks the copied
// region.
func (m *Model) copySelection() tea.Cmd {
	text, err := sheet.SelectionTSV(m.sheet, m.sel)
	if err != nil {
		m.setError(err)
		return nil
	}
	if text == "" {
		m.setStatus("nothing selected")
		return nil
	}
	m.sel.SetCopyArea()
	lines := strings.Count(text, "\n") + 1
	return tea.Batch(
		tea.SetClipboard(text), // OSC 52
		func() tea.Msg {
			return copiedMsg{lines: lines, err: clipboard.WriteAll(text)}
		},
	)
}
