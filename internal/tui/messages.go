package tui

import "github.com/xonecas/gridsel/internal/sheet"

// ReloadMsg carries a re-read sheet after the workbook changed on disk.
// Exported so main.go can send it via program.Send from the watcher callback.
type ReloadMsg struct{ Sheet *sheet.Sheet }

// ReloadErrMsg reports a failed reload. The old sheet stays on screen.
type ReloadErrMsg struct{ Err error }

// copiedMsg reports the native clipboard write. OSC 52 has no result.
type copiedMsg struct {
	lines int
	err   error
}
