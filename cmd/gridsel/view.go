package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/gridsel/internal/constants"
	"github.com/xonecas/gridsel/internal/tui"
	"github.com/xonecas/gridsel/internal/watch"
)

var watchFile bool

// errNotTerminal is returned when the viewer is started without a TTY.
var errNotTerminal = errors.New("the viewer needs a terminal; use `gridsel select` in scripts")

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Open a sheet in the interactive grid (default command)",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Reload when the file changes on disk")
	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		return errNotTerminal
	}

	cache := openCache(cfg)
	defer cache.Close()

	path := args[0]
	s, err := loadSheet(cache, path, sheetName)
	if err != nil {
		return err
	}

	m := tui.New(s, tui.Options{
		Path:        path,
		Theme:       cfg.UI.SyntaxThemeOrDefault(),
		ColumnWidth: cfg.UI.ColumnWidthOrDefault(),
		Selection:   cfg.SelectionOptions(),
	})
	p := tea.NewProgram(m, tea.WithFilter(tui.MouseEventFilter))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if watchFile {
		fw, err := watch.NewFileWatcher(path, constants.WatchDebounce, func(string) {
			s, err := loadSheet(cache, path, sheetName)
			if err != nil {
				p.Send(tui.ReloadErrMsg{Err: err})
				return
			}
			p.Send(tui.ReloadMsg{Sheet: s})
		})
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		defer fw.Close()
		go func() {
			if err := fw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn().Err(err).Str("path", path).Msg("watcher stopped")
			}
		}()
	}

	log.Info().Str("path", path).Str("sheet", s.Name).Bool("watch", watchFile).Msg("starting viewer")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
