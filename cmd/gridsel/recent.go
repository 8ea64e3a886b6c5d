package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	recentLimit int
	forgetPath  string
)

func newRecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened files",
		Args:  cobra.NoArgs,
		RunE:  runRecent,
	}
	cmd.Flags().IntVarP(&recentLimit, "limit", "n", 10, "Maximum number of files to list")
	cmd.Flags().StringVar(&forgetPath, "forget", "", "Remove a file from the history")
	return cmd
}

func runRecent(cmd *cobra.Command, _ []string) error {
	cache := openCache(cfg)
	if cache == nil {
		return errors.New("recent files need the sheet cache; it is disabled")
	}
	defer cache.Close()

	if forgetPath != "" {
		abs, err := filepath.Abs(forgetPath)
		if err != nil {
			return err
		}
		return cache.ForgetRecent(abs)
	}

	files, err := cache.Recent(recentLimit)
	if err != nil {
		return fmt.Errorf("read recent files: %w", err)
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Opened.Format("2006-01-02 15:04"), f.Sheet, f.Path)
	}
	return w.Flush()
}
