package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xonecas/gridsel/internal/sheet"
)

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <file>",
		Short: "List the worksheets of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := sheet.SheetNames(args[0])
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
