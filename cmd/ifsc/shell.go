package main

import (
	"github.com/spf13/cobra"
	"github.com/voxtmault/ifsc-integration/shell"
)

func shellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Read IFSC codes from stdin, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return shell.New(a.ii.Service).Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
