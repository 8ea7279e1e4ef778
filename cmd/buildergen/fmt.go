package main

import (
	"github.com/spf13/cobra"

	"github.com/octohelm/buildergen/pkg/format"
)

func newFmtCmd() *cobra.Command {
	p := &format.Project{}

	cmd := &cobra.Command{
		Use:   "fmt PATH...",
		Short: "Group imports and format go files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Entrypoint = args
			p.Stdout = cmd.OutOrStdout()
			return p.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&p.List, "list", "l", false, "list files whose formatting differs")
	cmd.Flags().BoolVarP(&p.Write, "write", "w", false, "write result back to files")

	return cmd
}
