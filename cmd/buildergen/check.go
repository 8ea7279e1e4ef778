package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/octohelm/buildergen/pkg/builder"
	"github.com/octohelm/buildergen/pkg/document"
	"github.com/octohelm/buildergen/pkg/gomodel"
)

var errUnavailable = errors.New("unavailable")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE:OFFSET|FILE:LINE:COL",
		Short: "Check whether generation is available at position, exit 1 when not",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			content, _, err := readFile(pos.Filename)
			if err != nil {
				return err
			}

			offset, err := pos.OffsetIn(content)
			if err != nil {
				return err
			}

			opts, err := a.config.Options()
			if err != nil {
				return err
			}

			m, err := gomodel.Load(cmd.Context(), pos.Filename, content, a.config.ModelOptions()...)
			if err != nil {
				return err
			}

			snapshot := document.New(m.Filename(), content).Snapshot()

			if !builder.NewGenerator(m, opts).Available(cmd.Context(), snapshot, offset) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "unavailable")
				return errUnavailable
			}

			target, err := m.ResolveCallTarget(cmd.Context(), snapshot, offset)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "available %s\n", target.TypeName)
			return err
		},
	}
}
