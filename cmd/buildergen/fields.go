package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/octohelm/buildergen/pkg/builder"
	"github.com/octohelm/buildergen/pkg/gomodel"
	gengotypes "github.com/octohelm/buildergen/pkg/types"
)

func newFieldsCmd(a *app) *cobra.Command {
	dir := ""

	cmd := &cobra.Command{
		Use:   "fields TYPE",
		Short: "Print fields of builder type as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := gengotypes.ParseRef(args[0])
			if err != nil {
				return err
			}

			opts := append(a.config.ModelOptions(), gomodel.WithDir(dir))

			m, err := gomodel.LoadPackage(cmd.Context(), ref.Pkg().Path(), opts...)
			if err != nil {
				return err
			}

			fields, err := builder.NewResolver(m).Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			e := yaml.NewEncoder(cmd.OutOrStdout())
			e.SetIndent(2)
			if err := e.Encode(fields); err != nil {
				return err
			}
			return e.Close()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "dir to resolve package from, current dir by default")

	return cmd
}
