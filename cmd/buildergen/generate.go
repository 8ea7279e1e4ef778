package main

import (
	"os"

	"github.com/go-courier/logr"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/octohelm/buildergen/pkg/builder"
	"github.com/octohelm/buildergen/pkg/document"
	"github.com/octohelm/buildergen/pkg/format"
	"github.com/octohelm/buildergen/pkg/gomodel"
)

type generateFlags struct {
	typeRef    string
	noDefaults bool
	style      string
	methodCase string
	format     bool
	dryRun     bool
	write      bool
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate FILE:OFFSET|FILE:LINE:COL",
		Short: "Insert builder call chain after the call at position",
		Long: `Insert builder call chain after the call at position.

With --type, the chain of the type is inserted at position directly.
The result prints to stdout, unless --write or --dry-run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd, a)
			if err != nil {
				return err
			}

			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			content, mode, err := readFile(pos.Filename)
			if err != nil {
				return err
			}

			offset, err := pos.OffsetIn(content)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			m, err := gomodel.Load(ctx, pos.Filename, content, a.config.ModelOptions()...)
			if err != nil {
				return err
			}

			docOpts := []document.Option{document.WithPkgPath(m.PackagePath())}
			if f.format {
				docOpts = append(docOpts, document.WithFormatter(format.File))
			}

			doc := document.New(m.Filename(), content, docOpts...)
			g := builder.NewGenerator(m, opts)

			if f.typeRef != "" {
				edit, err := g.Generate(ctx, doc.Snapshot(), f.typeRef, offset, gomodel.LineIndent(content, offset)+opts.IndentUnit)
				if err != nil {
					return err
				}
				if opts.Style == builder.LeadingDot {
					edit.Text = "\n" + edit.Text
				}
				if err := doc.Apply(edit); err != nil {
					return err
				}
			} else {
				if err := g.Perform(ctx, doc, offset); err != nil {
					return err
				}
			}

			switch {
			case f.dryRun:
				_, err = cmd.OutOrStdout().Write([]byte(lineDiff(string(content), string(doc.Content()))))
				return err
			case f.write:
				logr.FromContext(ctx).Info("%s written", pos.Filename)
				return os.WriteFile(pos.Filename, doc.Content(), mode)
			default:
				_, err = cmd.OutOrStdout().Write(doc.Content())
				return err
			}
		},
	}

	cmd.Flags().StringVar(&f.typeRef, "type", "", "fully-qualified builder type, like github.com/x/geo.PointBuilder")
	cmd.Flags().BoolVar(&f.noDefaults, "no-defaults", false, "leave arguments empty")
	cmd.Flags().StringVar(&f.style, "style", "", "leading or trailing")
	cmd.Flags().StringVar(&f.methodCase, "method-case", "", "raw, upper-camel or lower-camel")
	cmd.Flags().BoolVar(&f.format, "format", false, "format document after generation")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print diff only")
	cmd.Flags().BoolVarP(&f.write, "write", "w", false, "write result back to file")

	cmd.MarkFlagsMutuallyExclusive("dry-run", "write")

	return cmd
}

// options from config, overridden by flags explicitly set
func (f *generateFlags) options(cmd *cobra.Command, a *app) (builder.Options, error) {
	c := *a.config

	if cmd.Flags().Changed("style") {
		c.Style = f.style
	}
	if cmd.Flags().Changed("method-case") {
		c.MethodCase = f.methodCase
	}
	if cmd.Flags().Changed("no-defaults") {
		c.NoDefaults = f.noDefaults
	}

	opts, err := c.Options()
	if err != nil {
		return opts, err
	}

	// leading dots are no valid go before the formatter parses the file
	if f.format && opts.Style == builder.LeadingDot {
		if cmd.Flags().Changed("style") {
			return opts, errors.New("--format needs --style trailing")
		}
		logr.FromContext(cmd.Context()).Debug("trailing style used for --format")
		opts.Style = builder.TrailingDot
	}

	return opts, nil
}
