package builder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-courier/logr"

	"github.com/octohelm/buildergen/pkg/document"
	"github.com/octohelm/buildergen/pkg/namer"
)

const DefaultIndentUnit = "\t\t"

type Options struct {
	// DefaultsEnabled fills arguments with default values of field types
	DefaultsEnabled bool
	Style           ChainStyle
	MethodCase      MethodCase
	// IndentUnit appended to the indent of the line the call starts on
	IndentUnit  string
	BuildMethod string
	// Defaults extra entries of the default table
	Defaults map[string]DefaultEntry
}

func DefaultOptions() Options {
	return Options{
		DefaultsEnabled: true,
		Style:           LeadingDot,
		MethodCase:      MethodCaseRaw,
		IndentUnit:      DefaultIndentUnit,
		BuildMethod:     DefaultBuildMethod,
	}
}

func NewGenerator(model SourceModel, opts Options) *Generator {
	return &Generator{
		model:    model,
		resolver: NewResolver(model),
		opts:     opts,
	}
}

// Generator generates the full builder call chain for the call under cursor.
type Generator struct {
	model    SourceModel
	resolver *Resolver
	opts     Options
}

func (g *Generator) Options() Options {
	return g.opts
}

// Available reports whether the call under cursor returns a builder type.
// It never mutates doc.
func (g *Generator) Available(ctx context.Context, snapshot document.Snapshot, cursor int) bool {
	target, err := g.model.ResolveCallTarget(ctx, snapshot, cursor)
	if err != nil {
		return false
	}
	return g.model.IsBuilderType(ctx, target.TypeName)
}

// Generate creates the EditCommand which inserts the chain of typeRef at offset of snapshot.
func (g *Generator) Generate(ctx context.Context, snapshot document.Snapshot, typeRef string, offset int, indentText string) (*document.EditCommand, error) {
	ctx, l := logr.FromContext(ctx).Start(ctx, "Generate", slog.String("target", typeRef))
	defer l.End()

	fields, err := g.resolver.Resolve(ctx, typeRef)
	if err != nil {
		return nil, err
	}

	opts := []ProviderOption{
		WithScope(snapshot.PkgPath),
		WithDefaults(g.opts.Defaults),
	}

	if pn, ok := g.model.(PackageNamer); ok {
		opts = append(opts, WithPackageNamer(pn.PackageName))
	}

	e := &Emitter{
		Provider:    NewProvider(opts...),
		Style:       g.opts.Style,
		MethodCase:  g.opts.MethodCase,
		BuildMethod: g.opts.BuildMethod,
	}

	result, err := e.Emit(fields, indentText, g.opts.DefaultsEnabled)
	if err != nil {
		return nil, resolutionErrorf(typeRef, err, "emit failed")
	}

	l.Info("%d fields, imports %v", len(fields), namer.SortedPaths(result.ImportPackages))

	return &document.EditCommand{
		Offset:      offset,
		Text:        result.CodeText,
		Imports:     result.ImportPackages,
		BaseVersion: snapshot.Version,
	}, nil
}

// GenerateAt resolves the call under cursor, then generates the chain right after the call.
func (g *Generator) GenerateAt(ctx context.Context, snapshot document.Snapshot, cursor int) (*document.EditCommand, error) {
	target, err := g.model.ResolveCallTarget(ctx, snapshot, cursor)
	if err != nil {
		resolutionErr := &ResolutionError{}
		if errors.As(err, &resolutionErr) {
			return nil, resolutionErr
		}
		return nil, resolutionErrorf("", err, "no call target at %d", cursor)
	}

	if !g.model.IsBuilderType(ctx, target.TypeName) {
		return nil, resolutionErrorf(target.TypeName, nil, "not a builder type")
	}

	if snapshot.PkgPath == "" {
		snapshot.PkgPath = target.PkgPath
	}

	cmd, err := g.Generate(ctx, snapshot, target.TypeName, target.InsertOffset, target.LineIndent+g.opts.IndentUnit)
	if err != nil {
		return nil, err
	}

	if g.opts.Style == LeadingDot {
		cmd.Text = "\n" + cmd.Text
	}

	return cmd, nil
}

// Perform generates for the call under cursor and applies it to doc.
// On failure, doc stays unchanged.
func (g *Generator) Perform(ctx context.Context, doc *document.Document, cursor int) error {
	ctx, l := logr.FromContext(ctx).Start(ctx, "Perform", slog.String("document", doc.Filename()))
	defer l.End()

	cmd, err := g.GenerateAt(ctx, doc.Snapshot(), cursor)
	if err != nil {
		return err
	}

	if err := doc.Apply(cmd); err != nil {
		l.Warn(err)
		return err
	}

	return nil
}
