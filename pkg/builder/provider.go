package builder

import (
	"go/parser"
	"maps"
	"strings"

	"github.com/pkg/errors"

	"github.com/octohelm/buildergen/pkg/namer"
	gengotypes "github.com/octohelm/buildergen/pkg/types"
)

// DefaultEntry literal default value of a type.
type DefaultEntry struct {
	Value   string
	Imports []Import
}

var builtinDefaults = map[string]DefaultEntry{
	"bool":   {Value: "false"},
	"string": {Value: `""`},

	"error":       {Value: "nil"},
	"any":         {Value: "nil"},
	"interface{}": {Value: "nil"},

	"time.Duration":            {Value: "0"},
	"time.Time":                {Value: "time.Time{}", Imports: []Import{{Path: "time", Name: "time"}}},
	"context.Context":          {Value: "context.Background()", Imports: []Import{{Path: "context", Name: "context"}}},
	"encoding/json.RawMessage": {Value: "nil"},
	"unsafe.Pointer":           {Value: "nil"},

	"github.com/google/uuid.UUID": {Value: "uuid.Nil", Imports: []Import{{Path: "github.com/google/uuid", Name: "uuid"}}},
}

func init() {
	for _, numeric := range []string{
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"byte", "rune",
		"float32", "float64",
		"complex64", "complex128",
	} {
		builtinDefaults[numeric] = DefaultEntry{Value: "0"}
	}
}

// BuiltinDefaults returns a copy of the well-known default table.
func BuiltinDefaults() map[string]DefaultEntry {
	return maps.Clone(builtinDefaults)
}

type ProviderOption func(p *Provider)

// WithScope sets the package generated code lives in.
func WithScope(pkgPath string) ProviderOption {
	return func(p *Provider) {
		p.pkgPath = pkgPath
	}
}

func WithPackageNamer(namePkg namer.PackageNamer) ProviderOption {
	return func(p *Provider) {
		p.namePkg = namePkg
	}
}

// WithDefaults replaces or extends entries of the default table, keyed by fully-qualified type.
func WithDefaults(entries map[string]DefaultEntry) ProviderOption {
	return func(p *Provider) {
		for k, e := range entries {
			p.table[k] = e
		}
	}
}

func NewProvider(opts ...ProviderOption) *Provider {
	p := &Provider{
		table: BuiltinDefaults(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Provider decides default value expression of a field type.
type Provider struct {
	pkgPath string
	namePkg namer.PackageNamer
	table   map[string]DefaultEntry
}

// NeedsImport reports whether an import declaration is required for pkgPath in scope.
func (p *Provider) NeedsImport(pkgPath string) bool {
	return pkgPath != "" && pkgPath != p.pkgPath
}

// DefaultFor returns default value expression for fully-qualified fieldType.
//
// Table entries come first. Unnamed reference types (slice, map, chan, func, interface,
// pointer to unnamed) default to nil. Anything else falls back to an empty composite
// literal `T{}`, or `&T{}` for pointer to named type, which assumes T accepts one.
func (p *Provider) DefaultFor(fieldType string) (DefaultValueDecision, error) {
	t := strings.TrimSpace(fieldType)
	if t == "" {
		return DefaultValueDecision{}, errors.New("empty field type")
	}

	if entry, ok := p.table[t]; ok {
		d := DefaultValueDecision{ExpressionText: entry.Value}
		for _, i := range entry.Imports {
			if p.NeedsImport(i.Path) {
				d.Imports = append(d.Imports, i)
			}
		}
		return d, nil
	}

	if elem, ok := strings.CutPrefix(t, "*"); ok {
		if isNamed(elem) || isStructLit(elem) {
			return p.composite(elem, "&")
		}
		return DefaultValueDecision{ExpressionText: "nil"}, nil
	}

	if isNilable(t) {
		return DefaultValueDecision{ExpressionText: "nil"}, nil
	}

	if strings.HasPrefix(t, "[") || isStructLit(t) || isNamed(t) {
		return p.composite(t, "")
	}

	return DefaultValueDecision{}, errors.Errorf("unresolvable type `%s`", t)
}

func (p *Provider) composite(t string, prefix string) (DefaultValueDecision, error) {
	tracker := namer.NewDefaultImportTracker(p.namePkg)

	expr := prefix + namer.NewRawNamer(p.pkgPath, tracker).Name(t) + "{}"

	if _, err := parser.ParseExpr(expr); err != nil {
		return DefaultValueDecision{}, errors.Wrapf(err, "invalid default of `%s`", t)
	}

	d := DefaultValueDecision{ExpressionText: expr}

	imports := tracker.Imports()

	// the named type itself goes first
	if param := ParameterOf(t); param.PackagePath != "" {
		if name, ok := imports[param.PackagePath]; ok {
			d.Imports = append(d.Imports, Import{Path: param.PackagePath, Name: name})
			delete(imports, param.PackagePath)
		}
	}

	for _, path := range namer.SortedPaths(imports) {
		if p.NeedsImport(path) {
			d.Imports = append(d.Imports, Import{Path: path, Name: imports[path]})
		}
	}

	return d, nil
}

func isNamed(t string) bool {
	_, err := gengotypes.ParseRef(t)
	return err == nil
}

func isStructLit(t string) bool {
	return strings.HasPrefix(t, "struct{") || strings.HasPrefix(t, "struct {")
}

func isNilable(t string) bool {
	for _, prefix := range []string{"[]", "map[", "chan ", "chan<-", "<-chan", "func(", "interface{", "interface {"} {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}
