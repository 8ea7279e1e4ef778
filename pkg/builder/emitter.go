package builder

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/octohelm/buildergen/pkg/camelcase"
	"github.com/octohelm/buildergen/pkg/namer"
)

type ChainStyle int

const (
	// LeadingDot puts every call on its own line starting with `.`
	LeadingDot ChainStyle = iota
	// TrailingDot ends every line with `.`, which survives go semicolon insertion
	TrailingDot
)

func ParseChainStyle(s string) (ChainStyle, error) {
	switch s {
	case "", "leading":
		return LeadingDot, nil
	case "trailing":
		return TrailingDot, nil
	}
	return LeadingDot, errors.Errorf("unknown chain style `%s`, should be leading or trailing", s)
}

func (s ChainStyle) String() string {
	if s == TrailingDot {
		return "trailing"
	}
	return "leading"
}

type MethodCase string

const (
	MethodCaseRaw        MethodCase = "raw"
	MethodCaseUpperCamel MethodCase = "upper-camel"
	MethodCaseLowerCamel MethodCase = "lower-camel"
)

func ParseMethodCase(s string) (MethodCase, error) {
	switch c := MethodCase(s); c {
	case "", MethodCaseRaw:
		return MethodCaseRaw, nil
	case MethodCaseUpperCamel, MethodCaseLowerCamel:
		return c, nil
	}
	return MethodCaseRaw, errors.Errorf("unknown method case `%s`", s)
}

func (c MethodCase) MethodName(name string) string {
	switch c {
	case MethodCaseUpperCamel:
		return camelcase.UpperCamelCase(name)
	case MethodCaseLowerCamel:
		return camelcase.LowerCamelCase(name)
	default:
		return name
	}
}

const DefaultBuildMethod = "build"

// Emitter renders the method chain of fields.
type Emitter struct {
	Provider    *Provider
	Style       ChainStyle
	MethodCase  MethodCase
	BuildMethod string
}

// Emit renders one call per field in order, then the terminal build call.
// With defaultsEnabled, arguments are default values of field types, otherwise left empty.
func (e *Emitter) Emit(fields []FieldDescriptor, indentText string, defaultsEnabled bool) (*GenerationResult, error) {
	provider := e.Provider
	if provider == nil {
		provider = NewProvider()
	}

	buildMethod := e.BuildMethod
	if buildMethod == "" {
		buildMethod = DefaultBuildMethod
	}

	result := &GenerationResult{
		ImportPackages: map[string]string{},
	}

	calls := make([]string, 0, len(fields)+1)

	for _, f := range fields {
		arg := ""

		if defaultsEnabled {
			d, err := provider.DefaultFor(f.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "default of field `%s`", f.Name)
			}

			arg = d.ExpressionText

			for _, i := range d.Imports {
				if !provider.NeedsImport(i.Path) {
					continue
				}
				if err := addImport(result.ImportPackages, i); err != nil {
					return nil, errors.Wrapf(err, "default of field `%s`", f.Name)
				}
			}
		}

		calls = append(calls, e.MethodCase.MethodName(f.Name)+"("+arg+")")
	}

	calls = append(calls, e.MethodCase.MethodName(buildMethod)+"()")

	b := &strings.Builder{}

	for i, call := range calls {
		switch e.Style {
		case TrailingDot:
			b.WriteString(".\n")
			b.WriteString(indentText)
			b.WriteString(call)
		default:
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(indentText)
			b.WriteString(".")
			b.WriteString(call)
		}
	}

	result.CodeText = b.String()

	return result, nil
}

func addImport(imports map[string]string, i Import) error {
	if i.Name == "" {
		i.Name = namer.DefaultPackageName(i.Path)
	}
	for path, name := range imports {
		if name == i.Name && path != i.Path {
			return errors.Errorf("packages `%s` and `%s` share local name `%s`", path, i.Path, name)
		}
	}
	imports[i.Path] = i.Name
	return nil
}
