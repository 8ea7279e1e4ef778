package builder

import (
	"context"
	"strings"

	"github.com/octohelm/buildergen/pkg/document"
	gengotypes "github.com/octohelm/buildergen/pkg/types"
)

// FieldDescriptor one settable property of builder type.
type FieldDescriptor struct {
	Name string `json:"name" yaml:"name"`
	// Type fully-qualified go type, like go/types.TypeString(t, nil)
	Type string `json:"type" yaml:"type"`
}

// Parameter package path and name of a fully-qualified named type.
type Parameter struct {
	PackagePath string
	ClassName   string
}

// ParameterOf derives Parameter from fully-qualified type, pointers dereferenced and type arguments dropped.
// Unnamed or universe types return zero Parameter.
func ParameterOf(typeFullyQualifiedName string) Parameter {
	ref, err := gengotypes.ParseRef(strings.TrimLeft(typeFullyQualifiedName, "*"))
	if err != nil {
		return Parameter{ClassName: typeFullyQualifiedName}
	}
	return Parameter{
		PackagePath: ref.Pkg().Path(),
		ClassName:   gengotypes.BaseName(ref.Name()),
	}
}

type Import struct {
	Path string
	Name string
}

// DefaultValueDecision value expression for one field.
type DefaultValueDecision struct {
	ExpressionText string
	// Imports every package ExpressionText refers to
	Imports []Import
}

// ImportPackage the primary import, empty when no import needed.
func (d DefaultValueDecision) ImportPackage() string {
	if len(d.Imports) == 0 {
		return ""
	}
	return d.Imports[0].Path
}

type GenerationResult struct {
	CodeText string
	// ImportPackages import path to local name used in CodeText
	ImportPackages map[string]string
}

// CallTarget the call expression under cursor.
type CallTarget struct {
	// TypeName fully-qualified name of the named type the call returns
	TypeName string
	// CallOffset where the call expression starts
	CallOffset int
	// InsertOffset right after the call expression
	InsertOffset int
	// LineIndent leading blanks of the line the call starts on
	LineIndent string
	// PkgPath of the package the document belongs to
	PkgPath string
}

// SourceModel answers source queries against a snapshot.
type SourceModel interface {
	// ResolveCallTarget resolves the nearest call enclosing offset.
	ResolveCallTarget(ctx context.Context, snapshot document.Snapshot, offset int) (*CallTarget, error)
	// FieldsOf returns declared fields of typeRef in declaration order.
	FieldsOf(ctx context.Context, typeRef string) ([]FieldDescriptor, error)
	// IsBuilderType reports whether typeRef should be offered the generation.
	IsBuilderType(ctx context.Context, typeRef string) bool
}

// PackageNamer resolves declared package names, optional for SourceModel.
type PackageNamer interface {
	PackageName(pkgPath string) string
}
