package types

import (
	"go/ast"
	"go/types"
	"strings"

	"github.com/pkg/errors"
)

type TypeName interface {
	Pkg() *types.Package
	Name() string
	String() string
	Exported() bool
}

var _ TypeName = &types.TypeName{}

func Ref(pkgPath string, name string) TypeName {
	return &ref{pkgPath: pkgPath, name: name}
}

// ParseRef splits fully-qualified named type like `github.com/x/geo.List[string]`
// into package path and name. Type arguments stay with the name.
func ParseRef(ref string) (TypeName, error) {
	base := ref
	if i := strings.Index(ref, "["); i > 0 {
		base = base[0:i]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		if strings.ContainsAny(base[0:i], "*[]{}() ") {
			return nil, errors.Errorf("unsupported ref: %s", ref)
		}
		return Ref(ref[0:i], ref[i+1:]), nil
	}
	return nil, errors.Errorf("unsupported ref: %s", ref)
}

// BaseName drops type arguments of name.
func BaseName(name string) string {
	if i := strings.Index(name, "["); i > 0 {
		return name[0:i]
	}
	return name
}

type ref struct {
	pkgPath string
	name    string
}

func (ref) Underlying() types.Type {
	return nil
}

func (r *ref) String() string {
	return r.pkgPath + "." + r.name
}

func (r *ref) Pkg() *types.Package {
	return types.NewPackage(r.pkgPath, "")
}

func (r *ref) Name() string {
	return r.name
}

func (r *ref) Exported() bool {
	return ast.IsExported(BaseName(r.name))
}
