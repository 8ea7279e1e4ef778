package types

import (
	"context"
	"go/token"

	"github.com/go-courier/logr"
	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"
)

const (
	LoadFiles     = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles
	LoadImports   = LoadFiles | packages.NeedImports
	LoadTypes     = LoadImports | packages.NeedTypes | packages.NeedTypesSizes
	LoadSyntax    = LoadTypes | packages.NeedSyntax | packages.NeedTypesInfo
	LoadAllSyntax = LoadSyntax | packages.NeedDeps | packages.NeedModule
)

type LoadOptions struct {
	// Dir working dir of go list, empty means current dir
	Dir string
	// Overlay maps absolute file paths to unsaved contents
	Overlay map[string][]byte
}

// Load loads packages matched by patterns, with all deps registered into the returned Universe.
// Patterns follow go list, so `file=/abs/path.go` loads the package containing the file.
func Load(ctx context.Context, patterns []string, opts LoadOptions) (*Universe, []string, error) {
	fset := token.NewFileSet()

	c := &packages.Config{
		Context: ctx,
		Fset:    fset,
		Mode:    LoadAllSyntax,
		Dir:     opts.Dir,
		Overlay: opts.Overlay,
		Tests:   false,
	}

	pkgs, err := packages.Load(c, patterns...)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "load %v failed", patterns)
	}

	u := &Universe{
		fset: fset,
		pkgs: map[string]Package{},
	}

	l := logr.FromContext(ctx)

	var register func(p *packages.Package)
	register = func(p *packages.Package) {
		for i := range p.Errors {
			e := p.Errors[i]
			l.Warn(errors.Errorf("%s: %s", e.Pos, e.Msg))
		}

		u.pkgs[p.PkgPath] = nil

		for k := range p.Imports {
			importedPkg := p.Imports[k]

			if _, ok := u.pkgs[importedPkg.PkgPath]; !ok {
				register(importedPkg)
			}
		}

		u.pkgs[p.PkgPath] = newPkg(p, u)
	}

	roots := make([]string, 0, len(pkgs))

	for i := range pkgs {
		p := pkgs[i]

		for _, e := range p.Errors {
			if e.Kind == packages.ListError {
				return nil, nil, e
			}
		}

		if p.Types == nil {
			return nil, nil, errors.Errorf("no types loaded for %s", p.ID)
		}

		roots = append(roots, p.PkgPath)
	}

	for i := range pkgs {
		if _, ok := u.pkgs[pkgs[i].PkgPath]; !ok {
			register(pkgs[i])
		}
	}

	return u, roots, nil
}

type Universe struct {
	fset *token.FileSet
	pkgs map[string]Package
}

func (u *Universe) FileSet() *token.FileSet {
	return u.fset
}

func (u *Universe) Package(pkgPath string) Package {
	v := u.pkgs[pkgPath]
	return v
}

// PackageOfFile returns the loaded package which compiles the file.
func (u *Universe) PackageOfFile(filename string) Package {
	for _, p := range u.pkgs {
		if p == nil {
			continue
		}
		if p.File(filename) != nil {
			return p
		}
	}
	return nil
}
