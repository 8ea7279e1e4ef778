package types

import (
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

type Package interface {
	// Pkg of go package
	Pkg() *types.Package
	// FileSet return file set when load
	FileSet() *token.FileSet
	// Files ast files of package
	Files() []*ast.File
	// File ast file by absolute filename
	File(filename string) *ast.File
	// Doc comment tags and leading comments for pos
	Doc(pos token.Pos) (Tags, []string)
	// Type get type by name
	Type(name string) *types.TypeName
	// MethodsOf get methods of named type, pointer receivers included when ptr
	MethodsOf(n *types.Named, ptr bool) []*types.Func
	// TypeAndValueOf recorded type info of expr
	TypeAndValueOf(expr ast.Expr) (types.TypeAndValue, bool)
}

func newPkg(pkg *packages.Package, u *Universe) Package {
	p := &pkgInfo{
		u:       u,
		Package: pkg,

		types:   make(map[string]*types.TypeName),
		methods: make(map[*types.Named][]*types.Func),

		files: make(map[string]*ast.File),

		docs: make(map[fileLine]*ast.CommentGroup),
	}

	if pkg.TypesInfo == nil {
		return p
	}

	fileLineFor := func(pos token.Pos, deltaLine int) fileLine {
		position := p.Package.Fset.Position(pos)
		return fileLine{position.Filename, position.Line + deltaLine}
	}

	// doc of node is keyed by the line before node
	collectDoc := func(c *ast.CommentGroup, pos token.Pos) {
		fl := fileLineFor(pos, -1)

		if c != nil && c.Pos() == pos {
			// node is the comment group itself
			fl = fileLineFor(c.End(), 0)
		}

		if cc := p.docs[fl]; cc == nil {
			p.docs[fl] = c
		}
	}

	for ident := range p.Package.TypesInfo.Defs {
		switch x := p.Package.TypesInfo.Defs[ident].(type) {
		case *types.Func:
			s := x.Type().(*types.Signature)

			if r := s.Recv(); r != nil {
				var named *types.Named

				switch t := r.Type().(type) {
				case *types.Pointer:
					if n, ok := t.Elem().(*types.Named); ok {
						named = n
					}
				case *types.Named:
					named = t
				}

				if named != nil {
					p.methods[named.Origin()] = append(p.methods[named.Origin()], x)
				}
			}
		case *types.TypeName:
			// skip type params and locally declared types
			if x.Parent() == pkg.Types.Scope() {
				p.types[x.Name()] = x
			}
		}
	}

	for i := range p.Package.Syntax {
		f := p.Package.Syntax[i]

		if tf := p.Package.Fset.File(f.Pos()); tf != nil {
			p.files[filepath.Clean(tf.Name())] = f
		}

		ast.Inspect(f, func(node ast.Node) bool {
			switch x := node.(type) {
			case *ast.CommentGroup:
				collectDoc(x, x.Pos())
			case *ast.TypeSpec:
				collectDoc(x.Doc, x.Pos())
			case *ast.Field:
				collectDoc(x.Doc, x.Pos())
			}
			return true
		})
	}

	return p
}

type pkgInfo struct {
	u       *Universe
	Package *packages.Package

	types   map[string]*types.TypeName
	methods map[*types.Named][]*types.Func
	files   map[string]*ast.File

	docs map[fileLine]*ast.CommentGroup
}

func (pi *pkgInfo) FileSet() *token.FileSet {
	return pi.u.fset
}

func (pi *pkgInfo) Pkg() *types.Package {
	return pi.Package.Types
}

func (pi *pkgInfo) TypeAndValueOf(expr ast.Expr) (types.TypeAndValue, bool) {
	if pi.Package.TypesInfo == nil {
		return types.TypeAndValue{}, false
	}
	tv, ok := pi.Package.TypesInfo.Types[expr]
	return tv, ok
}

func (pi *pkgInfo) Files() []*ast.File {
	return pi.Package.Syntax
}

func (pi *pkgInfo) File(filename string) *ast.File {
	return pi.files[filepath.Clean(filename)]
}

func (pi *pkgInfo) Type(n string) *types.TypeName {
	return pi.types[n]
}

func (pi *pkgInfo) MethodsOf(n *types.Named, ptr bool) []*types.Func {
	funcs := pi.methods[n.Origin()]

	if ptr {
		return funcs
	}

	valueMethods := make([]*types.Func, 0)

	for i := range funcs {
		s := funcs[i].Type().(*types.Signature)

		if _, ok := s.Recv().Type().(*types.Pointer); !ok {
			valueMethods = append(valueMethods, funcs[i])
		}
	}

	return valueMethods
}

func (pi *pkgInfo) Doc(pos token.Pos) (Tags, []string) {
	position := pi.Package.Fset.Position(pos)
	return ParseDoc(commentLinesFrom(pi.docs[fileLine{position.Filename, position.Line - 1}]))
}

type fileLine struct {
	file string
	line int
}

func commentLinesFrom(commentGroups ...*ast.CommentGroup) (comments []string) {
	for _, commentGroup := range commentGroups {
		if commentGroup == nil {
			continue
		}

		for _, line := range strings.Split(strings.TrimSpace(commentGroup.Text()), "\n") {
			// skip go: prefix
			if strings.HasPrefix(line, "go:") {
				continue
			}
			comments = append(comments, line)
		}
	}
	return comments
}
