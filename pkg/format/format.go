package format

import (
	"bytes"
	"cmp"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/ast/astutil"
	"mvdan.cc/gofumpt/format"

	"github.com/octohelm/buildergen/pkg/format/internal"
)

func OptionsFromModFile(file *modfile.File) Options {
	o := Options{}
	o.LocalGroupPrefix = file.Module.Mod.Path

	for _, stmt := range file.Syntax.Stmt {
		switch x := stmt.(type) {
		case *modfile.LineBlock:
			for _, line := range x.Line {
				line.Comments.Before = slices.Concat(x.Before, line.Comments.Before)
			}
		}
	}

	for _, r := range file.Require {
		if ig, ok := importGroup(r.Syntax.Comments.Before); ok {
			if o.ImportGroups == nil {
				o.ImportGroups = map[string]*ImportGroup{}
			}
			i, ok := o.ImportGroups[ig]
			if !ok {
				i = &ImportGroup{}
				o.ImportGroups[ig] = i
			}
			i.Prefixes = append(i.Prefixes, r.Mod.Path)
		}
	}

	return o
}

// importGroupDirective in comments of require blocks of go.mod, like
//
//	// +buildergen:import:group=0_controlled
//	require (
//		x.io/a v0.1.0
//	)
const importGroupDirective = "+buildergen:import:group="

func importGroup(comments []modfile.Comment) (string, bool) {
	for _, comment := range comments {
		if i := strings.Index(comment.Token, importGroupDirective); i > 0 {
			return strings.TrimSpace(comment.Token[i+len(importGroupDirective):]), true
		}
	}
	return "", false
}

type Options struct {
	LocalGroupPrefix string
	ImportGroups     map[string]*ImportGroup
}

type ImportGroup struct {
	Prefixes []string
}

func (g *ImportGroup) Match(path string) bool {
	for _, p := range g.Prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// OptionsForDir derives Options from the go.mod dir belongs to.
func OptionsForDir(dir string) Options {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Options{}
	}
	if m := internal.LoadModule(dir); m != nil {
		return OptionsFromModFile(m.File)
	}
	return Options{}
}

// File formats src of filename with Options of the module it belongs to.
// It matches the Formatter of document.
func File(filename string, src []byte) ([]byte, error) {
	return Source(src, OptionsForDir(filepath.Dir(filename)))
}

// Source groups and sorts imports of src, then formats with gofumpt.
//
// Groups in order are std, other vendors, ImportGroups by name and the local module.
// Blank imports form a second import decl with the same grouping, `import "C"` stays where it is.
func Source(src []byte, opt Options) ([]byte, error) {
	fset := token.NewFileSet()
	// keeps real files from starting at pos 1, which printer treats as no position
	fset.AddFile("base.fake.go", 1, 10)

	file, err := parser.ParseFile(fset, "", src, parser.AllErrors|parser.ParseComments)
	if err != nil {
		return nil, err
	}

	regular, blank := detachImports(file)

	r := opt.ranker()

	decls := make([]ast.Decl, 0, 2)
	for _, specs := range [][]*ast.ImportSpec{regular, blank} {
		if decl := r.importDecl(specs); decl != nil {
			decls = append(decls, decl)
		}
	}
	file.Decls = slices.Concat(decls, file.Decls)

	buf := bytes.NewBuffer(nil)
	if err := printer.Fprint(buf, fset, file); err != nil {
		return nil, err
	}

	return format.Source(buf.Bytes(), format.Options{})
}

func isImportC(spec *ast.ImportSpec) bool {
	return spec.Path.Value == `"C"`
}

// detachImports removes import specs except `import "C"` from file,
// returns them split into regular and blank imports.
func detachImports(file *ast.File) (regular []*ast.ImportSpec, blank []*ast.ImportSpec) {
	for _, spec := range file.Imports {
		switch {
		case isImportC(spec):
		case spec.Name != nil && spec.Name.Name == "_":
			blank = append(blank, spec)
		default:
			regular = append(regular, spec)
		}
	}

	astutil.Apply(file, func(c *astutil.Cursor) bool {
		spec, ok := c.Node().(*ast.ImportSpec)
		if !ok {
			return true
		}
		if !isImportC(spec) {
			c.Delete()
		}
		return false
	}, nil)

	return regular, blank
}

// ranker orders import paths into groups
type ranker struct {
	local  string
	groups []*ImportGroup
}

func (o Options) ranker() *ranker {
	r := &ranker{local: o.LocalGroupPrefix}
	for _, name := range slices.Sorted(maps.Keys(o.ImportGroups)) {
		r.groups = append(r.groups, o.ImportGroups[name])
	}
	return r
}

func (r *ranker) rank(path string) int {
	if r.local != "" && strings.HasPrefix(path, r.local) {
		return 2 + len(r.groups)
	}
	for i, g := range r.groups {
		if g.Match(path) {
			return 2 + i
		}
	}
	if strings.Contains(path, ".") {
		return 1
	}
	return 0
}

// importDecl builds one import decl of specs sorted by group then path,
// with a blank line between groups.
func (r *ranker) importDecl(specs []*ast.ImportSpec) *ast.GenDecl {
	if len(specs) == 0 {
		return nil
	}

	type ranked struct {
		rank int
		path string
		spec *ast.ImportSpec
	}

	list := make([]ranked, 0, len(specs))
	for _, spec := range specs {
		path, _ := strconv.Unquote(spec.Path.Value)
		list = append(list, ranked{rank: r.rank(path), path: path, spec: spec})
	}

	slices.SortStableFunc(list, func(a, b ranked) int {
		if c := cmp.Compare(a.rank, b.rank); c != 0 {
			return c
		}
		return cmp.Compare(a.path, b.path)
	})

	decl := &ast.GenDecl{
		Tok:    token.IMPORT,
		Lparen: 1,
		Rparen: 1,
	}

	for i, item := range list {
		// positions dropped, printer lays specs out from scratch
		spec := &ast.ImportSpec{
			Path: &ast.BasicLit{Kind: token.STRING, Value: item.spec.Path.Value},
		}
		if item.spec.Name != nil {
			spec.Name = ast.NewIdent(item.spec.Name.Name)
		}

		if i > 0 && list[i-1].rank != item.rank {
			// newlines in the literal become the blank line between groups
			if spec.Name != nil {
				spec.Name.Name = "\n\n" + spec.Name.Name
			} else {
				spec.Path.Value = "\n\n" + spec.Path.Value
			}
		}

		decl.Specs = append(decl.Specs, spec)
	}

	return decl
}
