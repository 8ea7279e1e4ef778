package document

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"

	"github.com/pkg/errors"

	"github.com/octohelm/buildergen/pkg/namer"
)

// MergeImports adds imports (import path to local name) into the import section of go source src.
// Paths already imported under the same local name, the path of the package itself and empty paths are skipped.
// A path imported under another name is imported again, named.
// A local name bound to another path fails.
// New specs are sorted by path, and named only when the local name differs from the path default.
// Existing text is never reformatted.
func MergeImports(filename string, src []byte, pkgPath string, imports map[string]string) ([]byte, error) {
	pending := map[string]string{}

	for path, name := range imports {
		if path == "" || path == pkgPath || path == "C" {
			continue
		}
		pending[path] = name
	}

	if len(pending) == 0 {
		return src, nil
	}

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src, parser.ImportsOnly|parser.ParseComments)
	if err != nil {
		return nil, errors.Wrap(err, "parse import section")
	}

	// local name to import path, of names the file already binds
	bound := map[string]string{}

	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		if name := localNameOf(spec, p); name != "" {
			bound[name] = p
		}
	}

	for _, path := range namer.SortedPaths(pending) {
		name := pending[path]
		if name == "" {
			name = namer.DefaultPackageName(path)
		}

		if p, ok := bound[name]; ok {
			if p == path {
				delete(pending, path)
				continue
			}
			return nil, errors.Errorf("local name %s of %s already used by %s", name, path, p)
		}

		bound[name] = path
	}

	if len(pending) == 0 {
		return src, nil
	}

	specs := make([]string, 0, len(pending))
	for _, path := range namer.SortedPaths(pending) {
		specs = append(specs, importSpec(path, pending[path]))
	}

	offsetOf := func(pos token.Pos) int {
		return fset.Position(pos).Offset
	}

	var grouped, single *ast.GenDecl

	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.IMPORT {
			continue
		}
		if isImportC(gd) {
			continue
		}
		if gd.Lparen.IsValid() {
			grouped = gd
		} else {
			single = gd
		}
	}

	b := &bytes.Buffer{}

	switch {
	case grouped != nil:
		at := offsetOf(grouped.Rparen)

		if !startsLine(src, at) {
			b.WriteString("\n")
		}
		for _, s := range specs {
			b.WriteString("\t")
			b.WriteString(s)
			b.WriteString("\n")
		}

		return splice(src, at, b.Bytes()), nil
	case single != nil:
		at := offsetOf(single.End())

		for _, s := range specs {
			b.WriteString("\nimport ")
			b.WriteString(s)
		}

		return splice(src, at, b.Bytes()), nil
	default:
		at := offsetOf(f.Name.End())
		if i := bytes.IndexByte(src[at:], '\n'); i >= 0 {
			at += i
		} else {
			at = len(src)
		}

		b.WriteString("\n\nimport ")

		if len(specs) == 1 {
			b.WriteString(specs[0])
		} else {
			b.WriteString("(\n")
			for _, s := range specs {
				b.WriteString("\t")
				b.WriteString(s)
				b.WriteString("\n")
			}
			b.WriteString(")")
		}

		return splice(src, at, b.Bytes()), nil
	}
}

func importSpec(path string, name string) string {
	if name == "" || name == namer.DefaultPackageName(path) {
		return strconv.Quote(path)
	}
	return name + " " + strconv.Quote(path)
}

// localNameOf the name spec binds in file scope, empty for blank and dot imports.
func localNameOf(spec *ast.ImportSpec, path string) string {
	if spec.Name != nil {
		switch spec.Name.Name {
		case "_", ".":
			return ""
		}
		return spec.Name.Name
	}
	return namer.DefaultPackageName(path)
}

func isImportC(gd *ast.GenDecl) bool {
	if len(gd.Specs) != 1 {
		return false
	}
	spec, ok := gd.Specs[0].(*ast.ImportSpec)
	return ok && spec.Path.Value == `"C"`
}

// startsLine reports whether only blanks are between the previous newline and at.
func startsLine(src []byte, at int) bool {
	for i := at - 1; i >= 0; i-- {
		switch src[i] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func splice(src []byte, at int, text []byte) []byte {
	out := make([]byte, 0, len(src)+len(text))
	out = append(out, src[:at]...)
	out = append(out, text...)
	out = append(out, src[at:]...)
	return out
}
