package gomodel

import (
	"bytes"
	"context"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-courier/logr"
	"github.com/pkg/errors"
	"golang.org/x/tools/go/ast/astutil"

	"github.com/octohelm/buildergen/pkg/builder"
	"github.com/octohelm/buildergen/pkg/document"
	gengotypes "github.com/octohelm/buildergen/pkg/types"
)

const (
	DefaultSuffix = "Builder"
	// TagName of doc comment tag to mark type as builder, `+buildergen`, or not, `+buildergen=false`
	TagName = "buildergen"
)

type Option func(m *Model)

// WithSuffixes sets type name suffixes of builder types.
func WithSuffixes(suffixes ...string) Option {
	return func(m *Model) {
		m.suffixes = suffixes
	}
}

// WithBuildMethod sets the method a suffixed type must declare to be a builder, matched case-insensitively.
// Empty name skips the check.
func WithBuildMethod(name string) Option {
	return func(m *Model) {
		m.buildMethod = name
	}
}

// WithDir sets the dir go list runs in, the dir of the file by default.
// LoadPackage resolves pkgPath from dir.
func WithDir(dir string) Option {
	return func(m *Model) {
		m.dir = dir
	}
}

// Load type-checks the package containing filename.
// When content is not nil, it overlays the file on disk.
func Load(ctx context.Context, filename string, content []byte, opts ...Option) (*Model, error) {
	filename, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}

	m := newModel(opts...)
	m.filename = filename

	if m.dir == "" {
		m.dir = filepath.Dir(filename)
	}

	loadOpts := gengotypes.LoadOptions{Dir: m.dir}

	if content != nil {
		loadOpts.Overlay = map[string][]byte{filename: content}
		m.content = bytes.Clone(content)
	} else {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		m.content = data
	}

	if err := m.load(ctx, "file="+filename, loadOpts); err != nil {
		return nil, err
	}

	m.pkg = m.u.PackageOfFile(filename)
	if m.pkg == nil {
		return nil, errors.Errorf("no package compiles %s", filename)
	}

	return m, nil
}

// LoadPackage type-checks package pkgPath without any document,
// for type queries only.
func LoadPackage(ctx context.Context, pkgPath string, opts ...Option) (*Model, error) {
	m := newModel(opts...)

	if err := m.load(ctx, pkgPath, gengotypes.LoadOptions{Dir: m.dir}); err != nil {
		return nil, err
	}

	m.pkg = m.u.Package(pkgPath)
	if m.pkg == nil {
		return nil, errors.Errorf("package %s not loaded", pkgPath)
	}

	return m, nil
}

func newModel(opts ...Option) *Model {
	m := &Model{
		suffixes:    []string{DefaultSuffix},
		buildMethod: builder.DefaultBuildMethod,
		named:    map[string]*types.Named{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Model) load(ctx context.Context, pattern string, opts gengotypes.LoadOptions) error {
	ctx, l := logr.FromContext(ctx).Start(ctx, "LoadModel", slog.String("target", pattern))
	defer l.End()

	u, _, err := gengotypes.Load(ctx, []string{pattern}, opts)
	if err != nil {
		return err
	}

	m.u = u

	return nil
}

// Model answers source queries for one file from go/packages type information.
type Model struct {
	filename    string
	dir         string
	suffixes    []string
	buildMethod string

	u       *gengotypes.Universe
	pkg     gengotypes.Package
	content []byte

	mu    sync.Mutex
	named map[string]*types.Named
}

var (
	_ builder.SourceModel  = &Model{}
	_ builder.PackageNamer = &Model{}
)

func (m *Model) Filename() string {
	return m.filename
}

// PackagePath of the package the file belongs to.
func (m *Model) PackagePath() string {
	return m.pkg.Pkg().Path()
}

func (m *Model) PackageName(pkgPath string) string {
	if p := m.u.Package(pkgPath); p != nil && p.Pkg() != nil {
		return p.Pkg().Name()
	}
	return ""
}

func (m *Model) ResolveCallTarget(ctx context.Context, snapshot document.Snapshot, offset int) (*builder.CallTarget, error) {
	if m.filename == "" {
		return nil, errors.New("no document loaded")
	}

	if !bytes.Equal(snapshot.Content, m.content) {
		return nil, errors.Errorf("%s changed since loaded", m.filename)
	}

	f := m.pkg.File(m.filename)
	if f == nil {
		return nil, errors.Errorf("%s not parsed", m.filename)
	}

	tf := m.pkg.FileSet().File(f.Pos())
	if offset < 0 || offset > tf.Size() {
		return nil, errors.Errorf("offset %d out of file", offset)
	}

	pos := tf.Pos(offset)

	call := enclosingCall(f, pos)
	if call == nil {
		return nil, errors.Errorf("no call expression at %s", tf.Position(pos))
	}

	if tv, ok := m.pkg.TypeAndValueOf(call.Fun); ok && (tv.IsType() || tv.IsBuiltin()) {
		return nil, errors.Errorf("%s is not a function call", tf.Position(call.Pos()))
	}

	tv, ok := m.pkg.TypeAndValueOf(call)
	if !ok || tv.Type == nil {
		return nil, errors.Errorf("type of call at %s unresolved", tf.Position(call.Pos()))
	}

	named, err := namedOf(tv.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "call at %s", tf.Position(call.Pos()))
	}

	typeName := types.TypeString(named, nil)

	m.mu.Lock()
	m.named[typeName] = named
	m.mu.Unlock()

	callOffset := tf.Offset(call.Pos())

	return &builder.CallTarget{
		TypeName:     typeName,
		CallOffset:   callOffset,
		InsertOffset: tf.Offset(call.End()),
		LineIndent:   LineIndent(m.content, callOffset),
		PkgPath:      m.PackagePath(),
	}, nil
}

func (m *Model) FieldsOf(ctx context.Context, typeRef string) ([]builder.FieldDescriptor, error) {
	named, err := m.lookup(typeRef)
	if err != nil {
		return nil, err
	}

	s, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, errors.Errorf("%s is not a struct", typeRef)
	}

	fields := make([]builder.FieldDescriptor, 0, s.NumFields())

	for i := 0; i < s.NumFields(); i++ {
		f := s.Field(i)
		if f.Name() == "_" {
			continue
		}
		fields = append(fields, builder.FieldDescriptor{
			Name: f.Name(),
			Type: types.TypeString(f.Type(), nil),
		})
	}

	return fields, nil
}

// IsBuilderType reports true for struct types marked by `+buildergen`,
// or named with one of suffixes and not marked by `+buildergen=false`.
// IsBuilderType reports whether typeRef names a struct built by chained calls.
// The doc tag `+buildergen` decides when declared.
// Otherwise the type name must end with one of the suffixes, and the type must declare the build method.
func (m *Model) IsBuilderType(ctx context.Context, typeRef string) bool {
	named, err := m.lookup(typeRef)
	if err != nil {
		return false
	}

	if _, ok := named.Underlying().(*types.Struct); !ok {
		return false
	}

	obj := named.Obj()

	p := m.u.Package(obj.Pkg().Path())
	if p == nil {
		return false
	}

	tags, _ := p.Doc(obj.Pos())
	if on, declared := tags.Flag(TagName); declared {
		return on
	}

	for _, suffix := range m.suffixes {
		if suffix != "" && strings.HasSuffix(obj.Name(), suffix) {
			return m.hasBuildMethod(p, named)
		}
	}

	return false
}

func (m *Model) hasBuildMethod(p gengotypes.Package, named *types.Named) bool {
	if m.buildMethod == "" {
		return true
	}
	for _, fn := range p.MethodsOf(named, true) {
		if strings.EqualFold(fn.Name(), m.buildMethod) {
			return true
		}
	}
	return false
}

func (m *Model) lookup(typeRef string) (*types.Named, error) {
	m.mu.Lock()
	named, ok := m.named[typeRef]
	m.mu.Unlock()

	if ok {
		return named, nil
	}

	ref, err := gengotypes.ParseRef(typeRef)
	if err != nil {
		return nil, err
	}

	p := m.u.Package(ref.Pkg().Path())
	if p == nil {
		return nil, errors.Errorf("package %s not loaded", ref.Pkg().Path())
	}

	tn := p.Type(gengotypes.BaseName(ref.Name()))
	if tn == nil {
		return nil, errors.Errorf("type %s not found", typeRef)
	}

	return namedOf(tn.Type())
}

func namedOf(t types.Type) (*types.Named, error) {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		t = ptr.Elem()
	}

	switch x := types.Unalias(t).(type) {
	case *types.Named:
		if x.Obj().Pkg() == nil {
			return nil, errors.Errorf("universe type %s", x)
		}
		return x, nil
	case *types.Tuple:
		return nil, errors.Errorf("%d results returned", x.Len())
	default:
		return nil, errors.Errorf("unnamed type %s", t)
	}
}

func enclosingCall(f *ast.File, pos token.Pos) *ast.CallExpr {
	path, _ := astutil.PathEnclosingInterval(f, pos, pos)
	for _, n := range path {
		if call, ok := n.(*ast.CallExpr); ok {
			return call
		}
	}
	return nil
}

// LineIndent returns leading blanks of the line at offset.
func LineIndent(content []byte, offset int) string {
	start := bytes.LastIndexByte(content[:offset], '\n') + 1

	end := start
	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}

	return string(content[start:end])
}

// Offset converts 1-based line and column (in bytes) to offset of content.
func Offset(content []byte, line int, col int) (int, error) {
	if line < 1 || col < 1 {
		return -1, errors.Errorf("invalid position %d:%d", line, col)
	}

	offset := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(content[offset:], '\n')
		if i < 0 {
			return -1, errors.Errorf("line %d out of file", line)
		}
		offset += i + 1
	}

	lineEnd := len(content)
	if i := bytes.IndexByte(content[offset:], '\n'); i >= 0 {
		lineEnd = offset + i
	}

	if offset+col-1 > lineEnd {
		return -1, errors.Errorf("column %d out of line %d", col, line)
	}

	return offset + col - 1, nil
}
