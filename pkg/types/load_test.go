package types

import (
	"context"
	"go/types"
	"testing"

	testingx "github.com/octohelm/x/testing"
)

const geoPkgPath = "github.com/octohelm/buildergen/testdata/geo"

func TestLoad(t *testing.T) {
	u, roots, err := Load(context.Background(), []string{geoPkgPath}, LoadOptions{})

	testingx.Expect(t, err, testingx.Be[error](nil))
	testingx.Expect(t, roots, testingx.Equal([]string{geoPkgPath}))

	p := u.Package(geoPkgPath)

	t.Run("Deps", func(t *testing.T) {
		testingx.Expect(t, u.Package(geoPkgPath+"/unit") != nil, testingx.Be(true))
		testingx.Expect(t, u.Package("time") != nil, testingx.Be(true))
	})

	t.Run("Comments", func(t *testing.T) {
		t.Run("Struct", func(t *testing.T) {
			tpe := p.Type("PointBuilder")
			_, lines := p.Doc(tpe.Pos())
			testingx.Expect(t, lines, testingx.Equal([]string{
				"PointBuilder",
			}))
		})

		t.Run("Tags", func(t *testing.T) {
			tags, _ := p.Doc(p.Type("Shape").Pos())
			_, ok := tags["buildergen"]
			testingx.Expect(t, ok, testingx.Be(true))

			tags, _ = p.Doc(p.Type("LegacyBuilder").Pos())
			testingx.Expect(t, tags["buildergen"], testingx.Equal([]string{"false"}))
		})

		t.Run("Field", func(t *testing.T) {
			s := p.Type("MarkerBuilder").Type().(*types.Named).Underlying().(*types.Struct)

			for i := 0; i < s.NumFields(); i++ {
				f := s.Field(i)

				if f.Name() == "label" {
					_, lines := p.Doc(f.Pos())
					testingx.Expect(t, lines, testingx.Equal([]string{
						"Label shown on map",
					}))
				}

				if f.Name() == "tags" {
					_, lines := p.Doc(f.Pos())
					testingx.Expect(t, len(lines), testingx.Be(0))
				}
			}
		})
	})

	t.Run("MethodsOf", func(t *testing.T) {
		tpe := p.Type("PointBuilder")
		testingx.Expect(t, p.MethodsOf(tpe.Type().(*types.Named), true), testingx.HaveLen[[]*types.Func](3))
		testingx.Expect(t, p.MethodsOf(tpe.Type().(*types.Named), false), testingx.HaveLen[[]*types.Func](0))
	})

	t.Run("PackageOfFile", func(t *testing.T) {
		for _, f := range p.Files() {
			filename := p.FileSet().Position(f.Pos()).Filename
			testingx.Expect(t, u.PackageOfFile(filename).Pkg().Path(), testingx.Be(geoPkgPath))
		}
	})
}
