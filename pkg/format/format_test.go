package format_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/mod/modfile"

	testingx "github.com/octohelm/x/testing"
	"github.com/octohelm/x/testing/bdd"

	"github.com/octohelm/buildergen/pkg/format"
)

func TestOptionsFromModFile(t *testing.T) {
	f, _ := modfile.Parse("", []byte(`
module github.com/octohelm/buildergen

go 1.23

// +buildergen:import:group=1_internal
require github.com/octohelm/x v0.0.0-20251028032356-02d7b8d1c824

// +buildergen:import:group=0_controlled
require (
	x.io/geo v0.1.0
	x.io/unit v0.1.0
)
`), nil)

	testingx.Expect(t, format.OptionsFromModFile(f), testingx.Equal(format.Options{
		LocalGroupPrefix: "github.com/octohelm/buildergen",
		ImportGroups: map[string]*format.ImportGroup{
			"0_controlled": {
				Prefixes: []string{
					"x.io/geo",
					"x.io/unit",
				},
			},
			"1_internal": {
				Prefixes: []string{
					"github.com/octohelm/x",
				},
			},
		},
	}))
}

func TestOptionsForDir(t *testing.T) {
	testingx.Expect(t, format.OptionsForDir(".").LocalGroupPrefix, testingx.Be("github.com/octohelm/buildergen"))
}

func TestSource(t *testing.T) {
	bdd.FromT(t).When("format generated chain", func(b bdd.T) {
		got, err := format.Source([]byte(`
package geo

import (
	"github.com/octohelm/buildergen/testdata/geo/unit"
	"time"
)

func usage() {
	_ = NewMarkerBuilder().
			Label("").
			At(time.Time{}).
			Unit(unit.Unit{}).
			Build()
}
`), format.Options{
			LocalGroupPrefix: "github.com/octohelm/buildergen",
		})

		b.Then("imports grouped and chain re-indented",
			bdd.NoError(err),
			bdd.Equal(strings.TrimSpace(`
package geo

import (
	"time"

	"github.com/octohelm/buildergen/testdata/geo/unit"
)

func usage() {
	_ = NewMarkerBuilder().
		Label("").
		At(time.Time{}).
		Unit(unit.Unit{}).
		Build()
}
`), strings.TrimSpace(string(got))),
		)
	})
}

func TestSourceWithImportsOrdered(t *testing.T) {
	b := bdd.FromT(t)

	b.When("do format", func(b bdd.T) {
		got, err := format.Source([]byte(`
// pkg comment
package p

import (
	_ "embed"
	_ "x.io/a/pkg/side"
	_ "x.io/b/pkg/side"
	_ "x.io/c/pkg/side"
	z "x.io/c/pkg/z"
	"strings"
	"x.io/b/pkg/y"
	"x.io/a/pkg/x"
)

import "C"

// other comment
var (
	X = ""
)

func f() {
	_ = strings.TrimSpace("")
	_ = x.X()
	_ = y.Y()
	_ = z.Z()
}
`), format.Options{
			LocalGroupPrefix: "x.io/a",
			ImportGroups: map[string]*format.ImportGroup{
				"b": {
					Prefixes: []string{
						"x.io/b",
					},
				},
			},
		})

		b.Then("success",
			bdd.NoError(err),
			bdd.Equal(strings.TrimSpace(`
// pkg comment
package p

import (
	"strings"

	z "x.io/c/pkg/z"

	"x.io/b/pkg/y"

	"x.io/a/pkg/x"
)

import (
	_ "embed"

	_ "x.io/c/pkg/side"

	_ "x.io/b/pkg/side"

	_ "x.io/a/pkg/side"
)

import "C"

// other comment
var (
	X = ""
)

func f() {
	_ = strings.TrimSpace("")
	_ = x.X()
	_ = y.Y()
	_ = z.Z()
}
`), strings.TrimSpace(string(got))),
		)
	})
}

func TestProject(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"go.mod":           "module x.io/geo\n\ngo 1.23\n",
		"geo.go":           "package geo\n\nimport (\n\t\"x.io/geo/unit\"\n\t\"time\"\n)\n\nvar _ = [2]any{time.Time{}, unit.Unit{}}\n",
		"unit/unit.go":     "package unit\n\ntype Unit struct{}\n",
		"testdata/skip.go": "package   skip\n",
	}

	for name, content := range files {
		filename := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("list", func(t *testing.T) {
		stdout := bytes.NewBuffer(nil)

		err := (&format.Project{Entrypoint: []string{"."}, List: true, Stdout: stdout, Cwd: dir}).Run(context.Background())
		testingx.Expect(t, err, testingx.BeNil[error]())
		testingx.Expect(t, stdout.String(), testingx.Be("geo.go\n"))
	})

	t.Run("write", func(t *testing.T) {
		err := (&format.Project{Entrypoint: []string{dir}, Write: true, Cwd: dir}).Run(context.Background())
		testingx.Expect(t, err, testingx.BeNil[error]())

		data, _ := os.ReadFile(filepath.Join(dir, "geo.go"))
		testingx.Expect(t, string(data), testingx.Be("package geo\n\nimport (\n\t\"time\"\n\n\t\"x.io/geo/unit\"\n)\n\nvar _ = [2]any{time.Time{}, unit.Unit{}}\n"))

		skipped, _ := os.ReadFile(filepath.Join(dir, "testdata/skip.go"))
		testingx.Expect(t, string(skipped), testingx.Be("package   skip\n"))
	})
}
