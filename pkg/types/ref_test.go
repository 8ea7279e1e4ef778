package types

import (
	"reflect"
	"testing"

	testingx "github.com/octohelm/x/testing"
)

type List[T any] struct {
	Items []T `json:"items"`
}

func TestRef(t *testing.T) {
	tpe := reflect.TypeOf(List[string]{})

	ref, _ := ParseRef(Ref(tpe.PkgPath(), tpe.Name()).String())
	testingx.Expect(t, ref.Pkg().Path(), testingx.Be("github.com/octohelm/buildergen/pkg/types"))
	testingx.Expect(t, ref.Name(), testingx.Be("List[string]"))
	testingx.Expect(t, BaseName(ref.Name()), testingx.Be("List"))
	testingx.Expect(t, ref.Exported(), testingx.Be(true))

	t.Run("versioned path", func(t *testing.T) {
		ref, err := ParseRef("gopkg.in/yaml.v3.Node")
		testingx.Expect(t, err, testingx.BeNil[error]())
		testingx.Expect(t, ref.Pkg().Path(), testingx.Be("gopkg.in/yaml.v3"))
		testingx.Expect(t, ref.Name(), testingx.Be("Node"))
	})

	t.Run("unnamed", func(t *testing.T) {
		for _, s := range []string{"int", "[]github.com/x/geo.Point", "*github.com/x/geo.Point", "map[string]time.Time"} {
			_, err := ParseRef(s)
			testingx.Expect(t, err == nil, testingx.Be(false))
		}
	})
}
