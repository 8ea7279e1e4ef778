package builder

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/octohelm/buildergen/pkg/document"
)

type fakeModel struct {
	targets  map[int]*CallTarget
	fields   map[string][]FieldDescriptor
	builders map[string]bool
	calls    int
}

func (m *fakeModel) ResolveCallTarget(ctx context.Context, snapshot document.Snapshot, offset int) (*CallTarget, error) {
	for at, target := range m.targets {
		if offset >= at && offset <= target.InsertOffset {
			t := *target
			return &t, nil
		}
	}
	return nil, errors.Errorf("no call at %d", offset)
}

func (m *fakeModel) FieldsOf(ctx context.Context, typeRef string) ([]FieldDescriptor, error) {
	m.calls++
	fields, ok := m.fields[typeRef]
	if !ok {
		return nil, errors.Errorf("unknown type %s", typeRef)
	}
	return fields, nil
}

func (m *fakeModel) IsBuilderType(ctx context.Context, typeRef string) bool {
	return m.builders[typeRef]
}

const geoPkg = "example.com/geo"

// offsets below are computed against this layout
func usageSource(call string) string {
	return "package geo\n\nfunc usage() {\n\t_ = " + call + "\n}\n"
}

const callOffset = len("package geo\n\nfunc usage() {\n\t_ = ")

func newGeoModel() *fakeModel {
	return &fakeModel{
		targets: map[int]*CallTarget{},
		fields: map[string][]FieldDescriptor{
			geoPkg + ".PointBuilder": {
				{Name: "x", Type: "int"},
				{Name: "y", Type: "int"},
			},
			geoPkg + ".MarkerBuilder": {
				{Name: "label", Type: "string"},
				{Name: "at", Type: "time.Time"},
				{Name: "unit", Type: geoPkg + "/unit.Unit"},
			},
			geoPkg + ".Shape": {},
		},
		builders: map[string]bool{
			geoPkg + ".PointBuilder":  true,
			geoPkg + ".MarkerBuilder": true,
			geoPkg + ".Shape":         true,
		},
	}
}

func (m *fakeModel) withCall(call string, typeName string) *fakeModel {
	m.targets[callOffset] = &CallTarget{
		TypeName:     typeName,
		CallOffset:   callOffset,
		InsertOffset: callOffset + len(call),
		LineIndent:   "\t",
		PkgPath:      geoPkg,
	}
	return m
}

func lines(l ...string) string {
	return strings.Join(l, "\n")
}
