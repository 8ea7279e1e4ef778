// Package geo
package geo

import (
	"time"

	"github.com/octohelm/buildergen/testdata/geo/unit"
)

type Point struct {
	X int
	Y int
}

// PointBuilder
type PointBuilder struct {
	x int
	y int
}

func NewPointBuilder() *PointBuilder {
	return &PointBuilder{}
}

func (b *PointBuilder) X(v int) *PointBuilder {
	b.x = v
	return b
}

func (b *PointBuilder) Y(v int) *PointBuilder {
	b.y = v
	return b
}

func (b *PointBuilder) Build() Point {
	return Point{X: b.x, Y: b.y}
}

// MarkerBuilder
type MarkerBuilder struct {
	// Label shown on map
	label string
	at    time.Time
	point *Point
	unit  unit.Unit
	tags  []string
}

func NewMarkerBuilder() MarkerBuilder {
	return MarkerBuilder{}
}

func (b MarkerBuilder) Build() Marker {
	return Marker{Label: b.label}
}

type Marker struct {
	Label string
}

// Shape
// +buildergen
type Shape struct {
	sides int
}

func NewShape() *Shape {
	return &Shape{}
}

// LegacyBuilder
// +buildergen=false
type LegacyBuilder struct {
	name string
}

func NewLegacyBuilder() *LegacyBuilder {
	return &LegacyBuilder{}
}

// EmptyBuilder
type EmptyBuilder struct{}

func NewEmptyBuilder() EmptyBuilder {
	return EmptyBuilder{}
}

func (EmptyBuilder) BUILD() struct{} {
	return struct{}{}
}

// DraftBuilder
type DraftBuilder struct {
	name string
}

func (b *DraftBuilder) Name(name string) *DraftBuilder {
	b.name = name
	return b
}

type Distance int

func Origin() Point {
	return Point{}
}
