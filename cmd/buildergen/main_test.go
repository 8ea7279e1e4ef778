package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usageFile = "../../testdata/geo/usage.go"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	stdout := bytes.NewBuffer(nil)

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(bytes.NewBuffer(nil))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestParsePosition(t *testing.T) {
	p, err := parsePosition("geo/usage.go:42")
	require.NoError(t, err)
	assert.Equal(t, &position{Filename: "geo/usage.go", Offset: 42}, p)

	p, err = parsePosition("geo/usage.go:4:6")
	require.NoError(t, err)
	assert.Equal(t, &position{Filename: "geo/usage.go", Line: 4, Col: 6}, p)

	p, err = parsePosition(`C:\geo\usage.go:4:6`)
	require.NoError(t, err)
	assert.Equal(t, `C:\geo\usage.go`, p.Filename)

	for _, s := range []string{"geo/usage.go", ":12", "geo/usage.go:x"} {
		_, err := parsePosition(s)
		assert.Error(t, err, s)
	}

	offset, err := (&position{Line: 2, Col: 3}).OffsetIn([]byte("a\nbcd\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, offset)

	_, err = (&position{Offset: 100}).OffsetIn([]byte("a\n"))
	assert.Error(t, err)
}

func TestLineDiff(t *testing.T) {
	assert.Equal(t, " b\n+x\n c\n", lineDiff("a\nb\nc\n", "a\nb\nx\nc\n"))
	assert.Equal(t, " a\n-b\n+x\n+y\n c\n", lineDiff("a\nb\nc\n", "a\nx\ny\nc\n"))
	assert.Equal(t, "", lineDiff("a\n", "a\n"))
}

func TestGenerate(t *testing.T) {
	t.Run("dry run", func(t *testing.T) {
		out, err := run(t, "generate", usageFile+":4:6", "--dry-run", "--style", "trailing", "--method-case", "upper-camel")
		require.NoError(t, err)

		assert.Contains(t, out, "-\t_ = NewPointBuilder()\n")
		assert.Contains(t, out, "+\t_ = NewPointBuilder().\n+\t\t\tX(0).\n+\t\t\tY(0).\n+\t\t\tBuild()\n")
	})

	t.Run("with format", func(t *testing.T) {
		out, err := run(t, "generate", usageFile+":4:6", "--format", "--style", "trailing", "--method-case", "upper-camel", "--no-defaults")
		require.NoError(t, err)

		assert.Contains(t, out, "\t_ = NewPointBuilder().\n\t\tX().\n\t\tY().\n\t\tBuild()\n")
	})

	t.Run("with format and default style", func(t *testing.T) {
		out, err := run(t, "generate", usageFile+":4:6", "--format")
		require.NoError(t, err)

		assert.Contains(t, out, "\t_ = NewPointBuilder().\n\t\tx(0).\n\t\ty(0).\n\t\tbuild()\n")
	})

	t.Run("with format and leading style", func(t *testing.T) {
		_, err := run(t, "generate", usageFile+":4:6", "--format", "--style", "leading")
		assert.Error(t, err)
	})

	t.Run("with config", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "buildergen.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("style: trailing\nmethodCase: upper-camel\nbuildMethod: Build\nindentUnit: \"\\t\"\n"), 0o600))

		out, err := run(t, "--config", configFile, "generate", usageFile+":4:6")
		require.NoError(t, err)

		assert.Contains(t, out, "\t_ = NewPointBuilder().\n\t\tX(0).\n\t\tY(0).\n\t\tBuild()\n")
	})

	t.Run("explicit type", func(t *testing.T) {
		out, err := run(t, "generate", usageFile+":4:23", "--type", "github.com/octohelm/buildergen/testdata/geo.PointBuilder")
		require.NoError(t, err)

		assert.Contains(t, out, "\t_ = NewPointBuilder()\n\t\t\t.x(0)\n\t\t\t.y(0)\n\t\t\t.build()\n")
	})

	t.Run("not a builder", func(t *testing.T) {
		_, err := run(t, "generate", usageFile+":6:6")
		assert.Error(t, err)
	})

	t.Run("write", func(t *testing.T) {
		dir := t.TempDir()
		filename := filepath.Join(dir, "route.go")

		require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module x.io/route\n\ngo 1.23\n"), 0o600))
		require.NoError(t, os.WriteFile(filename, []byte(`package route

type RouteBuilder struct {
	From string
	Hops int
}

func NewRouteBuilder() *RouteBuilder {
	return &RouteBuilder{}
}

func (b *RouteBuilder) Build() RouteBuilder {
	return *b
}

var _ = NewRouteBuilder()
`), 0o600))

		_, err := run(t, "generate", filename+":16:9", "--write", "--style", "trailing", "--method-case", "lower-camel")
		require.NoError(t, err)

		data, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Contains(t, string(data), "var _ = NewRouteBuilder().\n\t\tfrom(\"\").\n\t\thops(0).\n\t\tbuild()\n")
	})

	t.Run("write conflicts with dry run", func(t *testing.T) {
		_, err := run(t, "generate", usageFile+":4:6", "--write", "--dry-run")
		assert.Error(t, err)
	})
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", usageFile+":4:6")
	require.NoError(t, err)
	assert.Equal(t, "available github.com/octohelm/buildergen/testdata/geo.PointBuilder\n", out)

	out, err = run(t, "check", usageFile+":6:6")
	assert.ErrorIs(t, err, errUnavailable)
	assert.Equal(t, "unavailable\n", out)
}

func TestFields(t *testing.T) {
	out, err := run(t, "fields", "github.com/octohelm/buildergen/testdata/geo.PointBuilder")
	require.NoError(t, err)
	assert.Equal(t, "- name: x\n  type: int\n- name: y\n  type: int\n", out)

	_, err = run(t, "fields", "github.com/octohelm/buildergen/testdata/geo.EmptyBuilder")
	assert.Error(t, err)
}

func TestLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "buildergen.log")

	_, err := run(t, "--log-level", "debug", "--log-file", logFile, "check", usageFile+":4:6")
	require.NoError(t, err)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "LoadModel")

	_, err = run(t, "--log-level", "verbose", "check", usageFile+":4:6")
	assert.Error(t, err)
}
