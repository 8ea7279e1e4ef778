package internal

import (
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"github.com/octohelm/x/sync/singleflight"
)

var modules singleflight.GroupValue[string, *Module]

// Module the go.mod which a dir belongs to.
type Module struct {
	Dir  string
	File *modfile.File
}

// LoadModule finds go.mod from absolute dir up to the filesystem root.
// Nil when not found or unparsable.
func LoadModule(dir string) *Module {
	m, _, _ := modules.Do(dir, func() (*Module, error) {
		filename := filepath.Join(dir, "go.mod")

		data, err := os.ReadFile(filename)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir || parent == "." {
				return nil, nil
			}
			return LoadModule(parent), nil
		}

		f, err := modfile.Parse(filename, data, nil)
		if err != nil || f.Module == nil {
			return nil, nil
		}

		return &Module{Dir: dir, File: f}, nil
	})
	return m
}
