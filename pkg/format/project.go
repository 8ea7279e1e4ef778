package format

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-courier/logr"
	"github.com/pkg/errors"
)

// Project formats go files of entrypoints, files or dirs walked recursively.
type Project struct {
	Entrypoint []string
	// List prints files whose formatting differs
	List bool
	// Write writes result back to files
	Write bool

	Stdout io.Writer
	Cwd    string
}

func (p *Project) Run(ctx context.Context) error {
	if p.Cwd == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		p.Cwd = cwd
	}

	if p.Stdout == nil {
		p.Stdout = os.Stdout
	}

	for _, entry := range p.Entrypoint {
		entry = filepath.Clean(entry)
		if !filepath.IsAbs(entry) {
			entry = filepath.Join(p.Cwd, entry)
		}

		if err := filepath.WalkDir(entry, func(path string, d fs.DirEntry, err error) error {
			explicit := path == entry
			switch {
			case err != nil:
				return err
			case d.IsDir():
				if !explicit && shouldIgnore(path) {
					return filepath.SkipDir
				}
				return nil
			case explicit:
				// explicit files always formatted
			case !isGoFilename(d.Name()):
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return nil
			}

			return p.process(ctx, path, info)
		}); err != nil {
			return err
		}
	}

	return nil
}

func (p *Project) process(ctx context.Context, path string, info os.FileInfo) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := Source(data, OptionsForDir(filepath.Dir(path)))
	if err != nil {
		return errors.Wrapf(err, "format %s", path)
	}

	if bytes.Equal(data, formatted) {
		return nil
	}

	relPath, err := filepath.Rel(p.Cwd, path)
	if err != nil {
		relPath = path
	}

	logr.FromContext(ctx).WithValues("target", relPath).Debug("formatting changed")

	if p.List {
		if _, err := io.WriteString(p.Stdout, relPath+"\n"); err != nil {
			return err
		}
	}

	if p.Write {
		return os.WriteFile(path, formatted, info.Mode())
	}

	return nil
}

func shouldIgnore(path string) bool {
	switch name := filepath.Base(path); name {
	case "vendor", "testdata":
		return true
	default:
		return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
	}
}

func isGoFilename(name string) bool {
	return !strings.HasPrefix(name, ".") && strings.HasSuffix(name, ".go")
}
