package namer

import (
	"go/token"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

type ImportTracker interface {
	// Add registers pkgPath and returns the local name to refer it with
	Add(pkgPath string) string

	LocalNameOf(pkgPath string) string
	PathOf(localName string) (string, bool)

	// Imports import path to local name
	Imports() map[string]string
}

// PackageNamer resolves the declared name of package
type PackageNamer = func(pkgPath string) string

type defaultImportTracker struct {
	namePkg    PackageNamer
	pathToName map[string]string
	nameToPath map[string]string
}

// NewDefaultImportTracker creates tracker.
// Declared package names come from namePkg, DefaultPackageName when nil.
// Reserved names (like the ones already used by the scope) are never handed out.
func NewDefaultImportTracker(namePkg PackageNamer, reserved ...string) ImportTracker {
	if namePkg == nil {
		namePkg = DefaultPackageName
	}

	tracker := &defaultImportTracker{
		namePkg:    namePkg,
		pathToName: map[string]string{},
		nameToPath: map[string]string{},
	}

	for _, n := range reserved {
		tracker.nameToPath[n] = ""
	}

	return tracker
}

func (tracker *defaultImportTracker) Add(pkgPath string) string {
	if name, ok := tracker.pathToName[pkgPath]; ok {
		return name
	}

	base := tracker.namePkg(pkgPath)
	if base == "" {
		base = DefaultPackageName(pkgPath)
	}

	localName := base
	for i := 2; ; i++ {
		if _, taken := tracker.nameToPath[localName]; !taken {
			break
		}
		localName = base + strconv.Itoa(i)
	}

	tracker.nameToPath[localName] = pkgPath
	tracker.pathToName[pkgPath] = localName

	return localName
}

func (tracker *defaultImportTracker) Imports() map[string]string {
	return maps.Clone(tracker.pathToName)
}

func (tracker *defaultImportTracker) LocalNameOf(path string) string {
	return tracker.pathToName[path]
}

func (tracker *defaultImportTracker) PathOf(localName string) (string, bool) {
	path, ok := tracker.nameToPath[localName]
	return path, ok && path != ""
}

// DefaultPackageName guesses package name from import path, the way goimports does:
//
//	github.com/x/geo       => geo
//	github.com/x/geo/v2    => geo
//	gopkg.in/yaml.v3       => yaml
//	github.com/x/go-diff   => diff
func DefaultPackageName(pkgPath string) string {
	parts := strings.Split(pkgPath, "/")

	name := parts[len(parts)-1]

	if len(parts) > 1 && isMajorVersion(name) {
		name = parts[len(parts)-2]
	}

	if i := strings.LastIndex(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[0:i]
	}

	name = strings.TrimPrefix(name, "go-")
	name = strings.TrimSuffix(name, "-go")

	b := &strings.Builder{}
	for i, r := range name {
		if unicode.IsLetter(r) || r == '_' || (i > 0 && unicode.IsDigit(r)) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}

	name = b.String()

	if token.Lookup(name).IsKeyword() {
		name = "_" + name
	}

	return name
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}

// SortedPaths of imports
func SortedPaths(imports map[string]string) []string {
	return slices.Sorted(maps.Keys(imports))
}
