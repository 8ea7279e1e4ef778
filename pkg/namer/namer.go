package namer

import (
	"strings"
)

type Namer interface {
	// Name renders fully-qualified type string as source code in scope
	Name(typeString string) string
}

type NameSystems map[string]Namer

// NewRawNamer creates Namer which rewrites fully-qualified type strings (go/types.TypeString form)
// into source text for package pkgPath, tracking every package it refers to.
func NewRawNamer(pkgPath string, tracker ImportTracker) Namer {
	return &rawNamer{pkgPath: pkgPath, tracker: tracker}
}

type rawNamer struct {
	pkgPath string
	tracker ImportTracker
}

func (n *rawNamer) Name(typeString string) string {
	b := &strings.Builder{}

	for i := 0; i < len(typeString); {
		c := typeString[i]

		switch {
		case c == '"' || c == '`':
			end := quotedEnd(typeString, i)
			b.WriteString(typeString[i:end])
			i = end
		case isPathChar(c):
			j := i
			for j < len(typeString) && isPathChar(typeString[j]) {
				j++
			}
			b.WriteString(n.qualify(typeString[i:j]))
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String()
}

func (n *rawNamer) qualify(word string) string {
	// variadic
	lead := len(word) - len(strings.TrimLeft(word, "."))
	prefix, word := word[0:lead], word[lead:]

	i := strings.LastIndex(word, ".")
	if i <= 0 {
		return prefix + word
	}

	pkgPath, name := word[0:i], word[i+1:]

	if pkgPath == n.pkgPath {
		return prefix + name
	}

	return prefix + n.tracker.Add(pkgPath) + "." + name
}

func quotedEnd(s string, start int) int {
	q := s[start]
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if q == '"' {
				i++
			}
		case q:
			return i + 1
		}
	}
	return len(s)
}

func isPathChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_' || c == '.' || c == '/' || c == '-' || c == '~' ||
		c >= 0x80
}
