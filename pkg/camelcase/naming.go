package camelcase

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	LowerSnakeCase = joinWords("_", func(w string, i int) string { return strings.ToLower(w) })
	UpperCamelCase = joinWords("", func(w string, i int) string {
		return titleWord(w)
	})
	LowerCamelCase = joinWords("", func(w string, i int) string {
		if i == 0 {
			return strings.ToLower(w)
		}
		return titleWord(w)
	})
)

func titleWord(w string) string {
	if strings.EqualFold(w, "ID") {
		return "ID"
	}
	// Caser is stateful, not shared
	return cases.Title(language.Und, cases.NoLower).String(strings.ToLower(w))
}

func joinWords(linker string, transWord func(w string, i int) string) func(s string) string {
	return func(s string) string {
		b := &strings.Builder{}
		idx := 0

		for _, word := range Split(s) {
			if !hasLetterOrDigit(word) {
				continue
			}
			if idx > 0 {
				b.WriteString(linker)
			}
			b.WriteString(transWord(word, idx))
			idx++
		}

		return b.String()
	}
}

func hasLetterOrDigit(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
