package camelcase

import (
	"unicode"
	"unicode/utf8"
)

type runeClass int

const (
	classOther runeClass = iota
	classLower
	classUpper
	classDigit
)

func classOf(r rune) runeClass {
	switch {
	case unicode.IsLower(r):
		return classLower
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsDigit(r):
		return classDigit
	default:
		return classOther
	}
}

// Split splits camelcase word into words.
// Digits stick to the letters before them, and an upper case run followed by
// lower case letters gives its last rune to the next word ("PDFLoader" => "PDF", "Loader").
// Invalid utf8 returns as single word.
func Split(src string) []string {
	if !utf8.ValidString(src) {
		return []string{src}
	}

	groups := make([][]rune, 0)
	last := classOther

	for i, r := range src {
		c := classOf(r)

		joinable := c == last ||
			(c == classDigit && (last == classUpper || last == classLower)) ||
			(c == classLower && last == classDigit)

		if i > 0 && joinable {
			groups[len(groups)-1] = append(groups[len(groups)-1], r)
		} else {
			groups = append(groups, []rune{r})
		}

		last = c
	}

	for i := 0; i+1 < len(groups); i++ {
		cur, next := groups[i], groups[i+1]

		if unicode.IsUpper(cur[0]) && unicode.IsLower(next[0]) {
			groups[i+1] = append([]rune{cur[len(cur)-1]}, next...)
			groups[i] = cur[:len(cur)-1]
		}
	}

	words := make([]string, 0, len(groups))

	for _, g := range groups {
		if len(g) > 0 {
			words = append(words, string(g))
		}
	}

	return words
}
