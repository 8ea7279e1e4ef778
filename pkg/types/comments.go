package types

import (
	"strconv"
	"strings"
)

// Tags doc comment tags, name to values in declared order.
//
//	+buildergen
//	+buildergen=false
//	+group name
type Tags map[string][]string

// Flag reports whether tag name is declared and whether it switches on.
// A bare tag switches on, so does any value except false.
func (tags Tags) Flag(name string) (on bool, declared bool) {
	values, ok := tags[name]
	if !ok {
		return false, false
	}
	if len(values) == 0 || values[0] == "" {
		return true, true
	}
	on, err := strconv.ParseBool(values[0])
	if err != nil {
		return true, true
	}
	return on, true
}

// ParseDoc splits doc lines into tags, lines starting with `+`, and text lines.
// Tag values follow `=` or a space, quoted values are unquoted.
func ParseDoc(lines []string) (tags Tags, text []string) {
	tags = Tags{}

	for _, line := range lines {
		line = strings.TrimSpace(line)

		tag, ok := strings.CutPrefix(line, "+")
		if !ok || tag == "" {
			text = append(text, line)
			continue
		}

		name, value := tag, ""
		if i := strings.IndexAny(tag, "= "); i > 0 {
			name, value = tag[:i], strings.TrimSpace(tag[i+1:])
		}

		if v, err := strconv.Unquote(value); err == nil {
			value = v
		}

		tags[name] = append(tags[name], value)
	}

	return tags, text
}
