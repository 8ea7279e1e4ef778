package main

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff renders changed lines of after against before,
// `-` for deleted and `+` for inserted, with one line of context around.
func lineDiff(before string, after string) string {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	out := &strings.Builder{}

	for i, d := range diffs {
		if d.Text == "" {
			continue
		}

		chunk := strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n")

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writeLines(out, "-", chunk)
		case diffmatchpatch.DiffInsert:
			writeLines(out, "+", chunk)
		default:
			if i > 0 {
				writeLines(out, " ", chunk[:1])
			}
			if i < len(diffs)-1 && (i == 0 || len(chunk) > 1) {
				writeLines(out, " ", chunk[len(chunk)-1:])
			}
		}
	}

	return out.String()
}

func writeLines(out *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		out.WriteString(prefix)
		out.WriteString(l)
		out.WriteString("\n")
	}
}
