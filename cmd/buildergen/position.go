package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/octohelm/buildergen/pkg/gomodel"
)

// position in file, `FILE:OFFSET` or `FILE:LINE:COL` (1-based, col in bytes)
type position struct {
	Filename string
	Offset   int
	Line     int
	Col      int
}

func parsePosition(s string) (*position, error) {
	parts := strings.Split(s, ":")

	numbers := make([]int, 0, 2)
	for i := len(parts) - 1; i > 0 && len(numbers) < 2; i-- {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			break
		}
		numbers = append([]int{n}, numbers...)
	}

	p := &position{
		Filename: strings.Join(parts[0:len(parts)-len(numbers)], ":"),
	}

	switch len(numbers) {
	case 1:
		p.Offset = numbers[0]
	case 2:
		p.Line, p.Col = numbers[0], numbers[1]
	default:
		return nil, errors.Errorf("invalid position `%s`, should be FILE:OFFSET or FILE:LINE:COL", s)
	}

	if p.Filename == "" {
		return nil, errors.Errorf("invalid position `%s`, missing file", s)
	}

	return p, nil
}

func (p *position) OffsetIn(content []byte) (int, error) {
	if p.Line == 0 {
		if p.Offset < 0 || p.Offset > len(content) {
			return -1, errors.Errorf("offset %d out of file", p.Offset)
		}
		return p.Offset, nil
	}
	return gomodel.Offset(content, p.Line, p.Col)
}
