package dateparse

import "time"

type cellKind int

const (
	kindEmpty cellKind = iota
	kindTime
	kindNumber
	kindText
)

// Cell is one raw spreadsheet value: a native date/time, a numeric serial,
// or free text. Readers produce Cells; Normalize consumes them.
type Cell struct {
	kind cellKind
	t    time.Time
	n    float64
	s    string
}

func TimeCell(t time.Time) Cell {
	return Cell{kind: kindTime, t: t}
}

func NumberCell(n float64) Cell {
	return Cell{kind: kindNumber, n: n}
}

func TextCell(s string) Cell {
	return Cell{kind: kindText, s: s}
}

func EmptyCell() Cell {
	return Cell{kind: kindEmpty}
}

func (c Cell) IsEmpty() bool {
	return c.kind == kindEmpty
}
