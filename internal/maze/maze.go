// Package maze provides the immutable grid environment the search runs in.
// The agent starts at (0,0); the target is the bottom-right cell (N-1,N-1).
package maze

import (
	"fmt"
	"strings"
)

// CellState is the content of one grid cell.
type CellState uint8

const (
	Open CellState = iota
	Wall
)

// Grid is an immutable square maze. It is shared read-only by concurrent
// evaluators and is never mutated after construction.
type Grid struct {
	n     int
	cells []CellState
}

// New returns an n by n grid with every cell open.
func New(n int) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("maze dimension must be > 0, got %d", n)
	}
	return &Grid{n: n, cells: make([]CellState, n*n)}, nil
}

// Parse reads a square grid from rows of '.' (open) and '#' (wall).
// Leading/trailing blank lines and surrounding whitespace per row are
// ignored.
func Parse(text string) (*Grid, error) {
	rows := make([]string, 0, 32)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("maze text is empty")
	}

	cells := make([]CellState, 0, n*n)
	for y, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("maze row %d has %d cells, want %d", y, len(row), n)
		}
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case '.':
				cells = append(cells, Open)
			case '#':
				cells = append(cells, Wall)
			default:
				return nil, fmt.Errorf("maze cell (%d,%d): unsupported rune %q", x, y, row[x])
			}
		}
	}
	return &Grid{n: n, cells: cells}, nil
}

// MustParse is Parse for static grids; it panics on malformed input.
func MustParse(text string) *Grid {
	g, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the grid dimension N.
func (g *Grid) Size() int {
	return g.n
}

// Cell returns the state at (x, y). Coordinates outside [0,N) are a defect
// in the caller and panic.
func (g *Grid) Cell(x, y int) CellState {
	if x < 0 || x >= g.n || y < 0 || y >= g.n {
		panic(fmt.Sprintf("maze: cell (%d,%d) outside %dx%d grid", x, y, g.n, g.n))
	}
	return g.cells[y*g.n+x]
}

// String renders the grid in the same format Parse reads.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.n*g.n + g.n)
	for y := 0; y < g.n; y++ {
		for x := 0; x < g.n; x++ {
			if g.cells[y*g.n+x] == Wall {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
