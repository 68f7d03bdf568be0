package scape

import (
	"context"
	"fmt"

	"mazevolve/internal/maze"
	"mazevolve/internal/model"
)

// MazeWalk scores a genome by walking its moves from (0,0) toward the
// bottom-right corner of a grid.
type MazeWalk struct {
	name string
	grid *maze.Grid
}

func NewMazeWalk(name string, grid *maze.Grid) (*MazeWalk, error) {
	if name == "" {
		return nil, fmt.Errorf("scape name is required")
	}
	if grid == nil {
		return nil, fmt.Errorf("maze grid is required")
	}
	return &MazeWalk{name: name, grid: grid}, nil
}

func (s *MazeWalk) Name() string {
	return s.name
}

// Grid exposes the underlying maze for rendering.
func (s *MazeWalk) Grid() *maze.Grid {
	return s.grid
}

// Evaluate simulates the walk. Moves that would leave the grid are no-ops,
// not failures; the walk stops on the first wall cell and the remaining
// moves are not executed. The cost is the Manhattan distance from the final
// position to the target corner.
func (s *MazeWalk) Evaluate(ctx context.Context, genome model.Genome) (Cost, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	n := s.grid.Size()
	x, y := 0, 0
	for _, move := range genome.Moves {
		switch move {
		case model.MoveUp:
			if y > 0 {
				y--
			}
		case model.MoveDown:
			if y < n-1 {
				y++
			}
		case model.MoveLeft:
			if x > 0 {
				x--
			}
		case model.MoveRight:
			if x < n-1 {
				x++
			}
		case model.MoveStand:
		default:
			return 0, fmt.Errorf("genome %s: invalid move %d", genome.ID, move)
		}
		if s.grid.Cell(x, y) == maze.Wall {
			break
		}
	}
	return Cost((n - y) + (n - x)), nil
}
