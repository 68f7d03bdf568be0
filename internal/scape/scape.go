// Package scape defines the environments genomes are evaluated against.
package scape

import (
	"context"

	"mazevolve/internal/model"
)

// Cost measures how far a genome's simulated walk ends from the target.
// Lower is better.
type Cost int

// TargetCost is the cost MazeWalk assigns when the walk ends on the target
// cell (N-1,N-1); no final position scores lower.
const TargetCost Cost = 2

// Scape is a named evaluation environment. Evaluate must be pure and safe
// for concurrent use: the worker pool calls it from many goroutines against
// the same scape.
type Scape interface {
	Name() string
	Evaluate(ctx context.Context, genome model.Genome) (Cost, error)
}
