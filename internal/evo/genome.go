// Package evo implements the genetic operators and the generation driver of
// the maze search.
package evo

import (
	"fmt"
	"math/rand"

	"mazevolve/internal/model"
)

// RandomGenome draws length independent uniform moves. The caller owns rng:
// concurrent callers must each pass their own generator, or serialize
// access to a shared one.
func RandomGenome(rng *rand.Rand, id string, length int) (model.Genome, error) {
	if rng == nil {
		return model.Genome{}, fmt.Errorf("random source is required")
	}
	if length <= 0 {
		return model.Genome{}, fmt.Errorf("genome length must be > 0, got %d", length)
	}
	moves := make([]model.Move, length)
	for i := range moves {
		moves[i] = model.Move(rng.Intn(model.MoveCount))
	}
	return model.Genome{ID: id, Moves: moves}, nil
}

// Crossover splices a child from parentA[0:k) and parentB[k:L) at a uniform
// random split point k. The child always has the parents' length.
func Crossover(rng *rand.Rand, parentA, parentB model.Genome, childID string) (model.Genome, error) {
	if rng == nil {
		return model.Genome{}, fmt.Errorf("random source is required")
	}
	if len(parentA.Moves) == 0 || len(parentA.Moves) != len(parentB.Moves) {
		return model.Genome{}, fmt.Errorf("crossover requires equal non-empty parents: got %d and %d moves", len(parentA.Moves), len(parentB.Moves))
	}

	k := rng.Intn(len(parentA.Moves))
	moves := make([]model.Move, len(parentA.Moves))
	copy(moves, parentA.Moves[:k])
	copy(moves[k:], parentB.Moves[k:])
	return model.Genome{ID: childID, Moves: moves}, nil
}

// Mutate returns a copy of the genome with exactly one uniformly chosen
// locus replaced by a different move, drawn uniformly from the rest of the
// alphabet.
func Mutate(rng *rand.Rand, genome model.Genome) (model.Genome, error) {
	if rng == nil {
		return model.Genome{}, fmt.Errorf("random source is required")
	}
	if len(genome.Moves) == 0 {
		return model.Genome{}, fmt.Errorf("cannot mutate an empty genome")
	}

	out := genome.Clone(genome.ID)
	locus := rng.Intn(len(out.Moves))
	shift := 1 + rng.Intn(model.MoveCount-1)
	out.Moves[locus] = model.Move((int(out.Moves[locus]) + shift) % model.MoveCount)
	return out, nil
}
