package evo

import (
	"fmt"
	"math/rand"
	"sort"

	"mazevolve/internal/model"
	"mazevolve/internal/scape"
)

// ScoredGenome pairs a genome with the cost it was assigned when its
// generation was evaluated. Selection carries the pair, never the bare
// index: re-deriving cost from position after a sort silently misaligns
// genome and score.
type ScoredGenome struct {
	Genome model.Genome
	Cost   scape.Cost
}

// SelectElite returns the count lowest-cost pairs. The sort is stable, so
// equal-cost genomes keep their original population order. The input slice
// is left untouched.
func SelectElite(scored []ScoredGenome, count int) ([]ScoredGenome, error) {
	if count <= 0 || count > len(scored) {
		return nil, fmt.Errorf("elite count must be in [1, %d], got %d", len(scored), count)
	}

	ranked := make([]ScoredGenome, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Cost < ranked[j].Cost
	})
	return ranked[:count:count], nil
}

// AssembleNextGeneration carries the elite forward unchanged and pairs
// elite i with its mirror partner elite[len-1-i] to produce one mutated
// crossover child each. The result interleaves (elite, child) pairs, so its
// size is exactly twice the elite's.
func AssembleNextGeneration(rng *rand.Rand, elite []ScoredGenome, generation int) ([]model.Genome, error) {
	if len(elite) == 0 {
		return nil, fmt.Errorf("elite must not be empty")
	}

	next := make([]model.Genome, 0, 2*len(elite))
	for i, parent := range elite {
		partner := elite[len(elite)-1-i]
		childID := fmt.Sprintf("gen%d-child%d", generation+1, i)
		child, err := Crossover(rng, parent.Genome, partner.Genome, childID)
		if err != nil {
			return nil, fmt.Errorf("crossover elite %d: %w", i, err)
		}
		child, err = Mutate(rng, child)
		if err != nil {
			return nil, fmt.Errorf("mutate child %d: %w", i, err)
		}
		next = append(next, parent.Genome, child)
	}
	return next, nil
}
