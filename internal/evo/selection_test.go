package evo

import (
	"math/rand"
	"testing"

	"mazevolve/internal/model"
	"mazevolve/internal/scape"
)

func scoredFrom(ids string, costs ...scape.Cost) []ScoredGenome {
	scored := make([]ScoredGenome, len(costs))
	for i, cost := range costs {
		scored[i] = ScoredGenome{
			Genome: model.Genome{ID: string(ids[i]), Moves: []model.Move{model.MoveStand}},
			Cost:   cost,
		}
	}
	return scored
}

func TestSelectElitePicksLowestCosts(t *testing.T) {
	scored := scoredFrom("abcdef", 5, 3, 5, 1, 3, 2)

	elite, err := SelectElite(scored, 3)
	if err != nil {
		t.Fatalf("select elite: %v", err)
	}
	want := []struct {
		id   string
		cost scape.Cost
	}{{"d", 1}, {"f", 2}, {"b", 3}}
	for i, expected := range want {
		if elite[i].Genome.ID != expected.id || elite[i].Cost != expected.cost {
			t.Fatalf("elite %d: got (%s,%d) want (%s,%d)",
				i, elite[i].Genome.ID, elite[i].Cost, expected.id, expected.cost)
		}
	}
}

func TestSelectEliteIsStableAmongTies(t *testing.T) {
	scored := scoredFrom("abcd", 2, 2, 2, 1)

	elite, err := SelectElite(scored, 3)
	if err != nil {
		t.Fatalf("select elite: %v", err)
	}
	// d wins on cost; a and b keep their original order among the ties.
	if elite[0].Genome.ID != "d" || elite[1].Genome.ID != "a" || elite[2].Genome.ID != "b" {
		t.Fatalf("tie-break order: got %s %s %s", elite[0].Genome.ID, elite[1].Genome.ID, elite[2].Genome.ID)
	}
}

func TestSelectEliteKeepsGenomeCostPairing(t *testing.T) {
	scored := scoredFrom("abcd", 7, 2, 9, 4)

	elite, err := SelectElite(scored, 2)
	if err != nil {
		t.Fatalf("select elite: %v", err)
	}
	// The cost travels with its genome through the sort; it is never
	// re-derived from position.
	byID := map[string]scape.Cost{"a": 7, "b": 2, "c": 9, "d": 4}
	for _, item := range elite {
		if byID[item.Genome.ID] != item.Cost {
			t.Fatalf("genome %s paired with cost %d, want %d", item.Genome.ID, item.Cost, byID[item.Genome.ID])
		}
	}
}

func TestSelectEliteLeavesInputUntouched(t *testing.T) {
	scored := scoredFrom("abc", 3, 1, 2)

	if _, err := SelectElite(scored, 2); err != nil {
		t.Fatalf("select elite: %v", err)
	}
	if scored[0].Genome.ID != "a" || scored[1].Genome.ID != "b" || scored[2].Genome.ID != "c" {
		t.Fatal("selection reordered the input slice")
	}
}

func TestSelectEliteValidation(t *testing.T) {
	scored := scoredFrom("ab", 1, 2)
	if _, err := SelectElite(scored, 0); err == nil {
		t.Fatal("expected error for count 0")
	}
	if _, err := SelectElite(scored, 3); err == nil {
		t.Fatal("expected error for count beyond population")
	}
}

func TestAssembleNextGenerationInterleavesEliteAndChildren(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	elite := []ScoredGenome{
		{Genome: repeated(model.MoveUp, 8), Cost: 1},
		{Genome: repeated(model.MoveDown, 8), Cost: 2},
		{Genome: repeated(model.MoveLeft, 8), Cost: 3},
	}

	next, err := AssembleNextGeneration(rng, elite, 0)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(next) != 6 {
		t.Fatalf("size: got %d want 6", len(next))
	}

	// Elites are carried forward unchanged at the even slots.
	for i, parent := range elite {
		carried := next[2*i]
		if carried.ID != parent.Genome.ID {
			t.Fatalf("slot %d: got %s want elite %s", 2*i, carried.ID, parent.Genome.ID)
		}
		for j := range carried.Moves {
			if carried.Moves[j] != parent.Genome.Moves[j] {
				t.Fatalf("elite %d changed at locus %d", i, j)
			}
		}
	}

	// Child 1 crosses the middle elite with itself, so apart from the one
	// mutated locus it is all DOWN.
	down := 0
	for _, move := range next[3].Moves {
		if move == model.MoveDown {
			down++
		}
	}
	if down != 7 {
		t.Fatalf("self-pair child has %d DOWN moves, want 7: %s", down, next[3].Sequence())
	}

	// Child 0 splices the first elite with its mirror partner (the last);
	// at most the mutated locus may fall outside {UP, LEFT}.
	other := 0
	for _, move := range next[1].Moves {
		if move != model.MoveUp && move != model.MoveLeft {
			other++
		}
	}
	if other > 1 {
		t.Fatalf("mirror-pair child has %d foreign moves: %s", other, next[1].Sequence())
	}
}

func TestAssembleNextGenerationRejectsEmptyElite(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := AssembleNextGeneration(rng, nil, 0); err == nil {
		t.Fatal("expected error for empty elite")
	}
}
