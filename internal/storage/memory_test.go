package storage

import (
	"context"
	"testing"

	"mazevolve/internal/model"
)

func stamped() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
}

func testGenome(id string, moves ...model.Move) model.Genome {
	return model.Genome{VersionedRecord: stamped(), ID: id, Moves: moves}
}

func initMemoryStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return store
}

func TestMemoryStoreGenomeRoundTrip(t *testing.T) {
	store := initMemoryStore(t)
	ctx := context.Background()
	genome := testGenome("g1", model.MoveUp, model.MoveRight)

	if err := store.SaveGenome(ctx, genome); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, ok, err := store.GetGenome(ctx, "g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("genome not found")
	}
	if loaded.Sequence() != "UR" {
		t.Fatalf("sequence: got %s want UR", loaded.Sequence())
	}

	// Mutating the loaded copy must not reach the stored record.
	loaded.Moves[0] = model.MoveDown
	again, _, err := store.GetGenome(ctx, "g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Sequence() != "UR" {
		t.Fatalf("stored genome changed to %s", again.Sequence())
	}
}

func TestMemoryStoreGenomeMissing(t *testing.T) {
	store := initMemoryStore(t)
	_, ok, err := store.GetGenome(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected missing genome")
	}
}

func TestMemoryStorePopulationRoundTrip(t *testing.T) {
	store := initMemoryStore(t)
	ctx := context.Background()
	population := model.Population{
		VersionedRecord: stamped(),
		ID:              "run-1",
		GenomeIDs:       []string{"a", "b", "c"},
		Generation:      4,
	}

	if err := store.SavePopulation(ctx, population); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, ok, err := store.GetPopulation(ctx, "run-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("population not found")
	}
	if loaded.Generation != 4 || len(loaded.GenomeIDs) != 3 || loaded.GenomeIDs[1] != "b" {
		t.Fatalf("unexpected population: %+v", loaded)
	}

	loaded.GenomeIDs[0] = "tampered"
	again, _, err := store.GetPopulation(ctx, "run-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.GenomeIDs[0] != "a" {
		t.Fatal("stored population changed through a returned copy")
	}
}

func TestMemoryStoreScapeSummaryUpsert(t *testing.T) {
	store := initMemoryStore(t)
	ctx := context.Background()

	first := model.ScapeSummary{VersionedRecord: stamped(), Name: "maze", BestCost: 12}
	if err := store.SaveScapeSummary(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := first
	second.BestCost = 3
	if err := store.SaveScapeSummary(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := store.GetScapeSummary(ctx, "maze")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("summary not found")
	}
	if loaded.BestCost != 3 {
		t.Fatalf("best cost: got %d want 3", loaded.BestCost)
	}
}

func TestMemoryStoreCostHistoryRoundTrip(t *testing.T) {
	store := initMemoryStore(t)
	ctx := context.Background()
	history := []int{9, 7, 7, 4, 2}

	if err := store.SaveCostHistory(ctx, "run-1", history); err != nil {
		t.Fatalf("save: %v", err)
	}
	history[0] = 0

	loaded, ok, err := store.GetCostHistory(ctx, "run-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("history not found")
	}
	if loaded[0] != 9 || len(loaded) != 5 {
		t.Fatalf("unexpected history: %v", loaded)
	}
}

func TestMemoryStoreTopGenomesRoundTrip(t *testing.T) {
	store := initMemoryStore(t)
	ctx := context.Background()
	top := []model.TopGenomeRecord{
		{Rank: 1, Cost: 0, Genome: testGenome("best", model.MoveRight, model.MoveDown)},
		{Rank: 2, Cost: 2, Genome: testGenome("second", model.MoveDown, model.MoveDown)},
	}

	if err := store.SaveTopGenomes(ctx, "run-1", top); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, ok, err := store.GetTopGenomes(ctx, "run-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("top genomes not found")
	}
	if len(loaded) != 2 || loaded[0].Genome.ID != "best" || loaded[1].Cost != 2 {
		t.Fatalf("unexpected top genomes: %+v", loaded)
	}
}
