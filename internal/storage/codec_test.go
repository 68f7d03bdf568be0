package storage

import (
	"errors"
	"testing"

	"mazevolve/internal/model"
)

func TestGenomeCodecRoundTrip(t *testing.T) {
	genome := testGenome("g1", model.MoveUp, model.MoveDown, model.MoveStand)

	data, err := EncodeGenome(genome)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeGenome(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != "g1" || decoded.Sequence() != "UDS" {
		t.Fatalf("unexpected genome: %+v", decoded)
	}
}

func TestDecodeGenomeRejectsVersionMismatch(t *testing.T) {
	genome := testGenome("g1", model.MoveUp)
	genome.SchemaVersion = CurrentSchemaVersion + 1

	data, err := EncodeGenome(genome)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeGenome(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
}

func TestDecodeGenomeRejectsGarbage(t *testing.T) {
	if _, err := DecodeGenome([]byte("{not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPopulationCodecRoundTrip(t *testing.T) {
	population := model.Population{
		VersionedRecord: stamped(),
		ID:              "run-1",
		GenomeIDs:       []string{"a", "b"},
		Generation:      7,
	}

	data, err := EncodePopulation(population)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodePopulation(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Generation != 7 || len(decoded.GenomeIDs) != 2 {
		t.Fatalf("unexpected population: %+v", decoded)
	}
}

func TestScapeSummaryCodecRoundTrip(t *testing.T) {
	summary := model.ScapeSummary{
		VersionedRecord: stamped(),
		Name:            "maze-20",
		Description:     "20x20 walk",
		BestCost:        5,
	}

	data, err := EncodeScapeSummary(summary)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeScapeSummary(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Name != "maze-20" || decoded.BestCost != 5 {
		t.Fatalf("unexpected summary: %+v", decoded)
	}
}

func TestCostHistoryCodecRoundTrip(t *testing.T) {
	data, err := EncodeCostHistory([]int{8, 6, 3})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeCostHistory(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 3 || decoded[2] != 3 {
		t.Fatalf("unexpected history: %v", decoded)
	}
}

func TestTopGenomesCodecChecksEveryRecord(t *testing.T) {
	good := testGenome("good", model.MoveUp)
	bad := testGenome("bad", model.MoveDown)
	bad.CodecVersion = CurrentCodecVersion + 1

	data, err := EncodeTopGenomes([]model.TopGenomeRecord{
		{Rank: 1, Cost: 1, Genome: good},
		{Rank: 2, Cost: 2, Genome: bad},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeTopGenomes(data); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
}
