package model

import "testing"

func TestMoveSequenceRoundTrip(t *testing.T) {
	genome := Genome{ID: "g", Moves: []Move{MoveUp, MoveUp, MoveDown, MoveLeft, MoveRight, MoveStand}}
	sequence := genome.Sequence()
	if sequence != "UUDLRS" {
		t.Fatalf("unexpected sequence: %s", sequence)
	}

	moves, err := ParseMoves(sequence)
	if err != nil {
		t.Fatalf("parse moves: %v", err)
	}
	if len(moves) != len(genome.Moves) {
		t.Fatalf("parsed %d moves, want %d", len(moves), len(genome.Moves))
	}
	for i, m := range moves {
		if m != genome.Moves[i] {
			t.Fatalf("move %d: got %v want %v", i, m, genome.Moves[i])
		}
	}
}

func TestParseMovesRejectsUnknownLetter(t *testing.T) {
	if _, err := ParseMoves("UDX"); err == nil {
		t.Fatal("expected error for unknown move letter")
	}
}

func TestGenomeCloneIsIndependent(t *testing.T) {
	original := Genome{ID: "a", Moves: []Move{MoveUp, MoveDown}}
	clone := original.Clone("b")

	if clone.ID != "b" {
		t.Fatalf("clone id: got %s want b", clone.ID)
	}
	clone.Moves[0] = MoveStand
	if original.Moves[0] != MoveUp {
		t.Fatal("mutating the clone changed the original")
	}
}

func TestMoveValid(t *testing.T) {
	for m := Move(0); m < MoveCount; m++ {
		if !m.Valid() {
			t.Fatalf("move %v should be valid", m)
		}
	}
	if Move(MoveCount).Valid() {
		t.Fatal("out-of-alphabet move should be invalid")
	}
}
