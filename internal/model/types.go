package model

import "fmt"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Move is one step of a candidate path through the maze.
type Move uint8

const (
	MoveUp Move = iota
	MoveDown
	MoveLeft
	MoveRight
	MoveStand
)

// MoveCount is the size of the move alphabet.
const MoveCount = 5

func (m Move) Valid() bool {
	return m < MoveCount
}

func (m Move) String() string {
	switch m {
	case MoveUp:
		return "U"
	case MoveDown:
		return "D"
	case MoveLeft:
		return "L"
	case MoveRight:
		return "R"
	case MoveStand:
		return "S"
	default:
		return "?"
	}
}

// Genome is a fixed-length ordered move sequence representing one candidate
// path. It is immutable once scored; operators that change moves work on a
// clone.
type Genome struct {
	VersionedRecord
	ID    string `json:"id"`
	Moves []Move `json:"moves"`
}

// Clone returns a deep copy of the genome under a new ID.
func (g Genome) Clone(id string) Genome {
	out := g
	out.ID = id
	out.Moves = make([]Move, len(g.Moves))
	copy(out.Moves, g.Moves)
	return out
}

// Sequence renders the moves as single letters, e.g. "UUDDLRS".
func (g Genome) Sequence() string {
	buf := make([]byte, 0, len(g.Moves))
	for _, m := range g.Moves {
		buf = append(buf, m.String()[0])
	}
	return string(buf)
}

// ParseMoves is the inverse of Genome.Sequence.
func ParseMoves(s string) ([]Move, error) {
	moves := make([]Move, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'U':
			moves = append(moves, MoveUp)
		case 'D':
			moves = append(moves, MoveDown)
		case 'L':
			moves = append(moves, MoveLeft)
		case 'R':
			moves = append(moves, MoveRight)
		case 'S':
			moves = append(moves, MoveStand)
		default:
			return nil, fmt.Errorf("unsupported move letter %q at index %d", s[i], i)
		}
	}
	return moves, nil
}

// Population is a persisted snapshot of the genomes alive at one generation.
type Population struct {
	VersionedRecord
	ID         string   `json:"id"`
	GenomeIDs  []string `json:"genome_ids"`
	Generation int      `json:"generation"`
}

// ScapeSummary records the best cost ever observed on a named scape.
type ScapeSummary struct {
	VersionedRecord
	Name        string `json:"name"`
	Description string `json:"description"`
	BestCost    int    `json:"best_cost"`
}

// TopGenomeRecord is one entry of a run's final leaderboard.
type TopGenomeRecord struct {
	Rank   int    `json:"rank"`
	Cost   int    `json:"cost"`
	Genome Genome `json:"genome"`
}
