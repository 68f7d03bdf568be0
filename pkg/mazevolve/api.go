// Package mazevolve is the embedding API for the evolutionary maze search:
// it wires a store, a maze scape and a population monitor together and
// persists the run's artifacts.
package mazevolve

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"mazevolve/internal/evo"
	"mazevolve/internal/maze"
	"mazevolve/internal/model"
	"mazevolve/internal/scape"
	"mazevolve/internal/storage"
)

const defaultDBPath = "mazevolve.db"

// Defaults applied to zero fields of RunRequest.
const (
	DefaultMazeSize     = 20
	DefaultPopulation   = 100
	DefaultGenomeLength = 100
	DefaultGenerations  = 1000
	DefaultWorkers      = 4
)

// TopGenomeCount is how many leaderboard entries a run persists.
const TopGenomeCount = 5

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store storage.Store
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	kind := opts.StoreKind
	if kind == "" {
		kind = storage.DefaultStoreKind()
	}
	path := opts.DBPath
	if path == "" {
		path = defaultDBPath
	}

	store, err := storage.NewStore(kind, path)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

// NewClientWithStore wraps an already-initialized store.
func NewClientWithStore(store storage.Store) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

type RunRequest struct {
	RunID string

	// MazePath points at a text grid of '.' and '#'. When empty, an open
	// MazeSize grid is used, matching the reference search setup.
	MazePath string
	MazeSize int

	Population   int
	GenomeLength int
	Generations  int
	Workers      int
	Seed         int64

	// StopAtCost ends the run early once a generation's best cost is at or
	// below CostGoal. The lowest achievable cost is scape.TargetCost, scored
	// when a walk ends on the target cell. Disabled by default.
	StopAtCost bool
	CostGoal   int

	// OnGeneration, when set, observes each generation's best cost.
	OnGeneration func(generation, best int)
}

type RunSummary struct {
	RunID            string
	Scape            string
	Generations      int
	BestCost         int
	BestGenome       string
	BestByGeneration []int
	TargetReached    bool
}

// Run executes one evolutionary search and persists its cost history, top
// genomes, final population snapshot and scape summary under the run ID.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	applyRunDefaults(&req)

	grid, scapeName, err := loadGrid(req)
	if err != nil {
		return RunSummary{}, err
	}
	walk, err := scape.NewMazeWalk(scapeName, grid)
	if err != nil {
		return RunSummary{}, err
	}

	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	rng := rand.New(rand.NewSource(req.Seed))
	initial := make([]model.Genome, req.Population)
	for i := range initial {
		genome, err := evo.RandomGenome(rng, uuid.NewString(), req.GenomeLength)
		if err != nil {
			return RunSummary{}, err
		}
		initial[i] = genome
	}

	cfg := evo.MonitorConfig{
		Scape:          walk,
		PopulationSize: req.Population,
		GenomeLength:   req.GenomeLength,
		Generations:    req.Generations,
		Workers:        req.Workers,
		Seed:           req.Seed,
	}
	if req.StopAtCost {
		cfg.CostGoal = evo.CostGoal{Enabled: true, Cost: scape.Cost(req.CostGoal)}
	}
	if req.OnGeneration != nil {
		observe := req.OnGeneration
		cfg.OnGeneration = func(generation int, _ []scape.Cost, best scape.Cost) {
			observe(generation, int(best))
		}
	}

	monitor, err := evo.NewPopulationMonitor(cfg)
	if err != nil {
		return RunSummary{}, err
	}
	result, err := monitor.Run(ctx, initial)
	if err != nil {
		return RunSummary{}, err
	}

	if err := c.saveRunArtifacts(ctx, runID, scapeName, result); err != nil {
		return RunSummary{}, err
	}

	history := make([]int, len(result.BestByGeneration))
	for i, cost := range result.BestByGeneration {
		history[i] = int(cost)
	}
	return RunSummary{
		RunID:            runID,
		Scape:            scapeName,
		Generations:      result.Generations,
		BestCost:         int(result.BestCost),
		BestGenome:       result.BestGenome.Sequence(),
		BestByGeneration: history,
		TargetReached:    result.BestCost <= scape.TargetCost,
	}, nil
}

func (c *Client) saveRunArtifacts(ctx context.Context, runID, scapeName string, result evo.RunResult) error {
	history := make([]int, len(result.BestByGeneration))
	for i, cost := range result.BestByGeneration {
		history[i] = int(cost)
	}
	if err := c.store.SaveCostHistory(ctx, runID, history); err != nil {
		return err
	}

	ranked := make([]evo.ScoredGenome, len(result.FinalPopulation))
	copy(ranked, result.FinalPopulation)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Cost < ranked[j].Cost
	})
	topCount := TopGenomeCount
	if len(ranked) < topCount {
		topCount = len(ranked)
	}
	top := make([]model.TopGenomeRecord, 0, topCount)
	for i := 0; i < topCount; i++ {
		top = append(top, model.TopGenomeRecord{
			Rank:   i + 1,
			Cost:   int(ranked[i].Cost),
			Genome: stamp(ranked[i].Genome),
		})
	}
	if err := c.store.SaveTopGenomes(ctx, runID, top); err != nil {
		return err
	}

	genomeIDs := make([]string, 0, len(result.FinalPopulation))
	for _, scored := range result.FinalPopulation {
		genome := stamp(scored.Genome)
		if err := c.store.SaveGenome(ctx, genome); err != nil {
			return err
		}
		genomeIDs = append(genomeIDs, genome.ID)
	}
	population := model.Population{
		VersionedRecord: currentVersions(),
		ID:              runID,
		GenomeIDs:       genomeIDs,
		Generation:      result.Generations,
	}
	if err := c.store.SavePopulation(ctx, population); err != nil {
		return err
	}

	return c.updateScapeSummary(ctx, scapeName, int(result.BestCost))
}

func (c *Client) updateScapeSummary(ctx context.Context, scapeName string, cost int) error {
	summary, ok, err := c.store.GetScapeSummary(ctx, scapeName)
	if err != nil {
		return err
	}
	if !ok {
		summary = model.ScapeSummary{
			VersionedRecord: currentVersions(),
			Name:            scapeName,
			Description:     fmt.Sprintf("best observed cost for scape %s", scapeName),
			BestCost:        cost,
		}
	} else if cost < summary.BestCost {
		summary.BestCost = cost
	}
	return c.store.SaveScapeSummary(ctx, summary)
}

// CostHistory returns the per-generation best costs recorded for a run.
func (c *Client) CostHistory(ctx context.Context, runID string) ([]int, error) {
	history, ok, err := c.store.GetCostHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no cost history for run %s", runID)
	}
	return history, nil
}

// TopGenomes returns the persisted leaderboard for a run.
func (c *Client) TopGenomes(ctx context.Context, runID string) ([]model.TopGenomeRecord, error) {
	top, ok, err := c.store.GetTopGenomes(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no top genomes for run %s", runID)
	}
	return top, nil
}

// Population returns the persisted final population snapshot for a run.
func (c *Client) Population(ctx context.Context, runID string) (model.Population, error) {
	population, ok, err := c.store.GetPopulation(ctx, runID)
	if err != nil {
		return model.Population{}, err
	}
	if !ok {
		return model.Population{}, fmt.Errorf("no population snapshot for run %s", runID)
	}
	return population, nil
}

// ScapeSummary returns the best-cost record for a named scape.
func (c *Client) ScapeSummary(ctx context.Context, name string) (model.ScapeSummary, error) {
	summary, ok, err := c.store.GetScapeSummary(ctx, name)
	if err != nil {
		return model.ScapeSummary{}, err
	}
	if !ok {
		return model.ScapeSummary{}, fmt.Errorf("no summary for scape %s", name)
	}
	return summary, nil
}

// LoadGrid reads a maze grid for a request without running a search; the
// CLI uses it to render mazes.
func LoadGrid(req RunRequest) (*maze.Grid, string, error) {
	applyRunDefaults(&req)
	return loadGrid(req)
}

func applyRunDefaults(req *RunRequest) {
	if req.MazeSize == 0 {
		req.MazeSize = DefaultMazeSize
	}
	if req.Population == 0 {
		req.Population = DefaultPopulation
	}
	if req.GenomeLength == 0 {
		req.GenomeLength = DefaultGenomeLength
	}
	if req.Generations == 0 {
		req.Generations = DefaultGenerations
	}
	if req.Workers == 0 {
		req.Workers = DefaultWorkers
	}
}

func loadGrid(req RunRequest) (*maze.Grid, string, error) {
	if req.MazePath == "" {
		grid, err := maze.New(req.MazeSize)
		if err != nil {
			return nil, "", err
		}
		return grid, fmt.Sprintf("open-%d", req.MazeSize), nil
	}

	data, err := os.ReadFile(req.MazePath)
	if err != nil {
		return nil, "", fmt.Errorf("read maze: %w", err)
	}
	grid, err := maze.Parse(string(data))
	if err != nil {
		return nil, "", fmt.Errorf("parse maze %s: %w", req.MazePath, err)
	}
	base := filepath.Base(req.MazePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return grid, name, nil
}

func stamp(genome model.Genome) model.Genome {
	genome.VersionedRecord = currentVersions()
	return genome
}

func currentVersions() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}
}
