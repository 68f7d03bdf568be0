package evo

import (
	"context"
	"fmt"
	"math/rand"

	"mazevolve/internal/model"
	"mazevolve/internal/pool"
	"mazevolve/internal/scape"
)

// CostGoal optionally stops a run early once a generation's best cost is at
// or below Cost. The zero value keeps the run going for the configured
// number of generations.
type CostGoal struct {
	Enabled bool
	Cost    scape.Cost
}

// MonitorConfig drives one evolutionary run. All sizes are validated in
// NewPopulationMonitor before any generation executes.
type MonitorConfig struct {
	Scape          scape.Scape
	PopulationSize int
	GenomeLength   int
	Generations    int
	Workers        int
	Seed           int64
	CostGoal       CostGoal

	// OnGeneration, when set, observes each generation's full cost table
	// after the evaluation barrier. The slice is reused between
	// generations; observers that retain it must copy.
	OnGeneration func(generation int, costs []scape.Cost, best scape.Cost)
}

// GenerationDiagnostics summarizes the cost table of one generation.
type GenerationDiagnostics struct {
	Generation int        `json:"generation"`
	BestCost   scape.Cost `json:"best_cost"`
	MeanCost   float64    `json:"mean_cost"`
	WorstCost  scape.Cost `json:"worst_cost"`
}

// RunResult reports a completed run.
type RunResult struct {
	BestByGeneration []scape.Cost
	Diagnostics      []GenerationDiagnostics
	BestCost         scape.Cost
	BestGenome       model.Genome
	FinalPopulation  []ScoredGenome
	Generations      int
}

// PopulationMonitor runs the generation cycle: parallel evaluation, stable
// selection, mirror-pair crossover and mutation, population replacement.
// All randomness flows through the monitor's own generator on the
// orchestrating goroutine; workers only execute the pure evaluator.
type PopulationMonitor struct {
	cfg MonitorConfig
	rng *rand.Rand
}

func NewPopulationMonitor(cfg MonitorConfig) (*PopulationMonitor, error) {
	if cfg.Scape == nil {
		return nil, fmt.Errorf("scape is required")
	}
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population size must be > 0, got %d", cfg.PopulationSize)
	}
	if cfg.PopulationSize%2 != 0 {
		return nil, fmt.Errorf("population size must be even for mirror pairing, got %d", cfg.PopulationSize)
	}
	if cfg.GenomeLength <= 0 {
		return nil, fmt.Errorf("genome length must be > 0, got %d", cfg.GenomeLength)
	}
	if cfg.Generations <= 0 {
		return nil, fmt.Errorf("generations must be > 0, got %d", cfg.Generations)
	}
	if cfg.Workers <= 0 {
		return nil, fmt.Errorf("worker count must be > 0, got %d", cfg.Workers)
	}
	return &PopulationMonitor{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Run executes the configured number of generations starting from initial
// and returns the run's history together with the best genome ever
// observed. Evaluation is deterministic, so a given seed and initial
// population produce the same result for any worker count.
func (m *PopulationMonitor) Run(ctx context.Context, initial []model.Genome) (RunResult, error) {
	if len(initial) != m.cfg.PopulationSize {
		return RunResult{}, fmt.Errorf("initial population mismatch: got=%d want=%d", len(initial), m.cfg.PopulationSize)
	}
	for i, genome := range initial {
		if len(genome.Moves) != m.cfg.GenomeLength {
			return RunResult{}, fmt.Errorf("initial genome %d has length %d, want %d", i, len(genome.Moves), m.cfg.GenomeLength)
		}
	}

	workers, err := pool.New(m.cfg.Workers)
	if err != nil {
		return RunResult{}, err
	}
	defer workers.Shutdown()

	population := make([]model.Genome, len(initial))
	copy(population, initial)

	result := RunResult{
		BestByGeneration: make([]scape.Cost, 0, m.cfg.Generations),
		Diagnostics:      make([]GenerationDiagnostics, 0, m.cfg.Generations),
	}
	haveBest := false
	costs := make([]scape.Cost, m.cfg.PopulationSize)

	for gen := 0; gen < m.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return RunResult{}, err
		}

		if err := m.evaluatePopulation(ctx, workers, population, costs); err != nil {
			return RunResult{}, err
		}

		scored := make([]ScoredGenome, len(population))
		bestIdx := 0
		for i := range population {
			scored[i] = ScoredGenome{Genome: population[i], Cost: costs[i]}
			if costs[i] < costs[bestIdx] {
				bestIdx = i
			}
		}

		diag := summarizeGeneration(costs, gen)
		result.BestByGeneration = append(result.BestByGeneration, diag.BestCost)
		result.Diagnostics = append(result.Diagnostics, diag)
		result.FinalPopulation = scored
		result.Generations = gen + 1

		if !haveBest || costs[bestIdx] < result.BestCost {
			result.BestCost = costs[bestIdx]
			result.BestGenome = population[bestIdx].Clone(population[bestIdx].ID)
			haveBest = true
		}

		if m.cfg.OnGeneration != nil {
			m.cfg.OnGeneration(gen, costs, diag.BestCost)
		}
		if m.cfg.CostGoal.Enabled && diag.BestCost <= m.cfg.CostGoal.Cost {
			break
		}
		if gen == m.cfg.Generations-1 {
			break
		}

		elite, err := SelectElite(scored, m.cfg.PopulationSize/2)
		if err != nil {
			return RunResult{}, err
		}
		population, err = AssembleNextGeneration(m.rng, elite, gen)
		if err != nil {
			return RunResult{}, err
		}
	}

	return result, nil
}

// evaluatePopulation fans one task per genome out to the pool and blocks
// until every evaluation has completed: a full barrier, not a streaming
// pipeline. Each task writes only its own index of costs, so the table
// stays aligned with the population without further synchronization.
func (m *PopulationMonitor) evaluatePopulation(ctx context.Context, workers *pool.Pool, population []model.Genome, costs []scape.Cost) error {
	tasks := make([]*pool.Task, len(population))
	for i := range population {
		i := i
		genome := population[i]
		task, err := workers.Submit(func() error {
			cost, err := m.cfg.Scape.Evaluate(ctx, genome)
			if err != nil {
				return fmt.Errorf("evaluate genome %s: %w", genome.ID, err)
			}
			costs[i] = cost
			return nil
		})
		if err != nil {
			return err
		}
		tasks[i] = task
	}

	var firstErr error
	for _, task := range tasks {
		if err := task.Wait(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func summarizeGeneration(costs []scape.Cost, generation int) GenerationDiagnostics {
	best, worst := costs[0], costs[0]
	total := 0
	for _, c := range costs {
		total += int(c)
		if c < best {
			best = c
		}
		if c > worst {
			worst = c
		}
	}
	return GenerationDiagnostics{
		Generation: generation,
		BestCost:   best,
		MeanCost:   float64(total) / float64(len(costs)),
		WorstCost:  worst,
	}
}
