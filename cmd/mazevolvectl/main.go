package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"mazevolve/internal/storage"
	mazeapi "mazevolve/pkg/mazevolve"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "fitness":
		return runFitness(ctx, args[1:])
	case "top":
		return runTop(ctx, args[1:])
	case "population":
		return runPopulation(ctx, args[1:])
	case "scape-summary":
		return runScapeSummary(ctx, args[1:])
	case "maze":
		return runMaze(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func storeFlags(fs *flag.FlagSet) (storeKind, dbPath *string) {
	storeKind = fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath = fs.String("db-path", "mazevolve.db", "sqlite database path")
	return storeKind, dbPath
}

func newClient(ctx context.Context, storeKind, dbPath string) (*mazeapi.Client, error) {
	return mazeapi.NewClient(ctx, mazeapi.Options{StoreKind: storeKind, DBPath: dbPath})
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	runID := fs.String("run-id", "", "run identifier (random when empty)")
	mazePath := fs.String("maze", "", "maze text file; empty uses an open grid")
	size := fs.Int("size", mazeapi.DefaultMazeSize, "open maze dimension")
	pop := fs.Int("pop", mazeapi.DefaultPopulation, "population size (even)")
	genomeLength := fs.Int("genome-length", mazeapi.DefaultGenomeLength, "moves per genome")
	gens := fs.Int("gens", mazeapi.DefaultGenerations, "generation count")
	workers := fs.Int("workers", mazeapi.DefaultWorkers, "evaluation workers")
	seed := fs.Int64("seed", 0, "random seed")
	goal := fs.Int("goal", -1, "stop once best cost reaches this value; negative disables")
	progressEvery := fs.Int("progress-every", 0, "print best cost every n generations; 0 disables")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	req := mazeapi.RunRequest{
		RunID:        *runID,
		MazePath:     *mazePath,
		MazeSize:     *size,
		Population:   *pop,
		GenomeLength: *genomeLength,
		Generations:  *gens,
		Workers:      *workers,
		Seed:         *seed,
	}
	if *goal >= 0 {
		req.StopAtCost = true
		req.CostGoal = *goal
	}
	if *progressEvery > 0 {
		every := *progressEvery
		req.OnGeneration = func(generation, best int) {
			if generation%every == 0 {
				fmt.Printf("generation %d best=%d\n", generation, best)
			}
		}
	}

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run %s scape=%s generations=%d best=%d target_reached=%v\n",
		summary.RunID, summary.Scape, summary.Generations, summary.BestCost, summary.TargetReached)
	fmt.Printf("best genome: %s\n", summary.BestGenome)
	return nil
}

func runFitness(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fitness", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	runID := fs.String("run-id", "", "run identifier")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("fitness requires -run-id")
	}

	client, err := newClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.CostHistory(ctx, *runID)
	if err != nil {
		return err
	}
	for generation, best := range history {
		fmt.Printf("%d\t%d\n", generation, best)
	}
	return nil
}

func runTop(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("top", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	runID := fs.String("run-id", "", "run identifier")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("top requires -run-id")
	}

	client, err := newClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	top, err := client.TopGenomes(ctx, *runID)
	if err != nil {
		return err
	}
	for _, record := range top {
		fmt.Printf("#%d cost=%d %s\n", record.Rank, record.Cost, record.Genome.Sequence())
	}
	return nil
}

func runPopulation(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("population", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	runID := fs.String("run-id", "", "run identifier")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return usageError("population requires -run-id")
	}

	client, err := newClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	population, err := client.Population(ctx, *runID)
	if err != nil {
		return err
	}
	fmt.Printf("population %s generation=%d genomes=%d\n",
		population.ID, population.Generation, len(population.GenomeIDs))
	return nil
}

func runScapeSummary(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("scape-summary", flag.ContinueOnError)
	storeKind, dbPath := storeFlags(fs)
	name := fs.String("name", "", "scape name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return usageError("scape-summary requires -name")
	}

	client, err := newClient(ctx, *storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.ScapeSummary(ctx, *name)
	if err != nil {
		return err
	}
	fmt.Printf("scape %s best=%d (%s)\n", summary.Name, summary.BestCost, summary.Description)
	return nil
}

func runMaze(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("maze", flag.ContinueOnError)
	mazePath := fs.String("maze", "", "maze text file; empty uses an open grid")
	size := fs.Int("size", mazeapi.DefaultMazeSize, "open maze dimension")
	if err := fs.Parse(args); err != nil {
		return err
	}

	grid, name, err := mazeapi.LoadGrid(mazeapi.RunRequest{MazePath: *mazePath, MazeSize: *size})
	if err != nil {
		return err
	}
	fmt.Printf("maze %s (%dx%d)\n", name, grid.Size(), grid.Size())
	fmt.Print(grid.String())
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: mazevolvectl <init|run|fitness|top|population|scape-summary|maze> [flags]", msg)
}
