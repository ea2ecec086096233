// Command simulate runs one match offline and writes its artifacts to
// disk: the process-mining event log as CSV and, optionally, per-agent
// action traces as JSONL for later property evaluation.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pitchproc/pitchproc/internal/analysis"
	"github.com/pitchproc/pitchproc/internal/config"
	"github.com/pitchproc/pitchproc/internal/eventlog"
	"github.com/pitchproc/pitchproc/internal/policy"
	"github.com/pitchproc/pitchproc/internal/sim"
	"github.com/pitchproc/pitchproc/internal/store"
)

func main() {
	_ = config.Load()

	var (
		minutes  = flag.Int("minutes", config.MatchMinutes(), "match length in minutes")
		seed     = flag.Int64("seed", config.MatchSeed(), "simulation seed")
		csvPath  = flag.String("csv", "match_events.csv", "event log CSV output path")
		traceDir = flag.String("traces", "", "directory for per-agent JSONL traces (empty to skip)")
		persist  = flag.Bool("persist", false, "store the match in Postgres (requires DATABASE_URL)")
		quiet    = flag.Bool("quiet", false, "suppress per-event logging")
	)
	flag.Parse()

	logger, _ := zap.NewProduction()
	if *quiet {
		logger = zap.NewNop()
	}
	defer func() { _ = logger.Sync() }()

	engine, err := sim.NewEngine(sim.Config{
		Duration: time.Duration(*minutes) * time.Minute,
		Seed:     *seed,
		Policy:   policy.DefaultConfig(),
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "setup failed:", err)
		os.Exit(1)
	}

	result, err := engine.Run(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "simulation failed:", err)
		os.Exit(1)
	}

	if err := writeCSV(*csvPath, result); err != nil {
		fmt.Fprintln(os.Stderr, "writing event log:", err)
		os.Exit(1)
	}

	if *traceDir != "" {
		if err := writeTraces(*traceDir, result); err != nil {
			fmt.Fprintln(os.Stderr, "writing traces:", err)
			os.Exit(1)
		}
	}

	if *persist {
		if err := persistMatch(context.Background(), result); err != nil {
			fmt.Fprintln(os.Stderr, "persisting match:", err)
			os.Exit(1)
		}
	}

	summary := analysis.Summarize(result.Events)

	fmt.Printf("final score  home %d - %d away\n", result.Match.HomeScore, result.Match.AwayScore)
	fmt.Printf("events       %d across %d possessions\n", summary.Events, summary.Cases)
	fmt.Printf("passes       home %d, away %d\n", result.Stats.Passes["home"], result.Stats.Passes["away"])
	fmt.Printf("shots        home %d, away %d\n", result.Stats.Shots["home"], result.Stats.Shots["away"])
	fmt.Printf("violations   %d\n", len(result.Violations))
	for _, report := range result.Reports {
		if !report.Passed() {
			fmt.Printf("  %s (%s): %d violation(s)\n", report.AgentID, report.Role, len(report.Violations))
		}
	}
	fmt.Printf("event log    %s\n", *csvPath)
	if *persist {
		fmt.Printf("match id     %s\n", result.Match.ID)
	}
}

func persistMatch(ctx context.Context, result *sim.Result) error {
	dbURL := config.DatabaseURL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := store.NewMatchStore(pool).Create(ctx, &result.Match); err != nil {
		return err
	}
	if _, err := store.NewEventStore(pool).InsertBatch(ctx, result.Match.ID, result.Events); err != nil {
		return err
	}
	if _, err := store.NewVerdictStore(pool).InsertBatch(ctx, result.Match.ID, result.Violations); err != nil {
		return err
	}
	possessions := store.NewPossessionStore(pool)
	vectors := analysis.Vectorize(result.Match.ID, result.Events)
	for i := range vectors {
		if err := possessions.Upsert(ctx, &vectors[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return eventlog.WriteCSV(f, result.Events)
}

func writeTraces(dir string, result *sim.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for agentID, trace := range result.Traces {
		f, err := os.Create(filepath.Join(dir, agentID+".jsonl"))
		if err != nil {
			return err
		}
		if err := eventlog.WriteTraceJSONL(f, trace); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
