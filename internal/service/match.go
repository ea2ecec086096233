// Package service holds the application logic between the HTTP API and
// the stores: running simulations, persisting results, and evaluating
// property declarations over traces.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pitchproc/pitchproc/internal/analysis"
	"github.com/pitchproc/pitchproc/internal/domain"
	"github.com/pitchproc/pitchproc/internal/policy"
	"github.com/pitchproc/pitchproc/internal/sim"
	"github.com/pitchproc/pitchproc/internal/store"
	"go.uber.org/zap"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrCaseNotFound    = errors.New("possession case not found")
	ErrInvalidDuration = errors.New("duration must be between 1 and 120 minutes")
)

type MatchService struct {
	matches     domain.MatchStore
	events      domain.EventStore
	verdicts    domain.VerdictStore
	possessions domain.PossessionStore
	policy      policy.Config
	logger      *zap.Logger
}

func NewMatchService(
	matches domain.MatchStore,
	events domain.EventStore,
	verdicts domain.VerdictStore,
	possessions domain.PossessionStore,
	policyCfg policy.Config,
	logger *zap.Logger,
) *MatchService {
	return &MatchService{
		matches:     matches,
		events:      events,
		verdicts:    verdicts,
		possessions: possessions,
		policy:      policyCfg,
		logger:      logger,
	}
}

// SimulateRequest parameterizes one match run.
type SimulateRequest struct {
	Minutes int   `json:"minutes"`
	Seed    int64 `json:"seed"`
	Persist bool  `json:"persist"`
}

// Simulate runs one match and, when requested, persists the match
// record, its event log, obligation verdicts and possession vectors.
func (s *MatchService) Simulate(ctx context.Context, req SimulateRequest) (*sim.Result, error) {
	if req.Minutes < 1 || req.Minutes > 120 {
		return nil, ErrInvalidDuration
	}

	engine, err := sim.NewEngine(sim.Config{
		Duration: time.Duration(req.Minutes) * time.Minute,
		Seed:     req.Seed,
		Policy:   s.policy,
		Logger:   s.logger,
	})
	if err != nil {
		return nil, err
	}

	result, err := engine.Run(ctx)
	if err != nil {
		return nil, err
	}

	if req.Persist {
		if err := s.persist(ctx, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *MatchService) persist(ctx context.Context, result *sim.Result) error {
	if err := s.matches.Create(ctx, &result.Match); err != nil {
		return err
	}
	inserted, err := s.events.InsertBatch(ctx, result.Match.ID, result.Events)
	if err != nil {
		return err
	}
	if _, err := s.verdicts.InsertBatch(ctx, result.Match.ID, result.Violations); err != nil {
		return err
	}
	for _, v := range analysis.Vectorize(result.Match.ID, result.Events) {
		v := v
		if err := s.possessions.Upsert(ctx, &v); err != nil {
			return err
		}
	}
	s.logger.Info("match persisted",
		zap.String("match_id", result.Match.ID.String()),
		zap.Int64("events", inserted),
		zap.Int("violations", len(result.Violations)))
	return nil
}

func (s *MatchService) Get(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	m, err := s.matches.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *MatchService) List(ctx context.Context, limit int) ([]domain.Match, error) {
	return s.matches.List(ctx, limit)
}

func (s *MatchService) Events(ctx context.Context, matchID uuid.UUID) ([]domain.LogEvent, error) {
	if _, err := s.Get(ctx, matchID); err != nil {
		return nil, err
	}
	return s.events.ListByMatch(ctx, matchID)
}

func (s *MatchService) Verdicts(ctx context.Context, matchID uuid.UUID) ([]domain.Violation, error) {
	if _, err := s.Get(ctx, matchID); err != nil {
		return nil, err
	}
	return s.verdicts.ListByMatch(ctx, matchID)
}

// Summary aggregates a stored match's event log.
func (s *MatchService) Summary(ctx context.Context, matchID uuid.UUID) (*analysis.Summary, error) {
	events, err := s.Events(ctx, matchID)
	if err != nil {
		return nil, err
	}
	summary := analysis.Summarize(events)
	return &summary, nil
}

// SimilarPossessions finds the stored possessions nearest in feature
// space to the given case.
func (s *MatchService) SimilarPossessions(ctx context.Context, matchID uuid.UUID, caseID string, limit int) ([]domain.SimilarPossession, error) {
	out, err := s.possessions.Similar(ctx, matchID, caseID, limit)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return out, nil
}
