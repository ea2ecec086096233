package domain

import (
	"context"

	"github.com/google/uuid"
)

// MatchStore persists match records.
type MatchStore interface {
	Create(ctx context.Context, m *Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*Match, error)
	List(ctx context.Context, limit int) ([]Match, error)
}

// EventStore persists process-mining log events.
type EventStore interface {
	InsertBatch(ctx context.Context, matchID uuid.UUID, events []LogEvent) (int64, error)
	ListByMatch(ctx context.Context, matchID uuid.UUID) ([]LogEvent, error)
	ListByCase(ctx context.Context, matchID uuid.UUID, caseID string) ([]LogEvent, error)
}

// VerdictStore persists obligation violations.
type VerdictStore interface {
	InsertBatch(ctx context.Context, matchID uuid.UUID, violations []Violation) (int64, error)
	ListByMatch(ctx context.Context, matchID uuid.UUID) ([]Violation, error)
}

// PossessionStore persists possession feature vectors and answers
// nearest-neighbour queries over them.
type PossessionStore interface {
	Upsert(ctx context.Context, v *PossessionVector) error
	Similar(ctx context.Context, matchID uuid.UUID, caseID string, limit int) ([]SimilarPossession, error)
}
