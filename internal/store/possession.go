package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/pitchproc/pitchproc/internal/domain"
)

type PossessionStore struct {
	db *pgxpool.Pool
}

func NewPossessionStore(db *pgxpool.Pool) *PossessionStore {
	return &PossessionStore{db: db}
}

var _ domain.PossessionStore = (*PossessionStore)(nil)

func (s *PossessionStore) Upsert(ctx context.Context, v *domain.PossessionVector) error {
	vec := pgvector.NewVector(v.Features)
	_, err := s.db.Exec(ctx,
		`INSERT INTO possession_vectors (match_id, case_id, team, features)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (match_id, case_id) DO UPDATE SET team = $3, features = $4`,
		v.MatchID, v.CaseID, string(v.Team), vec,
	)
	if err != nil {
		return fmt.Errorf("upsert possession vector: %w", err)
	}
	return nil
}

// Similar returns the possessions closest in feature space to the
// given case, across all stored matches, nearest first. The reference
// case itself is excluded.
func (s *PossessionStore) Similar(ctx context.Context, matchID uuid.UUID, caseID string, limit int) ([]domain.SimilarPossession, error) {
	if limit <= 0 {
		limit = 10
	}
	var ref pgvector.Vector
	err := s.db.QueryRow(ctx,
		`SELECT features FROM possession_vectors WHERE match_id = $1 AND case_id = $2`,
		matchID, caseID,
	).Scan(&ref)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch reference vector: %w", err)
	}

	rows, err := s.db.Query(ctx,
		`SELECT match_id, case_id, team, features, features <=> $1 AS distance
		 FROM possession_vectors
		 WHERE NOT (match_id = $2 AND case_id = $3)
		 ORDER BY distance
		 LIMIT $4`,
		ref, matchID, caseID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("similar possessions query: %w", err)
	}
	defer rows.Close()

	var out []domain.SimilarPossession
	for rows.Next() {
		var sp domain.SimilarPossession
		var team string
		var features pgvector.Vector
		if err := rows.Scan(&sp.MatchID, &sp.CaseID, &team, &features, &sp.Distance); err != nil {
			return nil, err
		}
		sp.Team = domain.Team(team)
		sp.Features = features.Slice()
		out = append(out, sp)
	}
	return out, rows.Err()
}
