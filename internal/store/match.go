package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchproc/pitchproc/internal/domain"
)

type MatchStore struct {
	db *pgxpool.Pool
}

func NewMatchStore(db *pgxpool.Pool) *MatchStore {
	return &MatchStore{db: db}
}

var _ domain.MatchStore = (*MatchStore)(nil)

func (s *MatchStore) Create(ctx context.Context, m *domain.Match) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO matches (id, seed, duration_ms, home_score, away_score)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		m.ID, m.Seed, m.Duration.Milliseconds(), m.HomeScore, m.AwayScore,
	).Scan(&m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *MatchStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	m := &domain.Match{}
	var durationMS int64
	err := s.db.QueryRow(ctx,
		`SELECT id, seed, duration_ms, home_score, away_score, created_at
		 FROM matches WHERE id = $1`,
		id,
	).Scan(&m.ID, &m.Seed, &durationMS, &m.HomeScore, &m.AwayScore, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	m.Duration = time.Duration(durationMS) * time.Millisecond
	return m, nil
}

func (s *MatchStore) List(ctx context.Context, limit int) ([]domain.Match, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, seed, duration_ms, home_score, away_score, created_at
		 FROM matches ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		var m domain.Match
		var durationMS int64
		if err := rows.Scan(&m.ID, &m.Seed, &durationMS, &m.HomeScore, &m.AwayScore, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Duration = time.Duration(durationMS) * time.Millisecond
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
