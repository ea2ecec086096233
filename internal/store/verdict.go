package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchproc/pitchproc/internal/domain"
)

type VerdictStore struct {
	db *pgxpool.Pool
}

func NewVerdictStore(db *pgxpool.Pool) *VerdictStore {
	return &VerdictStore{db: db}
}

var _ domain.VerdictStore = (*VerdictStore)(nil)

func (s *VerdictStore) InsertBatch(ctx context.Context, matchID uuid.UUID, violations []domain.Violation) (int64, error) {
	var inserted int64
	for _, v := range violations {
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
		_, err := s.db.Exec(ctx,
			`INSERT INTO verdicts (id, match_id, agent_id, role, obligation, kind, trace_index, timestamp_ms, detail)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			v.ID, matchID, v.AgentID, string(v.Role), v.Obligation, string(v.Kind),
			v.TraceIndex, v.Timestamp.Milliseconds(), v.Detail,
		)
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (s *VerdictStore) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.Violation, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, match_id, agent_id, role, obligation, kind, trace_index, timestamp_ms, detail
		 FROM verdicts WHERE match_id = $1 ORDER BY timestamp_ms, agent_id`,
		matchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Violation
	for rows.Next() {
		var v domain.Violation
		var role, kind string
		var timestampMS int64
		if err := rows.Scan(&v.ID, &v.MatchID, &v.AgentID, &role, &v.Obligation, &kind,
			&v.TraceIndex, &timestampMS, &v.Detail); err != nil {
			return nil, err
		}
		v.Role = domain.Role(role)
		v.Kind = domain.ObligationKind(kind)
		v.Timestamp = time.Duration(timestampMS) * time.Millisecond
		out = append(out, v)
	}
	return out, rows.Err()
}
