package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pitchproc/pitchproc/internal/domain"
)

type EventStore struct {
	db *pgxpool.Pool
}

func NewEventStore(db *pgxpool.Pool) *EventStore {
	return &EventStore{db: db}
}

var _ domain.EventStore = (*EventStore)(nil)

// InsertBatch bulk-loads one match's event log. A 90 minute match
// produces tens of thousands of events, so this uses COPY rather than
// row-at-a-time inserts.
func (s *EventStore) InsertBatch(ctx context.Context, matchID uuid.UUID, events []domain.LogEvent) (int64, error) {
	rows := make([][]any, len(events))
	for i, ev := range events {
		if ev.ID == uuid.Nil {
			ev.ID = uuid.New()
		}
		rows[i] = []any{
			ev.ID, matchID, ev.CaseID, ev.ProcessType, ev.EventID,
			ev.Timestamp.Milliseconds(), ev.Sequence, string(ev.Activity), ev.Result,
			ev.PlayerID, string(ev.PlayerRole), string(ev.Team),
			ev.StartX, ev.StartY, ev.EndX, ev.EndY,
			ev.PitchZone, ev.SubZone, string(ev.Pressure), ev.GameState,
			ev.TimeRemaining.Milliseconds(), ev.Distance, ev.XGAdded,
		}
	}
	return s.db.CopyFrom(ctx,
		pgx.Identifier{"log_events"},
		[]string{
			"id", "match_id", "case_id", "process_type", "event_id",
			"timestamp_ms", "sequence_number", "activity", "activity_result",
			"player_id", "player_role", "team",
			"start_x", "start_y", "end_x", "end_y",
			"pitch_zone", "sub_zone", "pressure_level", "game_state",
			"time_remaining_ms", "distance_covered", "xg_added",
		},
		pgx.CopyFromRows(rows),
	)
}

func (s *EventStore) ListByMatch(ctx context.Context, matchID uuid.UUID) ([]domain.LogEvent, error) {
	rows, err := s.db.Query(ctx,
		selectEvents+` WHERE match_id = $1 ORDER BY timestamp_ms, event_id`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (s *EventStore) ListByCase(ctx context.Context, matchID uuid.UUID, caseID string) ([]domain.LogEvent, error) {
	rows, err := s.db.Query(ctx,
		selectEvents+` WHERE match_id = $1 AND case_id = $2 ORDER BY sequence_number`, matchID, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

const selectEvents = `SELECT id, match_id, case_id, process_type, event_id,
	timestamp_ms, sequence_number, activity, activity_result,
	player_id, player_role, team,
	start_x, start_y, end_x, end_y,
	pitch_zone, sub_zone, pressure_level, game_state,
	time_remaining_ms, distance_covered, xg_added
 FROM log_events`

func scanEvents(rows pgx.Rows) ([]domain.LogEvent, error) {
	var events []domain.LogEvent
	for rows.Next() {
		var ev domain.LogEvent
		var timestampMS, remainingMS int64
		var activity, role, team, pressure string
		if err := rows.Scan(
			&ev.ID, &ev.MatchID, &ev.CaseID, &ev.ProcessType, &ev.EventID,
			&timestampMS, &ev.Sequence, &activity, &ev.Result,
			&ev.PlayerID, &role, &team,
			&ev.StartX, &ev.StartY, &ev.EndX, &ev.EndY,
			&ev.PitchZone, &ev.SubZone, &pressure, &ev.GameState,
			&remainingMS, &ev.Distance, &ev.XGAdded,
		); err != nil {
			return nil, err
		}
		ev.Timestamp = time.Duration(timestampMS) * time.Millisecond
		ev.TimeRemaining = time.Duration(remainingMS) * time.Millisecond
		ev.Activity = domain.Action(activity)
		ev.PlayerRole = domain.Role(role)
		ev.Team = domain.Team(team)
		ev.Pressure = domain.PressureLevel(pressure)
		events = append(events, ev)
	}
	return events, rows.Err()
}
