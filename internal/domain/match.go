package domain

import (
	"time"

	"github.com/google/uuid"
)

// Match is the persisted record of one simulated match.
type Match struct {
	ID        uuid.UUID     `json:"id"`
	Seed      int64         `json:"seed"`
	Duration  time.Duration `json:"duration"`
	HomeScore int           `json:"home_score"`
	AwayScore int           `json:"away_score"`
	CreatedAt time.Time     `json:"created_at"`
}

// Violation is one recorded breach of a role obligation. Violations are
// domain-level faults, not program errors: the match continues and the
// violation is kept for post-hoc tactical analysis.
type Violation struct {
	ID         uuid.UUID      `json:"id,omitempty"`
	MatchID    uuid.UUID      `json:"match_id,omitempty"`
	AgentID    string         `json:"agent_id"`
	Role       Role           `json:"role"`
	Obligation string         `json:"obligation"`
	Kind       ObligationKind `json:"kind"`
	TraceIndex int            `json:"trace_index"`
	Timestamp  time.Duration  `json:"timestamp"`
	Detail     string         `json:"detail,omitempty"`
}

// LogEvent is one persisted process-mining event. The column set follows
// the research event schema (possession-cased, spatial and tactical
// context included) so exported logs feed process-discovery tooling
// directly.
type LogEvent struct {
	ID            uuid.UUID     `json:"id"`
	MatchID       uuid.UUID     `json:"match_id,omitempty"`
	CaseID        string        `json:"case_id"`
	ProcessType   string        `json:"process_type"`
	EventID       string        `json:"event_id"`
	Timestamp     time.Duration `json:"timestamp"`
	Sequence      int           `json:"sequence_number"`
	Activity      Action        `json:"activity"`
	Result        string        `json:"activity_result"`
	PlayerID      string        `json:"player_id"`
	PlayerRole    Role          `json:"player_role"`
	Team          Team          `json:"team"`
	StartX        float64       `json:"start_x"`
	StartY        float64       `json:"start_y"`
	EndX          float64       `json:"end_x"`
	EndY          float64       `json:"end_y"`
	PitchZone     string        `json:"pitch_zone"`
	SubZone       string        `json:"sub_zone"`
	Pressure      PressureLevel `json:"pressure_level"`
	GameState     string        `json:"game_state"`
	TimeRemaining time.Duration `json:"time_remaining"`
	Distance      float64       `json:"distance_covered"`
	XGAdded       float64       `json:"xg_added"`
}

// PossessionVector is a fixed-length feature vector summarizing one
// possession case, stored for similarity search of tactical patterns.
type PossessionVector struct {
	MatchID  uuid.UUID `json:"match_id"`
	CaseID   string    `json:"case_id"`
	Team     Team      `json:"team"`
	Features []float32 `json:"features"`
}

// SimilarPossession is a similarity-search hit.
type SimilarPossession struct {
	PossessionVector
	Distance float64 `json:"distance"`
}
