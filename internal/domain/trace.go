package domain

import "time"

// TraceFlags carries the contextual facts recorded alongside an action
// for the benefit of obligation predicates. They are captured at the
// moment the action was emitted, before its effects were applied.
type TraceFlags struct {
	HasBall         bool          `json:"has_ball"`
	GainedBall      bool          `json:"gained_ball"`
	LostBall        bool          `json:"lost_ball"`
	Phase           GamePhase     `json:"game_phase"`
	Pressure        PressureLevel `json:"pressure_level"`
	Position        Position      `json:"position"`
	InLegalZone     bool          `json:"in_legal_zone"`
	ShotOnTarget    bool          `json:"shot_on_target"`
	ScoringPosition bool          `json:"scoring_position"`
	AngleLow        bool          `json:"angle_low"`
	OwnThird        bool          `json:"own_third"`
}

// TraceEvent is one entry in a per-agent ordered action trace.
type TraceEvent struct {
	Seq       int           `json:"seq"`
	Timestamp time.Duration `json:"timestamp"`
	AgentID   string        `json:"agent_id"`
	Role      Role          `json:"role"`
	Action    Action        `json:"action"`
	Flags     TraceFlags    `json:"flags"`
}
