package domain

import "time"

// GamePhase describes the current tactical phase of the match.
type GamePhase string

const (
	PhaseAttack     GamePhase = "attack"
	PhaseDefense    GamePhase = "defense"
	PhaseTransition GamePhase = "transition"
	PhaseSetPiece   GamePhase = "set_piece"
)

// ValidGamePhase reports whether s names a known phase.
func ValidGamePhase(s string) bool {
	switch GamePhase(s) {
	case PhaseAttack, PhaseDefense, PhaseTransition, PhaseSetPiece:
		return true
	}
	return false
}

// PressureLevel grades how tightly an agent in possession is being closed down.
type PressureLevel string

const (
	PressureNone    PressureLevel = "none"
	PressureLow     PressureLevel = "low"
	PressureMedium  PressureLevel = "medium"
	PressureHigh    PressureLevel = "high"
	PressureExtreme PressureLevel = "extreme"
)

// AtLeast reports whether p is as severe as min. Severity ordering:
// none < low < medium < high < extreme.
func (p PressureLevel) AtLeast(min PressureLevel) bool {
	return p.rank() >= min.rank()
}

func (p PressureLevel) rank() int {
	switch p {
	case PressureLow:
		return 1
	case PressureMedium:
		return 2
	case PressureHigh:
		return 3
	case PressureExtreme:
		return 4
	default:
		return 0
	}
}

// GameContext is the per-tick immutable snapshot of shared match state.
// It is built once at the start of a tick and handed to every agent's
// decision call unchanged.
type GameContext struct {
	BallPosition Position      `json:"ball_position"`
	Phase        GamePhase     `json:"game_phase"`
	Pressure     PressureLevel `json:"pressure_level"`
	Elapsed      time.Duration `json:"elapsed"`
}
