package policy

import (
	"math"

	"github.com/pitchproc/pitchproc/internal/domain"
)

// ShootingAngle classifies the shot opportunity from the current spot.
type ShootingAngle string

const (
	AngleFavorable ShootingAngle = "favorable"
	AngleLow       ShootingAngle = "low"
)

// StrikerBeliefs is the striker's typed belief record, refreshed from
// the pitch geometry on every decision.
type StrikerBeliefs struct {
	GoalDistance   float64
	ShootingAngle  ShootingAngle
	MarkerDistance float64
	Pressure       domain.PressureLevel
}

// Striker gates its decisions on distance to goal and shooting angle:
// shoot when both favor it, improve the angle when only distance does,
// otherwise link up play.
type Striker struct {
	base
	Beliefs *StrikerBeliefs
}

func strikerProfile() Profile {
	return Profile{
		Goals: []string{"score_goals", "create_space", "hold_up_play"},
		Plans: map[string][]domain.Action{
			"scoring":  {domain.ActionShoot, domain.ActionDribbleForward},
			"creating": {domain.ActionRunBehind, domain.ActionFindSpace},
			"linking":  {domain.ActionHoldUp, domain.ActionLayOff},
		},
	}
}

func newStriker(b base) *Striker {
	return &Striker{base: b, Beliefs: &StrikerBeliefs{GoalDistance: domain.PitchLength, MarkerDistance: domain.PitchLength}}
}

func (s *Striker) Role() domain.Role { return domain.RoleStriker }

func (s *Striker) Decide(ctx *domain.GameContext, visible []domain.Snapshot) domain.Action {
	s.refreshBeliefs(visible)
	if s.state.HasBall {
		return s.decideWithBall(visible)
	}
	return s.decideWithoutBall(ctx)
}

func (s *Striker) refreshBeliefs(visible []domain.Snapshot) {
	s.Beliefs.Pressure = s.pressure(visible)
	goal := s.opponentGoal()
	s.Beliefs.GoalDistance = s.state.Position.DistanceTo(goal)

	// Central corridor in front of goal reads as a favorable angle.
	if math.Abs(s.state.Position.Y-goal.Y) <= s.cfg.AngleHalfWidth {
		s.Beliefs.ShootingAngle = AngleFavorable
	} else {
		s.Beliefs.ShootingAngle = AngleLow
	}

	s.Beliefs.MarkerDistance = domain.PitchLength
	for _, o := range visible {
		if o.Team == s.state.Team {
			continue
		}
		if d := s.state.Position.DistanceTo(o.Position); d < s.Beliefs.MarkerDistance {
			s.Beliefs.MarkerDistance = d
		}
	}
}

func (s *Striker) decideWithBall(visible []domain.Snapshot) domain.Action {
	inRange := s.Beliefs.GoalDistance < s.cfg.ShootingRange
	switch {
	case inRange && s.Beliefs.ShootingAngle == AngleFavorable:
		return domain.ActionShoot
	case inRange:
		// Decent distance, poor angle: carry the ball to open one.
		return domain.ActionDribbleForward
	}

	for _, t := range s.teammates(visible) {
		if s.progress(t.Position) > s.cfg.LayOffProgress {
			return domain.ActionLayOff
		}
	}
	return domain.ActionHoldUp
}

func (s *Striker) decideWithoutBall(ctx *domain.GameContext) domain.Action {
	if ctx.Phase == domain.PhaseAttack {
		if s.progress(s.state.Position) <= s.cfg.RunBehindLimit {
			return domain.ActionRunBehind
		}
		return domain.ActionFindSpace
	}
	return domain.ActionPressDefender
}

// InScoringPosition reports whether the striker's current spot warrants
// a shot. Exposed for trace flagging.
func (s *Striker) InScoringPosition() bool {
	return s.Beliefs.GoalDistance < s.cfg.ShootingRange && s.Beliefs.ShootingAngle == AngleFavorable
}
