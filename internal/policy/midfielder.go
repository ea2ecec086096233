package policy

import (
	"github.com/pitchproc/pitchproc/internal/domain"
)

// MidfielderBeliefs is the midfielder's typed belief record.
type MidfielderBeliefs struct {
	PassingOptions        int  // advanced teammates seen on the last decision
	SupportNeeded         bool // ball carrier lacked options last tick
	TransitionOpportunity bool
	Pressure              domain.PressureLevel
}

// Midfielder balances box-to-box duties: ambition scales with position
// along the attacking axis, and off the ball it works to stay a viable
// passing option.
type Midfielder struct {
	base
	Beliefs *MidfielderBeliefs
}

func midfielderProfile() Profile {
	return Profile{
		Goals: []string{"control_tempo", "create_chances", "support_defense"},
		Plans: map[string][]domain.Action{
			"attacking":   {domain.ActionThroughPass, domain.ActionSupportRun},
			"defending":   {domain.ActionPress, domain.ActionTrackBack},
			"circulation": {domain.ActionSwitchPlay, domain.ActionRetainPossession, domain.ActionSafePass},
		},
	}
}

func newMidfielder(b base) *Midfielder {
	return &Midfielder{base: b, Beliefs: &MidfielderBeliefs{}}
}

func (m *Midfielder) Role() domain.Role { return domain.RoleMidfielder }

func (m *Midfielder) Decide(ctx *domain.GameContext, visible []domain.Snapshot) domain.Action {
	m.Beliefs.Pressure = m.pressure(visible)
	if m.state.HasBall {
		return m.decideWithBall(visible)
	}
	return m.decideWithoutBall(ctx)
}

func (m *Midfielder) decideWithBall(visible []domain.Snapshot) domain.Action {
	advanced := 0
	for _, t := range m.teammates(visible) {
		if m.aheadBy(t.Position, 0) {
			advanced++
		}
	}
	m.Beliefs.PassingOptions = advanced

	prog := m.progress(m.state.Position)
	switch {
	case prog > m.cfg.AttackingThird:
		if advanced > 0 {
			return domain.ActionThroughPass
		}
		return domain.ActionSupportRun
	case prog > m.cfg.MiddleThird:
		if advanced >= 2 {
			return domain.ActionSwitchPlay
		}
		return domain.ActionRetainPossession
	default:
		// Own third: no risky balls this deep.
		return domain.ActionSafePass
	}
}

func (m *Midfielder) decideWithoutBall(ctx *domain.GameContext) domain.Action {
	ballDist := m.state.Position.DistanceTo(ctx.BallPosition)
	switch ctx.Phase {
	case domain.PhaseDefense:
		if ballDist < m.cfg.PressRadius {
			return domain.ActionPress
		}
		return domain.ActionTrackBack
	case domain.PhaseAttack:
		if ballDist < m.cfg.SupportRadius {
			return domain.ActionSupportRun
		}
		return domain.ActionFindSpace
	default:
		// Transition: reposition to stay a passing option.
		return domain.ActionFindSpace
	}
}
