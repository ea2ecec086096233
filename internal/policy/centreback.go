package policy

import (
	"github.com/pitchproc/pitchproc/internal/domain"
)

// CentreBackBeliefs is the centre-back's typed belief record.
type CentreBackBeliefs struct {
	DefensiveLine     float64 // axis progress the back line holds
	MarkingAssignment string  // opponent ID currently marked, empty if none
	CoverPartner      string  // partnering centre-back ID, empty if none
	Pressure          domain.PressureLevel
}

// CentreBack plays safety-first: pressure strictly dominates tactical
// ambition, so a risky pass is never attempted under duress.
type CentreBack struct {
	base
	Beliefs *CentreBackBeliefs
}

func centreBackProfile() Profile {
	return Profile{
		Goals: []string{"defend_goal", "win_duels", "start_build_up"},
		Plans: map[string][]domain.Action{
			"defending":   {domain.ActionIntercept, domain.ActionClearBall, domain.ActionTrackRunner},
			"build_up":    {domain.ActionSafePass, domain.ActionForwardPass, domain.ActionLongPass},
			"positioning": {domain.ActionSupportRun, domain.ActionTrackRunner},
		},
	}
}

func newCentreBack(b base) *CentreBack {
	return &CentreBack{base: b, Beliefs: &CentreBackBeliefs{DefensiveLine: 25}}
}

func (c *CentreBack) Role() domain.Role { return domain.RoleCentreBack }

func (c *CentreBack) Decide(ctx *domain.GameContext, visible []domain.Snapshot) domain.Action {
	c.Beliefs.Pressure = c.pressure(visible)
	if c.state.HasBall {
		return c.decideWithBall(visible)
	}
	return c.decideWithoutBall(ctx)
}

func (c *CentreBack) decideWithBall(visible []domain.Snapshot) domain.Action {
	switch {
	case c.Beliefs.Pressure.AtLeast(domain.PressureHigh):
		// No attempt to retain possession under duress.
		return domain.ActionClearBall
	case c.Beliefs.Pressure == domain.PressureMedium:
		return domain.ActionLongPass
	}

	for _, t := range c.teammates(visible) {
		if c.aheadBy(t.Position, c.cfg.AdvancedGap) {
			return domain.ActionForwardPass
		}
	}
	return domain.ActionSafePass
}

func (c *CentreBack) decideWithoutBall(ctx *domain.GameContext) domain.Action {
	ballDist := c.state.Position.DistanceTo(ctx.BallPosition)
	switch {
	case ballDist < c.cfg.InterceptRadius && ctx.Phase == domain.PhaseDefense:
		return domain.ActionIntercept
	case ctx.Phase == domain.PhaseAttack:
		return domain.ActionSupportRun
	default:
		return domain.ActionTrackRunner
	}
}
