package policy

import (
	"github.com/pitchproc/pitchproc/internal/domain"
	"go.uber.org/zap"
)

// GoalkeeperBeliefs is the goalkeeper's typed belief record.
type GoalkeeperBeliefs struct {
	PenaltyArea  domain.Bounds   // legal handling zone, clamp target for positioning
	GoalPosition domain.Position // centre of the defended goal mouth
	ShotThreat   bool            // ball inside the save radius during a defensive phase
	Pressure     domain.PressureLevel
}

// Goalkeeper decides between shot saving, distribution and positioning.
// It is conceptually a 3-way switch, not a persistent state machine.
type Goalkeeper struct {
	base
	Beliefs *GoalkeeperBeliefs
}

func goalkeeperProfile() Profile {
	return Profile{
		Goals: []string{"prevent_goals", "distribute_ball", "organize_defense"},
		Plans: map[string][]domain.Action{
			"shot_saving":  {domain.ActionMoveToPosition, domain.ActionSaveAttempt},
			"distribution": {domain.ActionShortPass, domain.ActionLongKick},
			"positioning":  {domain.ActionMoveToPosition, domain.ActionMaintainPosition},
		},
	}
}

func newGoalkeeper(b base) *Goalkeeper {
	return &Goalkeeper{base: b, Beliefs: newGoalkeeperBeliefs(b.state.Team)}
}

func newGoalkeeperBeliefs(team domain.Team) *GoalkeeperBeliefs {
	area := domain.Bounds{XMin: 0, XMax: 16, YMin: 29.6, YMax: 50.4}
	goal := domain.Position{X: 0, Y: domain.PitchWidth / 2}
	if team == domain.TeamAway {
		area = domain.Bounds{XMin: domain.PitchLength - 16, XMax: domain.PitchLength, YMin: 29.6, YMax: 50.4}
		goal = domain.Position{X: domain.PitchLength, Y: domain.PitchWidth / 2}
	}
	return &GoalkeeperBeliefs{PenaltyArea: area, GoalPosition: goal}
}

func (g *Goalkeeper) Role() domain.Role { return domain.RoleGoalkeeper }

func (g *Goalkeeper) Decide(ctx *domain.GameContext, visible []domain.Snapshot) domain.Action {
	g.Beliefs.Pressure = g.pressure(visible)
	ballDist := g.state.Position.DistanceTo(ctx.BallPosition)
	g.Beliefs.ShotThreat = !g.state.HasBall && ballDist < g.cfg.SaveRadius && ctx.Phase == domain.PhaseDefense

	switch {
	case g.state.HasBall:
		return g.decideDistribution(visible)
	case g.Beliefs.ShotThreat:
		return domain.ActionSaveAttempt
	default:
		return g.decidePositioning(ctx)
	}
}

// decideDistribution releases the ball to the nearest teammate, short if
// one is in range, long otherwise. No visible teammates defaults to a
// long kick downfield.
func (g *Goalkeeper) decideDistribution(visible []domain.Snapshot) domain.Action {
	nearest, ok := g.nearestTeammate(visible)
	if !ok {
		return domain.ActionLongKick
	}
	if g.state.Position.DistanceTo(nearest.Position) < g.cfg.ShortPassRadius {
		g.logger.Debug("keeper short distribution",
			zap.String("agent", g.state.ID),
			zap.String("target", nearest.ID))
		return domain.ActionShortPass
	}
	return domain.ActionLongKick
}

// decidePositioning tracks the ball laterally from the goal centre,
// staying at a shallow depth. The target is always clamped inside the
// penalty area before use, so the keeper never emits a move outside its
// legal zone.
func (g *Goalkeeper) decidePositioning(ctx *domain.GameContext) domain.Action {
	goal := g.Beliefs.GoalPosition
	depth := ctx.BallPosition.X * g.cfg.KeeperDepthScale
	if g.state.Team == domain.TeamAway {
		depth = domain.PitchLength - (domain.PitchLength-ctx.BallPosition.X)*g.cfg.KeeperDepthScale
	}
	target := domain.Position{
		X: depth,
		Y: goal.Y + (ctx.BallPosition.Y-goal.Y)*g.cfg.KeeperLateralScale,
	}
	target = g.Beliefs.PenaltyArea.Clamp(target)

	if g.state.Position.DistanceTo(target) > g.cfg.PositioningTolerance {
		return domain.ActionMoveToPosition
	}
	return domain.ActionMaintainPosition
}
