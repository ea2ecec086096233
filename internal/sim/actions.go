package sim

import (
	"math"

	"github.com/pitchproc/pitchproc/internal/domain"
	"github.com/pitchproc/pitchproc/internal/eventlog"
	"github.com/pitchproc/pitchproc/internal/policy"
	"go.uber.org/zap"
)

// pressurePenalty feeds the pass-completion model. Extreme pressure
// wipes out most of the base completion rate.
var pressurePenalty = map[domain.PressureLevel]float64{
	domain.PressureNone:    0,
	domain.PressureLow:     0,
	domain.PressureMedium:  0.10,
	domain.PressureHigh:    0.20,
	domain.PressureExtreme: 0.30,
}

// execute resolves one decided action against live match state and
// returns the outcome recorded in the event log. An on-ball action
// chosen by a player who lost the ball earlier in the same tick
// degrades to movement rather than teleporting possession.
func (e *Engine) execute(p *player, action domain.Action) string {
	onBall := p.state.HasBall

	switch {
	case onBall && (action == domain.ActionClearBall || action == domain.ActionLongKick):
		return e.executeClearance(p)
	case onBall && action.IsDistribution():
		advancedOnly := action == domain.ActionForwardPass || action == domain.ActionThroughPass
		return e.executePass(p, advancedOnly)
	case onBall && action == domain.ActionShoot:
		return e.executeShot(p)
	case onBall && action == domain.ActionDribbleForward:
		return e.executeDribble(p)
	case onBall && (action == domain.ActionHoldUp || action == domain.ActionRetainPossession):
		return eventlog.ResultSuccess
	case action == domain.ActionSaveAttempt:
		return e.executeSave(p)
	case action == domain.ActionIntercept:
		return e.executeIntercept(p)
	default:
		e.executeMovement(p, action)
		return eventlog.ResultSuccess
	}
}

// executePass picks the nearest eligible teammate and resolves the
// pass against distance and pressure. A failed pass leaves the ball
// loose near the midpoint of the attempted pass.
func (e *Engine) executePass(p *player, advancedOnly bool) string {
	target := e.passTarget(p, advancedOnly)
	if target == nil {
		p.state.HasBall = false
		e.possession = ""
		e.ball = e.scatter(p.state.Position, 8)
		return eventlog.ResultFailure
	}

	others := e.snapshotsExcluding(p)
	pressure := policy.PressureOf(p.state.Position, p.state.Team, true, others)
	dist := p.state.Position.DistanceTo(target.state.Position)
	prob := 0.8 - math.Min(0.3, dist/100) - pressurePenalty[pressure]

	p.state.HasBall = false
	if e.rng.Float64() < prob {
		target.state.HasBall = true
		e.possession = target.state.ID
		e.ball = target.state.Position
		e.stats.Passes[p.state.Team]++
		return eventlog.ResultSuccess
	}

	mid := domain.Position{
		X: (p.state.Position.X + target.state.Position.X) / 2,
		Y: (p.state.Position.Y + target.state.Position.Y) / 2,
	}
	e.possession = ""
	e.ball = e.scatter(mid, 5)
	return eventlog.ResultFailure
}

// passTarget returns the nearest teammate, restricted to players ahead
// of the passer when advancedOnly is set. Falls back to any teammate
// when nobody is ahead. Ties resolve to the lowest agent ID.
func (e *Engine) passTarget(p *player, advancedOnly bool) *player {
	pick := func(ahead bool) *player {
		var best *player
		bestDist := math.MaxFloat64
		for _, t := range e.players {
			if t == p || t.state.Team != p.state.Team {
				continue
			}
			if ahead && e.progressOf(t.state) <= e.progressOf(p.state) {
				continue
			}
			d := p.state.Position.DistanceTo(t.state.Position)
			if d < bestDist || (d == bestDist && best != nil && t.state.ID < best.state.ID) {
				best = t
				bestDist = d
			}
		}
		return best
	}
	if advancedOnly {
		if t := pick(true); t != nil {
			return t
		}
	}
	return pick(false)
}

// executeClearance hammers the ball downfield and gives up possession.
func (e *Engine) executeClearance(p *player) string {
	advance := 30 + e.rng.Float64()*20
	target := e.advanced(p.state, advance)
	target.Y += e.rng.NormFloat64() * 10
	p.state.HasBall = false
	e.possession = ""
	e.ball = clampToPitch(target)
	return eventlog.ResultSuccess
}

// executeShot resolves a shot against the distance bands, scores a
// goal on success, and restarts play from the centre spot for the
// conceding team.
func (e *Engine) executeShot(p *player) string {
	goal := e.opponentGoalOf(p.state.Team)
	dist := p.state.Position.DistanceTo(goal)
	var prob float64
	switch {
	case dist < 5:
		prob = 0.4
	case dist < 10:
		prob = 0.25
	case dist < 20:
		prob = 0.15
	default:
		prob = 0.05
	}

	e.stats.Shots[p.state.Team]++
	p.state.HasBall = false

	if e.rng.Float64() < prob {
		e.ball = goal
		scorer, ok := e.pitch.GoalScored(e.ball)
		if !ok {
			scorer = p.state.Team
		}
		e.stats.Goals[scorer]++
		if scorer == domain.TeamHome {
			e.homeScore++
		} else {
			e.awayScore++
		}
		e.logger.Info("goal",
			zap.String("scorer", p.state.ID),
			zap.Int("home", e.homeScore),
			zap.Int("away", e.awayScore),
			zap.Duration("at", e.elapsed))
		e.kickoff(p.state.Team.Opponent())
		return eventlog.ResultGoal
	}

	e.possession = ""
	e.ball = clampToPitch(e.scatter(goal, 10))
	return eventlog.ResultSaved
}

// executeDribble carries the ball a few units along the attacking axis.
func (e *Engine) executeDribble(p *player) string {
	advance := 2 + e.rng.Float64()*3
	next := e.advanced(p.state, advance)
	next.Y += e.rng.NormFloat64() * 2
	p.state.Position = clampToPitch(next)
	e.ball = p.state.Position
	return eventlog.ResultSuccess
}

// executeSave resolves a keeper's attempt on a nearby ball: a catch
// claims possession, a parry pushes the ball wide and loose.
func (e *Engine) executeSave(p *player) string {
	if p.state.Position.DistanceTo(e.ball) >= e.cfg.Policy.SaveRadius {
		return eventlog.ResultFailure
	}
	if holder, ok := e.byID[e.possession]; ok && holder.state.Team == p.state.Team {
		return eventlog.ResultFailure
	}
	if e.rng.Float64() < 0.7 {
		if holder, ok := e.byID[e.possession]; ok {
			holder.state.HasBall = false
		}
		p.state.HasBall = true
		e.possession = p.state.ID
		e.ball = p.state.Position
		return eventlog.ResultSuccess
	}
	scattered := e.scatter(e.ball, 6)
	scattered.X = e.ball.X // parries deflect laterally, not downfield
	e.ball = clampToPitch(scattered)
	return eventlog.ResultFailure
}

// executeIntercept tries to steal a ball within reach, otherwise
// closes down the carrier.
func (e *Engine) executeIntercept(p *player) string {
	if p.state.Position.DistanceTo(e.ball) < 3 {
		if e.rng.Float64() < 0.3 {
			if holder, ok := e.byID[e.possession]; ok {
				holder.state.HasBall = false
			}
			p.state.HasBall = true
			e.possession = p.state.ID
			e.ball = p.state.Position
			return eventlog.ResultSuccess
		}
		return eventlog.ResultFailure
	}
	e.moveToward(p, e.ball, 0.2)
	return eventlog.ResultFailure
}

// executeMovement steps the player toward the target implied by the
// chosen action. Keepers are additionally clamped to their penalty
// area so off-ball movement never walks them out of it.
func (e *Engine) executeMovement(p *player, action domain.Action) {
	hadBall := p.state.HasBall
	switch action {
	case domain.ActionSupportRun, domain.ActionPress, domain.ActionPressDefender:
		e.moveToward(p, e.ball, 0.15)
	case domain.ActionTrackBack:
		e.moveToward(p, e.defensiveSpot(p.state.Team), 0.1)
	case domain.ActionRunBehind:
		e.moveToward(p, e.advanced(p.state, 10), 0.15)
	case domain.ActionFindSpace:
		spot := p.state.HomePosition
		spot.Y += e.rng.NormFloat64() * 3
		e.moveToward(p, clampToPitch(spot), 0.1)
	default:
		// move_to_position, track_runner, maintain_position
		e.moveToward(p, p.state.HomePosition, 0.1)
	}
	if p.state.Role == domain.RoleGoalkeeper {
		p.state.Position = e.pitch.PenaltyArea(p.state.Team).Clamp(p.state.Position)
	}
	if hadBall {
		e.ball = p.state.Position
	}
}

func (e *Engine) moveToward(p *player, target domain.Position, frac float64) {
	next := domain.Position{
		X: p.state.Position.X + (target.X-p.state.Position.X)*frac,
		Y: p.state.Position.Y + (target.Y-p.state.Position.Y)*frac,
	}
	p.state.Position = clampToPitch(next)
}

// advanced returns a spot the given distance further along the state's
// attacking axis.
func (e *Engine) advanced(s *domain.AgentState, dist float64) domain.Position {
	next := s.Position
	if s.Team == domain.TeamHome {
		next.X += dist
	} else {
		next.X -= dist
	}
	return next
}

func (e *Engine) defensiveSpot(team domain.Team) domain.Position {
	x := 25.0
	if team == domain.TeamAway {
		x = domain.PitchLength - x
	}
	return domain.Position{X: x, Y: domain.PitchWidth / 2}
}

func (e *Engine) opponentGoalOf(team domain.Team) domain.Position {
	if team == domain.TeamHome {
		return domain.Position{X: domain.PitchLength, Y: domain.PitchWidth / 2}
	}
	return domain.Position{X: 0, Y: domain.PitchWidth / 2}
}

// scatter perturbs a spot with gaussian noise of the given scale.
func (e *Engine) scatter(at domain.Position, scale float64) domain.Position {
	return clampToPitch(domain.Position{
		X: at.X + e.rng.NormFloat64()*scale,
		Y: at.Y + e.rng.NormFloat64()*scale,
	})
}

func (e *Engine) snapshotsExcluding(p *player) []domain.Snapshot {
	out := make([]domain.Snapshot, 0, len(e.players)-1)
	for _, other := range e.players {
		if other != p {
			out = append(out, other.state.Snapshot())
		}
	}
	return out
}
