// Package sim runs discrete-time football matches over the role
// policies. The engine owns tick sequencing: at the start of each tick
// it freezes one GameContext and one set of agent snapshots, every
// agent decides against that same frozen view, and only then are the
// chosen actions resolved. No decision in tick k can observe another
// agent's effects from tick k.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pitchproc/pitchproc/internal/domain"
	"github.com/pitchproc/pitchproc/internal/eventlog"
	"github.com/pitchproc/pitchproc/internal/monitor"
	"github.com/pitchproc/pitchproc/internal/policy"
	"go.uber.org/zap"
)

// Config configures one match.
type Config struct {
	Duration time.Duration // match length; default 90 minutes
	Tick     time.Duration // timestep; default 100ms
	Seed     int64         // RNG seed; the same seed reproduces the same trace
	Policy   policy.Config // decision thresholds shared by all agents
	Logger   *zap.Logger
}

func (c Config) withDefaults() Config {
	if c.Duration <= 0 {
		c.Duration = 90 * time.Minute
	}
	if c.Tick <= 0 {
		c.Tick = 100 * time.Millisecond
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Stats are simple per-team match counters.
type Stats struct {
	Passes map[domain.Team]int `json:"passes"`
	Shots  map[domain.Team]int `json:"shots"`
	Goals  map[domain.Team]int `json:"goals"`
}

// Result is everything a finished match produces.
type Result struct {
	Match      domain.Match
	Events     []domain.LogEvent
	Traces     map[string][]domain.TraceEvent
	Reports    []monitor.Report
	Violations []domain.Violation
	Stats      Stats
}

type player struct {
	state *domain.AgentState
	pol   policy.Policy
	mon   *monitor.Monitor
	trace []domain.TraceEvent
}

// Engine simulates one match.
type Engine struct {
	cfg    Config
	pitch  *Pitch
	rng    *rand.Rand
	logger *zap.Logger
	log    *eventlog.Logger

	players []*player // home then away, formation order
	byID    map[string]*player

	matchID    uuid.UUID
	ball       domain.Position
	possession string // holder agent ID, empty when loose
	phase      domain.GamePhase
	elapsed    time.Duration
	homeScore  int
	awayScore  int
	stats      Stats
	violations []domain.Violation
}

type formationSlot struct {
	slot string
	role domain.Role
	pos  domain.Position
}

// formation442 lists home-side starting spots; away spots mirror in x.
var formation442 = []formationSlot{
	{"GK", domain.RoleGoalkeeper, domain.Position{X: 5, Y: 40}},
	{"CB_L", domain.RoleCentreBack, domain.Position{X: 20, Y: 24}},
	{"CB_R", domain.RoleCentreBack, domain.Position{X: 20, Y: 56}},
	{"LB", domain.RoleCentreBack, domain.Position{X: 15, Y: 8}},
	{"RB", domain.RoleCentreBack, domain.Position{X: 15, Y: 72}},
	{"CM_L", domain.RoleMidfielder, domain.Position{X: 50, Y: 28}},
	{"CM_R", domain.RoleMidfielder, domain.Position{X: 50, Y: 52}},
	{"LW", domain.RoleMidfielder, domain.Position{X: 70, Y: 16}},
	{"RW", domain.RoleMidfielder, domain.Position{X: 70, Y: 64}},
	{"ST1", domain.RoleStriker, domain.Position{X: 85, Y: 32}},
	{"ST2", domain.RoleStriker, domain.Position{X: 85, Y: 48}},
}

// NewEngine assembles both teams and their monitors. Construction fails
// fast on configuration errors (unknown roles, malformed plans); such
// errors never surface mid-match.
func NewEngine(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	e := &Engine{
		cfg:     cfg,
		pitch:   NewPitch(),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		logger:  cfg.Logger,
		log:     eventlog.NewLogger(),
		byID:    make(map[string]*player),
		matchID: uuid.New(),
		phase:   domain.PhaseTransition,
		stats: Stats{
			Passes: map[domain.Team]int{domain.TeamHome: 0, domain.TeamAway: 0},
			Shots:  map[domain.Team]int{domain.TeamHome: 0, domain.TeamAway: 0},
			Goals:  map[domain.Team]int{domain.TeamHome: 0, domain.TeamAway: 0},
		},
	}

	for _, team := range []domain.Team{domain.TeamHome, domain.TeamAway} {
		for i, slot := range formation442 {
			pos := slot.pos
			if team == domain.TeamAway {
				pos.X = domain.PitchLength - pos.X
			}
			state := &domain.AgentState{
				ID:           fmt.Sprintf("%s_%s_%d", team, slot.slot, i),
				Team:         team,
				Role:         slot.role,
				Position:     pos,
				HomePosition: pos,
			}
			pol, err := policy.New(state, cfg.Policy, cfg.Logger)
			if err != nil {
				return nil, fmt.Errorf("assembling %s: %w", state.ID, err)
			}
			decl, err := policy.DeclarationFor(slot.role)
			if err != nil {
				return nil, fmt.Errorf("assembling %s: %w", state.ID, err)
			}
			p := &player{state: state, pol: pol, mon: monitor.New(state.ID, decl)}
			e.players = append(e.players, p)
			e.byID[state.ID] = p
		}
	}
	return e, nil
}

// Run simulates the full match. The context covers match-level
// stopping only; decision calls themselves never block.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	e.kickoff(domain.TeamHome)

	for e.elapsed < e.cfg.Duration {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.step()
		e.elapsed += e.cfg.Tick
	}

	e.logger.Info("match complete",
		zap.Int("home", e.homeScore),
		zap.Int("away", e.awayScore),
		zap.Int("events", len(e.log.Events())))

	return e.result(), nil
}

func (e *Engine) result() *Result {
	res := &Result{
		Match: domain.Match{
			ID:        e.matchID,
			Seed:      e.cfg.Seed,
			Duration:  e.cfg.Duration,
			HomeScore: e.homeScore,
			AwayScore: e.awayScore,
			CreatedAt: time.Now().UTC(),
		},
		Events:     e.log.Events(),
		Traces:     make(map[string][]domain.TraceEvent, len(e.players)),
		Violations: append([]domain.Violation(nil), e.violations...),
		Stats:      e.stats,
	}
	for i := range res.Events {
		res.Events[i].MatchID = e.matchID
	}
	for _, p := range e.players {
		res.Traces[p.state.ID] = append([]domain.TraceEvent(nil), p.trace...)
		res.Reports = append(res.Reports, p.mon.Report())
	}
	return res
}

// step executes one timestep: freeze, decide, resolve.
func (e *Engine) step() {
	gctx := e.gameContext()
	snaps := make([]domain.Snapshot, len(e.players))
	for i, p := range e.players {
		snaps[i] = p.state.Snapshot()
	}

	type decision struct {
		p      *player
		action domain.Action
	}
	decisions := make([]decision, 0, len(e.players))

	possessor := domain.Team("")
	if holder, ok := e.byID[e.possession]; ok {
		possessor = holder.state.Team
	}

	for i, p := range e.players {
		visible := make([]domain.Snapshot, 0, len(snaps)-1)
		visible = append(visible, snaps[:i]...)
		visible = append(visible, snaps[i+1:]...)

		// The match phase is tracked from the possessing side's view;
		// agents on the other side see attack and defense swapped.
		pctx := gctx
		pctx.Phase = phaseView(p.state.Team, possessor, gctx.Phase)

		action := p.pol.Decide(&pctx, visible)
		ev := domain.TraceEvent{
			Seq:       len(p.trace),
			Timestamp: e.elapsed,
			AgentID:   p.state.ID,
			Role:      p.state.Role,
			Action:    action,
			Flags:     e.flagsFor(p, &pctx, visible),
		}
		p.trace = append(p.trace, ev)
		for _, v := range p.mon.Observe(ev) {
			v.MatchID = e.matchID
			e.violations = append(e.violations, v)
			e.logger.Warn("obligation violated",
				zap.String("agent", v.AgentID),
				zap.String("obligation", v.Obligation),
				zap.String("kind", string(v.Kind)),
				zap.Duration("at", v.Timestamp))
		}
		decisions = append(decisions, decision{p: p, action: action})
	}

	for _, d := range decisions {
		result := e.execute(d.p, d.action)
		if d.action == domain.ActionMaintainPosition {
			continue
		}
		e.log.Record(eventlog.Entry{
			Agent:     d.p.state.Snapshot(),
			Action:    d.action,
			Result:    result,
			Ball:      e.ball,
			Pressure:  policy.PressureOf(d.p.state.Position, d.p.state.Team, d.p.state.HasBall, snaps),
			Elapsed:   e.elapsed,
			Remaining: e.cfg.Duration - e.elapsed,
			HomeScore: e.homeScore,
			AwayScore: e.awayScore,
		})
	}

	e.claimLooseBall()
	e.updatePhase()
}

// phaseView maps the possessor-centric match phase to one team's view.
// The side in possession reads it as-is; the side out of possession
// sees attack and defense swapped. With the ball loose there is no
// possessor and every agent reads the phase unchanged.
func phaseView(team, possessor domain.Team, phase domain.GamePhase) domain.GamePhase {
	if possessor == "" || team == possessor {
		return phase
	}
	switch phase {
	case domain.PhaseAttack:
		return domain.PhaseDefense
	case domain.PhaseDefense:
		return domain.PhaseAttack
	default:
		return phase
	}
}

func (e *Engine) gameContext() domain.GameContext {
	pressure := domain.PressureNone
	if holder, ok := e.byID[e.possession]; ok {
		others := make([]domain.Snapshot, 0, len(e.players)-1)
		for _, p := range e.players {
			if p != holder {
				others = append(others, p.state.Snapshot())
			}
		}
		pressure = policy.PressureOf(holder.state.Position, holder.state.Team, true, others)
	}
	return domain.GameContext{
		BallPosition: e.ball,
		Phase:        e.phase,
		Pressure:     pressure,
		Elapsed:      e.elapsed,
	}
}

func (e *Engine) flagsFor(p *player, gctx *domain.GameContext, visible []domain.Snapshot) domain.TraceFlags {
	flags := domain.TraceFlags{
		HasBall:  p.state.HasBall,
		Phase:    gctx.Phase,
		Pressure: policy.PressureOf(p.state.Position, p.state.Team, p.state.HasBall, visible),
		Position: p.state.Position,
		OwnThird: e.progressOf(p.state) < domain.PitchLength/3,
	}

	switch pol := p.pol.(type) {
	case *policy.Goalkeeper:
		flags.InLegalZone = e.pitch.InPenaltyArea(p.state.Position, p.state.Team)
		flags.ShotOnTarget = pol.Beliefs.ShotThreat
	case *policy.Striker:
		flags.InLegalZone = true
		flags.ScoringPosition = pol.InScoringPosition()
		flags.AngleLow = pol.Beliefs.ShootingAngle == policy.AngleLow
	default:
		flags.InLegalZone = true
	}
	return flags
}

func (e *Engine) progressOf(s *domain.AgentState) float64 {
	if s.Team == domain.TeamHome {
		return s.Position.X
	}
	return domain.PitchLength - s.Position.X
}

// kickoff restarts play from the centre spot with the given team's
// first midfielder in possession.
func (e *Engine) kickoff(team domain.Team) {
	e.ball = domain.Position{X: domain.PitchLength / 2, Y: domain.PitchWidth / 2}
	for _, p := range e.players {
		p.state.HasBall = false
	}
	var taker *player
	for _, p := range e.players {
		if p.state.Team == team && p.state.Role == domain.RoleMidfielder {
			taker = p
			break
		}
	}
	if taker == nil {
		taker = e.players[0]
	}
	taker.state.HasBall = true
	e.possession = taker.state.ID
	// Possessor-centric: the side kicking off is the side attacking.
	e.phase = domain.PhaseAttack

	e.log.Record(eventlog.Entry{
		Agent:     taker.state.Snapshot(),
		Action:    domain.ActionKickoff,
		Result:    eventlog.ResultSuccess,
		Ball:      e.ball,
		Pressure:  domain.PressureNone,
		Elapsed:   e.elapsed,
		Remaining: e.cfg.Duration - e.elapsed,
		HomeScore: e.homeScore,
		AwayScore: e.awayScore,
	})
}

// claimLooseBall lets the nearest player on either side collect an
// unpossessed ball; ties resolve to the lowest agent ID.
func (e *Engine) claimLooseBall() {
	if e.possession != "" {
		return
	}
	const pickupRadius = 3.0
	var nearest *player
	nearestDist := pickupRadius
	for _, p := range e.players {
		d := p.state.Position.DistanceTo(e.ball)
		if d < nearestDist || (nearest != nil && d == nearestDist && p.state.ID < nearest.state.ID) {
			nearest = p
			nearestDist = d
		}
	}
	if nearest != nil {
		nearest.state.HasBall = true
		e.possession = nearest.state.ID
		e.ball = nearest.state.Position
	}
}

// updatePhase applies the territory rule from the possessing side's
// perspective: ball in the possessor's attacking third means attack,
// in their defensive third defense, otherwise transition.
func (e *Engine) updatePhase() {
	holder, held := e.byID[e.possession]
	if !held {
		e.phase = domain.PhaseTransition
		return
	}
	homeBall := holder.state.Team == domain.TeamHome
	switch {
	case e.ball.X < thirdBoundary:
		if homeBall {
			e.phase = domain.PhaseDefense
		} else {
			e.phase = domain.PhaseAttack
		}
	case e.ball.X > 2*thirdBoundary:
		if homeBall {
			e.phase = domain.PhaseAttack
		} else {
			e.phase = domain.PhaseDefense
		}
	default:
		e.phase = domain.PhaseTransition
	}
}
