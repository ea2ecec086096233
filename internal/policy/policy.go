// Package policy implements the per-role tactical decision policies.
//
// Every role follows the same top-level shape: if the agent holds the
// ball it delegates to an in-possession sub-policy, otherwise to an
// off-ball sub-policy. Decisions are synchronous, never block, and are
// total over the input domain: every branch has an explicit fallback
// action, so an empty visible list is a valid input, not an error.
package policy

import (
	"errors"
	"fmt"

	"github.com/pitchproc/pitchproc/internal/domain"
	"go.uber.org/zap"
)

// ErrUnknownRole is returned at construction time for a role outside the
// closed set. Construction fails fast; role errors never surface
// mid-match.
var ErrUnknownRole = errors.New("unknown role")

// ErrUnregisteredPlan is returned when a plan library references an
// action outside the role's vocabulary.
var ErrUnregisteredPlan = errors.New("plan references action outside role vocabulary")

// Policy is the shared decision contract. Decide is pure with respect to
// visible (read-only snapshots), may update only the owning agent's
// beliefs, and returns exactly one action per call.
type Policy interface {
	Decide(ctx *domain.GameContext, visible []domain.Snapshot) domain.Action
	Role() domain.Role
	State() *domain.AgentState
}

// Config collects the tunable decision thresholds, in pitch distance
// units unless noted. Zero values are replaced by defaults.
type Config struct {
	// Goalkeeper
	SaveRadius           float64 // ball distance that triggers a save attempt in defense
	PositioningTolerance float64 // distance from the optimal spot before repositioning
	ShortPassRadius      float64 // nearest-teammate distance for a short distribution
	KeeperDepthScale     float64 // optimal depth as a fraction of ball x
	KeeperLateralScale   float64 // optimal lateral shift as a fraction of ball offset

	// Outfield
	AdvancedGap     float64 // how far ahead a teammate must be to count as advanced
	InterceptRadius float64 // centre-back ball distance for an interception
	PressRadius     float64 // midfielder ball distance for pressing in defense
	SupportRadius   float64 // midfielder ball distance for joining the attack
	AttackingThird  float64 // axis progress marking the attacking third
	MiddleThird     float64 // axis progress marking the middle third
	ShootingRange   float64 // goal distance inside which a shot is on
	AngleHalfWidth  float64 // lateral offset from goal centre still shot-worthy
	LayOffProgress  float64 // teammate axis progress that makes a lay-off viable
	RunBehindLimit  float64 // striker axis progress below which to stretch the defense
}

// DefaultConfig returns the reference thresholds.
func DefaultConfig() Config {
	return Config{
		SaveRadius:           15,
		PositioningTolerance: 5,
		ShortPassRadius:      20,
		KeeperDepthScale:     0.15,
		KeeperLateralScale:   0.3,
		AdvancedGap:          10,
		InterceptRadius:      15,
		PressRadius:          20,
		SupportRadius:        60,
		AttackingThird:       66.67,
		MiddleThird:          33.33,
		ShootingRange:        20,
		AngleHalfWidth:       12,
		LayOffProgress:       60,
		RunBehindLimit:       70,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SaveRadius <= 0 {
		c.SaveRadius = d.SaveRadius
	}
	if c.PositioningTolerance <= 0 {
		c.PositioningTolerance = d.PositioningTolerance
	}
	if c.ShortPassRadius <= 0 {
		c.ShortPassRadius = d.ShortPassRadius
	}
	if c.KeeperDepthScale <= 0 {
		c.KeeperDepthScale = d.KeeperDepthScale
	}
	if c.KeeperLateralScale <= 0 {
		c.KeeperLateralScale = d.KeeperLateralScale
	}
	if c.AdvancedGap <= 0 {
		c.AdvancedGap = d.AdvancedGap
	}
	if c.InterceptRadius <= 0 {
		c.InterceptRadius = d.InterceptRadius
	}
	if c.PressRadius <= 0 {
		c.PressRadius = d.PressRadius
	}
	if c.SupportRadius <= 0 {
		c.SupportRadius = d.SupportRadius
	}
	if c.AttackingThird <= 0 {
		c.AttackingThird = d.AttackingThird
	}
	if c.MiddleThird <= 0 {
		c.MiddleThird = d.MiddleThird
	}
	if c.ShootingRange <= 0 {
		c.ShootingRange = d.ShootingRange
	}
	if c.AngleHalfWidth <= 0 {
		c.AngleHalfWidth = d.AngleHalfWidth
	}
	if c.LayOffProgress <= 0 {
		c.LayOffProgress = d.LayOffProgress
	}
	if c.RunBehindLimit <= 0 {
		c.RunBehindLimit = d.RunBehindLimit
	}
	return c
}

// Profile is the initial goal set and plan library for a role, produced
// by a pure per-role factory and consumed once at team assembly.
type Profile struct {
	Goals []string
	Plans map[string][]domain.Action
}

// InitialProfile returns the role's initial goals and plans.
func InitialProfile(role domain.Role) (Profile, error) {
	switch role {
	case domain.RoleGoalkeeper:
		return goalkeeperProfile(), nil
	case domain.RoleCentreBack:
		return centreBackProfile(), nil
	case domain.RoleMidfielder:
		return midfielderProfile(), nil
	case domain.RoleStriker:
		return strikerProfile(), nil
	default:
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}

// New constructs the policy for an agent. The agent state receives the
// role's initial goals and plans; role-specific beliefs live on the
// returned policy as a typed record. Unknown roles and malformed plan
// libraries fail here, at setup, never mid-match.
func New(state *domain.AgentState, cfg Config, logger *zap.Logger) (Policy, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	profile, err := InitialProfile(state.Role)
	if err != nil {
		return nil, err
	}
	if err := validatePlans(state.Role, profile.Plans); err != nil {
		return nil, err
	}
	state.Goals = profile.Goals
	state.Plans = profile.Plans

	b := base{state: state, cfg: cfg.withDefaults(), logger: logger}
	switch state.Role {
	case domain.RoleGoalkeeper:
		return newGoalkeeper(b), nil
	case domain.RoleCentreBack:
		return newCentreBack(b), nil
	case domain.RoleMidfielder:
		return newMidfielder(b), nil
	default:
		return newStriker(b), nil
	}
}

func validatePlans(role domain.Role, plans map[string][]domain.Action) error {
	for name, actions := range plans {
		for _, a := range actions {
			if !role.InVocabulary(a) {
				return fmt.Errorf("%w: plan %q action %q for role %q", ErrUnregisteredPlan, name, a, role)
			}
		}
	}
	return nil
}

// base carries the state shared by all role policies.
type base struct {
	state  *domain.AgentState
	cfg    Config
	logger *zap.Logger
}

func (b *base) State() *domain.AgentState { return b.state }

func (b *base) teammates(visible []domain.Snapshot) []domain.Snapshot {
	var out []domain.Snapshot
	for _, s := range visible {
		if s.Team == b.state.Team {
			out = append(out, s)
		}
	}
	return out
}

// nearestTeammate picks the closest teammate by Euclidean distance;
// exact ties resolve to the lowest agent ID so traces are reproducible.
func (b *base) nearestTeammate(visible []domain.Snapshot) (domain.Snapshot, bool) {
	var best domain.Snapshot
	bestDist := -1.0
	for _, s := range visible {
		if s.Team != b.state.Team {
			continue
		}
		d := b.state.Position.DistanceTo(s.Position)
		if bestDist < 0 || d < bestDist || (d == bestDist && s.ID < best.ID) {
			best = s
			bestDist = d
		}
	}
	return best, bestDist >= 0
}

func (b *base) pressure(visible []domain.Snapshot) domain.PressureLevel {
	return PressureOf(b.state.Position, b.state.Team, b.state.HasBall, visible)
}

// PressureOf grades opponent proximity for an agent in possession.
// Bands: <2 extreme, <5 high, <10 medium, otherwise low; an agent
// without the ball is under no pressure.
func PressureOf(pos domain.Position, team domain.Team, hasBall bool, visible []domain.Snapshot) domain.PressureLevel {
	if !hasBall {
		return domain.PressureNone
	}
	nearest := -1.0
	for _, s := range visible {
		if s.Team == team {
			continue
		}
		d := pos.DistanceTo(s.Position)
		if nearest < 0 || d < nearest {
			nearest = d
		}
	}
	switch {
	case nearest < 0:
		return domain.PressureLow
	case nearest < 2:
		return domain.PressureExtreme
	case nearest < 5:
		return domain.PressureHigh
	case nearest < 10:
		return domain.PressureMedium
	default:
		return domain.PressureLow
	}
}

// progress maps a position to distance along the agent's attacking axis,
// so both teams read the pitch symmetrically.
func (b *base) progress(p domain.Position) float64 {
	if b.state.Team == domain.TeamHome {
		return p.X
	}
	return domain.PitchLength - p.X
}

// aheadBy reports whether other is at least gap further along the
// attacking axis than the agent.
func (b *base) aheadBy(other domain.Position, gap float64) bool {
	return b.progress(other) > b.progress(b.state.Position)+gap
}

// opponentGoal returns the centre of the goal the agent attacks.
func (b *base) opponentGoal() domain.Position {
	if b.state.Team == domain.TeamHome {
		return domain.Position{X: domain.PitchLength, Y: domain.PitchWidth / 2}
	}
	return domain.Position{X: 0, Y: domain.PitchWidth / 2}
}

// ownGoal returns the centre of the goal the agent defends.
func (b *base) ownGoal() domain.Position {
	if b.state.Team == domain.TeamHome {
		return domain.Position{X: 0, Y: domain.PitchWidth / 2}
	}
	return domain.Position{X: domain.PitchLength, Y: domain.PitchWidth / 2}
}
