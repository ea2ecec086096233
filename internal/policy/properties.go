package policy

import (
	"time"

	"github.com/pitchproc/pitchproc/internal/domain"
)

// Role property declarations: the temporal obligations every agent of a
// role must honor over a match. Declared once at role-type granularity
// and shared read-only by all agents of the role; the monitor consumes
// them as structured predicates, never as strings.

func isDistribution(ev domain.TraceEvent) bool { return ev.Action.IsDistribution() }

func actionIs(a domain.Action) domain.Predicate {
	return domain.Predicate{
		Name: "action_is_" + string(a),
		Test: func(ev domain.TraceEvent) bool { return ev.Action == a },
	}
}

func actionIn(name string, actions ...domain.Action) domain.Predicate {
	return domain.Predicate{
		Name: name,
		Test: func(ev domain.TraceEvent) bool {
			for _, a := range actions {
				if ev.Action == a {
					return true
				}
			}
			return false
		},
	}
}

func goalkeeperProperties() domain.PropertyDeclaration {
	return domain.PropertyDeclaration{
		Role: domain.RoleGoalkeeper,
		Liveness: []domain.TemporalObligation{
			{
				Name:       "distributes_ball_within_6s",
				Kind:       domain.KindLiveness,
				Trigger:    domain.Predicate{Name: "gained_possession", Test: func(ev domain.TraceEvent) bool { return ev.Flags.GainedBall }},
				Obligation: actionIn("distribution_action", domain.ActionShortPass, domain.ActionLongKick),
				Deadline:   6 * time.Second,
			},
		},
		Safety: []domain.TemporalObligation{
			{
				Name:       "attempts_save_when_shot_on_target",
				Kind:       domain.KindSafety,
				Condition:  domain.Predicate{Name: "shot_on_target_in_defense", Test: func(ev domain.TraceEvent) bool { return ev.Flags.ShotOnTarget && !ev.Flags.HasBall && ev.Flags.Phase == domain.PhaseDefense }},
				Obligation: actionIs(domain.ActionSaveAttempt),
			},
			{
				Name:       "distributes_when_in_possession",
				Kind:       domain.KindSafety,
				Condition:  domain.Predicate{Name: "holding_ball", Test: func(ev domain.TraceEvent) bool { return ev.Flags.HasBall }},
				Obligation: domain.Predicate{Name: "distribution_action", Test: isDistribution},
			},
			{
				Name:      "never_leaves_penalty_area_open_play",
				Kind:      domain.KindSafety,
				Condition: domain.Predicate{Name: "outside_legal_zone", Test: func(ev domain.TraceEvent) bool { return !ev.Flags.InLegalZone && ev.Flags.Phase != domain.PhaseSetPiece }},
			},
		},
	}
}

func centreBackProperties() domain.PropertyDeclaration {
	highPressureBall := domain.Predicate{
		Name: "high_pressure_in_possession",
		Test: func(ev domain.TraceEvent) bool {
			return ev.Flags.HasBall && ev.Flags.Pressure.AtLeast(domain.PressureHigh)
		},
	}
	return domain.PropertyDeclaration{
		Role: domain.RoleCentreBack,
		Liveness: []domain.TemporalObligation{
			{
				Name:       "clears_ball_under_pressure_within_2s",
				Kind:       domain.KindLiveness,
				Trigger:    highPressureBall,
				Obligation: actionIs(domain.ActionClearBall),
				Deadline:   2 * time.Second,
				Sustained:  true,
			},
		},
		Safety: []domain.TemporalObligation{
			{
				// Pressure strictly dominates tactical ambition.
				Name:       "pressure_dominates_possession",
				Kind:       domain.KindSafety,
				Condition:  highPressureBall,
				Obligation: actionIs(domain.ActionClearBall),
			},
			{
				Name:      "never_abandons_defensive_shape",
				Kind:      domain.KindSafety,
				Condition: domain.Predicate{Name: "attacking_run_in_defense", Test: func(ev domain.TraceEvent) bool { return ev.Flags.Phase == domain.PhaseDefense && ev.Action == domain.ActionSupportRun }},
			},
		},
	}
}

func midfielderProperties() domain.PropertyDeclaration {
	return domain.PropertyDeclaration{
		Role: domain.RoleMidfielder,
		Liveness: []domain.TemporalObligation{
			{
				Name:       "distributes_ball_within_5s",
				Kind:       domain.KindLiveness,
				Trigger:    domain.Predicate{Name: "gained_possession", Test: func(ev domain.TraceEvent) bool { return ev.Flags.GainedBall }},
				Obligation: domain.Predicate{Name: "distribution_action", Test: isDistribution},
				Deadline:   5 * time.Second,
			},
			{
				Name:    "provides_passing_option_within_8s",
				Kind:    domain.KindLiveness,
				Trigger: domain.Predicate{Name: "off_ball", Test: func(ev domain.TraceEvent) bool { return !ev.Flags.HasBall }},
				Obligation: actionIn("positional_support_action",
					domain.ActionSupportRun, domain.ActionFindSpace,
					domain.ActionPress, domain.ActionTrackBack),
				Deadline:  8 * time.Second,
				Sustained: true,
			},
		},
		Safety: []domain.TemporalObligation{
			{
				Name:      "never_risky_pass_in_own_third",
				Kind:      domain.KindSafety,
				Condition: domain.Predicate{Name: "through_pass_own_third", Test: func(ev domain.TraceEvent) bool { return ev.Flags.OwnThird && ev.Action == domain.ActionThroughPass }},
			},
		},
	}
}

func strikerProperties() domain.PropertyDeclaration {
	return domain.PropertyDeclaration{
		Role: domain.RoleStriker,
		Liveness: []domain.TemporalObligation{
			{
				Name:       "shoots_from_scoring_position_within_3s",
				Kind:       domain.KindLiveness,
				Trigger:    domain.Predicate{Name: "scoring_position_with_ball", Test: func(ev domain.TraceEvent) bool { return ev.Flags.HasBall && ev.Flags.ScoringPosition }},
				Obligation: actionIs(domain.ActionShoot),
				Deadline:   3 * time.Second,
				Sustained:  true,
			},
			{
				Name:    "stretches_defense_within_10s",
				Kind:    domain.KindLiveness,
				Trigger: domain.Predicate{Name: "off_ball_in_attack", Test: func(ev domain.TraceEvent) bool { return !ev.Flags.HasBall && ev.Flags.Phase == domain.PhaseAttack }},
				Obligation: actionIn("stretching_run",
					domain.ActionRunBehind, domain.ActionFindSpace),
				Deadline:  10 * time.Second,
				Sustained: true,
			},
		},
		Safety: []domain.TemporalObligation{
			{
				Name:      "never_shoots_from_impossible_angle",
				Kind:      domain.KindSafety,
				Condition: domain.Predicate{Name: "low_angle_shot", Test: func(ev domain.TraceEvent) bool { return ev.Action == domain.ActionShoot && ev.Flags.AngleLow }},
			},
		},
	}
}

var declarations = map[domain.Role]domain.PropertyDeclaration{
	domain.RoleGoalkeeper: goalkeeperProperties(),
	domain.RoleCentreBack: centreBackProperties(),
	domain.RoleMidfielder: midfielderProperties(),
	domain.RoleStriker:    strikerProperties(),
}

// DeclarationFor returns the role's property declaration.
func DeclarationFor(role domain.Role) (domain.PropertyDeclaration, error) {
	d, ok := declarations[role]
	if !ok {
		return domain.PropertyDeclaration{}, ErrUnknownRole
	}
	return d, nil
}
