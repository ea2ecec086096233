package policy

import (
	"testing"

	"github.com/pitchproc/pitchproc/internal/domain"
)

func TestMidfielderWithBall(t *testing.T) {
	cases := []struct {
		name    string
		pos     domain.Position
		visible []domain.Snapshot
		want    domain.Action
	}{
		{
			"attacking third with a runner plays through",
			domain.Position{X: 75, Y: 40},
			[]domain.Snapshot{snap("st", domain.TeamHome, domain.RoleStriker, domain.Position{X: 85, Y: 40})},
			domain.ActionThroughPass,
		},
		{
			"attacking third with nobody ahead supports",
			domain.Position{X: 75, Y: 40},
			[]domain.Snapshot{snap("cb", domain.TeamHome, domain.RoleCentreBack, domain.Position{X: 20, Y: 40})},
			domain.ActionSupportRun,
		},
		{
			"middle third with two runners switches play",
			domain.Position{X: 50, Y: 40},
			[]domain.Snapshot{
				snap("st1", domain.TeamHome, domain.RoleStriker, domain.Position{X: 85, Y: 32}),
				snap("st2", domain.TeamHome, domain.RoleStriker, domain.Position{X: 85, Y: 48}),
			},
			domain.ActionSwitchPlay,
		},
		{
			"middle third with one runner retains",
			domain.Position{X: 50, Y: 40},
			[]domain.Snapshot{snap("st", domain.TeamHome, domain.RoleStriker, domain.Position{X: 85, Y: 40})},
			domain.ActionRetainPossession,
		},
		{
			"own third keeps it safe",
			domain.Position{X: 20, Y: 40},
			[]domain.Snapshot{snap("st", domain.TeamHome, domain.RoleStriker, domain.Position{X: 85, Y: 40})},
			domain.ActionSafePass,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := newAgent(domain.RoleMidfielder, domain.TeamHome, tc.pos, true)
			p := mustPolicy(t, state)
			if got := p.Decide(&domain.GameContext{Phase: domain.PhaseAttack}, tc.visible); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestMidfielderAwayThirdsAreMirrored(t *testing.T) {
	// x=20 is the away side's attacking third.
	state := newAgent(domain.RoleMidfielder, domain.TeamAway, domain.Position{X: 20, Y: 40}, true)
	p := mustPolicy(t, state)
	visible := []domain.Snapshot{
		snap("st", domain.TeamAway, domain.RoleStriker, domain.Position{X: 10, Y: 40}),
	}
	if got := p.Decide(&domain.GameContext{Phase: domain.PhaseAttack}, visible); got != domain.ActionThroughPass {
		t.Fatalf("expected through_pass, got %s", got)
	}
}

func TestMidfielderOffBall(t *testing.T) {
	pos := domain.Position{X: 50, Y: 40}
	cases := []struct {
		name  string
		phase domain.GamePhase
		ball  domain.Position
		want  domain.Action
	}{
		{"defense near the ball presses", domain.PhaseDefense, domain.Position{X: 55, Y: 40}, domain.ActionPress},
		{"defense far from the ball tracks back", domain.PhaseDefense, domain.Position{X: 90, Y: 40}, domain.ActionTrackBack},
		{"attack near the ball supports", domain.PhaseAttack, domain.Position{X: 70, Y: 40}, domain.ActionSupportRun},
		{"attack far from the ball finds space", domain.PhaseAttack, domain.Position{X: 100, Y: 0}, domain.ActionFindSpace},
		{"transition finds space", domain.PhaseTransition, domain.Position{X: 55, Y: 40}, domain.ActionFindSpace},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := newAgent(domain.RoleMidfielder, domain.TeamHome, pos, false)
			p := mustPolicy(t, state)
			ctx := &domain.GameContext{Phase: tc.phase, BallPosition: tc.ball}
			if got := p.Decide(ctx, nil); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
