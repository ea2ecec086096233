package eventlog

import (
	"testing"
	"time"

	"github.com/pitchproc/pitchproc/internal/domain"
)

func entry(team domain.Team, action domain.Action, result string) Entry {
	return Entry{
		Agent: domain.Snapshot{
			ID:       string(team) + "_player",
			Team:     team,
			Role:     domain.RoleMidfielder,
			Position: domain.Position{X: 50, Y: 40},
		},
		Action:    action,
		Result:    result,
		Ball:      domain.Position{X: 55, Y: 40},
		Pressure:  domain.PressureLow,
		Elapsed:   time.Second,
		Remaining: 89 * time.Minute,
	}
}

func TestLoggerCasesFollowPossession(t *testing.T) {
	l := NewLogger()

	first := l.Record(entry(domain.TeamHome, domain.ActionSafePass, ResultSuccess))
	if first.CaseID != "possession_001" {
		t.Fatalf("expected possession_001, got %s", first.CaseID)
	}
	if first.Sequence != 1 {
		t.Fatalf("expected sequence 1, got %d", first.Sequence)
	}

	second := l.Record(entry(domain.TeamHome, domain.ActionForwardPass, ResultSuccess))
	if second.CaseID != first.CaseID {
		t.Fatalf("same-team success should stay in the case, got %s", second.CaseID)
	}
	if second.Sequence != 2 {
		t.Fatalf("expected sequence 2, got %d", second.Sequence)
	}

	// A team change opens a new case.
	third := l.Record(entry(domain.TeamAway, domain.ActionIntercept, ResultSuccess))
	if third.CaseID != "possession_002" {
		t.Fatalf("expected possession_002 after a team change, got %s", third.CaseID)
	}
	if third.Sequence != 1 {
		t.Fatalf("expected sequence reset, got %d", third.Sequence)
	}

	// A failed turnover-prone action opens a new case even for the
	// same team.
	fourth := l.Record(entry(domain.TeamAway, domain.ActionThroughPass, ResultFailure))
	if fourth.CaseID != "possession_003" {
		t.Fatalf("expected possession_003 after a turnover, got %s", fourth.CaseID)
	}

	// A failed press is not a turnover.
	fifth := l.Record(entry(domain.TeamAway, domain.ActionPress, ResultFailure))
	if fifth.CaseID != "possession_003" {
		t.Fatalf("failed press should not open a case, got %s", fifth.CaseID)
	}
}

func TestLoggerEventIDsAreSequential(t *testing.T) {
	l := NewLogger()
	a := l.Record(entry(domain.TeamHome, domain.ActionSafePass, ResultSuccess))
	b := l.Record(entry(domain.TeamHome, domain.ActionShoot, ResultSaved))
	if a.EventID != "evt_000000" || b.EventID != "evt_000001" {
		t.Fatalf("unexpected event IDs %s, %s", a.EventID, b.EventID)
	}
}

func TestProcessType(t *testing.T) {
	if got := processType(domain.ActionPress); got != ProcessPressing {
		t.Fatalf("press should be a pressing event, got %s", got)
	}
	if got := processType(domain.ActionIntercept); got != ProcessPressing {
		t.Fatalf("intercept should be a pressing event, got %s", got)
	}
	if got := processType(domain.ActionSafePass); got != ProcessPossession {
		t.Fatalf("safe_pass should be a possession event, got %s", got)
	}
}

func TestZonesAndGameState(t *testing.T) {
	if z := pitchZone(10); z != "defensive_third" {
		t.Fatalf("got %s", z)
	}
	if z := pitchZone(50); z != "middle_third" {
		t.Fatalf("got %s", z)
	}
	if z := pitchZone(90); z != "attacking_third" {
		t.Fatalf("got %s", z)
	}
	if z := subZone(10); z != "left_flank" {
		t.Fatalf("got %s", z)
	}
	if z := subZone(40); z != "central" {
		t.Fatalf("got %s", z)
	}
	if z := subZone(70); z != "right_flank" {
		t.Fatalf("got %s", z)
	}

	if s := gameState(domain.TeamHome, 2, 1); s != "winning" {
		t.Fatalf("got %s", s)
	}
	if s := gameState(domain.TeamAway, 2, 1); s != "losing" {
		t.Fatalf("got %s", s)
	}
	if s := gameState(domain.TeamAway, 1, 1); s != "drawing" {
		t.Fatalf("got %s", s)
	}
}

func TestXGContribution(t *testing.T) {
	cases := []struct {
		name   string
		action domain.Action
		ball   domain.Position
		result string
		want   float64
	}{
		{"goal is worth one", domain.ActionShoot, domain.Position{X: 95, Y: 40}, ResultGoal, 1.0},
		{"close miss", domain.ActionShoot, domain.Position{X: 95, Y: 40}, ResultSaved, 0.4},
		{"edge-of-box miss", domain.ActionShoot, domain.Position{X: 85, Y: 40}, ResultSaved, 0.2},
		{"long-range miss", domain.ActionShoot, domain.Position{X: 60, Y: 40}, ResultSaved, 0.05},
		{"final-third completion", domain.ActionForwardPass, domain.Position{X: 80, Y: 40}, ResultSuccess, 0.01},
		{"midfield completion", domain.ActionForwardPass, domain.Position{X: 50, Y: 40}, ResultSuccess, 0},
		{"movement adds nothing", domain.ActionSupportRun, domain.Position{X: 80, Y: 40}, ResultSuccess, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := xgContribution(tc.action, tc.ball, tc.result); got != tc.want {
				t.Fatalf("expected %f, got %f", tc.want, got)
			}
		})
	}
}

func TestCaseGrouping(t *testing.T) {
	l := NewLogger()
	l.Record(entry(domain.TeamHome, domain.ActionSafePass, ResultSuccess))
	l.Record(entry(domain.TeamHome, domain.ActionForwardPass, ResultSuccess))
	l.Record(entry(domain.TeamAway, domain.ActionIntercept, ResultSuccess))
	events := l.Events()

	ids := CaseIDs(events)
	if len(ids) != 2 || ids[0] != "possession_001" || ids[1] != "possession_002" {
		t.Fatalf("unexpected case IDs %v", ids)
	}

	cases := Cases(events)
	if len(cases["possession_001"]) != 2 || len(cases["possession_002"]) != 1 {
		t.Fatalf("unexpected case sizes %d and %d",
			len(cases["possession_001"]), len(cases["possession_002"]))
	}

	acts := Activities(events)
	if len(acts) != 3 {
		t.Fatalf("expected 3 distinct activities, got %v", acts)
	}
	for i := 1; i < len(acts); i++ {
		if acts[i-1] >= acts[i] {
			t.Fatalf("activities not sorted: %v", acts)
		}
	}
}
