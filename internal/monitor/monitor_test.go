package monitor

import (
	"reflect"
	"testing"
	"time"

	"github.com/pitchproc/pitchproc/internal/domain"
	"github.com/pitchproc/pitchproc/internal/policy"
)

func declFor(t *testing.T, role domain.Role) domain.PropertyDeclaration {
	t.Helper()
	decl, err := policy.DeclarationFor(role)
	if err != nil {
		t.Fatalf("declaration for %s: %v", role, err)
	}
	return decl
}

type eventBuilder struct {
	seq  int
	role domain.Role
}

func (b *eventBuilder) next(at time.Duration, action domain.Action, flags domain.TraceFlags) domain.TraceEvent {
	ev := domain.TraceEvent{
		Seq:       b.seq,
		Timestamp: at,
		AgentID:   "agent_under_test",
		Role:      b.role,
		Action:    action,
		Flags:     flags,
	}
	b.seq++
	return ev
}

func holding(phase domain.GamePhase) domain.TraceFlags {
	return domain.TraceFlags{HasBall: true, Phase: phase, InLegalZone: true}
}

func offBall(phase domain.GamePhase) domain.TraceFlags {
	return domain.TraceFlags{Phase: phase, InLegalZone: true}
}

func TestLivenessResolvedBeforeDeadline(t *testing.T) {
	decl := declFor(t, domain.RoleGoalkeeper)
	b := &eventBuilder{role: domain.RoleGoalkeeper}
	m := New("agent_under_test", decl)

	// gains the ball, then distributes well inside the 6s window
	m.Observe(b.next(0, domain.ActionShortPass, holding(domain.PhaseDefense)))
	m.Observe(b.next(2*time.Second, domain.ActionShortPass, holding(domain.PhaseDefense)))

	r := m.Report()
	if !r.Passed() {
		t.Fatalf("expected pass, got violations: %+v", r.Violations)
	}
	if len(r.Pending) != 0 {
		t.Fatalf("expected no pending windows, got %+v", r.Pending)
	}
}

func TestLivenessWindowExpiry(t *testing.T) {
	decl := declFor(t, domain.RoleMidfielder)
	b := &eventBuilder{role: domain.RoleMidfielder}
	m := New("agent_under_test", decl)

	// gains the ball and then holds it with a non-distribution action
	// every 100ms until past the 5s deadline
	var violations []domain.Violation
	violations = append(violations, m.Observe(b.next(0, domain.ActionRetainPossession, holding(domain.PhaseAttack)))...)
	for at := 100 * time.Millisecond; at <= 5100*time.Millisecond; at += 100 * time.Millisecond {
		violations = append(violations, m.Observe(b.next(at, domain.ActionRetainPossession, holding(domain.PhaseAttack)))...)
	}

	var distributes []domain.Violation
	for _, v := range violations {
		if v.Obligation == "distributes_ball_within_5s" {
			distributes = append(distributes, v)
		}
	}
	if len(distributes) != 1 {
		t.Fatalf("expected exactly one distribution violation, got %d: %+v", len(distributes), distributes)
	}
	if distributes[0].Timestamp != 5*time.Second {
		t.Fatalf("expected the violation at the expiry tick (5s), got %s", distributes[0].Timestamp)
	}
}

func TestLivenessActionOneTickBeforeExpiry(t *testing.T) {
	decl := declFor(t, domain.RoleMidfielder)
	b := &eventBuilder{role: domain.RoleMidfielder}
	m := New("agent_under_test", decl)

	m.Observe(b.next(0, domain.ActionRetainPossession, holding(domain.PhaseAttack)))
	for at := 100 * time.Millisecond; at < 4900*time.Millisecond; at += 100 * time.Millisecond {
		m.Observe(b.next(at, domain.ActionRetainPossession, holding(domain.PhaseAttack)))
	}
	// distribution lands one tick before the 5s deadline
	m.Observe(b.next(4900*time.Millisecond, domain.ActionSafePass, holding(domain.PhaseAttack)))

	for _, v := range m.Report().Violations {
		if v.Obligation == "distributes_ball_within_5s" {
			t.Fatalf("unexpected violation: %+v", v)
		}
	}
}

func TestLivenessActionExactlyAtExpiryStillViolates(t *testing.T) {
	decl := declFor(t, domain.RoleMidfielder)
	b := &eventBuilder{role: domain.RoleMidfielder}
	m := New("agent_under_test", decl)

	m.Observe(b.next(0, domain.ActionRetainPossession, holding(domain.PhaseAttack)))
	// the distribution lands exactly on the deadline: too late
	found := m.Observe(b.next(5*time.Second, domain.ActionSafePass, holding(domain.PhaseAttack)))

	var hit bool
	for _, v := range found {
		if v.Obligation == "distributes_ball_within_5s" {
			hit = true
		}
	}
	if !hit {
		t.Fatal("expected a violation when the action lands exactly at the deadline")
	}
}

func TestEdgeTriggerQueuesIndependentWindows(t *testing.T) {
	decl := declFor(t, domain.RoleMidfielder)
	b := &eventBuilder{role: domain.RoleMidfielder}
	m := New("agent_under_test", decl)

	// two separate possession gains, neither resolved
	m.Observe(b.next(0, domain.ActionRetainPossession, holding(domain.PhaseAttack)))
	m.Observe(b.next(1*time.Second, domain.ActionFindSpace, offBall(domain.PhaseAttack)))
	m.Observe(b.next(2*time.Second, domain.ActionRetainPossession, holding(domain.PhaseAttack)))

	r := m.Report()
	var pending int
	for _, p := range r.Pending {
		if p.Obligation == "distributes_ball_within_5s" {
			pending++
		}
	}
	if pending != 2 {
		t.Fatalf("expected 2 open windows after 2 unresolved gains, got %d", pending)
	}
}

func TestSustainedTriggerOpensOneWindow(t *testing.T) {
	decl := declFor(t, domain.RoleCentreBack)
	b := &eventBuilder{role: domain.RoleCentreBack}
	m := New("agent_under_test", decl)

	pressured := domain.TraceFlags{HasBall: true, Phase: domain.PhaseDefense, Pressure: domain.PressureHigh, InLegalZone: true}

	// sustained high pressure: a level condition, not repeated edges.
	// safe_pass under high pressure also breaks the safety rule, so
	// filter to the liveness obligation only.
	m.Observe(b.next(0, domain.ActionSafePass, pressured))
	m.Observe(b.next(500*time.Millisecond, domain.ActionSafePass, pressured))
	m.Observe(b.next(1*time.Second, domain.ActionSafePass, pressured))

	r := m.Report()
	var pending int
	for _, p := range r.Pending {
		if p.Obligation == "clears_ball_under_pressure_within_2s" {
			pending++
		}
	}
	if pending != 1 {
		t.Fatalf("expected a single open window for a sustained condition, got %d", pending)
	}
}

func TestSustainedWindowReArmsAfterViolation(t *testing.T) {
	decl := declFor(t, domain.RoleCentreBack)
	b := &eventBuilder{role: domain.RoleCentreBack}
	m := New("agent_under_test", decl)

	pressured := domain.TraceFlags{HasBall: true, Phase: domain.PhaseDefense, Pressure: domain.PressureHigh, InLegalZone: true}

	// pressure held for 4.5s with no clearance: the 2s window expires,
	// re-arms, and expires again
	for at := time.Duration(0); at <= 4500*time.Millisecond; at += 500 * time.Millisecond {
		m.Observe(b.next(at, domain.ActionSafePass, pressured))
	}

	var count int
	for _, v := range m.Report().Violations {
		if v.Obligation == "clears_ball_under_pressure_within_2s" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 violations over 4.5s of sustained pressure, got %d", count)
	}
}

func TestSafetyNeverForm(t *testing.T) {
	decl := declFor(t, domain.RoleStriker)
	b := &eventBuilder{role: domain.RoleStriker}
	m := New("agent_under_test", decl)

	flags := holding(domain.PhaseAttack)
	flags.AngleLow = true
	found := m.Observe(b.next(0, domain.ActionShoot, flags))

	var hit bool
	for _, v := range found {
		if v.Obligation == "never_shoots_from_impossible_angle" {
			hit = true
			if v.Kind != domain.KindSafety {
				t.Fatalf("expected safety kind, got %s", v.Kind)
			}
		}
	}
	if !hit {
		t.Fatal("expected a violation for a low-angle shot")
	}
}

func TestSafetyConditionalForm(t *testing.T) {
	decl := declFor(t, domain.RoleGoalkeeper)
	b := &eventBuilder{role: domain.RoleGoalkeeper}

	shot := offBall(domain.PhaseDefense)
	shot.ShotOnTarget = true

	// reacting with a save: no violation
	m := New("agent_under_test", decl)
	if found := m.Observe(b.next(0, domain.ActionSaveAttempt, shot)); len(found) != 0 {
		t.Fatalf("unexpected violations: %+v", found)
	}

	// standing still instead: violation
	m = New("agent_under_test", decl)
	b = &eventBuilder{role: domain.RoleGoalkeeper}
	found := m.Observe(b.next(0, domain.ActionMaintainPosition, shot))
	var hit bool
	for _, v := range found {
		if v.Obligation == "attempts_save_when_shot_on_target" {
			hit = true
		}
	}
	if !hit {
		t.Fatal("expected a violation for ignoring a shot on target")
	}
}

func TestGoalkeeperLeavesAreaOnlyInOpenPlay(t *testing.T) {
	decl := declFor(t, domain.RoleGoalkeeper)
	b := &eventBuilder{role: domain.RoleGoalkeeper}
	m := New("agent_under_test", decl)

	outside := offBall(domain.PhaseAttack)
	outside.InLegalZone = false
	if found := m.Observe(b.next(0, domain.ActionMoveToPosition, outside)); len(found) == 0 {
		t.Fatal("expected a violation for leaving the penalty area in open play")
	}

	// the same position during a set piece is allowed
	m = New("agent_under_test", decl)
	b = &eventBuilder{role: domain.RoleGoalkeeper}
	setPiece := offBall(domain.PhaseSetPiece)
	setPiece.InLegalZone = false
	if found := m.Observe(b.next(0, domain.ActionMoveToPosition, setPiece)); len(found) != 0 {
		t.Fatalf("unexpected violations during set piece: %+v", found)
	}
}

func TestPossessionEdgesDerivedFromTrace(t *testing.T) {
	decl := declFor(t, domain.RoleMidfielder)
	b := &eventBuilder{role: domain.RoleMidfielder}
	m := New("agent_under_test", decl)

	// the caller does not set GainedBall; the monitor must infer it
	// from the HasBall level change and open a window
	m.Observe(b.next(0, domain.ActionFindSpace, offBall(domain.PhaseTransition)))
	m.Observe(b.next(1*time.Second, domain.ActionRetainPossession, holding(domain.PhaseAttack)))

	r := m.Report()
	var pending bool
	for _, p := range r.Pending {
		if p.Obligation == "distributes_ball_within_5s" {
			pending = true
		}
	}
	if !pending {
		t.Fatal("expected an open distribution window after an inferred possession gain")
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	decl := declFor(t, domain.RoleCentreBack)
	b := &eventBuilder{role: domain.RoleCentreBack}

	pressured := domain.TraceFlags{HasBall: true, Phase: domain.PhaseDefense, Pressure: domain.PressureHigh, InLegalZone: true}
	trace := []domain.TraceEvent{
		b.next(0, domain.ActionSafePass, pressured),
		b.next(1*time.Second, domain.ActionSafePass, pressured),
		b.next(3*time.Second, domain.ActionClearBall, pressured),
		b.next(4*time.Second, domain.ActionTrackRunner, offBall(domain.PhaseDefense)),
	}

	first := Evaluate("agent_under_test", decl, trace)
	second := Evaluate("agent_under_test", decl, trace)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("replaying the same trace produced different reports:\n%+v\n%+v", first, second)
	}
	if first.Events != len(trace) {
		t.Fatalf("expected %d events observed, got %d", len(trace), first.Events)
	}
}
