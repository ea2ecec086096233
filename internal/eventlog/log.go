// Package eventlog records simulation actions as a possession-cased
// event log suitable for process mining. Each possession is one case;
// events carry spatial and tactical context alongside the activity.
package eventlog

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pitchproc/pitchproc/internal/domain"
)

// Activity results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultGoal    = "goal"
	ResultSaved   = "saved"
)

// Process types attached to cases.
const (
	ProcessPossession = "possession"
	ProcessPressing   = "pressing"
)

// Entry is the raw material for one recorded event.
type Entry struct {
	Agent     domain.Snapshot
	Action    domain.Action
	Result    string
	Ball      domain.Position
	Pressure  domain.PressureLevel
	Elapsed   time.Duration
	Remaining time.Duration
	HomeScore int
	AwayScore int
}

// Logger accumulates events and assigns possession case IDs. A new case
// opens when possession changes team or when a pass, dribble or shot
// fails.
type Logger struct {
	events         []domain.LogEvent
	eventCounter   int
	possessionID   int
	possessionTeam domain.Team
	possessionSeq  int
	started        bool
}

// NewLogger returns an empty logger.
func NewLogger() *Logger {
	return &Logger{}
}

// Record appends one event and returns it.
func (l *Logger) Record(e Entry) domain.LogEvent {
	if l.possessionChange(e) {
		l.possessionID++
		l.possessionTeam = e.Agent.Team
		l.possessionSeq = 1
		l.started = true
	} else {
		l.possessionSeq++
	}

	ev := domain.LogEvent{
		ID:            uuid.New(),
		CaseID:        fmt.Sprintf("possession_%03d", l.possessionID),
		ProcessType:   processType(e.Action),
		EventID:       fmt.Sprintf("evt_%06d", l.eventCounter),
		Timestamp:     e.Elapsed,
		Sequence:      l.possessionSeq,
		Activity:      e.Action,
		Result:        e.Result,
		PlayerID:      e.Agent.ID,
		PlayerRole:    e.Agent.Role,
		Team:          e.Agent.Team,
		StartX:        e.Agent.Position.X,
		StartY:        e.Agent.Position.Y,
		EndX:          e.Ball.X,
		EndY:          e.Ball.Y,
		PitchZone:     pitchZone(e.Ball.X),
		SubZone:       subZone(e.Ball.Y),
		Pressure:      e.Pressure,
		GameState:     gameState(e.Agent.Team, e.HomeScore, e.AwayScore),
		TimeRemaining: e.Remaining,
		Distance:      e.Agent.Position.DistanceTo(e.Ball),
		XGAdded:       xgContribution(e.Action, e.Ball, e.Result),
	}

	l.events = append(l.events, ev)
	l.eventCounter++
	return ev
}

// Events returns all recorded events in order.
func (l *Logger) Events() []domain.LogEvent {
	return append([]domain.LogEvent(nil), l.events...)
}

// Cases groups events by case ID, preserving event order within a case.
func Cases(events []domain.LogEvent) map[string][]domain.LogEvent {
	out := make(map[string][]domain.LogEvent)
	for _, ev := range events {
		out[ev.CaseID] = append(out[ev.CaseID], ev)
	}
	return out
}

// CaseIDs returns case IDs in first-seen order.
func CaseIDs(events []domain.LogEvent) []string {
	seen := make(map[string]int)
	for _, ev := range events {
		if _, ok := seen[ev.CaseID]; !ok {
			seen[ev.CaseID] = len(seen)
		}
	}
	out := make([]string, len(seen))
	for id, i := range seen {
		out[i] = id
	}
	return out
}

// Activities returns the distinct activities in the log, sorted.
func Activities(events []domain.LogEvent) []domain.Action {
	set := make(map[domain.Action]struct{})
	for _, ev := range events {
		set[ev.Activity] = struct{}{}
	}
	out := make([]domain.Action, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (l *Logger) possessionChange(e Entry) bool {
	if !l.started {
		return true
	}
	if e.Agent.Team != l.possessionTeam {
		return true
	}
	if e.Result == ResultFailure && turnoverProne(e.Action) {
		return true
	}
	return false
}

// turnoverProne reports whether a failed attempt of the action concedes
// possession.
func turnoverProne(a domain.Action) bool {
	return a.IsDistribution() || a == domain.ActionDribbleForward || a == domain.ActionShoot
}

func processType(a domain.Action) string {
	switch a {
	case domain.ActionPress, domain.ActionIntercept, domain.ActionPressDefender:
		return ProcessPressing
	}
	return ProcessPossession
}

func pitchZone(x float64) string {
	switch {
	case x < domain.PitchLength/3:
		return "defensive_third"
	case x < 2*domain.PitchLength/3:
		return "middle_third"
	default:
		return "attacking_third"
	}
}

func subZone(y float64) string {
	switch {
	case y < domain.PitchWidth/3:
		return "left_flank"
	case y < 2*domain.PitchWidth/3:
		return "central"
	default:
		return "right_flank"
	}
}

func gameState(team domain.Team, home, away int) string {
	own, opp := home, away
	if team == domain.TeamAway {
		own, opp = away, home
	}
	switch {
	case own > opp:
		return "winning"
	case own < opp:
		return "losing"
	default:
		return "drawing"
	}
}

// xgContribution estimates the expected-goal value added by an action.
func xgContribution(a domain.Action, ball domain.Position, result string) float64 {
	if a == domain.ActionShoot {
		if result == ResultGoal {
			return 1.0
		}
		homeGoal := domain.Position{X: 0, Y: domain.PitchWidth / 2}
		awayGoal := domain.Position{X: domain.PitchLength, Y: domain.PitchWidth / 2}
		d := ball.DistanceTo(homeGoal)
		if da := ball.DistanceTo(awayGoal); da < d {
			d = da
		}
		switch {
		case d < 10:
			return 0.4
		case d < 20:
			return 0.2
		default:
			return 0.05
		}
	}
	if a.IsDistribution() && result == ResultSuccess && ball.X > 2*domain.PitchLength/3 {
		return 0.01
	}
	return 0
}
