// Package monitor verifies role property declarations against per-agent
// action traces. It is decoupled from the policies: a monitor is a pure
// consumer of ordered trace events plus a PropertyDeclaration, so it can
// run online during a match or offline over an exported log, with
// identical verdicts either way.
package monitor

import (
	"fmt"
	"time"

	"github.com/pitchproc/pitchproc/internal/domain"
)

// PendingObligation is a liveness window still open at end of trace.
// It is not a violation: the deadline had not yet expired.
type PendingObligation struct {
	Obligation string        `json:"obligation"`
	OpenedAt   time.Duration `json:"opened_at"`
}

// Report is the verdict for one agent's trace.
type Report struct {
	AgentID    string              `json:"agent_id"`
	Role       domain.Role         `json:"role"`
	Events     int                 `json:"events"`
	Violations []domain.Violation  `json:"violations"`
	Pending    []PendingObligation `json:"pending,omitempty"`
}

// Passed reports whether the trace met every obligation.
func (r Report) Passed() bool { return len(r.Violations) == 0 }

type window struct {
	openedAt  time.Duration
	openedSeq int
}

// Monitor checks one agent's action stream against its role's declared
// obligations. Safety obligations are checked event-by-event; liveness
// obligations keep a FIFO queue of open deadlines per obligation, so
// retriggers before resolution are tracked independently.
//
// A Monitor is exclusively owned by one agent's verification; monitors
// for different agents are independent and may run concurrently.
type Monitor struct {
	agentID    string
	decl       domain.PropertyDeclaration
	open       map[int][]window // liveness obligation index -> open windows, oldest first
	prev       *domain.TraceEvent
	violations []domain.Violation
	events     int
}

// New returns a monitor for one agent of the declared role.
func New(agentID string, decl domain.PropertyDeclaration) *Monitor {
	return &Monitor{
		agentID: agentID,
		decl:    decl,
		open:    make(map[int][]window),
	}
}

// Observe ingests the next trace event and returns any violations it
// produced. Violations are domain faults, reported and recorded, never
// raised: the match continues.
func (m *Monitor) Observe(ev domain.TraceEvent) []domain.Violation {
	// Possession edges derive from consecutive events, so offline
	// replays of exported logs agree with the online run.
	if m.prev == nil {
		ev.Flags.GainedBall = ev.Flags.HasBall
		ev.Flags.LostBall = false
	} else {
		ev.Flags.GainedBall = ev.Flags.HasBall && !m.prev.Flags.HasBall
		ev.Flags.LostBall = !ev.Flags.HasBall && m.prev.Flags.HasBall
	}

	var found []domain.Violation

	for _, ob := range m.decl.Safety {
		if !ob.Condition.Holds(ev) {
			continue
		}
		if ob.Obligation.Test == nil {
			// "never C" invariant: C holding is the breach.
			found = append(found, m.violation(ob, ev, "forbidden condition held"))
		} else if !ob.Obligation.Holds(ev) {
			found = append(found, m.violation(ob, ev, fmt.Sprintf("required %s, got %s", ob.Obligation.Name, ev.Action)))
		}
	}

	for i, ob := range m.decl.Liveness {
		queue := m.open[i]

		// Expire first: an obligated action landing exactly on the
		// expiry tick does not rescue an already-expired window.
		kept := queue[:0]
		for _, w := range queue {
			if ev.Timestamp >= w.openedAt+ob.Deadline {
				found = append(found, m.violation(ob, ev,
					fmt.Sprintf("no %s within %s of trigger at %s", ob.Obligation.Name, ob.Deadline, w.openedAt)))
				continue
			}
			kept = append(kept, w)
		}
		queue = kept

		// The obligated action resolves the oldest remaining window.
		if ob.Obligation.Holds(ev) && len(queue) > 0 {
			queue = queue[1:]
		}

		if ob.Trigger.Holds(ev) && !ob.Obligation.Holds(ev) {
			if !ob.Sustained || len(queue) == 0 {
				queue = append(queue, window{openedAt: ev.Timestamp, openedSeq: ev.Seq})
			}
		}

		if len(queue) == 0 {
			delete(m.open, i)
		} else {
			m.open[i] = queue
		}
	}

	m.violations = append(m.violations, found...)
	m.events++
	evCopy := ev
	m.prev = &evCopy
	return found
}

// Report returns the verdict accumulated so far. Open windows whose
// deadline has not expired are reported as pending, not violated.
func (m *Monitor) Report() Report {
	r := Report{
		AgentID:    m.agentID,
		Role:       m.decl.Role,
		Events:     m.events,
		Violations: append([]domain.Violation(nil), m.violations...),
	}
	for i, ob := range m.decl.Liveness {
		for _, w := range m.open[i] {
			r.Pending = append(r.Pending, PendingObligation{Obligation: ob.Name, OpenedAt: w.openedAt})
		}
	}
	return r
}

func (m *Monitor) violation(ob domain.TemporalObligation, ev domain.TraceEvent, detail string) domain.Violation {
	return domain.Violation{
		AgentID:    m.agentID,
		Role:       m.decl.Role,
		Obligation: ob.Name,
		Kind:       ob.Kind,
		TraceIndex: ev.Seq,
		Timestamp:  ev.Timestamp,
		Detail:     detail,
	}
}

// Evaluate replays a full trace through a fresh monitor and returns the
// verdict. It is a pure function of its inputs: replaying the same
// trace twice yields identical reports.
func Evaluate(agentID string, decl domain.PropertyDeclaration, trace []domain.TraceEvent) Report {
	m := New(agentID, decl)
	for _, ev := range trace {
		m.Observe(ev)
	}
	return m.Report()
}
