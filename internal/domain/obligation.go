package domain

import "time"

// ObligationKind distinguishes progress guarantees from invariants.
type ObligationKind string

const (
	KindLiveness ObligationKind = "liveness"
	KindSafety   ObligationKind = "safety"
)

// Predicate is a named condition over a single trace event. Obligations
// are built from predicates once at role-definition time; the monitor
// never matches on strings.
type Predicate struct {
	Name string
	Test func(TraceEvent) bool
}

// Holds evaluates the predicate; a zero predicate never holds.
func (p Predicate) Holds(ev TraceEvent) bool {
	return p.Test != nil && p.Test(ev)
}

// TemporalObligation is one declared behavioral property.
//
// Liveness form: whenever Trigger holds, Obligation must hold for some
// event within Deadline of the trigger, repeating indefinitely. An
// edge-triggered obligation (Sustained false) opens a fresh deadline on
// every triggering event, so several may be in flight at once; they
// resolve FIFO. A sustained obligation treats Trigger as a level
// condition: at most one window is open at a time, re-armed after each
// resolution or violation.
//
// Safety form: whenever Condition holds, Obligation must hold for that
// same event. A safety obligation with a zero Obligation is a plain
// "never Condition" invariant.
type TemporalObligation struct {
	Name       string         `json:"name"`
	Kind       ObligationKind `json:"kind"`
	Trigger    Predicate      `json:"-"`
	Condition  Predicate      `json:"-"`
	Obligation Predicate      `json:"-"`
	Deadline   time.Duration  `json:"deadline,omitempty"`
	Sustained  bool           `json:"sustained,omitempty"`
}

// PropertyDeclaration is the pair of obligation lists attached to a
// role. Declared once per role and shared by all agents of that role;
// read-only at runtime.
type PropertyDeclaration struct {
	Role     Role                 `json:"role"`
	Liveness []TemporalObligation `json:"liveness"`
	Safety   []TemporalObligation `json:"safety"`
}
