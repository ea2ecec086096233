package service

import (
	"errors"

	"github.com/pitchproc/pitchproc/internal/domain"
	"github.com/pitchproc/pitchproc/internal/monitor"
	"github.com/pitchproc/pitchproc/internal/policy"
	"go.uber.org/zap"
)

var (
	ErrUnknownRole  = errors.New("unknown role")
	ErrEmptyTrace   = errors.New("trace is empty")
	ErrMixedAgents  = errors.New("trace mixes multiple agents")
	ErrForeignEvent = errors.New("trace contains an action outside the role vocabulary")
)

// PropertyService answers questions about role obligations and
// evaluates recorded traces offline. Offline evaluation reuses the
// same monitor that runs during simulation, so replaying a trace
// reproduces the online verdicts exactly.
type PropertyService struct {
	logger *zap.Logger
}

func NewPropertyService(logger *zap.Logger) *PropertyService {
	return &PropertyService{logger: logger}
}

// DeclarationFor returns the obligation set monitored for a role.
func (s *PropertyService) DeclarationFor(role domain.Role) (domain.PropertyDeclaration, error) {
	decl, err := policy.DeclarationFor(role)
	if err != nil {
		return domain.PropertyDeclaration{}, ErrUnknownRole
	}
	return decl, nil
}

// Evaluate replays one agent's trace through its role monitor.
func (s *PropertyService) Evaluate(role domain.Role, trace []domain.TraceEvent) (monitor.Report, error) {
	decl, err := policy.DeclarationFor(role)
	if err != nil {
		return monitor.Report{}, ErrUnknownRole
	}
	if len(trace) == 0 {
		return monitor.Report{}, ErrEmptyTrace
	}

	agentID := trace[0].AgentID
	for _, ev := range trace {
		if ev.AgentID != agentID {
			return monitor.Report{}, ErrMixedAgents
		}
		if !role.InVocabulary(ev.Action) {
			return monitor.Report{}, ErrForeignEvent
		}
	}

	report := monitor.Evaluate(agentID, decl, trace)
	s.logger.Debug("trace evaluated",
		zap.String("agent", agentID),
		zap.String("role", string(role)),
		zap.Int("events", len(trace)),
		zap.Int("violations", len(report.Violations)))
	return report, nil
}
