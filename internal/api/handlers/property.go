package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pitchproc/pitchproc/internal/domain"
	"github.com/pitchproc/pitchproc/internal/service"
)

type PropertyHandler struct {
	svc *service.PropertyService
}

func NewPropertyHandler(svc *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

type obligationView struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Trigger   string `json:"trigger,omitempty"`
	Condition string `json:"condition,omitempty"`
	Action    string `json:"action,omitempty"`
	Deadline  string `json:"deadline,omitempty"`
	Sustained bool   `json:"sustained,omitempty"`
}

// Declarations returns the obligations monitored for a role.
func (h *PropertyHandler) Declarations(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(chi.URLParam(r, "role"))

	decl, err := h.svc.DeclarationFor(role)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown role")
		return
	}

	out := make([]obligationView, 0, len(decl.Liveness)+len(decl.Safety))
	for _, ob := range decl.Liveness {
		out = append(out, obligationView{
			Name:      ob.Name,
			Kind:      string(ob.Kind),
			Trigger:   ob.Trigger.Name,
			Action:    ob.Obligation.Name,
			Deadline:  ob.Deadline.String(),
			Sustained: ob.Sustained,
		})
	}
	for _, ob := range decl.Safety {
		out = append(out, obligationView{
			Name:      ob.Name,
			Kind:      string(ob.Kind),
			Condition: ob.Condition.Name,
			Action:    ob.Obligation.Name,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"role": role, "obligations": out})
}

type evaluateRequest struct {
	Role  domain.Role         `json:"role"`
	Trace []domain.TraceEvent `json:"trace"`
}

// Evaluate replays a recorded trace through the role's monitor and
// returns the verdicts.
func (h *PropertyHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.svc.Evaluate(req.Role, req.Trace)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownRole):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmptyTrace),
			errors.Is(err, service.ErrMixedAgents),
			errors.Is(err, service.ErrForeignEvent):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to evaluate trace")
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}
