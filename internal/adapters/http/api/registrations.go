package api

import (
	"net/http"

	"github.com/okian/regboard/pkg/logger"
)

// RegistrationsHandler serves the JSON views of one load.
type RegistrationsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewRegistrationsHandler creates a new registrations handler.
func NewRegistrationsHandler(deps Dependencies, l logger.Logger) *RegistrationsHandler {
	return &RegistrationsHandler{deps: deps, logger: l}
}

// HandleRegistrations handles GET /api/registrations.
func (h *RegistrationsHandler) HandleRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.deps.Registrations(r.Context())
	if err != nil {
		h.loadFailed(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// HandleSummary handles GET /api/summary.
func (h *RegistrationsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.deps.Summary(r.Context())
	if err != nil {
		h.loadFailed(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *RegistrationsHandler) loadFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Warn(r.Context(), "load failed",
		logger.String("path", r.URL.Path),
		logger.String("request_id", RequestIDFromContext(r.Context())),
		logger.Error(err),
	)
	writeError(w, http.StatusBadGateway, "load_failed", ErrUpstream)
}
