package leads

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

// Handler serves the operator views of accepted leads.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// ListLeadsResponse is the redacted listing returned by ListLeads.
type ListLeadsResponse struct {
	Total       int       `json:"total"`
	Submissions []Summary `json:"submissions"`
}

// ListLeads handles GET /api/intake. Intended for local inspection only.
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":      false,
			"message": "Internal server error",
		})
		return
	}

	resp := ListLeadsResponse{
		Total:       len(records),
		Submissions: make([]Summary, 0, len(records)),
	}
	for _, rec := range records {
		resp.Submissions = append(resp.Submissions, rec.Redacted())
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetLead handles GET /api/intake/{leadID} with the same redaction as ListLeads.
func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")
	rec, err := h.store.GetByID(r.Context(), leadID)
	if errors.Is(err, ErrLeadNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"ok":      false,
			"message": "Lead not found",
		})
		return
	}
	if err != nil {
		h.logger.Error("failed to get lead", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":      false,
			"message": "Internal server error",
		})
		return
	}

	writeJSON(w, http.StatusOK, rec.Redacted())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
