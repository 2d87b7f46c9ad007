package intake

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/wolfman30/webmcpsetup/internal/http/middleware"
	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

const maxBodyBytes = 64 << 10

// Handler serves the intake JSON API.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Submit handles POST /api/intake.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.logger.Warn("intake: failed to read body", "error", err)
		body = nil
	}
	out := h.service.Submit(r.Context(), clientKey(r), body)
	writeJSON(w, out.Status, out.Response)
}

// Validate handles POST /api/intake/validate. It never touches the limiter or store.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{OK: false, Message: MessageMalformed})
		return
	}
	res, err := h.service.Validate(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{OK: false, Message: MessageMalformed})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SchemaResponse is the body of GET /api/intake/schema.
type SchemaResponse struct {
	ToolName        string         `json:"tool_name"`
	ToolDescription string         `json:"tool_description"`
	Schema          map[string]any `json:"schema"`
	Fields          []Field        `json:"fields"`
}

// NewSchemaResponse bundles the JSON schema with the field list.
func NewSchemaResponse() SchemaResponse {
	return SchemaResponse{
		ToolName:        FormToolName,
		ToolDescription: FormToolDescription,
		Schema:          JSONSchema(),
		Fields:          Fields(),
	}
}

// Schema handles GET /api/intake/schema.
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NewSchemaResponse())
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// clientKey prefers the key stored by middleware.ClientKeyContext.
func clientKey(r *http.Request) string {
	if key := middleware.ClientKeyFromContext(r.Context()); key != middleware.UnknownClientKey {
		return key
	}
	return middleware.ClientKey(r)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
