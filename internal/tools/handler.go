package tools

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

const maxInputBytes = 64 << 10

// Descriptor is the public listing shape of a tool.
type Descriptor struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	InputSchema  map[string]any `json:"inputSchema"`
	ReadOnlyHint bool           `json:"readOnlyHint"`
}

// Describe converts a tool to its listing shape.
func Describe(t Tool) Descriptor {
	return Descriptor{
		Name:         t.Name,
		Description:  t.Description,
		InputSchema:  t.InputSchema,
		ReadOnlyHint: t.ReadOnly,
	}
}

// Handler exposes the registry over HTTP.
type Handler struct {
	registry *Registry
	logger   *logging.Logger
}

func NewHandler(registry *Registry, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{registry: registry, logger: logger}
}

// List handles GET /api/tools.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list := h.registry.List()
	out := make([]Descriptor, 0, len(list))
	for _, t := range list {
		out = append(out, Describe(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": out})
}

// Call handles POST /api/tools/{name}. The body is the tool's arguments object.
func (h *Handler) Call(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := h.registry.Lookup(name); !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": "unknown tool: " + name})
		return
	}

	input, err := decodeInput(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "arguments must be a JSON object"})
		return
	}

	result, err := h.registry.Call(r.Context(), name, input)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "result": result})
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
	default:
		h.logger.Error("tools: call failed", "tool", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "Internal server error"})
	}
}

func decodeInput(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	defer r.Body.Close()
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInputBytes))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var input map[string]any
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, err
	}
	if input == nil {
		return nil, errors.New("null arguments")
	}
	return input, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
