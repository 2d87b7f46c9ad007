package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpmiddleware "github.com/wolfman30/webmcpsetup/internal/http/middleware"
	"github.com/wolfman30/webmcpsetup/internal/intake"
	"github.com/wolfman30/webmcpsetup/internal/leads"
	"github.com/wolfman30/webmcpsetup/internal/tools"
	"github.com/wolfman30/webmcpsetup/internal/web"
	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	Site               *web.Site
	IntakeHandler      *intake.Handler
	ToolsHandler       *tools.Handler
	LeadsHandler       *leads.Handler
	MCPHandler         http.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	r.Use(httpmiddleware.ClientKeyContext)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (health checks, metrics)
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	r.Route("/api", func(api chi.Router) {
		if cfg.IntakeHandler != nil {
			api.Route("/intake", func(r chi.Router) {
				r.Post("/", cfg.IntakeHandler.Submit)
				r.Post("/validate", cfg.IntakeHandler.Validate)
				r.Get("/schema", cfg.IntakeHandler.Schema)
				if cfg.LeadsHandler != nil {
					r.Get("/", cfg.LeadsHandler.ListLeads)
					r.Get("/{leadID}", cfg.LeadsHandler.GetLead)
				}
			})
		}
		if cfg.ToolsHandler != nil {
			api.Route("/tools", func(r chi.Router) {
				r.Get("/", cfg.ToolsHandler.List)
				r.Post("/{name}", cfg.ToolsHandler.Call)
			})
		}
	})

	// Streamable HTTP MCP endpoint exposing the same tool registry
	if cfg.MCPHandler != nil {
		r.Handle("/mcp", cfg.MCPHandler)
	}

	if cfg.Site != nil {
		cfg.Site.Routes(r)
	}

	return r
}

// healthCheck returns a simple health check response.
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
