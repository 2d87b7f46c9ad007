package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/webmcpsetup/internal/intake"
	"github.com/wolfman30/webmcpsetup/internal/leads"
	"github.com/wolfman30/webmcpsetup/internal/tools"
	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

//go:embed templates/*.html templates/*.tmpl
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{"home", "blog", "post", "legal", "intake", "tools", "notfound"}

// Config is the site-wide presentation config.
type Config struct {
	Name            string
	BaseURL         string
	GAMeasurementID string
	CalendlyURL     string
}

type page struct {
	Site        Config
	Path        string
	Title       string
	Description string
	Data        any
}

// Site renders the marketing pages, the human intake flow, and agent discovery files.
type Site struct {
	cfg      Config
	pages    map[string]*template.Template
	llms     *texttemplate.Template
	registry *tools.Registry
	adapter  *intake.Adapter
	logger   *logging.Logger
}

func NewSite(cfg Config, registry *tools.Registry, adapter *intake.Adapter, logger *logging.Logger) (*Site, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Name == "" {
		cfg.Name = "webmcpsetup.ai"
	}
	if cfg.CalendlyURL == "" {
		cfg.CalendlyURL = intake.DefaultCalendlyURL
	}

	funcs := template.FuncMap{
		"formatDate": formatDate,
		"join":       strings.Join,
		"toJSON":     toJSON,
	}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("web: parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	llms, err := texttemplate.New("llms.txt.tmpl").Funcs(texttemplate.FuncMap{"join": strings.Join}).ParseFS(templatesFS, "templates/llms.txt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("web: parse llms.txt template: %w", err)
	}

	return &Site{
		cfg:      cfg,
		pages:    pages,
		llms:     llms,
		registry: registry,
		adapter:  adapter,
		logger:   logger,
	}, nil
}

// Routes mounts every page on r.
func (s *Site) Routes(r chi.Router) {
	r.Get("/", s.Home)
	r.Get("/blog", s.BlogIndex)
	r.Get("/blog/{slug}", s.BlogPost)
	r.Get("/privacy", s.Privacy)
	r.Get("/terms", s.Terms)
	r.Get("/intake", s.IntakeForm)
	r.Post("/intake", s.IntakeSubmit)
	r.Get("/tools", s.Tools)
	r.Get("/llms.txt", s.LLMsTxt)
	r.Handle("/static/*", s.Static())
	r.NotFound(s.NotFound)
}

func (s *Site) Home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", page{
		Title:       "WebMCP Setup as a Service",
		Description: "Professional WebMCP implementation and Agent Experience Optimization services",
		Data:        faqs,
	})
}

func (s *Site) BlogIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "blog", page{
		Title:       "Blog - WebMCP Guides and Insights",
		Description: "Technical guides on WebMCP implementation, Agent Experience Optimization (AEO), and building agent-ready websites.",
		Data:        posts,
	})
}

func (s *Site) BlogPost(w http.ResponseWriter, r *http.Request) {
	post, ok := findPost(chi.URLParam(r, "slug"))
	if !ok {
		s.NotFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "post", page{Title: post.Title, Description: post.Description, Data: post})
}

func (s *Site) Privacy(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "legal", page{
		Title:       "Privacy Policy",
		Description: "Privacy policy for webmcpsetup.ai. Learn how we collect, use, and protect your information.",
		Data:        privacySections,
	})
}

func (s *Site) Terms(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "legal", page{
		Title:       "Terms of Service",
		Description: "Terms of service for webmcpsetup.ai. Review our service terms, engagement process, and intellectual property policies.",
		Data:        termsSections,
	})
}

type intakePage struct {
	Form        formView
	View        *intake.HumanView
	CalendlyURL string
}

func (s *Site) IntakeForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "intake", s.intakePage(intakePage{Form: newFormView(nil, nil, "")}))
}

// IntakeSubmit is the human channel: a plain form post rendered as a confirmation or error view.
func (s *Site) IntakeSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	if err := r.ParseForm(); err != nil {
		s.render(w, r, http.StatusBadRequest, "intake", s.intakePage(intakePage{
			Form: newFormView(nil, nil, intake.MessageTransportFailure),
		}))
		return
	}

	res := s.adapter.Submit(r.Context(), intake.ChannelHuman, payloadFromForm(r.PostForm))
	view := res.Human
	if view.State == intake.ViewConfirmation {
		s.render(w, r, http.StatusOK, "intake", s.intakePage(intakePage{View: view}))
		return
	}
	s.render(w, r, http.StatusOK, "intake", s.intakePage(intakePage{
		View: view,
		Form: newFormView(r.PostForm, view.Errors, view.Message),
	}))
}

func (s *Site) intakePage(data intakePage) page {
	data.CalendlyURL = s.cfg.CalendlyURL
	return page{
		Title:       "Request WebMCP Setup",
		Description: "Submit an intake form to request WebMCP implementation for your website.",
		Data:        data,
	}
}

func (s *Site) Tools(w http.ResponseWriter, r *http.Request) {
	list := s.registry.List()
	descs := make([]tools.Descriptor, 0, len(list))
	for _, t := range list {
		descs = append(descs, tools.Describe(t))
	}
	s.render(w, r, http.StatusOK, "tools", page{
		Title:       "WebMCP Tools Explorer",
		Description: "Explore available WebMCP tools and test them with our interactive playground.",
		Data:        descs,
	})
}

type llmsData struct {
	Site     Config
	Tools    []tools.Descriptor
	Fields   []intake.Field
	Required []string
	FormTool string
	Steps    intake.NextSteps
}

// LLMsTxt serves the agent-discovery document generated from the live registry.
func (s *Site) LLMsTxt(w http.ResponseWriter, r *http.Request) {
	data := llmsData{
		Site:     s.cfg,
		Fields:   intake.Fields(),
		FormTool: intake.FormToolName,
		Steps:    intake.GetNextSteps(s.cfg.CalendlyURL),
	}
	for _, t := range s.registry.List() {
		data.Tools = append(data.Tools, tools.Describe(t))
	}
	for _, f := range data.Fields {
		if f.Required {
			data.Required = append(data.Required, f.Key)
		}
	}

	var buf bytes.Buffer
	if err := s.llms.Execute(&buf, data); err != nil {
		s.logger.Error("web: render llms.txt", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600, s-maxage=3600")
	_, _ = w.Write(buf.Bytes())
}

// Static serves embedded assets under /static/.
func (s *Site) Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func (s *Site) NotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "notfound", page{Title: "Page not found"})
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	p.Site = s.cfg
	p.Path = r.URL.Path
	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "layout", p); err != nil {
		s.logger.Error("web: render page", "page", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func formatDate(value string) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		if t, err = time.Parse(leads.TimestampLayout, value); err != nil {
			return value
		}
		return t.UTC().Format("January 2, 2006 15:04 MST")
	}
	return t.Format("January 2, 2006")
}

func toJSON(v any) string {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(raw)
}
