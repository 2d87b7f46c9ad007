package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/webmcpsetup/cmd/mainconfig"
	appconfig "github.com/wolfman30/webmcpsetup/internal/config"
	httpmiddleware "github.com/wolfman30/webmcpsetup/internal/http/middleware"
	"github.com/wolfman30/webmcpsetup/internal/intake"
	"github.com/wolfman30/webmcpsetup/internal/leads"
	"github.com/wolfman30/webmcpsetup/internal/notify"
	"github.com/wolfman30/webmcpsetup/internal/observability/metrics"
	"github.com/wolfman30/webmcpsetup/internal/tools"
	"github.com/wolfman30/webmcpsetup/internal/web"
	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// Runtime owns the process-wide state constructed once at startup: the lead
// store, the limiter, the notification dispatcher and everything served over HTTP.
type Runtime struct {
	Config *appconfig.Config
	Logger *logging.Logger

	Store      *leads.MemoryStore
	Limiter    *httpmiddleware.SlidingWindowLimiter
	Registry   *prometheus.Registry
	Metrics    *metrics.IntakeMetrics
	Dispatcher *notify.Dispatcher

	Service  *intake.Service
	Adapter  *intake.Adapter
	Tools    *tools.Registry
	Site     *web.Site
	Intake   *intake.Handler
	ToolsAPI *tools.Handler
	Leads    *leads.Handler
	MCP      http.Handler
}

// EmailSenderFactory builds the confirmation email sender. Tests swap it out.
type EmailSenderFactory func(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, error)

// NewRuntime wires the runtime from configuration.
func NewRuntime(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*Runtime, error) {
	return newRuntime(ctx, cfg, logger, BuildEmailSender)
}

func newRuntime(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, buildSender EmailSenderFactory) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rt := &Runtime{
		Config:   cfg,
		Logger:   logger,
		Store:    leads.NewMemoryStore(),
		Limiter:  httpmiddleware.NewSlidingWindowLimiter(cfg.IntakeRateLimit, cfg.IntakeRateWindow),
		Registry: prometheus.NewRegistry(),
	}
	rt.Registry.MustRegister(collectors.NewGoCollector())
	rt.Metrics = metrics.NewIntakeMetrics(rt.Registry)

	sender, err := buildSender(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	rt.Dispatcher = notify.NewDispatcher(
		cfg.NotifyTimeout,
		rt.Metrics,
		logger.With("component", "notify"),
		notify.NewWebhookRelay(cfg.IntakeWebhookURL, cfg.IntakeWebhookTimeout),
		notify.NewConfirmationNotifier(sender, cfg.SiteName, cfg.CalendlyURL),
	)

	rt.Service = intake.NewService(rt.Limiter, rt.Store, rt.Dispatcher, rt.Metrics, logger.With("component", "intake"))
	rt.Intake = intake.NewHandler(rt.Service, logger)
	rt.Adapter = intake.NewAdapter(intake.NewLocalClient(rt.Service), logger)
	rt.Leads = leads.NewHandler(rt.Store, logger)

	rt.Tools = tools.NewRegistry(logger.With("component", "tools"))
	if _, err := rt.Tools.Publish(tools.DefaultTools(tools.Deps{
		Adapter:     rt.Adapter,
		CalendlyURL: cfg.CalendlyURL,
	})); err != nil {
		return nil, fmt.Errorf("bootstrap: publish tools: %w", err)
	}
	rt.ToolsAPI = tools.NewHandler(rt.Tools, logger)

	if cfg.MCPEnabled {
		rt.MCP, err = tools.NewMCPHandler(rt.Tools, Version)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: mcp server: %w", err)
		}
	}

	rt.Site, err = web.NewSite(web.Config{
		Name:            cfg.SiteName,
		BaseURL:         cfg.PublicBaseURL,
		GAMeasurementID: cfg.GAMeasurementID,
		CalendlyURL:     cfg.CalendlyURL,
	}, rt.Tools, rt.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: site: %w", err)
	}

	return rt, nil
}

// MetricsHandler exposes the runtime's dedicated registry, or nil when disabled.
func (rt *Runtime) MetricsHandler() http.Handler {
	if !rt.Config.MetricsEnabled {
		return nil
	}
	return promhttp.HandlerFor(rt.Registry, promhttp.HandlerOpts{})
}

// Start launches the background loops: failure draining and limiter sweeps.
// Both stop when ctx is cancelled.
func (rt *Runtime) Start(ctx context.Context) {
	go rt.Dispatcher.Run(ctx)
	go rt.Limiter.RunSweeper(ctx, rt.Config.RateLimitSweepInterval)
}

// Drain blocks until in-flight notifications have finished.
func (rt *Runtime) Drain() {
	rt.Dispatcher.Wait()
}

// BuildEmailSender selects the confirmation email provider. It returns nil
// (confirmation email disabled) when the selected provider is not configured.
func BuildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (notify.EmailSender, error) {
	if logger == nil {
		logger = logging.Default()
	}
	switch cfg.EmailProvider {
	case "", "stub":
		return notify.NewStubEmailSender(logger), nil
	case "none", "disabled":
		return nil, nil
	case "sendgrid":
		sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sender == nil {
			logger.Warn("sendgrid selected but SENDGRID_API_KEY empty; confirmation email disabled")
			return nil, nil
		}
		return sender, nil
	case "ses":
		if cfg.SESFromEmail == "" {
			logger.Warn("ses selected but SES_FROM_EMAIL empty; confirmation email disabled")
			return nil, nil
		}
		client, err := mainconfig.NewSESClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		return notify.NewSESSender(client, notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SiteName,
		}, logger), nil
	default:
		return nil, fmt.Errorf("bootstrap: unknown email provider %q", cfg.EmailProvider)
	}
}
