package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultWebhookURL is the automation endpoint accepted leads are relayed to.
const DefaultWebhookURL = "https://n8n.alecautomations.com/webhook/2359a341-46a2-4d23-8868-ed0d827d4c97"

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string
	SiteName      string

	// Intake rate limiting
	IntakeRateLimit        int
	IntakeRateWindow       time.Duration
	RateLimitSweepInterval time.Duration

	// Notification relay
	IntakeWebhookURL     string
	IntakeWebhookTimeout time.Duration
	NotifyTimeout        time.Duration

	// Confirmation email: "stub", "sendgrid" or "ses"
	EmailProvider     string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	CORSAllowedOrigins []string
	CalendlyURL        string
	GAMeasurementID    string
	MetricsEnabled     bool
	MCPEnabled         bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SiteName:      getEnv("SITE_NAME", "webmcpsetup.ai"),

		IntakeRateLimit:        getEnvAsInt("INTAKE_RATE_LIMIT", 5),
		IntakeRateWindow:       getEnvAsDuration("INTAKE_RATE_WINDOW", time.Hour),
		RateLimitSweepInterval: getEnvAsDuration("RATE_LIMIT_SWEEP_INTERVAL", 10*time.Minute),

		IntakeWebhookURL:     getEnv("INTAKE_WEBHOOK_URL", DefaultWebhookURL),
		IntakeWebhookTimeout: getEnvAsDuration("INTAKE_WEBHOOK_TIMEOUT", 10*time.Second),
		NotifyTimeout:        getEnvAsDuration("NOTIFY_TIMEOUT", 15*time.Second),

		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "stub"))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "webmcpsetup.ai"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		CalendlyURL:        getEnv("CALENDLY_URL", "https://calendly.com/webmcpsetup"),
		GAMeasurementID:    getEnv("GA_MEASUREMENT_ID", ""),
		MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", true),
		MCPEnabled:         getEnvAsBool("MCP_ENABLED", true),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
