package intake

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/webmcpsetup/internal/leads"
	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

var intakeTracer = otel.Tracer("webmcp.internal.intake")

// Response messages returned to callers.
const (
	MessageRateLimited = "Rate limit exceeded. Please try again later."
	MessageMalformed   = "Malformed request body"
	MessageInvalid     = "Validation failed"
	MessageAccepted    = "Intake form submitted successfully"
	MessageInternal    = "Internal server error"
)

// Outcome labels used for metrics and logs.
const (
	OutcomeAccepted    = "accepted"
	OutcomeRateLimited = "rate_limited"
	OutcomeMalformed   = "malformed"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
)

// Limiter admits or denies a submission for a client key.
type Limiter interface {
	Admit(key string) bool
}

// Dispatcher hands an accepted record to the notification relay without blocking.
type Dispatcher interface {
	Dispatch(rec *leads.Record)
}

// Observer records submission outcomes (metrics).
type Observer interface {
	ObserveSubmission(outcome string, seconds float64)
}

// Response is the JSON body of every intake outcome.
type Response struct {
	OK         bool         `json:"ok"`
	LeadID     string       `json:"lead_id,omitempty"`
	ReceivedAt string       `json:"received_at,omitempty"`
	Message    string       `json:"message,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// Outcome is the result of one submission: the HTTP status, the body, and the
// taxonomy error (nil on success).
type Outcome struct {
	Status   int
	Response Response
	Err      error
	Record   *leads.Record
}

// Label names the outcome for metrics.
func (o Outcome) Label() string {
	var verr *ValidationError
	switch {
	case o.Err == nil:
		return OutcomeAccepted
	case errors.Is(o.Err, ErrRateLimited):
		return OutcomeRateLimited
	case errors.Is(o.Err, ErrMalformedRequest):
		return OutcomeMalformed
	case errors.As(o.Err, &verr):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// Service runs the intake state machine: rate check, parse, validate, persist, relay, respond.
type Service struct {
	limiter    Limiter
	store      leads.Store
	dispatcher Dispatcher
	observer   Observer
	logger     *logging.Logger
	now        func() time.Time
}

func NewService(limiter Limiter, store leads.Store, dispatcher Dispatcher, observer Observer, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		limiter:    limiter,
		store:      store,
		dispatcher: dispatcher,
		observer:   observer,
		logger:     logger,
		now:        time.Now,
	}
}

// Submit processes one raw request body for clientKey. It never panics; any fault
// becomes the internal-error outcome.
func (s *Service) Submit(ctx context.Context, clientKey string, body []byte) (out Outcome) {
	start := s.now()
	ctx, span := intakeTracer.Start(ctx, "intake.submit", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("intake: panic during submission", "client_key", clientKey, "panic", r)
			out = internalOutcome(fmt.Errorf("%w: panic: %v", ErrInternal, r))
		}
		label := out.Label()
		span.SetAttributes(attribute.String("intake.outcome", label))
		if out.Record != nil {
			span.SetAttributes(attribute.String("intake.lead_id", out.Record.LeadID))
		}
		if out.Err != nil && label == OutcomeError {
			span.SetStatus(codes.Error, out.Err.Error())
		}
		if s.observer != nil {
			s.observer.ObserveSubmission(label, s.now().Sub(start).Seconds())
		}
	}()

	return s.submit(ctx, clientKey, body)
}

func (s *Service) submit(ctx context.Context, clientKey string, body []byte) Outcome {
	if !s.limiter.Admit(clientKey) {
		s.logger.Warn("intake: rate limited", "client_key", clientKey)
		return Outcome{
			Status:   http.StatusTooManyRequests,
			Response: Response{OK: false, Message: MessageRateLimited},
			Err:      ErrRateLimited,
		}
	}

	payload, err := ParsePayload(body)
	if err != nil {
		s.logger.Info("intake: malformed body", "client_key", clientKey, "error", err)
		return Outcome{
			Status:   http.StatusBadRequest,
			Response: Response{OK: false, Message: MessageMalformed},
			Err:      err,
		}
	}

	sub, res := Decode(payload)
	if !res.Valid {
		s.logger.Info("intake: validation failed", "client_key", clientKey, "error_count", len(res.Errors))
		return Outcome{
			Status:   http.StatusBadRequest,
			Response: Response{OK: false, Message: MessageInvalid, Errors: res.Errors},
			Err:      &ValidationError{Errors: res.Errors},
		}
	}

	rec, err := s.store.Append(ctx, sub)
	if err != nil {
		s.logger.Error("intake: failed to store submission", "client_key", clientKey, "error", err)
		return internalOutcome(fmt.Errorf("%w: store: %v", ErrInternal, err))
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(rec)
	}

	s.logger.Info("intake: submission accepted", "lead_id", rec.LeadID, "client_key", clientKey)
	return Outcome{
		Status: http.StatusOK,
		Response: Response{
			OK:         true,
			LeadID:     rec.LeadID,
			ReceivedAt: rec.ReceivedAtString(),
			Message:    MessageAccepted,
		},
		Record: rec,
	}
}

// Validate is the dry run: it parses and validates without touching the limiter or store.
func (s *Service) Validate(body []byte) (Result, error) {
	payload, err := ParsePayload(body)
	if err != nil {
		return Result{}, err
	}
	return Validate(payload), nil
}

func internalOutcome(err error) Outcome {
	return Outcome{
		Status:   http.StatusInternalServerError,
		Response: Response{OK: false, Message: MessageInternal},
		Err:      err,
	}
}
