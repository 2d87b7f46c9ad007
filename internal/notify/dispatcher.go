package notify

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/webmcpsetup/internal/leads"
	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

var notifyTracer = otel.Tracer("webmcp.internal.notify")

// Notifier delivers one accepted lead somewhere outside the process.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, rec *leads.Record) error
}

// Observer receives per-notifier outcomes (metrics).
type Observer interface {
	ObserveNotification(notifier string, ok bool)
}

// Failure is a notification that could not be delivered. It never reaches the submitter.
type Failure struct {
	LeadID   string
	Notifier string
	Err      error
}

// Dispatcher runs notifiers for accepted leads on detached goroutines.
// Each notifier gets exactly one attempt; failures go to a channel drained by Run.
type Dispatcher struct {
	notifiers []Notifier
	timeout   time.Duration
	observer  Observer
	logger    *logging.Logger

	failures chan Failure
	inflight sync.WaitGroup
}

// NewDispatcher drops nil notifiers. timeout bounds each dispatch, independent of any request.
func NewDispatcher(timeout time.Duration, observer Observer, logger *logging.Logger, notifiers ...Notifier) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	d := &Dispatcher{
		timeout:  timeout,
		observer: observer,
		logger:   logger,
		failures: make(chan Failure, 64),
	}
	for _, n := range notifiers {
		if n != nil && !isNilNotifier(n) {
			d.notifiers = append(d.notifiers, n)
		}
	}
	return d
}

// Dispatch returns immediately; notifications run in the background.
func (d *Dispatcher) Dispatch(rec *leads.Record) {
	if d == nil || rec == nil || len(d.notifiers) == 0 {
		return
	}
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		d.deliver(rec)
	}()
}

func (d *Dispatcher) deliver(rec *leads.Record) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("notify: dispatch panic", "lead_id", rec.LeadID, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	ctx, span := notifyTracer.Start(ctx, "notify.dispatch",
		trace.WithNewRoot(),
		trace.WithSpanKind(trace.SpanKindConsumer),
	)
	defer span.End()
	span.SetAttributes(attribute.String("intake.lead_id", rec.LeadID))

	for _, n := range d.notifiers {
		err := n.Notify(ctx, rec)
		if d.observer != nil {
			d.observer.ObserveNotification(n.Name(), err == nil)
		}
		if err == nil {
			d.logger.Info("notify: delivered", "notifier", n.Name(), "lead_id", rec.LeadID)
			continue
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, n.Name()+" failed")
		d.report(Failure{LeadID: rec.LeadID, Notifier: n.Name(), Err: err})
	}
}

func (d *Dispatcher) report(f Failure) {
	select {
	case d.failures <- f:
	default:
		d.logFailure(f)
	}
}

// Run logs failures until ctx is cancelled, then drains what is buffered.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case f := <-d.failures:
			d.logFailure(f)
		case <-ctx.Done():
			for {
				select {
				case f := <-d.failures:
					d.logFailure(f)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) logFailure(f Failure) {
	d.logger.Error("notify: delivery failed", "notifier", f.Notifier, "lead_id", f.LeadID, "error", leads.ScrubPII(f.Err.Error()))
}

// Failures exposes the failure channel for callers that drain it themselves.
func (d *Dispatcher) Failures() <-chan Failure {
	return d.failures
}

// Wait blocks until every dispatched notification has finished.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.inflight.Wait()
}

func isNilNotifier(n Notifier) bool {
	switch v := n.(type) {
	case *WebhookRelay:
		return v == nil
	case *ConfirmationNotifier:
		return v == nil
	}
	return false
}
