package intake

import (
	"context"
	"fmt"

	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

// Channel says who invoked a submission.
type Channel int

const (
	ChannelHuman Channel = iota
	ChannelAgent
)

func (c Channel) String() string {
	switch c {
	case ChannelHuman:
		return "human"
	case ChannelAgent:
		return "agent"
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// Messages shown when the submission could not be completed.
const (
	MessageTransportFailure = "Failed to submit form. Please try again."
	MessageAgentAccepted    = "Intake form submitted successfully. You will receive a confirmation email within 24 hours."
	MessageAgentRejected    = "Submission failed"
	MessageHumanRejected    = "An error occurred. Please try again."
)

// AgentResult is the structured reply handed back to an agent caller.
type AgentResult struct {
	Success    bool         `json:"success"`
	LeadID     string       `json:"lead_id,omitempty"`
	ReceivedAt string       `json:"received_at,omitempty"`
	Message    string       `json:"message"`
	NextSteps  []string     `json:"next_steps"`
	Errors     []FieldError `json:"errors,omitempty"`
}

// ViewState is the UI state a human caller moves to.
type ViewState int

const (
	ViewConfirmation ViewState = iota
	ViewError
)

// HumanView is what the page renders after a human submission.
type HumanView struct {
	State      ViewState
	LeadID     string
	ReceivedAt string
	Message    string
	Errors     []FieldError
}

// Confirmed reports whether the view is the confirmation state.
func (v *HumanView) Confirmed() bool {
	return v != nil && v.State == ViewConfirmation
}

// Reply holds exactly one of Agent or Human, matching Channel.
type Reply struct {
	Channel Channel
	Agent   *AgentResult
	Human   *HumanView
}

// Adapter shapes intake responses for the invoking channel.
type Adapter struct {
	client Client
	logger *logging.Logger
}

func NewAdapter(client Client, logger *logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.Default()
	}
	return &Adapter{client: client, logger: logger}
}

// Submit sends payload through the client and shapes the reply for ch.
func (a *Adapter) Submit(ctx context.Context, ch Channel, payload map[string]any) Reply {
	resp, err := a.client.Submit(ctx, payload)
	if err != nil {
		a.logger.Error("intake: submission transport failed", "channel", ch.String(), "error", err)
		return transportFailure(ch)
	}
	if ch == ChannelAgent {
		return Reply{Channel: ch, Agent: agentResult(resp, payload)}
	}
	return Reply{Channel: ch, Human: humanView(resp)}
}

func agentResult(resp Response, payload map[string]any) *AgentResult {
	if !resp.OK {
		msg := resp.Message
		if msg == "" {
			msg = MessageAgentRejected
		}
		return &AgentResult{Message: msg, NextSteps: []string{}, Errors: resp.Errors}
	}
	email, _ := payload["email"].(string)
	return &AgentResult{
		Success:    true,
		LeadID:     resp.LeadID,
		ReceivedAt: resp.ReceivedAt,
		Message:    MessageAgentAccepted,
		NextSteps:  acceptedNextSteps(email),
	}
}

func humanView(resp Response) *HumanView {
	if !resp.OK {
		msg := resp.Message
		if msg == "" {
			msg = MessageHumanRejected
		}
		return &HumanView{State: ViewError, Message: msg, Errors: resp.Errors}
	}
	return &HumanView{
		State:      ViewConfirmation,
		LeadID:     resp.LeadID,
		ReceivedAt: resp.ReceivedAt,
		Message:    resp.Message,
	}
}

func transportFailure(ch Channel) Reply {
	if ch == ChannelAgent {
		return Reply{Channel: ch, Agent: &AgentResult{Message: MessageTransportFailure, NextSteps: []string{}}}
	}
	return Reply{Channel: ch, Human: &HumanView{State: ViewError, Message: MessageTransportFailure}}
}
