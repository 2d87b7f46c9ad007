package tools

import (
	"context"
	"fmt"

	"github.com/wolfman30/webmcpsetup/internal/intake"
)

// Tool names.
const (
	GetIntakeFormSchema = "get_intake_form_schema"
	ValidateIntake      = "validate_intake"
	SubmitIntake        = "submit_intake"
	GetNextSteps        = "get_next_steps"
)

// Deps are the collaborators the default tools call into.
type Deps struct {
	Adapter     *intake.Adapter
	CalendlyURL string
}

// DefaultTools returns the four intake tools in publication order.
func DefaultTools(deps Deps) []Tool {
	return []Tool{
		{
			Name:        GetIntakeFormSchema,
			Description: "Get the JSON Schema for the WebMCP setup intake form. Use this tool to understand what fields are required when submitting an intake request.",
			InputSchema: emptyObjectSchema(),
			ReadOnly:    true,
			Execute: func(ctx context.Context, input map[string]any) (any, error) {
				return intake.JSONSchema(), nil
			},
		},
		{
			Name:        ValidateIntake,
			Description: "Validate an intake form payload without submitting it. Use this tool to check if the data is valid before calling submit_intake.",
			InputSchema: payloadSchema("The intake form data to validate"),
			ReadOnly:    true,
			Execute: func(ctx context.Context, input map[string]any) (any, error) {
				payload, err := payloadArg(input)
				if err != nil {
					return nil, err
				}
				return intake.Validate(payload), nil
			},
		},
		{
			Name:        SubmitIntake,
			Description: "Submit a WebMCP setup intake form. Use this tool to request WebMCP implementation services. The form will be reviewed and you will receive a response within 24 hours.",
			InputSchema: payloadSchema("The complete intake form data"),
			ReadOnly:    false,
			Execute: func(ctx context.Context, input map[string]any) (any, error) {
				payload, err := payloadArg(input)
				if err != nil {
					return nil, err
				}
				res := deps.Adapter.Submit(ctx, intake.ChannelAgent, payload)
				return res.Agent, nil
			},
		},
		{
			Name:        GetNextSteps,
			Description: "Get information about next steps after submitting an intake form. Use this tool to learn what happens after submission.",
			InputSchema: emptyObjectSchema(),
			ReadOnly:    true,
			Execute: func(ctx context.Context, input map[string]any) (any, error) {
				return intake.GetNextSteps(deps.CalendlyURL), nil
			},
		},
	}
}

func payloadSchema(description string) map[string]any {
	payload := intake.JSONSchema()
	delete(payload, "$schema")
	delete(payload, "title")
	payload["description"] = description
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{"payload": payload},
		"required":   []string{"payload"},
	}
}

func payloadArg(input map[string]any) (map[string]any, error) {
	raw, ok := input["payload"]
	if !ok {
		return nil, fmt.Errorf("%w: payload is required", ErrInvalidInput)
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: payload must be an object", ErrInvalidInput)
	}
	return payload, nil
}
