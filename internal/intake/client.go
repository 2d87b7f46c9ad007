package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wolfman30/webmcpsetup/internal/http/middleware"
)

// Client submits a payload to the intake endpoint. An error means the call itself
// failed (transport, undecodable reply); rejected submissions come back as a Response.
type Client interface {
	Submit(ctx context.Context, payload map[string]any) (Response, error)
}

// LocalClient calls the Service in-process, rate limiting on the client key in ctx.
type LocalClient struct {
	service *Service
}

func NewLocalClient(service *Service) *LocalClient {
	return &LocalClient{service: service}
}

func (c *LocalClient) Submit(ctx context.Context, payload map[string]any) (Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("intake: encode payload: %w", err)
	}
	out := c.service.Submit(ctx, middleware.ClientKeyFromContext(ctx), body)
	return out.Response, nil
}

// HTTPClient talks to a running server's intake API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Submit POSTs payload to /api/intake and decodes the reply for any status.
func (c *HTTPClient) Submit(ctx context.Context, payload map[string]any) (Response, error) {
	var resp Response
	if _, err := c.do(ctx, http.MethodPost, "/api/intake", payload, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Validate POSTs payload to /api/intake/validate.
func (c *HTTPClient) Validate(ctx context.Context, payload map[string]any) (Result, error) {
	var res Result
	status, err := c.do(ctx, http.MethodPost, "/api/intake/validate", payload, &res)
	if err != nil {
		return Result{}, err
	}
	if status != http.StatusOK {
		return Result{}, fmt.Errorf("intake: validate returned status %d", status)
	}
	return res, nil
}

// Schema fetches /api/intake/schema.
func (c *HTTPClient) Schema(ctx context.Context) (SchemaResponse, error) {
	var schema SchemaResponse
	status, err := c.do(ctx, http.MethodGet, "/api/intake/schema", nil, &schema)
	if err != nil {
		return SchemaResponse{}, err
	}
	if status != http.StatusOK {
		return SchemaResponse{}, fmt.Errorf("intake: schema returned status %d", status)
	}
	return schema, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("intake: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("intake: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("intake: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("intake: decode %s response (status %d): %w", path, resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}

var (
	_ Client = (*LocalClient)(nil)
	_ Client = (*HTTPClient)(nil)
)
