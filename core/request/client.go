package request

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/auth"
)

const tracerName = "github.com/trezcool/campus/core/request"

// Doer sends REST requests. *rest.Client is the network implementation.
type Doer interface {
	SendWithContext(ctx context.Context, req rest.Request) (*rest.Response, error)
}

var _ Doer = (*rest.Client)(nil) // interface compliance check

// NewDoer returns a network Doer. rt may be nil (http.DefaultTransport).
func NewDoer(timeout time.Duration, rt http.RoundTripper) Doer {
	return &rest.Client{HTTPClient: &http.Client{Timeout: timeout, Transport: rt}}
}

type Options struct {
	BaseURL          string
	Auth             auth.Provider
	Doer             Doer
	Logger           core.Logger
	AuthReadyTimeout time.Duration
}

// Client centralizes tenant scoping and envelope handling for every store.
type Client struct {
	baseURL      string
	auth         auth.Provider
	doer         Doer
	logger       core.Logger
	readyTimeout time.Duration
	tracer       trace.Tracer
}

func NewClient(opts Options) (client *Client, err error) {
	if err = vala.BeginValidation().Validate(
		vala.IsNotNil(opts.Auth, "Auth"),
		vala.IsNotNil(opts.Doer, "Doer"),
		vala.IsNotNil(opts.Logger, "Logger"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "request.NewClient")
	}
	return &Client{
		baseURL:      opts.BaseURL,
		auth:         opts.Auth,
		doer:         opts.Doer,
		logger:       opts.Logger,
		readyTimeout: opts.AuthReadyTimeout,
		tracer:       otel.Tracer(tracerName),
	}, nil
}

func (c *Client) Auth() auth.Provider { return c.auth }

// TenantID waits for auth readiness and returns the tenant requests are scoped to.
func (c *Client) TenantID(ctx context.Context) (string, error) {
	return WaitForAuthReady(ctx, c.auth, c.readyTimeout)
}

// ScopedURL builds the tenant scoped URL of endpoint for the current user.
func (c *Client) ScopedURL(ctx context.Context, endpoint string, filters Filters) (string, error) {
	tenantID, err := c.TenantID(ctx)
	if err != nil {
		return "", err
	}
	return BuildScopedURL(endpoint, tenantID, filters), nil
}

// Get lists endpoint scoped to the current tenant.
func (c *Client) Get(ctx context.Context, endpoint string, filters Filters) Envelope {
	path, err := c.ScopedURL(ctx, endpoint, filters)
	if err != nil {
		return Failure(err)
	}
	return c.send(ctx, rest.Get, path, nil)
}

// GetUnscoped reads endpoint as is, once auth is ready.
func (c *Client) GetUnscoped(ctx context.Context, endpoint string, filters Filters) Envelope {
	if _, err := c.TenantID(ctx); err != nil {
		return Failure(err)
	}
	return c.send(ctx, rest.Get, BuildScopedURL(endpoint, NoTenant, filters), nil)
}

// SendMutation sends a POST, PUT, PATCH or DELETE to endpoint[/id].
// For tenant-scoped users the tenant id is merged into the JSON body as `schoolId`.
// It never returns an error value: failures are failed Envelopes.
func (c *Client) SendMutation(ctx context.Context, method rest.Method, endpoint, id string, body interface{}) Envelope {
	tenantID, err := c.TenantID(ctx)
	if err != nil {
		return Failure(err)
	}
	payload, err := withTenant(body, tenantID)
	if err != nil {
		return Failure(errors.Wrap(err, "encoding request body"))
	}
	return c.send(ctx, method, JoinPath(endpoint, id), payload)
}

// Post is SendMutation for unauthenticated endpoints (e.g. login).
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}) Envelope {
	payload, err := json.Marshal(body)
	if err != nil {
		return Failure(errors.Wrap(err, "encoding request body"))
	}
	return c.send(ctx, rest.Post, endpoint, payload)
}

func (c *Client) send(ctx context.Context, method rest.Method, path string, body []byte) Envelope {
	ctx, span := c.tracer.Start(ctx, string(method)+" "+path)
	defer span.End()

	reqID := uuid.New().String()
	span.SetAttributes(
		attribute.String("http.method", string(method)),
		attribute.String("http.path", path),
		attribute.String("request.id", reqID),
	)

	headers := map[string]string{
		"Accept":       "application/json",
		"X-Request-ID": reqID,
	}
	if body != nil {
		headers["Content-Type"] = "application/json"
	}
	if ts, ok := c.auth.(auth.TokenSource); ok {
		if token := ts.Token(); token != "" {
			headers["Authorization"] = "Bearer " + token
		}
	}

	resp, err := c.doer.SendWithContext(ctx, rest.Request{
		Method:  method,
		BaseURL: c.baseURL + path,
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("request failed", map[string]interface{}{"method": method, "path": path, "request_id": reqID}, err)
		return Failure(&core.NetworkError{Err: err})
	}

	env := ParseEnvelope(resp.StatusCode, []byte(resp.Body))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if !env.Success {
		span.SetStatus(codes.Error, env.Message)
		c.logger.Debug("request rejected", map[string]interface{}{
			"method": method, "path": path, "request_id": reqID, "status": resp.StatusCode, "message": env.Message,
		})
	}
	return env
}

func withTenant(body interface{}, tenantID string) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	if tenantID == NoTenant {
		return raw, nil
	}

	var obj map[string]json.RawMessage
	if err = json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return raw, nil // not an object: send as is
	}
	if obj["schoolId"], err = json.Marshal(tenantID); err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}
