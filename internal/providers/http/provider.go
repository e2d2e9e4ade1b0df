package http

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/bridge/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/relay"
	"github.com/GriffinCanCode/AgentOS/bridge/internal/shared/types"
)

// ServiceID is the registry ID of the HTTP provider
const ServiceID = "http"

// CommandRequest is the command name the UI invokes
const CommandRequest = "http_request"

// Relayer executes request descriptors
type Relayer interface {
	Do(ctx context.Context, req relay.Request) (*relay.Response, error)
}

// Provider implements the http_request command
type Provider struct {
	relay   Relayer
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewProvider creates a provider over the given relay
func NewProvider(r Relayer) *Provider {
	return &Provider{relay: r, logger: zap.NewNop()}
}

// WithMetrics attaches a metrics collector
func (p *Provider) WithMetrics(metrics *monitoring.Metrics) *Provider {
	p.metrics = metrics
	return p
}

// WithLogger attaches a logger
func (p *Provider) WithLogger(logger *zap.Logger) *Provider {
	if logger != nil {
		p.logger = logger.Named("http")
	}
	return p
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:           ServiceID,
		Name:         "HTTP Relay",
		Description:  "Issue outbound HTTP requests from the host process",
		Category:     types.CategoryHTTP,
		Capabilities: []string{"get", "post", "put", "delete", "headers", "body"},
		Tools: []types.Tool{
			{
				ID:          CommandRequest,
				Name:        "HTTP Request",
				Description: "Send a request and return its status and full body text",
				Parameters: []types.Parameter{
					{Name: "url", Type: "string", Description: "Request URL", Required: true},
					{Name: "method", Type: "string", Description: "GET, POST, PUT or DELETE", Required: true},
					{Name: "headers", Type: "array", Description: "Ordered [name, value] pairs", Required: false},
					{Name: "body", Type: "string", Description: "Raw request body", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Execute routes to the requested command
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case CommandRequest:
		return p.request(ctx, params, appCtx), nil
	default:
		return types.Failure(fmt.Sprintf("unknown command: %s", toolID)), nil
	}
}

func (p *Provider) request(ctx context.Context, params map[string]interface{}, appCtx *types.Context) *types.Result {
	timer := monitoring.NewTimer(p.metrics, ServiceID, CommandRequest)

	req, err := DecodeRequest(params)
	if err != nil {
		timer.Stop(monitoring.StatusError)
		p.recordError("invalid_args")
		return types.Failure(fmt.Sprintf("invalid args for %s: %v", CommandRequest, err))
	}

	resp, err := p.relay.Do(ctx, req)
	if err != nil {
		kind, _ := relay.KindOf(err)
		timer.Stop(monitoring.StatusError)
		p.recordError(kind.String())

		fields := []zap.Field{
			zap.String("kind", kind.String()),
			zap.String("method", req.Method),
			zap.String("host", extractHost(req.URL)),
			zap.Error(err),
		}
		if appCtx != nil {
			fields = append(fields, zap.String("channel", appCtx.Channel), zap.String("request_id", appCtx.RequestID))
		}
		p.logger.Debug("http_request failed", fields...)

		return types.Failure(err.Error())
	}

	timer.Stop(monitoring.StatusSuccess)
	return types.Success(map[string]interface{}{
		"status": resp.Status,
		"body":   resp.Body,
	})
}

func (p *Provider) recordError(kind string) {
	if p.metrics != nil {
		p.metrics.RecordServiceError(ServiceID, CommandRequest, kind)
	}
}

// extractHost returns the host of a URL for logging, never the full URL
func extractHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "invalid"
	}
	return u.Host
}
