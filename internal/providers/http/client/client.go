package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/bridge/internal/relay"
)

// Config holds transport defaults. These shape the primitive itself and are
// never overridden per call.
type Config struct {
	// Timeout bounds a whole exchange; zero means no limit
	Timeout time.Duration
	// Proxy routes all requests through the given URL when set
	Proxy string
	// Logger receives resty's internal warnings; nil discards them
	Logger *zap.Logger
}

// DefaultConfig returns a transport with no timeout and no proxy
func DefaultConfig() Config {
	return Config{}
}

// Client is a relay.Transport backed by resty
type Client struct {
	resty *resty.Client
}

type rawBodyKey struct{}

// NewClient creates a transport client
func NewClient(cfg Config) *Client {
	// Only the pooled transport is borrowed; retrying stays disabled
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil

	restyClient := resty.New().
		SetTransport(retryClient.HTTPClient.Transport).
		SetCookieJar(nil).
		SetRetryCount(0).
		SetAllowGetMethodPayload(true).
		SetPreRequestHook(stripInferredContentType)

	if cfg.Timeout > 0 {
		restyClient.SetTimeout(cfg.Timeout)
	}
	if cfg.Proxy != "" {
		restyClient.SetProxy(cfg.Proxy)
	}
	if cfg.Logger != nil {
		restyClient.SetLogger(cfg.Logger.Named("transport").Sugar())
	} else {
		restyClient.SetLogger(zap.NewNop().Sugar())
	}

	return &Client{resty: restyClient}
}

// NewRequest implements relay.Transport
func (c *Client) NewRequest(method relay.Method, url string) relay.Builder {
	return &request{
		req:    c.resty.R().SetDoNotParseResponse(true),
		method: method.String(),
		url:    url,
	}
}

// stripInferredContentType drops the Content-Type resty derives from a raw
// string body when the caller did not set one.
func stripInferredContentType(_ *resty.Client, r *http.Request) error {
	if raw, _ := r.Context().Value(rawBodyKey{}).(bool); raw {
		r.Header.Del("Content-Type")
	}
	return nil
}

type request struct {
	req     *resty.Request
	method  string
	url     string
	hasBody bool
}

func (r *request) Header(name, value string) {
	r.req.Header.Add(name, value)
}

func (r *request) Body(body string) {
	r.req.SetBody(body)
	r.hasBody = true
}

func (r *request) Send(ctx context.Context) (relay.Exchange, error) {
	if r.hasBody && r.req.Header.Get("Content-Type") == "" {
		ctx = context.WithValue(ctx, rawBodyKey{}, true)
	}

	resp, err := r.req.SetContext(ctx).Execute(r.method, r.url)
	if err != nil {
		if resp != nil && resp.RawBody() != nil {
			resp.RawBody().Close()
		}
		return nil, err
	}
	if resp == nil || resp.RawResponse == nil {
		return nil, fmt.Errorf("no response received")
	}

	return &exchange{resp: resp}, nil
}

type exchange struct {
	resp *resty.Response
}

func (e *exchange) Status() uint16 {
	return uint16(e.resp.StatusCode())
}

func (e *exchange) Text() (string, error) {
	body := e.resp.RawBody()
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	return DecodeText(e.resp.Header().Get("Content-Type"), data), nil
}
