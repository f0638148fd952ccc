// Package httpfetch is the retrying page fetch client.
package httpfetch

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/user/filmdata-service/pkg/metrics"
	"github.com/user/filmdata-service/pkg/telemetry"
)

var tracer = otel.Tracer("filmdata/httpfetch")

const (
	TargetPage = "page"
	TargetTMDB = "tmdb"
)

// Options configures the retry policy shared by every outgoing client.
type Options struct {
	// MaxAttempts is the total number of tries, the first one included.
	MaxAttempts int
	Backoff     time.Duration
	MaxBackoff  time.Duration
	Timeout     time.Duration
	UserAgent   string
	// Proxies is a comma separated list rotated per request.
	Proxies string
	// Transport replaces the default transport; proxies are then ignored.
	Transport http.RoundTripper
	Target    string
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts < 1 {
		o.MaxAttempts = 1
	}
	if o.Backoff <= 0 {
		o.Backoff = time.Microsecond
	}
	if o.MaxBackoff < o.Backoff {
		o.MaxBackoff = o.Backoff
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Target == "" {
		o.Target = TargetPage
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// NewResty builds a resty client that retries transport errors until
// MaxAttempts is reached. Responses, whatever their status, end the loop.
func NewResty(opts Options) (*resty.Client, *Agents) {
	opts = opts.withDefaults()
	agents := NewAgents(opts.UserAgent, opts.Proxies)

	transport := opts.Transport
	if transport == nil {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		if agents.HasProxies() {
			tr.Proxy = agents.ProxyFunc
			tr.DisableKeepAlives = true
		}
		transport = tr
	}

	c := resty.New().
		SetTransport(transport).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.MaxAttempts - 1).
		SetRetryWaitTime(opts.Backoff).
		SetRetryMaxWaitTime(opts.MaxBackoff).
		SetLogger(opts.Logger.Sugar())

	target := opts.Target
	m := opts.Metrics
	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		m.IncFetchAttempt(target)
		if req.Header.Get("User-Agent") == "" {
			req.SetHeader("User-Agent", agents.UserAgent())
		}
		return nil
	})
	telemetry.InstrumentResty(c)
	return c, agents
}

// Client fetches pages over http and https with bounded retry.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func New(opts Options) *Client {
	opts = opts.withDefaults()
	c, _ := NewResty(opts)
	return &Client{http: c, logger: opts.Logger}
}

// Fetch returns the body of a 2xx response. Non-2xx responses yield a
// *StatusError straight away; exhausted transport retries yield a *FetchError.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "httpfetch.Fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("url.full", url)),
	)
	defer span.End()

	req := c.http.R().SetContext(ctx)
	resp, err := req.Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Attempts: req.Attempt, Err: err}
	}
	if !resp.IsSuccess() {
		c.logger.Debug("page returned non-2xx", zap.String("url", url), zap.Int("status", resp.StatusCode()))
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), nil
}
