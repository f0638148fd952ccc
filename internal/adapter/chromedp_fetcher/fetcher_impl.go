// Package chromedp_fetcher fetches pages through a headless browser for
// sites that only render their markup client side.
package chromedp_fetcher

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/user/filmdata-service/internal/adapter/httpfetch"
	"github.com/user/filmdata-service/pkg/metrics"
)

const defaultUserAgent = `Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36`

type Options struct {
	MaxAttempts int
	Backoff     time.Duration
	Timeout     time.Duration
	UserAgent   string
	Proxy       string
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
}

// Fetcher implements repository.PageFetcher with chromedp.
type Fetcher struct {
	allocCtx    context.Context
	cancel      context.CancelFunc
	maxAttempts int
	backoff     time.Duration
	timeout     time.Duration
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

func New(opts Options) *Fetcher {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(opts.UserAgent),
	)
	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	return &Fetcher{
		allocCtx:    allocCtx,
		cancel:      cancel,
		maxAttempts: opts.MaxAttempts,
		backoff:     opts.Backoff,
		timeout:     opts.Timeout,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}
}

// Close shuts the browser down.
func (f *Fetcher) Close() {
	f.cancel()
}

// Fetch navigates to url and returns the rendered document. Navigation
// failures are retried like transport errors in httpfetch; a non-2xx
// document status is returned as *httpfetch.StatusError.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	attempt := 0
	for attempt < f.maxAttempts {
		attempt++
		f.metrics.IncFetchAttempt(httpfetch.TargetPage)

		html, status, err := f.load(ctx, url)
		if err == nil {
			if status != 0 && (status < 200 || status >= 300) {
				return nil, &httpfetch.StatusError{URL: url, StatusCode: int(status)}
			}
			return []byte(html), nil
		}
		lastErr = err
		f.logger.Warn("browser navigation failed",
			zap.String("url", url), zap.Int("attempt", attempt), zap.Error(err))

		if ctx.Err() != nil {
			break
		}
		if attempt < f.maxAttempts && f.backoff > 0 {
			select {
			case <-time.After(f.backoff):
			case <-ctx.Done():
			}
		}
	}
	if ctx.Err() != nil && !errors.Is(lastErr, ctx.Err()) {
		lastErr = errors.Join(lastErr, ctx.Err())
	}
	return nil, &httpfetch.FetchError{URL: url, Attempts: attempt, Err: lastErr}
}

func (f *Fetcher) load(ctx context.Context, url string) (string, int64, error) {
	taskCtx, cancel := chromedp.NewContext(f.allocCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, f.timeout)
	defer cancelTimeout()

	// The first document response carries the page status.
	var status atomic.Int64
	chromedp.ListenTarget(taskCtx, func(ev interface{}) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, e.Response.Status)
		}
	})

	var html string
	err := chromedp.Run(taskCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	return html, status.Load(), err
}
