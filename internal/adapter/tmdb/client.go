// Package tmdb is the client for the structured movie API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/user/filmdata-service/internal/adapter/httpfetch"
	"github.com/user/filmdata-service/internal/entity"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

var tracer = otel.Tracer("filmdata/tmdb")

var ErrMissingAPIKey = errors.New("tmdb: api key is required")

// Client looks films up by id. The credential is passed in, never read from
// the environment.
type Client struct {
	baseURL string
	apiKey  string
	http    *resty.Client
}

func New(baseURL, apiKey string, opts httpfetch.Options) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts.Target = httpfetch.TargetTMDB
	c, _ := httpfetch.NewResty(opts)
	c.SetHeader("Accept", "application/json")
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    c,
	}, nil
}

// Movie issues GET {base}/movie/{id}. A non-2xx status comes back as a
// response without payload; only transport and decode failures are errors.
func (c *Client) Movie(ctx context.Context, id string) (entity.MovieResponse, error) {
	ctx, span := tracer.Start(ctx, "tmdb.Movie",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("film.id", id)),
	)
	defer span.End()

	endpoint := c.baseURL + "/movie/" + url.PathEscape(id)
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey)
	resp, err := req.Get(endpoint)
	if err != nil {
		return entity.MovieResponse{}, &httpfetch.FetchError{URL: endpoint, Attempts: req.Attempt, Err: err}
	}

	out := entity.MovieResponse{StatusCode: resp.StatusCode()}
	if !resp.IsSuccess() {
		return out, nil
	}

	var p entity.MoviePayload
	if err := json.Unmarshal(resp.Body(), &p); err != nil {
		return out, fmt.Errorf("tmdb: decode movie %s: %w", id, err)
	}
	out.Payload = &p
	return out, nil
}
