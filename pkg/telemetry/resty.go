package telemetry

import (
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentResty annotates the span carried by each request context with
// one event per attempt and the final outcome.
func InstrumentResty(client *resty.Client) {
	client.OnBeforeRequest(onBeforeRequest)
	client.OnAfterResponse(onAfterResponse)
	client.OnError(onError)
}

func onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	span := trace.SpanFromContext(req.Context())
	span.AddEvent("http.attempt", trace.WithAttributes(
		attribute.Int("http.attempt", req.Attempt),
		attribute.String("http.method", req.Method),
		attribute.String("url.full", req.URL),
	))
	return nil
}

func onAfterResponse(_ *resty.Client, res *resty.Response) error {
	span := trace.SpanFromContext(res.Request.Context())
	span.SetAttributes(
		attribute.Int("http.response.status_code", res.StatusCode()),
		attribute.Int("http.attempts", res.Request.Attempt),
	)
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, res.Status())
	}
	return nil
}

func onError(req *resty.Request, err error) {
	span := trace.SpanFromContext(req.Context())
	span.RecordError(err)
	span.SetStatus(codes.Error, "request failed")
	span.SetAttributes(attribute.Int("http.attempts", req.Attempt))
}
