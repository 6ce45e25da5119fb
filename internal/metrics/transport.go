package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

type opKey struct{}

// WithOp labels outgoing admin requests made with ctx.
func WithOp(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, opKey{}, op)
}

// normalizeOp keeps label cardinality bounded for unlabeled requests.
func normalizeOp(ctx context.Context) string {
	if op, ok := ctx.Value(opKey{}).(string); ok && op != "" {
		return op
	}
	return "unknown"
}

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// InstrumentTransport records Solr admin request duration and count.
// A nil next uses http.DefaultTransport.
func InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		op := normalizeOp(r.Context())
		start := time.Now()

		resp, err := next.RoundTrip(r)

		AdminRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		status := "error"
		if err == nil {
			status = strconv.Itoa(resp.StatusCode)
		}
		AdminRequestsTotal.WithLabelValues(op, status).Inc()
		return resp, err //nolint:wrapcheck // transport errors are wrapped by the caller
	})
}
