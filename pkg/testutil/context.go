package testutil

import (
	"context"
	"net/http"
	"time"

	"kycaml/pkg/requestcontext"
)

// FixedContext returns a background context whose request time is now.
func FixedContext(now time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), now)
}

// WithRequestTime pins the request-scoped time, as the RequestScope middleware would.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithOperator sets the operator recorded on assessments written by the request.
func WithOperator(req *http.Request, operator string) *http.Request {
	return req.WithContext(requestcontext.WithOperator(req.Context(), operator))
}
