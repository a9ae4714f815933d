package middleware

import (
	"net/http"

	"github.com/skillsenselab/diascribe/observability"
)

// Tracing returns middleware that starts a span for every request and
// records the method, path, and response status. Probe paths are not
// traced.
func Tracing() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSystemProbe(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := observability.StartSpan(r.Context(), observability.SpanHTTPRequest)
			defer span.End()

			observability.SetSpanAttribute(ctx, "http.method", r.Method)
			observability.SetSpanAttribute(ctx, "http.path", r.URL.Path)
			if id := r.Header.Get("X-Request-Id"); id != "" {
				observability.SetSpanAttribute(ctx, observability.AttrRequestID, id)
			}

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r.WithContext(ctx))

			observability.SetSpanAttribute(ctx, "http.status_code", sw.status)
		})
	}
}
