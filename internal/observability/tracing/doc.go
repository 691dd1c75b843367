// Package tracing provides OpenTelemetry tracing integration.
//
// It exposes the application tracer, helpers for usecase spans and
// an HTTP middleware that extracts W3C trace context and opens a server span
// per request.
//
// Example usage:
//
//	handler := tracing.Middleware(mux)
//
//	func (s *Service) Create(ctx context.Context, in CreateInput) (a *entity.Article, err error) {
//	    ctx, span := tracing.StartSpan(ctx, "article.Create")
//	    defer func() { tracing.EndSpan(span, err) }()
//	    // ...
//	}
package tracing
