// Package logctx carries request scoped log attributes in a context and
// adds them to every record logged with that context.
package logctx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		r.AddAttrs(slog.Group("req",
			slog.String("id", rd.RequestID),
			slog.String("method", rd.Method),
			slog.String("path", rd.Path),
			slog.String("route", rd.Route),
		))
	}

	if nd, ok := ctx.Value(negotiationDataKey{}).(*NegotiationData); ok {
		r.AddAttrs(slog.Group("jsonapi",
			slog.String("resource_type", nd.ResourceType),
			slog.String("verdict", nd.Verdict),
		))
	}

	return h.Handler.Handle(ctx, r)
}

func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h Handler) WithGroup(name string) slog.Handler {
	return Handler{Handler: h.Handler.WithGroup(name)}
}

// Wrap returns a logger whose records pick up the context attributes. A nil
// logger falls back to slog.Default().
func Wrap(l *slog.Logger) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	if _, ok := l.Handler().(Handler); ok {
		return l
	}
	return slog.New(Handler{Handler: l.Handler()})
}

type requestDataKey struct{}

type RequestData struct {
	RequestID string
	Method    string
	Path      string
	Route     string
}

func WithRequestData(ctx context.Context, data *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, data)
}

// EnsureRequestData returns ctx unchanged when it already carries request
// data. Otherwise it attaches data for r, taking the id from the
// X-Request-Id header or generating one.
func EnsureRequestData(ctx context.Context, r *http.Request, route string) context.Context {
	if _, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return ctx
	}
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	return WithRequestData(ctx, &RequestData{
		RequestID: id,
		Method:    r.Method,
		Path:      r.URL.Path,
		Route:     route,
	})
}

type negotiationDataKey struct{}

type NegotiationData struct {
	ResourceType string
	Verdict      string
}

func WithNegotiationData(ctx context.Context, data *NegotiationData) context.Context {
	return context.WithValue(ctx, negotiationDataKey{}, data)
}
