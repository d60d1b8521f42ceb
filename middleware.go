package jsonapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jayjzheng/go-jsonapi/internal/logctx"
)

// Options configures the JSON:API middleware.
type Options struct {
	// Registry maps routes to resource descriptors. Only used by Middleware.
	Registry *Registry

	// PathResolver extracts the route pattern from a request. Only used by
	// Middleware. Defaults to r.URL.Path if nil.
	PathResolver PathResolver

	// OnReject writes the response of a rejected request. Defaults to
	// StatusOnly.
	OnReject RejectHandler

	// Logger receives negotiation events. Defaults to slog.Default().
	Logger *slog.Logger
}

// Returns builds the middleware for an endpoint returning res. The
// descriptor is validated once, here; an invalid one is a programming error
// and no middleware is returned.
//
// For every request the middleware negotiates the media types, stores res
// under ResourceDescriptorKey in the request context, and then either
// rejects the request with 406 or 415 or calls next.
func Returns(res Resource, opts Options) (func(http.Handler) http.Handler, error) {
	if err := ValidateResource(res); err != nil {
		return nil, err
	}
	ic := newInterceptor(opts)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ic.serve(w, r, res, r.Pattern, next)
		})
	}, nil
}

// MustReturns is like Returns but panics if res is invalid.
func MustReturns(res Resource, opts Options) func(http.Handler) http.Handler {
	mw, err := Returns(res, opts)
	if err != nil {
		panic(err)
	}
	return mw
}

// Middleware returns an http.Handler middleware that applies Returns
// semantics to every request whose route has a resource in opts.Registry.
// HEAD requests use the GET entry when no HEAD route is registered.
// Requests to other routes pass through untouched.
func Middleware(opts Options) func(http.Handler) http.Handler {
	if opts.PathResolver == nil {
		opts.PathResolver = func(r *http.Request) string {
			return r.URL.Path
		}
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	ic := newInterceptor(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pattern := opts.PathResolver(r)
			res := opts.Registry.Lookup(r.Method, pattern)
			if res == nil && r.Method == http.MethodHead {
				// ServeMux routes HEAD to GET patterns.
				res = opts.Registry.Lookup(http.MethodGet, pattern)
			}
			if res == nil {
				next.ServeHTTP(w, r)
				return
			}
			ic.serve(w, r, res, pattern, next)
		})
	}
}

type interceptor struct {
	log      *slog.Logger
	onReject RejectHandler
}

func newInterceptor(opts Options) *interceptor {
	ic := &interceptor{log: logctx.Wrap(opts.Logger), onReject: opts.OnReject}
	if ic.onReject == nil {
		ic.onReject = StatusOnly
	}
	return ic
}

func (ic *interceptor) serve(w http.ResponseWriter, r *http.Request, res Resource, route string, next http.Handler) {
	verdict := NegotiateHeaders(r.Header)

	ctx := logctx.EnsureRequestData(r.Context(), r, route)
	ctx = logctx.WithNegotiationData(ctx, &logctx.NegotiationData{
		ResourceType: res.ResourceType(),
		Verdict:      verdict.String(),
	})
	// Attached before the verdict is applied: error handlers read it too.
	r = r.WithContext(WithResource(ctx, res))

	if verdict != Accepted {
		ic.log.InfoContext(ctx, "negotiate.reject",
			slog.String("accept", strings.Join(r.Header.Values("Accept"), ", ")),
			slog.String("content_type", r.Header.Get("Content-Type")),
			slog.Int("status", verdict.StatusCode()),
		)
		ic.onReject(w, r, verdict)
		return
	}

	ic.log.DebugContext(ctx, "negotiate.accept")
	next.ServeHTTP(w, r)
}
