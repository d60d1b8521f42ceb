// Package jsonapigin adapts the JSON:API media type negotiation of package
// jsonapi to gin.
package jsonapigin

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	jsonapi "github.com/jayjzheng/go-jsonapi"
	"github.com/jayjzheng/go-jsonapi/internal/logctx"
)

// Option configures the gin middleware.
type Option func(*config)

type config struct {
	logger   *slog.Logger
	onReject jsonapi.RejectHandler
}

// WithLogger sets the logger receiving negotiation events. If not provided,
// slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithRejectHandler sets the handler writing rejected responses, for example
// jsonapi.ErrorDocument. If not provided, only the status code is written.
func WithRejectHandler(h jsonapi.RejectHandler) Option {
	return func(c *config) { c.onReject = h }
}

// Returns builds a gin middleware for routes returning res. The descriptor
// is stored with c.Set under jsonapi.ResourceDescriptorKey and in the request
// context, on rejected requests as well; rejections abort with 406 or 415
// and are written by the WithRejectHandler handler when one is set.
func Returns(res jsonapi.Resource, opts ...Option) (gin.HandlerFunc, error) {
	if err := jsonapi.ValidateResource(res); err != nil {
		return nil, err
	}
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	log := logctx.Wrap(cfg.logger)

	return func(c *gin.Context) {
		verdict := jsonapi.NegotiateHeaders(c.Request.Header)

		ctx := logctx.EnsureRequestData(c.Request.Context(), c.Request, c.FullPath())
		ctx = logctx.WithNegotiationData(ctx, &logctx.NegotiationData{
			ResourceType: res.ResourceType(),
			Verdict:      verdict.String(),
		})
		c.Request = c.Request.WithContext(jsonapi.WithResource(ctx, res))
		c.Set(jsonapi.ResourceDescriptorKey, res)

		if verdict != jsonapi.Accepted {
			log.InfoContext(ctx, "negotiate.reject",
				slog.String("accept", strings.Join(c.Request.Header.Values("Accept"), ", ")),
				slog.String("content_type", c.Request.Header.Get("Content-Type")),
				slog.Int("status", verdict.StatusCode()),
			)
			if cfg.onReject == nil {
				c.AbortWithStatus(verdict.StatusCode())
				return
			}
			c.Abort()
			cfg.onReject(c.Writer, c.Request, verdict)
			return
		}
		log.DebugContext(ctx, "negotiate.accept")
		c.Next()
	}, nil
}

// MustReturns is like Returns but panics if res is invalid.
func MustReturns(res jsonapi.Resource, opts ...Option) gin.HandlerFunc {
	h, err := Returns(res, opts...)
	if err != nil {
		panic(err)
	}
	return h
}

// ResourceFrom returns the descriptor stored by the middleware.
func ResourceFrom(c *gin.Context) (jsonapi.Resource, bool) {
	v, ok := c.Get(jsonapi.ResourceDescriptorKey)
	if !ok {
		return nil, false
	}
	res, ok := v.(jsonapi.Resource)
	return res, ok
}
