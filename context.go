package jsonapi

import (
	"context"
	"net/http"
)

type contextKey string

// resourceKey is the context key named by ResourceDescriptorKey.
const resourceKey = contextKey(ResourceDescriptorKey)

// WithResource returns a copy of ctx carrying res under ResourceDescriptorKey.
func WithResource(ctx context.Context, res Resource) context.Context {
	return context.WithValue(ctx, resourceKey, res)
}

// ResourceFromContext returns the resource descriptor stored by the
// middleware. It is present on rejected requests too, so error handlers
// can rely on it.
func ResourceFromContext(ctx context.Context) (Resource, bool) {
	res, ok := ctx.Value(resourceKey).(Resource)
	return res, ok
}

// ResourceFromRequest is ResourceFromContext for r's context.
func ResourceFromRequest(r *http.Request) (Resource, bool) {
	return ResourceFromContext(r.Context())
}
