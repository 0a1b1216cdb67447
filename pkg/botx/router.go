package botx

import (
	"context"
	"maps"
	"slices"
)

// Router routes requests to handlers by their commands.
type Router struct {
	notFound    Handler
	handlers    map[string]Handler
	middlewares []Middleware
}

// NewRouter makes an empty Router, requests without a known command
// are handled by NotFound.
func NewRouter() *Router {
	return &Router{handlers: map[string]Handler{}, notFound: NotFound}
}

// Add registers the handler for the command, e.g. "/learn".
func (r *Router) Add(cmd string, h Handler) { r.handlers[cmd] = h }

// NotFound sets a handler for the requests without a known command.
func (r *Router) NotFound(h Handler) { r.notFound = h }

// Use appends middlewares, applied to every request of the router.
func (r *Router) Use(mws ...Middleware) *Router {
	r.middlewares = append(r.middlewares, mws...)
	return r
}

// With returns a copy of the router with the middlewares appended.
func (r *Router) With(mws ...Middleware) *Router {
	return r.Clone().Use(mws...)
}

// Clone returns a copy of the router.
func (r *Router) Clone() *Router {
	return &Router{
		notFound:    r.notFound,
		handlers:    maps.Clone(r.handlers),
		middlewares: slices.Clone(r.middlewares),
	}
}

// Group registers the handlers added by f, wrapped with the middlewares
// used by f only.
func (r *Router) Group(f func(rtr *Router)) {
	nested := NewRouter()
	f(nested)

	for cmd, h := range nested.handlers {
		r.Add(cmd, chain(h, nested.middlewares))
	}
}

// Handle routes the request, empty requests are ignored.
func (r *Router) Handle(ctx context.Context, req Request) ([]Response, error) {
	if req.Text == "" && req.Attachment == nil {
		return nil, nil
	}

	h, ok := r.handlers[req.Command()]
	if !ok {
		h = r.notFound
	}

	return chain(h, r.middlewares)(ctx, req)
}

// chain wraps h with mws, the first middleware is the outermost.
func chain(h Handler, mws []Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
