package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before a handler. It can derive a new context which is
// passed to the next middleware and finally to the handler.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

type Router struct {
	Inner gin.IRouter

	baseCtx context.Context
	befores []MiddlewareFunc
}

// New creates a Router. The given context carries configs, logger, database,
// and the other request-scoped dependencies set up by the caller.
func New(ctx context.Context) *Router {
	return &Router{
		Inner:   gin.New(),
		baseCtx: ctx,
	}
}

// Branch creates a router sharing the same underlying engine but with an
// independent middleware chain.
func (r *Router) Branch() *Router {
	return &Router{
		Inner:   r.Inner,
		baseCtx: r.baseCtx,
		befores: append([]MiddlewareFunc{}, r.befores...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, "GET", handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, "POST", handler))
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}
