package rest

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// Config is used to provide dependencies and configuration to the New function.
type Config struct {
	Logger logrus.FieldLogger
}

func New(cfg Config) (*Engine, error) {

	// assign a logger or fail
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	var engine = Engine{baseLogger: cfg.Logger, router: httprouter.New()}

	// disables redirections such as `/foo/` to `/foo`
	engine.router.RedirectTrailingSlash = false

	// disables attempts to fix common path issues and redirects them, i.e. `/FoO` redirects to `/foo`
	engine.router.RedirectFixedPath = false

	return &engine, nil
}

// Engine contains the muxer, logger and middleware.
type Engine struct {
	router *httprouter.Router

	// a middleware queue; invocation order follows insertion order
	middleware []func(http.Handler) http.Handler

	// baseLogger serves non-request contexts, such as background tasks not started by a request
	baseLogger logrus.FieldLogger
}

// Handler returns the router handling all pages and APIs registered with the engine.
func (e *Engine) Handler() http.Handler {
	return e.router
}

// Handle registers the path and method to the given handler, after composing the
// engine's global middleware with the route specific one.
func (e *Engine) Handle(method string, path string, handler http.Handler, middleware ...func(http.Handler) http.Handler) {

	// first apply the router's globally defined middleware
	for _, mw := range e.middleware {
		handler = mw(handler)
	}

	// then apply the per-route specific middleware
	for _, mw := range middleware {
		handler = mw(handler)
	}

	// associate the final composed handler to the selected path and method pair
	e.router.Handler(method, path, handler)
}

// Use specifies one or multiple new handlers that will be evaluated for every registered route (ie. logger).
// Routes registered before the call aren't affected.
func (e *Engine) Use(mw ...func(http.Handler) http.Handler) {
	e.middleware = append(e.middleware, mw...)
}

// Get defines a new GET method handler for the specified path.
// The variadic arguments can include middleware that will be exclusively evaluated for the path.
func (e *Engine) Get(path string, handlerFunc http.HandlerFunc, middleware ...func(http.Handler) http.Handler) {
	e.Handle(http.MethodGet, path, handlerFunc, middleware...)
}

func (e *Engine) Post(path string, handlerFunc http.HandlerFunc, middleware ...func(http.Handler) http.Handler) {
	e.Handle(http.MethodPost, path, handlerFunc, middleware...)
}

func (e *Engine) Put(path string, handlerFunc http.HandlerFunc, middleware ...func(http.Handler) http.Handler) {
	e.Handle(http.MethodPut, path, handlerFunc, middleware...)
}

func (e *Engine) Delete(path string, handlerFunc http.HandlerFunc, middleware ...func(http.Handler) http.Handler) {
	e.Handle(http.MethodDelete, path, handlerFunc, middleware...)
}

// ServeFiles maps a wildcard path, which must end in `*filepath`, to the contents of the given root.
func (e *Engine) ServeFiles(path string, root http.FileSystem) {
	e.router.ServeFiles(path, root)
}

// NotFound registers the handler invoked for unmatched routes, regardless of method.
func (e *Engine) NotFound(handlerFunc http.HandlerFunc) {
	e.router.NotFound = handlerFunc
}

// Recover registers a handler invoked when a route handler panics. Nothing has been
// written to the response at that point, so the handler may still render a page.
func (e *Engine) Recover(handler func(http.ResponseWriter, *http.Request, interface{})) {
	e.router.PanicHandler = handler
}
