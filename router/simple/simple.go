package simple

import (
	"github.com/ember-web/ember/http"
	"github.com/ember-web/ember/router"
)

// Handler turns a decoded request into a response.
type Handler func(*http.Request) *http.Response

type simpleRouter struct {
	handler Handler
}

// NewRouter wraps a single handler function into a Router. The handler gets
// every decoded request regardless of method or path; any dispatching beyond
// that is up to the handler itself.
func NewRouter(handler Handler) router.Router {
	return simpleRouter{handler: handler}
}

func (r simpleRouter) OnRequest(request *http.Request) *http.Response {
	return r.handler(request)
}
