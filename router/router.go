package router

import "github.com/ember-web/ember/http"

// Router decides what to respond with. It is the only business-logic contract
// of the server: a synchronous call per decoded request. Malformed requests
// never reach it; the session rejects those on its own.
type Router interface {
	OnRequest(*http.Request) *http.Response
}
