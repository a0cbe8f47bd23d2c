package http

import (
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"

	"github.com/ember-web/ember/http/status"
	"github.com/ember-web/ember/kv"
)

// why 7? I don't know. There's no theory behind this number nor researches.
const preallocRespHeaders = 7

// Response is what a handler gives back: a status code, a body and extra
// headers. Extra headers are kept in the order they were supplied; a header
// whose key matches a default one (case-sensitively) replaces that default.
type Response struct {
	code    status.Code
	body    []byte
	headers []kv.Pair
}

// NewResponse returns a new instance of the Response object with status code
// set to 200 OK and no body.
func NewResponse() *Response {
	return &Response{
		code:    status.OK,
		headers: make([]kv.Pair, 0, preallocRespHeaders),
	}
}

// Code sets a response code.
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	return r
}

// Header appends a header. Headers are rendered in the order they were added.
func (r *Response) Header(key, value string) *Response {
	r.headers = append(r.headers, kv.Pair{Key: key, Value: value})
	return r
}

// String sets the response's body to the passed string.
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself.
func (r *Response) Bytes(body []byte) *Response {
	r.body = body
	return r
}

// TryJSON marshals the model into the response body and marks it as JSON,
// returning the error as-is.
func (r *Response) TryJSON(model any) (*Response, error) {
	body, err := json.ConfigDefault.Marshal(model)
	if err != nil {
		return r, err
	}

	return r.Bytes(body).Header("Content-Type", "application/json"), nil
}

// JSON does the same as TryJSON does, except an error is implicitly converted
// into a 500 response.
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error fills the response from an error: the code is taken from
// status.HTTPError if err is one (500 otherwise), the body is the error text.
// A nil error leaves the response untouched.
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	code := status.InternalServerError
	if httpErr, ok := err.(status.HTTPError); ok {
		code = httpErr.Code
	}

	return r.Code(code).String(err.Error())
}

// Status returns the response code.
func (r *Response) Status() status.Code {
	return r.code
}

// Payload returns the response body as set by the handler.
func (r *Response) Payload() []byte {
	return r.body
}

// ExtraHeaders exposes the headers in the order they were added.
func (r *Response) ExtraHeaders() []kv.Pair {
	return r.headers
}
