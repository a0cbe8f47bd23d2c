package http

import (
	"strings"

	json "github.com/json-iterator/go"

	"github.com/ember-web/ember/http/method"
	"github.com/ember-web/ember/kv"
)

// Request is a single fully decoded HTTP/1.1 request. Instances are produced
// by the decoder and must be treated as immutable: a session re-uses nothing
// from a request after its handler returned.
type Request struct {
	Method method.Method
	Path   string
	// Proto is the protocol token of the request line, e.g. "HTTP/1.1". It is
	// carried verbatim; no other protocol version is actually spoken.
	Proto string
	// Headers stores header fields keyed by the lowercased, trimmed field
	// name. Duplicate fields resolve to the last occurrence.
	Headers *kv.Storage
	Body    Body
	// Truncated reports that the connection buffer held more bytes than this
	// request consumed. That is not an error: the remainder is usually the
	// next pipelined request.
	Truncated bool
}

// ContentType returns the content-type header value, or an empty string.
func (r *Request) ContentType() string {
	return r.Headers.Value("content-type")
}

// KeepAlive reports whether the client asked to keep the connection open.
// The match against "keep-alive" is case-insensitive.
func (r *Request) KeepAlive() bool {
	return strings.EqualFold(r.Headers.Value("connection"), "keep-alive")
}

// JSON unmarshals the request body into the model.
func (r *Request) JSON(model any) error {
	return json.ConfigDefault.Unmarshal(r.Body.Bytes(), model)
}

// Body is a request payload: either text or an opaque byte sequence, never
// both. Which one it is gets decided by the request's content-type.
type Body struct {
	raw     []byte
	textual bool
}

func TextBody(text string) Body {
	return Body{raw: []byte(text), textual: true}
}

func BytesBody(raw []byte) Body {
	return Body{raw: raw}
}

// Text returns the payload as text. The second return value reports whether
// the payload actually is textual; for an opaque payload it is false and the
// string is empty.
func (b Body) Text() (string, bool) {
	if !b.textual {
		return "", false
	}

	return string(b.raw), true
}

// Bytes returns the raw payload regardless of its interpretation.
func (b Body) Bytes() []byte {
	return b.raw
}

func (b Body) Len() int {
	return len(b.raw)
}
