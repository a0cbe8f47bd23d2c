package http1

import (
	"io"
	"sort"
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/ember-web/ember/http"
	"github.com/ember-web/ember/http/status"
	"github.com/ember-web/ember/kv"
)

// Serializer renders responses into their exact HTTP/1.1 wire form: a status
// line, a header block closed by an empty line, then the raw body bytes.
//
// Content-Length (computed from the body) and Content-Type: text/plain are
// always present unless the response carries a header with the very same,
// case-sensitively matched, name. The same override rule applies to the
// configured default headers. Response headers are rendered in the order the
// handler added them.
type Serializer struct {
	defaults []kv.Pair
}

func NewSerializer(defaultHeaders map[string]string) *Serializer {
	// map order is random; sort so the same config always renders the
	// same bytes
	defaults := kv.NewFromMap(defaultHeaders).Expose()
	sort.Slice(defaults, func(i, j int) bool {
		return defaults[i].Key < defaults[j].Key
	})

	return &Serializer{defaults: defaults}
}

// WriteTo renders the response through a pooled buffer and writes it out in a
// single Write call, so an exchange never interleaves with anything else on
// the wire.
func (s *Serializer) WriteTo(resp *http.Response, w io.Writer) error {
	buff := bytebufferpool.Get()
	defer bytebufferpool.Put(buff)

	s.render(buff, resp)
	_, err := w.Write(buff.B)

	return err
}

// Bytes renders the response into a freshly allocated slice.
func (s *Serializer) Bytes(resp *http.Response) []byte {
	var buff bytebufferpool.ByteBuffer
	s.render(&buff, resp)

	return buff.B
}

func (s *Serializer) render(buff *bytebufferpool.ByteBuffer, resp *http.Response) {
	body := resp.Payload()
	extra := resp.ExtraHeaders()

	buff.B = append(buff.B, "HTTP/1.1 "...)
	buff.B = strconv.AppendUint(buff.B, uint64(resp.Status()), 10)
	buff.B = append(buff.B, ' ')
	buff.B = append(buff.B, status.Text(resp.Status())...)
	buff.B = append(buff.B, crlf...)

	if !overrides(extra, "Content-Length") {
		buff.B = append(buff.B, "Content-Length: "...)
		buff.B = strconv.AppendInt(buff.B, int64(len(body)), 10)
		buff.B = append(buff.B, crlf...)
	}

	if !overrides(extra, "Content-Type") {
		appendHeader(buff, "Content-Type", "text/plain")
	}

	for _, def := range s.defaults {
		if !overrides(extra, def.Key) {
			appendHeader(buff, def.Key, def.Value)
		}
	}

	for _, header := range extra {
		appendHeader(buff, header.Key, header.Value)
	}

	buff.B = append(buff.B, crlf...)
	buff.B = append(buff.B, body...)
}

func appendHeader(buff *bytebufferpool.ByteBuffer, key, value string) {
	buff.B = append(buff.B, key...)
	buff.B = append(buff.B, ": "...)
	buff.B = append(buff.B, value...)
	buff.B = append(buff.B, crlf...)
}

func overrides(headers []kv.Pair, key string) bool {
	for _, header := range headers {
		if header.Key == key {
			return true
		}
	}

	return false
}
