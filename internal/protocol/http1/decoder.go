package http1

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/indigo-web/utils/uf"

	"github.com/ember-web/ember/http"
	"github.com/ember-web/ember/http/method"
	"github.com/ember-web/ember/http/status"
	"github.com/ember-web/ember/kv"
)

var (
	headBodySeparator = []byte("\r\n\r\n")
	crlf              = []byte("\r\n")
	sp                = []byte(" ")
)

type OutcomeKind uint8

const (
	// Incomplete means the buffer doesn't hold a whole request yet. Not an
	// error: the session simply waits for more bytes and retries.
	Incomplete OutcomeKind = iota
	// Complete carries a decoded request and the number of consumed bytes.
	Complete
	// Invalid means the request is permanently malformed. More bytes cannot
	// fix it; the connection is to be terminated.
	Invalid
)

// Outcome is the result of a single decode attempt. Exactly one of the three
// kinds is reported; Request and Consumed are meaningful only for Complete,
// Reason only for Invalid.
type Outcome struct {
	Kind     OutcomeKind
	Request  *http.Request
	Consumed int
	Reason   error
}

func completed(request *http.Request, consumed int) Outcome {
	return Outcome{Kind: Complete, Request: request, Consumed: consumed}
}

func needMore() Outcome {
	return Outcome{Kind: Incomplete}
}

func malformed(reason error) Outcome {
	return Outcome{Kind: Invalid, Reason: reason}
}

// Decoder extracts single requests off the front of a connection's
// accumulated bytes. It holds no per-request state: decoding is a pure
// function of the buffer contents, so re-decoding an unchanged buffer
// yields an identical outcome.
type Decoder struct {
	fallbackBodyLimit int
}

func NewDecoder(fallbackBodyLimit int) Decoder {
	return Decoder{fallbackBodyLimit: fallbackBodyLimit}
}

// Decode attempts to extract exactly one request from the front of data.
//
// Structural failures (bad request line, unknown method, bad framing
// headers) are reported before any body handling, and a merely not-yet
// arrived body is distinguished from a permanently malformed request: the
// former yields Incomplete, never Invalid.
func (d Decoder) Decode(data []byte) Outcome {
	sep := bytes.Index(data, headBodySeparator)
	if sep == -1 {
		return needMore()
	}

	lines := bytes.Split(data[:sep], crlf)

	tokens := bytes.Split(lines[0], sp)
	if len(tokens) != 3 {
		return malformed(status.ErrMalformedRequestLine)
	}

	m := method.Parse(uf.B2S(tokens[0]))
	if m == method.Unknown {
		return malformed(status.ErrUnsupportedMethod)
	}

	headers := kv.NewPrealloc(len(lines) - 1)
	for _, line := range lines[1:] {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		colon := bytes.IndexByte(line, ':')
		if colon == -1 {
			return malformed(status.ErrMalformedHeader)
		}

		key := strings.ToLower(string(bytes.TrimSpace(line[:colon])))
		value := string(bytes.TrimSpace(line[colon+1:]))
		// duplicate fields resolve to the last occurrence
		headers.Set(key, value)
	}

	if headers.Value("transfer-encoding") == "chunked" {
		return malformed(status.ErrChunkedNotSupported)
	}

	// without a declared length only payload-carrying methods get the
	// fallback body window; a bodiless request ends right after its header
	// section, leaving any buffered pipelined request intact
	effective := 0
	if carriesPayload(m) {
		effective = d.fallbackBodyLimit
	}
	declared := false
	if cl, found := headers.Get("content-length"); found {
		n, err := strconv.Atoi(cl)
		if err != nil {
			return malformed(status.ErrInvalidContentLength)
		}
		if n < 0 {
			// a negative declaration passes parsing; it consumes nothing
			n = 0
		}

		effective = n
		declared = true
	}

	bodyStart := sep + len(headBodySeparator)
	avail := len(data) - bodyStart

	if declared && avail < effective {
		// the request is fine, its body just hasn't fully arrived yet
		return needMore()
	}

	take := effective
	if take > avail {
		take = avail
	}

	consumed := bodyStart + take

	request := &http.Request{
		Method:  m,
		Path:    string(tokens[1]),
		Proto:   string(tokens[2]),
		Headers: headers,
		Body:    newBody(data[bodyStart:consumed], headers.Value("content-type")),
		// leftover bytes past the body boundary belong to the next exchange
		Truncated: len(data) > consumed,
	}

	return completed(request, consumed)
}

func carriesPayload(m method.Method) bool {
	switch m {
	case method.POST, method.PUT, method.PATCH:
		return true
	default:
		return false
	}
}

// newBody copies raw out of the connection buffer, which is about to be
// trimmed, and picks the textual representation for text-alike payloads.
func newBody(raw []byte, contentType string) http.Body {
	if strings.HasPrefix(contentType, "text/") || strings.Contains(contentType, "json") {
		return http.TextBody(string(raw))
	}

	return http.BytesBody(bytes.Clone(raw))
}
