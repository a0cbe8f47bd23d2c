package http1

import (
	"strconv"

	"github.com/ember-web/ember/config"
	"github.com/ember-web/ember/http"
	"github.com/ember-web/ember/http/status"
	"github.com/ember-web/ember/internal/buffer"
	"github.com/ember-web/ember/router"
	"github.com/ember-web/ember/transport"
)

// Session drives all request/response exchanges of a single connection. It
// owns the byte accumulator exclusively, so no locking happens anywhere:
// one connection, one goroutine, one session.
//
// The cycle is: read, append, decode; on a complete request dispatch to the
// router, serialize, write, trim the consumed prefix; repeat. The response
// for a request is always fully written before the next request is decoded,
// which is what keeps pipelined responses in order.
type Session struct {
	client          transport.Client
	router          router.Router
	decoder         Decoder
	serializer      *Serializer
	acc             *buffer.Accumulator
	keepAliveParams string
}

func NewSession(cfg *config.Config, client transport.Client, r router.Router) *Session {
	return &Session{
		client:     client,
		router:     r,
		decoder:    NewDecoder(cfg.Body.FallbackLimit),
		serializer: NewSerializer(cfg.Headers.Default),
		acc:        buffer.New(cfg.NET.AccumulatorPrealloc),
		keepAliveParams: "timeout=" + strconv.Itoa(int(cfg.KeepAlive.Timeout.Seconds())) +
			", max=" + strconv.Itoa(cfg.KeepAlive.MaxExchanges),
	}
}

// Serve runs the session until the connection is done: the peer disconnected,
// a request demanded closing, or a request turned out malformed. The socket is
// guaranteed to be closed by the time Serve returns, and no fault of a decoder
// or a handler ever propagates out of it.
func (s *Session) Serve() {
	defer s.client.Close()

	for {
		data, err := s.client.Read()
		if err != nil {
			// peer is gone or stayed idle past the deadline. Whatever was
			// half-accumulated is discarded with the session.
			return
		}

		s.acc.Append(data)

		if !s.drain() {
			return
		}
	}
}

// drain decodes and answers as many complete requests as the accumulator
// currently holds. Returns false once the connection must not be used further.
func (s *Session) drain() bool {
	for {
		outcome := s.decode()

		switch outcome.Kind {
		case Incomplete:
			// wait for more bytes; decoding the unchanged buffer again
			// would yield the same outcome
			return true
		case Invalid:
			s.reject(outcome.Reason)
			return false
		}

		request := outcome.Request
		keepAlive := request.KeepAlive()

		resp, ok := s.dispatch(request)
		if !ok {
			s.reject(status.ErrHandlerFailure)
			return false
		}

		if keepAlive {
			resp.Header("Connection", "keep-alive").
				Header("Keep-Alive", s.keepAliveParams)
		} else {
			resp.Header("Connection", "close")
		}

		if err := s.serializer.WriteTo(resp, s.client); err != nil {
			return false
		}

		if !keepAlive {
			// even if more bytes are already buffered, they die with the
			// connection
			return false
		}

		s.acc.TrimFront(outcome.Consumed)
		if s.acc.Len() == 0 {
			return true
		}
		// a pipelined next request is already buffered: decode it right
		// away instead of waiting for a read event
	}
}

// decode shields the session from decoder faults: a panic is reported as a
// malformed request rather than taking the whole listener process down.
func (s *Session) decode() (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = malformed(status.ErrBadRequest)
		}
	}()

	return s.decoder.Decode(s.acc.Bytes())
}

// dispatch invokes the router, absorbing its panics. A nil response is
// replaced with an empty 200.
func (s *Session) dispatch(request *http.Request) (resp *http.Response, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			resp, ok = nil, false
		}
	}()

	resp = s.router.OnRequest(request)
	if resp == nil {
		resp = http.NewResponse()
	}

	return resp, true
}

// reject writes a 400 naming the failure reason and poisons the connection.
// The write is best-effort: the connection is closing either way.
func (s *Session) reject(reason error) {
	resp := http.NewResponse().
		Error(reason).
		Header("Connection", "close")

	_ = s.serializer.WriteTo(resp, s.client)
}
