package config

import "time"

type (
	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read
		// from the socket.
		ReadBufferSize int
		// ReadTimeout controls the maximal lifetime of IDLE connections. If no
		// data was received in this period of time, the connection is closed.
		// This is enforced by the transport, not by the session itself.
		ReadTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often the Accept() call is
		// interrupted in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration
		// AccumulatorPrealloc is the initial capacity of the per-connection
		// byte accumulator.
		AccumulatorPrealloc int
	}

	Body struct {
		// FallbackLimit bounds how many body bytes are consumed for a request
		// that carries no Content-Length header. Such requests take whatever is
		// already buffered, up to this limit.
		FallbackLimit int
	}

	KeepAlive struct {
		// Timeout is advertised to clients in the Keep-Alive response header as
		// the timeout= parameter, in whole seconds.
		Timeout time.Duration
		// MaxExchanges is advertised as the max= parameter.
		MaxExchanges int
	}

	Headers struct {
		// Default headers are included into every response implicitly, unless
		// explicitly overridden by the handler.
		Default map[string]string
	}
)

// Config holds settings used across ember, mainly restrictions, limitations
// and pre-allocations. Always modify defaults (returned via Default()) instead
// of constructing the struct manually.
type Config struct {
	NET       NET
	Body      Body
	KeepAlive KeepAlive
	Headers   Headers
}

func Default() *Config {
	return &Config{
		NET: NET{
			ReadBufferSize:            2 * 1024,
			ReadTimeout:               90 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
			AccumulatorPrealloc:       2 * 1024,
		},
		Body: Body{
			FallbackLimit: 8192,
		},
		KeepAlive: KeepAlive{
			Timeout:      5 * time.Second,
			MaxExchanges: 1000,
		},
		Headers: Headers{
			Default: make(map[string]string),
		},
	}
}
