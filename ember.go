package ember

import (
	"log/slog"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/ember-web/ember/config"
	"github.com/ember-web/ember/http"
	"github.com/ember-web/ember/internal/protocol/http1"
	"github.com/ember-web/ember/router"
	"github.com/ember-web/ember/router/simple"
	"github.com/ember-web/ember/transport"
)

// App wires the pieces together: it binds listeners, accepts connections and
// runs one session per connection. The interesting parts all live below it,
// in the decoder, the serializer and the session.
type App struct {
	addrs  []string
	cfg    *config.Config
	logger *slog.Logger
	tcps   []*transport.TCP
	hooks  hooks
}

type hooks struct {
	OnStart, OnStop func()
}

// New returns a new App instance serving on addr.
func New(addr string) *App {
	return &App{
		addrs:  []string{addr},
		cfg:    config.Default(),
		logger: slog.Default(),
	}
}

// Tune replaces default settings.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger replaces the default logger.
func (a *App) Logger(logger *slog.Logger) *App {
	a.logger = logger
	return a
}

// Listen adds one more address to serve on.
func (a *App) Listen(addr string) *App {
	a.addrs = append(a.addrs, addr)
	return a
}

// NotifyOnStart calls the callback once all listeners are bound, right before
// the accept loops start.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback after all the accept loops returned and all
// connections were served till the end.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Serve binds all listeners and blocks, serving connections until Stop is
// called or an accept loop fails. If nil is passed instead of a router, every
// request is answered with an empty 200.
func (a *App) Serve(r router.Router) error {
	if r == nil {
		r = simple.NewRouter(func(*http.Request) *http.Response {
			return http.NewResponse()
		})
	}

	for _, addr := range a.addrs {
		tcp := transport.NewTCP()
		if err := tcp.Bind(addr); err != nil {
			for _, bound := range a.tcps {
				bound.Close()
			}

			return err
		}

		a.tcps = append(a.tcps, tcp)
		a.logger.Info("listening", "addr", tcp.Addr())
	}

	callIfNotNil(a.hooks.OnStart)

	group := new(errgroup.Group)
	for _, tcp := range a.tcps {
		tcp := tcp
		group.Go(func() error {
			return tcp.Listen(a.cfg.NET.AcceptLoopInterruptPeriod, a.spawn(r))
		})
	}

	err := group.Wait()

	for _, tcp := range a.tcps {
		tcp.Close()
		tcp.Wait()
	}

	callIfNotNil(a.hooks.OnStop)
	a.logger.Info("server stopped")

	return err
}

// Addr returns the bound address of the first listener. Only meaningful
// during and after the NotifyOnStart callback; handy with port 0.
func (a *App) Addr() net.Addr {
	return a.tcps[0].Addr()
}

// Stop makes all accept loops exit on their next wakeup. Connections already
// being served are given time to finish.
func (a *App) Stop() {
	for _, tcp := range a.tcps {
		tcp.Stop()
	}
}

func (a *App) spawn(r router.Router) func(net.Conn) {
	return func(conn net.Conn) {
		client := transport.NewClient(
			conn, a.cfg.NET.ReadTimeout, make([]byte, a.cfg.NET.ReadBufferSize),
		)
		http1.NewSession(a.cfg, client, r).Serve()
	}
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
