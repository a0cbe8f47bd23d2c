package transport

import (
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

// TCP accepts connections and hands each one to a callback in its own
// goroutine. The accept call is interrupted periodically so that Stop is
// noticed without an extra wakeup mechanism.
type TCP struct {
	l    listener
	wg   *sync.WaitGroup
	stop *atomic.Bool
}

func NewTCP() *TCP {
	return &TCP{
		wg:   new(sync.WaitGroup),
		stop: new(atomic.Bool),
	}
}

func (t *TCP) Bind(addr string) error {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "resolve listen addr")
	}

	t.l, err = net.ListenTCP("tcp", tcpaddr)
	return errors.Wrap(err, "bind")
}

// Addr returns the bound address. Useful when binding to port 0.
func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

// Listen runs the accept loop until Stop or an unrecoverable accept error.
// Every accepted connection is served by cb in its own goroutine and closed
// when cb returns.
func (t *TCP) Listen(interruptPeriod time.Duration, cb func(conn net.Conn)) error {
	for !t.stop.Load() {
		if err := t.l.SetDeadline(time.Now().Add(interruptPeriod)); err != nil {
			return errors.Wrap(err, "accept deadline")
		}

		conn, err := t.l.Accept()
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			if t.stop.Load() {
				break
			}

			return errors.Wrap(err, "accept")
		}

		t.wg.Add(1)
		go func(conn net.Conn) {
			defer t.wg.Done()
			defer conn.Close()
			cb(conn)
		}(conn)
	}

	return nil
}

// Stop makes the accept loop exit on its next wakeup.
func (t *TCP) Stop() {
	t.stop.Store(true)
}

// Close closes the listener, failing any blocked Accept immediately.
func (t *TCP) Close() {
	_ = t.l.Close()
}

// Wait blocks until all spawned connection handlers have returned.
func (t *TCP) Wait() {
	t.wg.Wait()
}
