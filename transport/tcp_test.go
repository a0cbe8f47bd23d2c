package transport

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTCP(t *testing.T) {
	tcp := NewTCP()
	require.NoError(t, tcp.Bind("127.0.0.1:0"))

	done := make(chan error)
	go func() {
		done <- tcp.Listen(10*time.Millisecond, func(conn net.Conn) {
			buff := make([]byte, 64)
			n, err := conn.Read(buff)
			if err != nil {
				return
			}
			_, _ = conn.Write(buff[:n])
		})
	}()

	conn, err := net.Dial("tcp", tcp.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("ping"))
	require.NoError(t, err)

	buff := make([]byte, 4)
	_, err = io.ReadFull(conn, buff)
	require.NoError(t, err)
	require.Equal(t, "ping", string(buff))

	tcp.Stop()
	require.NoError(t, <-done)
	tcp.Wait()
	tcp.Close()
}

func TestTCPBindFailure(t *testing.T) {
	tcp := NewTCP()
	require.Error(t, tcp.Bind("definitely not an address"))
}
