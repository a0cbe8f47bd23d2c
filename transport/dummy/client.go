package dummy

import (
	"io"
	"net"

	"github.com/ember-web/ember/transport"
)

var _ transport.Client = new(ScriptedClient)

// ScriptedClient replays a fixed sequence of reads, one chunk per Read call,
// then reports EOF. Everything written is captured in Written. Used to drive
// sessions in tests without a socket.
type ScriptedClient struct {
	chunks  [][]byte
	pointer int
	closed  bool

	Written []byte
}

func NewScriptedClient(chunks ...[]byte) *ScriptedClient {
	return &ScriptedClient{chunks: chunks}
}

func (s *ScriptedClient) Read() ([]byte, error) {
	if s.closed || s.pointer >= len(s.chunks) {
		return nil, io.EOF
	}

	chunk := s.chunks[s.pointer]
	s.pointer++

	return chunk, nil
}

func (s *ScriptedClient) Write(b []byte) (int, error) {
	s.Written = append(s.Written, b...)
	return len(b), nil
}

func (s *ScriptedClient) Remote() net.Addr {
	return nil
}

func (s *ScriptedClient) Close() error {
	s.closed = true
	return nil
}

func (s *ScriptedClient) Closed() bool {
	return s.closed
}
