package http1

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ember-web/ember/config"
	"github.com/ember-web/ember/http"
	"github.com/ember-web/ember/router/simple"
	"github.com/ember-web/ember/transport/dummy"
)

func runSession(handler simple.Handler, chunks ...[]byte) *dummy.ScriptedClient {
	client := dummy.NewScriptedClient(chunks...)
	NewSession(config.Default(), client, simple.NewRouter(handler)).Serve()

	return client
}

func TestSessionSingleExchange(t *testing.T) {
	var served []string
	client := runSession(func(request *http.Request) *http.Response {
		served = append(served, request.Path)
		return http.NewResponse().String("answer")
	}, []byte("GET /solo HTTP/1.1\r\nHost: localhost\r\n\r\n"))

	require.Equal(t, []string{"/solo"}, served)

	written := string(client.Written)
	require.Contains(t, written, "HTTP/1.1 200 OK\r\n")
	require.Contains(t, written, "Connection: close\r\n")
	require.NotContains(t, written, "Keep-Alive:")
	require.True(t, strings.HasSuffix(written, "\r\n\r\nanswer"))
	require.True(t, client.Closed())
}

func TestSessionKeepAlivePipelining(t *testing.T) {
	first := "GET /first HTTP/1.1\r\nConnection: keep-alive\r\n\r\n"
	second := "GET /second HTTP/1.1\r\nConnection: close\r\n\r\n"

	var served []string
	client := runSession(func(request *http.Request) *http.Response {
		served = append(served, request.Path)
		if request.Path == "/first" {
			return http.NewResponse().String("alpha")
		}
		return http.NewResponse().String("omega")
	}, []byte(first+second))

	// both requests from the single buffer, handled strictly in order
	require.Equal(t, []string{"/first", "/second"}, served)

	written := string(client.Written)
	require.Contains(t, written, "Connection: keep-alive\r\n")
	require.Contains(t, written, "Keep-Alive: timeout=5, max=1000\r\n")
	require.Contains(t, written, "Connection: close\r\n")

	alpha, omega := strings.Index(written, "alpha"), strings.Index(written, "omega")
	require.NotEqual(t, -1, alpha)
	require.NotEqual(t, -1, omega)
	require.Less(t, alpha, omega, "responses must be written in request order")
	require.True(t, client.Closed())
}

func TestSessionCloseDiscardsBufferedRequests(t *testing.T) {
	// the first request doesn't ask for keep-alive, so the second one,
	// although fully buffered, must never be served
	data := "GET /only HTTP/1.1\r\n\r\nGET /never HTTP/1.1\r\n\r\n"

	var served []string
	client := runSession(func(request *http.Request) *http.Response {
		served = append(served, request.Path)
		return http.NewResponse()
	}, []byte(data))

	require.Equal(t, []string{"/only"}, served)
	require.Equal(t, 1, strings.Count(string(client.Written), "HTTP/1.1 200 OK"))
}

func TestSessionFragmentedRequest(t *testing.T) {
	var served int
	client := runSession(func(request *http.Request) *http.Response {
		served++
		return http.NewResponse().String("whole")
	},
		[]byte("GET /fragmen"),
		[]byte("ted HTTP/1.1\r\nConnection: keep-al"),
		[]byte("ive\r\n"),
		[]byte("\r\n"),
	)

	require.Equal(t, 1, served)
	require.Equal(t, 1, strings.Count(string(client.Written), "HTTP/1.1 200 OK"))
	require.Contains(t, string(client.Written), "Connection: keep-alive\r\n")
}

func TestSessionStagedBody(t *testing.T) {
	var got []byte
	client := runSession(func(request *http.Request) *http.Response {
		got = request.Body.Bytes()
		return http.NewResponse()
	},
		[]byte("POST /upload HTTP/1.1\r\nContent-Length: 10\r\n\r\nhello"),
		[]byte("world"),
	)

	require.Equal(t, []byte("helloworld"), got)
	require.Equal(t, 1, strings.Count(string(client.Written), "HTTP/1.1 200 OK"))
}

func TestSessionRejectsMalformed(t *testing.T) {
	handlerCalled := false
	client := runSession(func(request *http.Request) *http.Response {
		handlerCalled = true
		return http.NewResponse()
	}, []byte("TRACE / HTTP/1.1\r\n\r\n"))

	require.False(t, handlerCalled)

	written := string(client.Written)
	require.Contains(t, written, "HTTP/1.1 400 Bad Request\r\n")
	require.Contains(t, written, "Connection: close\r\n")
	require.True(t, strings.HasSuffix(written, "\r\n\r\nunsupported method"))
	require.True(t, client.Closed())
}

func TestSessionSurvivesHandlerPanic(t *testing.T) {
	client := runSession(func(request *http.Request) *http.Response {
		panic("boom")
	}, []byte("GET / HTTP/1.1\r\n\r\n"))

	written := string(client.Written)
	require.Contains(t, written, "HTTP/1.1 400 Bad Request\r\n")
	require.Contains(t, written, "Connection: close\r\n")
	require.Contains(t, written, "handler failure")
	require.True(t, client.Closed())
}

func TestSessionNilResponseBecomesEmpty200(t *testing.T) {
	client := runSession(func(request *http.Request) *http.Response {
		return nil
	}, []byte("GET / HTTP/1.1\r\n\r\n"))

	written := string(client.Written)
	require.Contains(t, written, "HTTP/1.1 200 OK\r\n")
	require.Contains(t, written, "Content-Length: 0\r\n")
}

func TestSessionIdleDisconnect(t *testing.T) {
	handlerCalled := false
	client := runSession(func(request *http.Request) *http.Response {
		handlerCalled = true
		return http.NewResponse()
	})

	require.False(t, handlerCalled)
	require.Empty(t, client.Written)
	require.True(t, client.Closed())
}

func TestSessionIncompleteThenDisconnect(t *testing.T) {
	// a half request followed by EOF: nothing is answered, nothing crashes
	client := runSession(func(request *http.Request) *http.Response {
		return http.NewResponse()
	}, []byte("GET / HTTP/1.1\r\nHost: local"))

	require.Empty(t, client.Written)
	require.True(t, client.Closed())
}
