package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type debugServer struct {
	t        *testing.T
	srv      *httptest.Server
	upgrader websocket.Upgrader

	outbound chan DebugMessage
	done     chan struct{}

	mu    sync.Mutex
	query string
}

func newDebugServer(t *testing.T) *debugServer {
	d := &debugServer{
		t:        t,
		outbound: make(chan DebugMessage, 16),
		done:     make(chan struct{}),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/debug", d.handle)
	d.srv = httptest.NewServer(mux)
	t.Cleanup(func() {
		close(d.done)
		d.srv.Close()
	})
	return d
}

func (d *debugServer) config() Config {
	return Config{URL: d.srv.URL, Insecure: true}
}

func (d *debugServer) handle(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	d.query = r.URL.RawQuery
	d.mu.Unlock()

	ws, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer ws.Close()

	go func() {
		// Drain control frames so close handshakes complete.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-d.done:
			ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		case msg, ok := <-d.outbound:
			if !ok {
				ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(time.Second))
				return
			}
			data, err := json.Marshal(msg)
			require.NoError(d.t, err)
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

func TestDebugStreamDelivers(t *testing.T) {
	d := newDebugServer(t)
	stream := NewDebugStream(d.config())
	stream.SetSeverities(true, true, true, true)

	got := make(chan DebugMessage, 4)
	stream.OnMessage(func(msg DebugMessage) { got <- msg })

	errCh := make(chan error, 1)
	go func() { errCh <- stream.Listen(context.Background()) }()

	d.outbound <- DebugMessage{
		Severity: SeverityInfo,
		Message:  "client connected",
		Data:     json.RawMessage(`{"steam_id":"76561198000000042"}`),
	}

	select {
	case msg := <-got:
		assert.Equal(t, SeverityInfo, msg.Severity)
		assert.Equal(t, "client connected", msg.Message)
		assert.JSONEq(t, `{"steam_id":"76561198000000042"}`, string(msg.Data))
	case <-time.After(2 * time.Second):
		t.Fatal("debug message never arrived")
	}

	d.mu.Lock()
	assert.Equal(t, "trace=true&info=true&warning=true&error=true", d.query)
	d.mu.Unlock()

	close(d.outbound)
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listen did not stop")
	}
}

func TestDebugStreamContextEnds(t *testing.T) {
	d := newDebugServer(t)
	stream := NewDebugStream(d.config())

	got := make(chan DebugMessage, 1)
	stream.OnMessage(func(msg DebugMessage) { got <- msg })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- stream.Listen(ctx) }()

	// Make sure the stream is connected before canceling.
	d.outbound <- DebugMessage{Severity: SeverityInfo, Message: "up"}
	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("debug message never arrived")
	}

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listen did not stop")
	}
}

func TestSetSeveritiesPanicsAfterConnect(t *testing.T) {
	d := newDebugServer(t)
	stream := NewDebugStream(d.config())

	got := make(chan DebugMessage, 1)
	stream.OnMessage(func(msg DebugMessage) { got <- msg })

	errCh := make(chan error, 1)
	go func() { errCh <- stream.Listen(context.Background()) }()

	d.outbound <- DebugMessage{Severity: SeverityInfo, Message: "up"}
	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("debug message never arrived")
	}

	require.Panics(t, func() { stream.SetSeverities(true, true, true, true) })

	close(d.outbound)
	require.NoError(t, <-errCh)
}

func TestForwardToLogger(t *testing.T) {
	d := newDebugServer(t)
	stream := NewDebugStream(d.config())
	stream.SetSeverities(true, true, true, true)

	core, logs := observer.New(zap.DebugLevel)
	stream.ForwardToLogger(zap.New(core))

	errCh := make(chan error, 1)
	go func() { errCh <- stream.Listen(context.Background()) }()

	d.outbound <- DebugMessage{Severity: SeverityError, Message: "gc session lost"}
	d.outbound <- DebugMessage{Severity: SeverityTrace, Message: "raw frame"}

	require.Eventually(t, func() bool { return logs.Len() == 2 },
		2*time.Second, 5*time.Millisecond)

	entries := logs.All()
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.Equal(t, "gc session lost", entries[0].Message)
	assert.Equal(t, zap.DebugLevel, entries[1].Level)
	assert.Equal(t, "raw frame", entries[1].Message)

	close(d.outbound)
	require.NoError(t, <-errCh)
}
