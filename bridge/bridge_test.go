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

	"github.com/gckit/go-csgo/csgo/gc"
)

type rawFrame struct {
	msgType int
	data    []byte
}

type bridgeServer struct {
	t        *testing.T
	srv      *httptest.Server
	upgrader websocket.Upgrader

	inbound  chan envelope
	outbound chan rawFrame
	done     chan struct{}

	mu       sync.Mutex
	gcAuth   string
	infoAuth string
	info     Info
	infoCode int
}

func newBridgeServer(t *testing.T) *bridgeServer {
	b := &bridgeServer{
		t:        t,
		inbound:  make(chan envelope, 16),
		outbound: make(chan rawFrame, 16),
		done:     make(chan struct{}),
		info:     Info{Name: "steam-bridge", Version: "1.0.0"},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gc", b.handleGC)
	mux.HandleFunc("/api/info", b.handleInfo)
	b.srv = httptest.NewServer(mux)
	t.Cleanup(func() {
		close(b.done)
		b.srv.Close()
	})
	return b
}

func (b *bridgeServer) config() Config {
	return Config{URL: b.srv.URL, Insecure: true, PingInterval: time.Hour}
}

func (b *bridgeServer) handleGC(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.gcAuth = r.Header.Get("Authorization")
	b.mu.Unlock()

	ws, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer ws.Close()

	go func() {
		for {
			select {
			case <-b.done:
				ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(time.Second))
				return
			case f, ok := <-b.outbound:
				if !ok {
					ws.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
						time.Now().Add(time.Second))
					return
				}
				if err := ws.WriteMessage(f.msgType, f.data); err != nil {
					return
				}
			}
		}
	}()

	for {
		var env envelope
		if err := ws.ReadJSON(&env); err != nil {
			return
		}
		select {
		case b.inbound <- env:
		case <-b.done:
			return
		}
	}
}

func (b *bridgeServer) handleInfo(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.infoAuth = r.Header.Get("Authorization")
	info := b.info
	code := b.infoCode
	b.mu.Unlock()
	if code != 0 {
		w.WriteHeader(code)
		w.Write([]byte("steam down"))
		return
	}
	json.NewEncoder(w).Encode(info)
}

func (b *bridgeServer) send(env envelope) {
	data, err := json.Marshal(env)
	require.NoError(b.t, err)
	b.outbound <- rawFrame{websocket.TextMessage, data}
}

func (b *bridgeServer) sendRaw(msgType int, data []byte) {
	b.outbound <- rawFrame{msgType, data}
}

// closeClient makes the server side close the websocket cleanly.
func (b *bridgeServer) closeClient() {
	close(b.outbound)
}

func (b *bridgeServer) expectInbound(t *testing.T) envelope {
	t.Helper()
	select {
	case env := <-b.inbound:
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message from client")
		return envelope{}
	}
}

func dialTestConn(t *testing.T, cfg Config, opts ...Option) *Conn {
	t.Helper()
	conn, err := Dial(context.Background(), cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func startRun(t *testing.T, conn *Conn) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- conn.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("run did not stop")
		}
	})
}

func TestDialRequiresURL(t *testing.T) {
	_, err := Dial(context.Background(), Config{})
	require.ErrorIs(t, err, ErrNoURL)
}

func TestConnDeliversPackets(t *testing.T) {
	b := newBridgeServer(t)
	conn := dialTestConn(t, b.config())

	got := make(chan *gc.Packet, 4)
	conn.OnPacket(func(p *gc.Packet) { got <- p })
	startRun(t, conn)

	body := []byte{0x08, 0x01}
	b.send(envelope{Kind: kindGC, GC: &gcFrame{
		AppId:     730,
		MsgType:   gc.MaskProto(gc.EMsgClientWelcome),
		TargetJob: gc.JobIdNone,
		SourceJob: gc.JobIdNone,
		Body:      body,
	}})

	select {
	case p := <-got:
		assert.Equal(t, uint32(730), p.AppId)
		assert.Equal(t, gc.EMsgClientWelcome, p.Type)
		assert.Equal(t, gc.JobIdNone, p.TargetJobId)
		assert.Equal(t, body, p.Body)
	case <-time.After(2 * time.Second):
		t.Fatal("packet never arrived")
	}

	// Unset job ids are normalized, a zero job id does not exist.
	b.send(envelope{Kind: kindGC, GC: &gcFrame{
		MsgType:   gc.MaskProto(gc.EMsgPlayersProfile),
		TargetJob: 55,
	}})
	select {
	case p := <-got:
		assert.Equal(t, uint64(55), p.TargetJobId)
		assert.Equal(t, gc.JobIdNone, p.SourceJobId)
	case <-time.After(2 * time.Second):
		t.Fatal("packet never arrived")
	}
}

func TestConnDropsStructMessages(t *testing.T) {
	b := newBridgeServer(t)
	conn := dialTestConn(t, b.config())

	got := make(chan *gc.Packet, 4)
	conn.OnPacket(func(p *gc.Packet) { got <- p })
	startRun(t, conn)

	// No protobuf flag, the frame is dropped without killing the
	// connection.
	b.send(envelope{Kind: kindGC, GC: &gcFrame{MsgType: uint32(gc.EMsgClientWelcome)}})
	b.send(envelope{Kind: kindGC, GC: &gcFrame{MsgType: gc.MaskProto(gc.EMsgClientWelcome)}})

	select {
	case p := <-got:
		assert.Equal(t, gc.EMsgClientWelcome, p.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("packet never arrived")
	}
	require.Empty(t, got)
}

func TestConnDeliversHostState(t *testing.T) {
	b := newBridgeServer(t)
	conn := dialTestConn(t, b.config())

	got := make(chan gc.HostState, 1)
	conn.OnHostState(func(st gc.HostState) { got <- st })
	startRun(t, conn)

	b.send(envelope{Kind: kindHost, Host: &hostFrame{
		LoggedOn:  true,
		SteamId:   76561198000000042,
		AccountId: 42,
	}})

	select {
	case st := <-got:
		assert.True(t, st.LoggedOn)
		assert.Equal(t, uint64(76561198000000042), st.SteamId)
		assert.Equal(t, uint32(42), st.AccountId)
	case <-time.After(2 * time.Second):
		t.Fatal("host state never arrived")
	}
}

func TestRemoveCallback(t *testing.T) {
	b := newBridgeServer(t)
	conn := dialTestConn(t, b.config())

	got := make(chan gc.HostState, 4)
	id := conn.OnHostState(func(st gc.HostState) { got <- st })
	conn.RemoveCallback(id)
	startRun(t, conn)

	b.send(envelope{Kind: kindHost, Host: &hostFrame{LoggedOn: true}})
	select {
	case <-got:
		t.Fatal("callback ran after removal")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWriteMessage(t *testing.T) {
	b := newBridgeServer(t)
	conn := dialTestConn(t, b.config())

	p := gc.NewPacket(730, gc.EMsgClientHello, []byte{0x08, 0xCA, 0x8A, 0x7A})
	require.NoError(t, conn.WriteMessage(730, p))

	env := b.expectInbound(t)
	require.Equal(t, kindGC, env.Kind)
	require.NotNil(t, env.GC)
	assert.Equal(t, uint32(730), env.GC.AppId)
	assert.Equal(t, gc.MaskProto(gc.EMsgClientHello), env.GC.MsgType)
	assert.Equal(t, gc.JobIdNone, env.GC.SourceJob)
	assert.Equal(t, p.Body, env.GC.Body)
}

func TestPlayGame(t *testing.T) {
	b := newBridgeServer(t)
	conn := dialTestConn(t, b.config())

	require.NoError(t, conn.PlayGame(730))
	env := b.expectInbound(t)
	require.Equal(t, kindPlay, env.Kind)
	require.NotNil(t, env.Play)
	assert.Equal(t, []uint32{730}, env.Play.AppIds)

	require.NoError(t, conn.PlayGame())
	env = b.expectInbound(t)
	require.Equal(t, kindPlay, env.Kind)
	assert.Empty(t, env.Play.AppIds)
}

func TestRunReturnsNilWhenServerCloses(t *testing.T) {
	b := newBridgeServer(t)
	conn := dialTestConn(t, b.config())

	errCh := make(chan error, 1)
	go func() { errCh <- conn.Run(context.Background()) }()

	b.closeClient()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop")
	}
}

func TestRunFailsOnBinaryMessage(t *testing.T) {
	b := newBridgeServer(t)
	conn := dialTestConn(t, b.config())

	errCh := make(chan error, 1)
	go func() { errCh <- conn.Run(context.Background()) }()

	b.sendRaw(websocket.BinaryMessage, []byte{1, 2, 3})
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrInvalidMessageType)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop")
	}
}

func TestRunFailsOnGarbage(t *testing.T) {
	b := newBridgeServer(t)
	conn := dialTestConn(t, b.config())

	errCh := make(chan error, 1)
	go func() { errCh <- conn.Run(context.Background()) }()

	b.sendRaw(websocket.TextMessage, []byte("{"))
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrDecodeFailed)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop")
	}
}

func TestUnknownKindIgnored(t *testing.T) {
	b := newBridgeServer(t)
	conn := dialTestConn(t, b.config())

	got := make(chan gc.HostState, 1)
	conn.OnHostState(func(st gc.HostState) { got <- st })
	startRun(t, conn)

	b.send(envelope{Kind: "lobby"})
	b.send(envelope{Kind: kindHost, Host: &hostFrame{LoggedOn: true}})

	select {
	case st := <-got:
		assert.True(t, st.LoggedOn)
	case <-time.After(2 * time.Second):
		t.Fatal("host state never arrived")
	}
}

func TestAuthHeader(t *testing.T) {
	b := newBridgeServer(t)
	cfg := b.config()
	cfg.Token = "sekrit"
	dialTestConn(t, cfg)

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, "Bearer sekrit", b.gcAuth)
}

func TestInfo(t *testing.T) {
	b := newBridgeServer(t)
	b.mu.Lock()
	b.info = Info{
		Name:      "steam-bridge",
		Version:   "1.2.0",
		LoggedOn:  true,
		SteamId:   76561198000000042,
		AccountId: 42,
	}
	b.mu.Unlock()

	cfg := b.config()
	cfg.Token = "sekrit"
	conn := dialTestConn(t, cfg)

	info, err := conn.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "steam-bridge", info.Name)
	assert.Equal(t, uint64(76561198000000042), info.SteamId)
	assert.True(t, info.LoggedOn)

	b.mu.Lock()
	assert.Equal(t, "Bearer sekrit", b.infoAuth)
	b.mu.Unlock()
}

func TestInfoErrors(t *testing.T) {
	b := newBridgeServer(t)
	conn := dialTestConn(t, b.config())

	b.mu.Lock()
	b.infoCode = http.StatusServiceUnavailable
	b.mu.Unlock()
	_, err := conn.Info(context.Background())
	require.ErrorContains(t, err, "steam down")

	b.mu.Lock()
	b.infoCode = 0
	b.info = Info{}
	b.mu.Unlock()
	_, err = conn.Info(context.Background())
	require.ErrorContains(t, err, "empty `name` field")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CSGO_BRIDGE_URL", "bridge.example.com")
	t.Setenv("CSGO_BRIDGE_TOKEN", "sekrit")
	t.Setenv("CSGO_BRIDGE_INSECURE", "true")
	t.Setenv("CSGO_BRIDGE_PING_INTERVAL", "5s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Config{
		URL:          "bridge.example.com",
		Token:        "sekrit",
		Insecure:     true,
		PingInterval: 5 * time.Second,
	}, cfg)
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("CSGO_BRIDGE_URL", "bridge.example.com")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.PingInterval)
}

func TestTrimURL(t *testing.T) {
	assert.Equal(t, "bridge.example.com", trimURL("https://bridge.example.com/"))
	assert.Equal(t, "bridge.example.com:8080", trimURL("ws://bridge.example.com:8080"))
	assert.Equal(t, "localhost:3000", trimURL("localhost:3000"))
}
