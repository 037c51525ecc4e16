package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gckit/go-csgo/csgo"
	"github.com/gckit/go-csgo/csgo/gc"
)

var (
	ErrNoURL              = errors.New("no bridge URL configured")
	ErrInvalidMessageType = errors.New("invalid message type")
	ErrDecodeFailed       = errors.New("failed to decode bridge message")
	ErrClosed             = errors.New("connection closed")
)

const writeTimeout = 10 * time.Second

// Message kinds of the bridge envelope.
const (
	kindGC   = "gc"
	kindHost = "host"
	kindPlay = "play"
)

type envelope struct {
	Kind string     `json:"kind"`
	GC   *gcFrame   `json:"gc,omitempty"`
	Host *hostFrame `json:"host,omitempty"`
	Play *playFrame `json:"play,omitempty"`
}

// gcFrame carries one GC packet. MsgType is the raw wire type including
// the protobuf flag, the job ids ride as strings to survive JSON number
// precision.
type gcFrame struct {
	AppId     uint32 `json:"app_id"`
	MsgType   uint32 `json:"msg_type"`
	TargetJob uint64 `json:"target_job,string"`
	SourceJob uint64 `json:"source_job,string"`
	Body      []byte `json:"body,omitempty"`
}

type hostFrame struct {
	LoggedOn   bool   `json:"logged_on"`
	SteamId    uint64 `json:"steam_id,string"`
	AccountId  uint32 `json:"account_id"`
	PlayingApp uint32 `json:"playing_app,omitempty"`
}

type playFrame struct {
	AppIds []uint32 `json:"app_ids"`
}

// Option configures a Conn.
type Option func(*Conn)

// WithLogger sets the logger. The default discards all output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Conn) { c.log = log }
}

// Conn is a websocket connection to a bridge service. The bridge owns the
// Steam session and relays GC packets, host state changes and play
// announcements between Steam and this process.
//
// Conn implements the csgo.Transport interface.
type Conn struct {
	cfg Config
	log *zap.Logger
	url string
	tls bool
	ws  *websocket.Conn

	writeMu sync.Mutex

	mu        sync.RWMutex
	packetCbs map[csgo.CallbackId]func(*gc.Packet)
	hostCbs   map[csgo.CallbackId]func(gc.HostState)
}

// Dial connects to the /api/gc endpoint of the bridge. The returned Conn
// does not read anything until Run is called.
func Dial(ctx context.Context, cfg Config, opts ...Option) (*Conn, error) {
	if cfg.URL == "" {
		return nil, ErrNoURL
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 30 * time.Second
	}
	c := &Conn{
		cfg:       cfg,
		log:       zap.NewNop(),
		url:       trimURL(cfg.URL),
		packetCbs: make(map[csgo.CallbackId]func(*gc.Packet)),
		hostCbs:   make(map[csgo.CallbackId]func(gc.HostState)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tls = !cfg.Insecure && isTLS(c.url)

	ws, _, err := websocket.DefaultDialer.DialContext(ctx,
		baseURL("ws", c.tls, "%s/api/gc", c.url), c.header())
	if err != nil {
		return nil, err
	}
	c.ws = ws
	return c, nil
}

func (c *Conn) header() http.Header {
	if c.cfg.Token == "" {
		return nil
	}
	header := make(http.Header)
	header.Set("Authorization", "Bearer "+c.cfg.Token)
	return header
}

// OnPacket registers a callback for inbound GC packets. Callbacks run on
// the read loop, hand the packet off before doing slow work.
func (c *Conn) OnPacket(cb func(*gc.Packet)) csgo.CallbackId {
	id := csgo.CallbackId(uuid.New())
	c.mu.Lock()
	defer c.mu.Unlock()
	c.packetCbs[id] = cb
	return id
}

// OnHostState registers a callback for Steam session snapshots sent by
// the bridge.
func (c *Conn) OnHostState(cb func(gc.HostState)) csgo.CallbackId {
	id := csgo.CallbackId(uuid.New())
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hostCbs[id] = cb
	return id
}

// RemoveCallback deletes the callback with the specified id.
func (c *Conn) RemoveCallback(id csgo.CallbackId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.packetCbs, id)
	delete(c.hostCbs, id)
}

// Run reads from the bridge until the context ends or the connection
// breaks. A close initiated by either side returns nil.
func (c *Conn) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return c.Close()
	})
	g.Go(func() error {
		return c.readPump(ctx)
	})
	g.Go(func() error {
		return c.pingLoop(ctx)
	})
	err := g.Wait()
	if errors.Is(err, ErrClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *Conn) readPump(ctx context.Context) error {
	for {
		msgType, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived, websocket.CloseGoingAway) {
				return ErrClosed
			}
			if ctx.Err() != nil {
				return ErrClosed
			}
			return err
		}
		if msgType != websocket.TextMessage {
			return ErrInvalidMessageType
		}

		var env envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			return ErrDecodeFailed
		}
		c.dispatch(env)
	}
}

func (c *Conn) pingLoop(ctx context.Context) error {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			if err != nil {
				if errors.Is(err, websocket.ErrCloseSent) || ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

func (c *Conn) dispatch(env envelope) {
	switch env.Kind {
	case kindGC:
		if env.GC == nil {
			c.log.Debug("gc envelope without frame")
			return
		}
		typ, proto := gc.StripProto(env.GC.MsgType)
		if !proto {
			c.log.Debug("dropping struct based GC message",
				zap.Uint32("raw_type", env.GC.MsgType))
			return
		}
		p := &gc.Packet{
			AppId:       env.GC.AppId,
			Type:        typ,
			TargetJobId: env.GC.TargetJob,
			SourceJobId: env.GC.SourceJob,
			Body:        env.GC.Body,
		}
		// A bridge that never deals in jobs may leave the ids unset.
		if p.TargetJobId == 0 {
			p.TargetJobId = gc.JobIdNone
		}
		if p.SourceJobId == 0 {
			p.SourceJobId = gc.JobIdNone
		}
		c.mu.RLock()
		cbs := make([]func(*gc.Packet), 0, len(c.packetCbs))
		for _, cb := range c.packetCbs {
			cbs = append(cbs, cb)
		}
		c.mu.RUnlock()
		for _, cb := range cbs {
			cb(p)
		}
	case kindHost:
		if env.Host == nil {
			c.log.Debug("host envelope without frame")
			return
		}
		st := gc.HostState{
			LoggedOn:   env.Host.LoggedOn,
			SteamId:    env.Host.SteamId,
			AccountId:  env.Host.AccountId,
			PlayingApp: env.Host.PlayingApp,
		}
		c.mu.RLock()
		cbs := make([]func(gc.HostState), 0, len(c.hostCbs))
		for _, cb := range c.hostCbs {
			cbs = append(cbs, cb)
		}
		c.mu.RUnlock()
		for _, cb := range cbs {
			cb(st)
		}
	default:
		c.log.Debug("unknown bridge message kind", zap.String("kind", env.Kind))
	}
}

// WriteMessage sends one GC packet to the bridge.
func (c *Conn) WriteMessage(appId uint32, p *gc.Packet) error {
	return c.writeEnvelope(envelope{
		Kind: kindGC,
		GC: &gcFrame{
			AppId:     appId,
			MsgType:   gc.MaskProto(p.Type),
			TargetJob: p.TargetJobId,
			SourceJob: p.SourceJobId,
			Body:      p.Body,
		},
	})
}

// PlayGame tells the bridge which apps the Steam session plays. No
// arguments clears the list.
func (c *Conn) PlayGame(appIds ...uint32) error {
	return c.writeEnvelope(envelope{
		Kind: kindPlay,
		Play: &playFrame{AppIds: appIds},
	})
}

func (c *Conn) writeEnvelope(env envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// Close closes the underlying websocket connection.
func (c *Conn) Close() error {
	c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(5*time.Second))
	return c.ws.Close()
}
