package csgo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gckit/go-csgo/csgo/gc"
	"github.com/gckit/go-csgo/csgo/socache"
)

// AppId is the Steam app id of CS:GO.
const AppId uint32 = 730

// helloVersion is the client version announced to the GC.
const helloVersion uint32 = 2000202

// Transport carries GC traffic over an existing Steam connection.
//
// WriteMessage sends one GC packet for the given app. PlayGame announces
// the set of apps the client is playing, an empty call clears it. The
// bundled bridge package implements Transport, as can any adapter that
// sits on a full Steam client library.
type Transport interface {
	WriteMessage(appId uint32, p *gc.Packet) error
	PlayGame(appIds ...uint32) error
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards all output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithLauncher selects the launcher variant announced to the GC. Perfect
// World accounts need LauncherPerfectWorld to establish a session.
func WithLauncher(launcher gc.LauncherType) Option {
	return func(c *Client) { c.launcher = launcher }
}

// WithSessionStore persists session state across runs, letting a new hello
// resume with known shared object cache versions.
func WithSessionStore(store *SessionStore) Option {
	return func(c *Client) { c.store = store }
}

// WithAppId overrides the app id the client plays and filters packets by.
func WithAppId(appId uint32) Option {
	return func(c *Client) { c.appId = appId }
}

// WithHelloVersion overrides the client version announced to the GC.
func WithHelloVersion(version uint32) Option {
	return func(c *Client) { c.helloVersion = version }
}

// WithVerboseDebug includes the decoded payload in the debug log entry of
// every sent and received message.
func WithVerboseDebug() Option {
	return func(c *Client) { c.verbose = true }
}

type dispatchItem struct {
	packet *gc.Packet
	host   *gc.HostState
}

// Client is a CS:GO Game Coordinator client.
//
// The client does not talk to Steam itself. A Transport delivers outbound
// packets, and the owner of the Steam connection feeds inbound GC packets
// to HandlePacket and Steam session changes to HandleHostState. All events
// and callbacks run on a single dispatch goroutine, Close releases it.
type Client struct {
	transport    Transport
	log          *zap.Logger
	appId        uint32
	launcher     gc.LauncherType
	helloVersion uint32
	store        *SessionStore
	verbose      bool

	// SOCache mirrors the shared object caches of the GC session, most
	// importantly the account inventory. It is cleared and rebuilt every
	// time a session is established.
	SOCache *socache.Cache

	mu              sync.RWMutex
	host            gc.HostState
	hostChanged     chan struct{}
	status          gc.ConnectionStatus
	ready           bool
	launched        bool
	jobId           uint64
	jobs            map[uint64]chan *gc.Packet
	listeners       map[EventName]map[CallbackId]EventCallback
	byId            map[CallbackId]EventName
	packetListeners map[gc.EMsg]map[CallbackId]PacketCallback
	packetById      map[CallbackId]gc.EMsg
	knockCancel     context.CancelFunc
	knockDone       chan struct{}

	in        chan dispatchItem
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	// knockWait returns how long to wait for a ready event after the nth
	// hello.
	knockWait func(n int) time.Duration
}

// New returns a client that reaches the Game Coordinator through the given
// transport. Call Launch to open a GC session and Close to release the
// dispatch goroutine.
func New(transport Transport, opts ...Option) *Client {
	c := &Client{
		transport:       transport,
		log:             zap.NewNop(),
		appId:           AppId,
		helloVersion:    helloVersion,
		status:          gc.StatusNoSession,
		hostChanged:     make(chan struct{}),
		jobs:            make(map[uint64]chan *gc.Packet),
		listeners:       make(map[EventName]map[CallbackId]EventCallback),
		byId:            make(map[CallbackId]EventName),
		packetListeners: make(map[gc.EMsg]map[CallbackId]PacketCallback),
		packetById:      make(map[CallbackId]gc.EMsg),
		in:              make(chan dispatchItem, 64),
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
		knockWait:       defaultKnockWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.SOCache = socache.New(socache.WithLogger(c.log))
	c.registerMatchEvents()
	c.registerProfileEvents()
	c.registerInspectEvents()
	go c.run()
	return c
}

// HandlePacket queues an inbound GC packet for dispatch. Transports call
// this for every GC message addressed to the client app. It returns once
// the packet is queued, not processed.
func (c *Client) HandlePacket(p *gc.Packet) {
	if p == nil {
		return
	}
	select {
	case c.in <- dispatchItem{packet: p}:
	case <-c.stop:
	}
}

// HandleHostState queues a Steam session snapshot for dispatch. The owner
// of the Steam connection calls this on logon, logoff and whenever another
// session of the account starts or stops playing.
func (c *Client) HandleHostState(st gc.HostState) {
	select {
	case c.in <- dispatchItem{host: &st}:
	case <-c.stop:
	}
}

func (c *Client) run() {
	defer close(c.done)
	for {
		select {
		case <-c.stop:
			return
		case item := <-c.in:
			if item.packet != nil {
				c.processPacket(item.packet)
			} else if item.host != nil {
				c.processHostState(*item.host)
			}
		}
	}
}

func (c *Client) processPacket(p *gc.Packet) {
	if p.AppId != 0 && p.AppId != c.appId {
		c.log.Debug("ignoring packet for other app", zap.Uint32("app_id", p.AppId))
		return
	}
	msg, known := gc.NewMessage(p.Type)
	if known {
		if err := msg.Unmarshal(p.Body); err != nil {
			c.log.Error("failed to parse GC message",
				zap.Stringer("type", p.Type), zap.Error(err))
			return
		}
	}
	fields := []zap.Field{zap.Stringer("type", p.Type), zap.Int("size", len(p.Body))}
	if c.verbose && msg != nil {
		fields = append(fields, zap.Any("message", msg))
	}
	c.log.Debug("received GC message", fields...)

	switch p.Type {
	case gc.EMsgClientWelcome:
		c.handleWelcome(msg.(*gc.ClientWelcome))
	case gc.EMsgClientConnectionStatus:
		c.handleConnectionStatus(msg.(*gc.ConnectionStatusUpdate))
	case gc.EMsgSOCreate, gc.EMsgSOUpdate, gc.EMsgSODestroy,
		gc.EMsgSOCacheSubscribed, gc.EMsgSOCacheUnsubscribed, gc.EMsgSOUpdateMultiple:
		c.SOCache.HandleMessage(p.Type, msg)
	}

	c.mu.RLock()
	cbs := make([]PacketCallback, 0, len(c.packetListeners[p.Type]))
	for _, cb := range c.packetListeners[p.Type] {
		cbs = append(cbs, cb)
	}
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(p, msg)
	}

	if p.TargetJobId != gc.JobIdNone {
		c.mu.RLock()
		ch := c.jobs[p.TargetJobId]
		c.mu.RUnlock()
		if ch != nil {
			select {
			case ch <- p:
			default:
			}
		}
	}
}

func (c *Client) handleWelcome(w *gc.ClientWelcome) {
	c.SOCache.HandleWelcome(w)
	c.saveSession()
	c.setStatus(gc.StatusHaveSession)

	game := new(gc.CStrike15Welcome)
	if err := game.Unmarshal(w.GameData); err != nil {
		c.log.Error("failed to parse welcome game data", zap.Error(err))
		return
	}
	c.emit(EventWelcome, game)
}

func (c *Client) handleConnectionStatus(m *gc.ConnectionStatusUpdate) {
	if m.Status == gc.StatusNoSessionInLogonQueue {
		c.log.Debug("waiting in GC logon queue",
			zap.Int32("position", m.QueuePosition),
			zap.Int32("size", m.QueueSize),
			zap.Int32("wait_seconds", m.WaitSeconds))
	}
	c.setStatus(m.Status)
}

func (c *Client) setStatus(s gc.ConnectionStatus) {
	c.mu.Lock()
	prev := c.status
	c.status = s
	wasReady := c.ready
	c.ready = s == gc.StatusHaveSession
	nowReady := c.ready
	c.mu.Unlock()

	if s != prev {
		c.log.Info("GC connection status changed",
			zap.Stringer("from", prev), zap.Stringer("to", s))
		c.emit(EventConnectionStatus, s)
	}
	if nowReady && !wasReady {
		c.emit(EventReady, nil)
	}
	if !nowReady && wasReady {
		c.emit(EventNotReady, nil)
	}
}

func (c *Client) processHostState(st gc.HostState) {
	c.mu.Lock()
	prev := c.host
	c.host = st
	close(c.hostChanged)
	c.hostChanged = make(chan struct{})
	c.mu.Unlock()

	if prev.LoggedOn && !st.LoggedOn {
		c.log.Info("steam session lost, dropping GC session")
		c.stopKnocking()
		c.mu.Lock()
		c.launched = false
		c.mu.Unlock()
		c.setStatus(gc.StatusNoSession)
		return
	}
	if st.PlayingApp != 0 && st.PlayingApp != c.appId && c.Ready() {
		c.log.Info("account is playing elsewhere, dropping GC session",
			zap.Uint32("app_id", st.PlayingApp))
		c.setStatus(gc.StatusNoSession)
	}
}

// Ready reports whether a GC session is established.
func (c *Client) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// ConnectionStatus returns the last reported GC connection status.
func (c *Client) ConnectionStatus() gc.ConnectionStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// HostState returns the last Steam session snapshot.
func (c *Client) HostState() gc.HostState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.host
}

// AccountId returns the account id of the Steam session, zero before logon.
func (c *Client) AccountId() uint32 {
	return c.HostState().AccountId
}

// SteamId returns the steam id of the Steam session, zero before logon.
func (c *Client) SteamId() uint64 {
	return c.HostState().SteamId
}

// Launch waits for the Steam session to be logged on, announces the game
// as playing and starts knocking on the GC until a session is established.
// It returns once the knock loop runs, the ready event reports the session.
// Calling Launch on a launched client is a no-op.
//
// Launch blocks on dispatch progress and must not be called from an event
// callback.
func (c *Client) Launch(ctx context.Context) error {
	c.mu.Lock()
	if c.launched {
		c.mu.Unlock()
		return nil
	}
	c.launched = true
	c.mu.Unlock()

	if err := c.waitLoggedOn(ctx); err != nil {
		c.setLaunched(false)
		return err
	}
	if err := c.transport.PlayGame(c.appId); err != nil {
		c.setLaunched(false)
		return fmt.Errorf("failed to announce game: %w", err)
	}

	kctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.mu.Lock()
	c.knockCancel = cancel
	c.knockDone = done
	c.mu.Unlock()
	go func() {
		defer close(done)
		c.knock(kctx)
	}()
	c.log.Info("launched", zap.Uint32("app_id", c.appId))
	return nil
}

// Exit stops knocking, announces that the game is no longer played and
// drops the session state. The client can be launched again afterwards.
func (c *Client) Exit() error {
	c.stopKnocking()
	c.setLaunched(false)
	err := c.transport.PlayGame()
	c.setStatus(gc.StatusNoSession)
	return err
}

// Close stops the knock loop and the dispatch goroutine. The client must
// not be used afterwards.
func (c *Client) Close() error {
	c.stopKnocking()
	c.closeOnce.Do(func() {
		close(c.stop)
	})
	<-c.done
	return nil
}

func (c *Client) setLaunched(v bool) {
	c.mu.Lock()
	c.launched = v
	c.mu.Unlock()
}

func (c *Client) waitLoggedOn(ctx context.Context) error {
	for {
		c.mu.RLock()
		loggedOn := c.host.LoggedOn
		changed := c.hostChanged
		c.mu.RUnlock()
		if loggedOn {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

func (c *Client) stopKnocking() {
	c.mu.Lock()
	cancel := c.knockCancel
	done := c.knockDone
	c.knockCancel = nil
	c.knockDone = nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}
