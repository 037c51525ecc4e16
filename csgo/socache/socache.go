// Package socache mirrors the shared object caches the Game Coordinator
// subscribes a GC session to, most importantly the account inventory, the
// game account state and the public persona data.
//
// The client feeds every shared object message into the cache. The cache
// keeps a local copy of the subscribed objects up to date and emits change
// events along the way. Object types without a codec in the gc package are
// kept raw when they are singletons and skipped otherwise, since their key
// cannot be read.
package socache

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gckit/go-csgo/csgo/gc"
)

type listenerKey struct {
	op  Op
	typ gc.SOType
}

type subscription struct {
	version uint64
	types   map[gc.SOType]struct{}
}

// Cache is a local mirror of the shared object caches of one GC session.
// All methods are safe for concurrent use.
type Cache struct {
	log *zap.Logger

	mu        sync.RWMutex
	items     map[gc.SOType]map[uint64]*Entry
	singles   map[gc.SOType]*Entry
	subs      map[gc.SOIDOwner]*subscription
	listeners map[listenerKey]map[CallbackId]EventCallback
	byId      map[CallbackId]listenerKey
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger. The default discards all output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Cache) { c.log = log }
}

// New returns an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		log:       zap.NewNop(),
		items:     make(map[gc.SOType]map[uint64]*Entry),
		singles:   make(map[gc.SOType]*Entry),
		subs:      make(map[gc.SOIDOwner]*subscription),
		listeners: make(map[listenerKey]map[CallbackId]EventCallback),
		byId:      make(map[CallbackId]listenerKey),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func supported(t gc.SOType) bool {
	switch t {
	case gc.SOTypeEconItem, gc.SOTypeGameAccountClient, gc.SOTypePersonaDataPublic, gc.SOTypeItemEventTicket:
		return true
	}
	return false
}

// keyed reports whether objects of this type carry their own key. All other
// supported types hold a single object per cache.
func keyed(t gc.SOType) bool { return t == gc.SOTypeEconItem }

func decodePayload(t gc.SOType, data []byte) (gc.Message, error) {
	switch t {
	case gc.SOTypeEconItem:
		item := new(gc.EconItem)
		return item, item.Unmarshal(data)
	case gc.SOTypeGameAccountClient:
		acc := new(gc.GameAccountClient)
		return acc, acc.Unmarshal(data)
	case gc.SOTypePersonaDataPublic:
		p := new(gc.PersonaDataPublic)
		return p, p.Unmarshal(data)
	}
	return nil, nil
}

func keyOf(m gc.Message) uint64 {
	if item, ok := m.(*gc.EconItem); ok {
		return item.Id
	}
	return 0
}

func ownerOf(soid gc.SOIDOwner, legacy uint64) gc.SOIDOwner {
	if !soid.IsZero() {
		return soid
	}
	return gc.SOIDOwner{Type: gc.SOIDTypeSteamId, Id: legacy}
}

// HandleMessage applies one shared object message to the cache. The client
// calls this for every SO message it receives, on its dispatch goroutine.
func (c *Cache) HandleMessage(t gc.EMsg, m gc.Message) {
	var events []Event
	switch msg := m.(type) {
	case *gc.SOSingleObject:
		c.mu.Lock()
		c.bumpVersionLocked(ownerOf(msg.OwnerSOID, msg.Owner), msg.Version)
		switch t {
		case gc.EMsgSOCreate:
			events = c.createLocked(msg.TypeId, msg.ObjectData, events)
		case gc.EMsgSOUpdate:
			events = c.updateLocked(msg.TypeId, msg.ObjectData, events)
		case gc.EMsgSODestroy:
			events = c.destroyLocked(msg.TypeId, msg.ObjectData, events)
		}
		c.mu.Unlock()
	case *gc.SOMultipleObjects:
		c.mu.Lock()
		c.bumpVersionLocked(ownerOf(msg.OwnerSOID, msg.Owner), msg.Version)
		for _, obj := range msg.Added {
			events = c.createLocked(obj.TypeId, obj.ObjectData, events)
		}
		for _, obj := range msg.Modified {
			events = c.updateLocked(obj.TypeId, obj.ObjectData, events)
		}
		for _, obj := range msg.Removed {
			events = c.destroyLocked(obj.TypeId, obj.ObjectData, events)
		}
		c.mu.Unlock()
	case *gc.SOCacheSubscribed:
		c.mu.Lock()
		events = c.subscribeLocked(msg, events)
		c.mu.Unlock()
	case *gc.SOCacheUnsubscribed:
		c.mu.Lock()
		events = c.unsubscribeLocked(ownerOf(msg.OwnerSOID, msg.Owner), events)
		c.mu.Unlock()
	}
	c.emit(events)
}

// HandleWelcome rebuilds the cache from a welcome message. The contents of
// the previous session are dropped without events, out of date caches are
// ingested as fresh subscriptions and up to date caches keep their version
// for the next hello.
func (c *Cache) HandleWelcome(w *gc.ClientWelcome) {
	var events []Event
	c.mu.Lock()
	c.resetLocked()
	for i := range w.OutofdateCaches {
		events = c.subscribeLocked(&w.OutofdateCaches[i], events)
	}
	for _, have := range w.UptodateCaches {
		sub := c.subs[have.Owner]
		if sub == nil {
			sub = &subscription{types: make(map[gc.SOType]struct{})}
			c.subs[have.Owner] = sub
		}
		sub.version = have.Version
	}
	c.mu.Unlock()
	c.emit(events)
}

// Reset drops all cached objects and subscriptions without emitting events.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
}

func (c *Cache) resetLocked() {
	c.items = make(map[gc.SOType]map[uint64]*Entry)
	c.singles = make(map[gc.SOType]*Entry)
	c.subs = make(map[gc.SOIDOwner]*subscription)
}

func (c *Cache) bumpVersionLocked(owner gc.SOIDOwner, version uint64) {
	if version == 0 {
		return
	}
	if sub := c.subs[owner]; sub != nil {
		sub.version = version
	}
}

func (c *Cache) createLocked(t gc.SOType, data []byte, events []Event) []Event {
	if !supported(t) {
		c.log.Debug("ignoring unsupported shared object type", zap.Stringer("type", t))
		return events
	}
	obj, err := decodePayload(t, data)
	if err != nil {
		c.log.Error("failed to parse shared object", zap.Stringer("type", t), zap.Error(err))
		return events
	}
	entry := &Entry{Type: t, Data: data, Object: obj}
	if keyed(t) {
		entry.Key = keyOf(obj)
		bucket := c.items[t]
		if bucket == nil {
			bucket = make(map[uint64]*Entry)
			c.items[t] = bucket
		}
		if existing, ok := bucket[entry.Key]; ok {
			existing.Data, existing.Object = data, obj
			return append(events, Event{Op: OpNew, Type: t, Entry: existing})
		}
		bucket[entry.Key] = entry
	} else {
		if existing, ok := c.singles[t]; ok {
			existing.Data, existing.Object = data, obj
			return append(events, Event{Op: OpNew, Type: t, Entry: existing})
		}
		c.singles[t] = entry
	}
	return append(events, Event{Op: OpNew, Type: t, Entry: entry})
}

func (c *Cache) updateLocked(t gc.SOType, data []byte, events []Event) []Event {
	if !supported(t) {
		c.log.Debug("ignoring unsupported shared object type", zap.Stringer("type", t))
		return events
	}
	obj, err := decodePayload(t, data)
	if err != nil {
		c.log.Error("failed to parse shared object", zap.Stringer("type", t), zap.Error(err))
		return events
	}
	var entry *Entry
	if keyed(t) {
		entry = c.items[t][keyOf(obj)]
	} else {
		entry = c.singles[t]
	}
	if entry == nil {
		c.log.Warn("update for object not in cache", zap.Stringer("type", t))
		return events
	}
	entry.Data, entry.Object = data, obj
	return append(events, Event{Op: OpUpdated, Type: t, Entry: entry})
}

func (c *Cache) destroyLocked(t gc.SOType, data []byte, events []Event) []Event {
	if !supported(t) {
		c.log.Debug("ignoring unsupported shared object type", zap.Stringer("type", t))
		return events
	}
	obj, err := decodePayload(t, data)
	if err != nil {
		c.log.Error("failed to parse shared object", zap.Stringer("type", t), zap.Error(err))
		return events
	}
	var entry *Entry
	if keyed(t) {
		key := keyOf(obj)
		entry = c.items[t][key]
		if entry != nil {
			delete(c.items[t], key)
		}
	} else {
		entry = c.singles[t]
		if entry != nil {
			delete(c.singles, t)
		}
	}
	if entry == nil {
		c.log.Warn("destroy for object not in cache", zap.Stringer("type", t))
		return events
	}
	return append(events, Event{Op: OpRemoved, Type: t, Entry: entry})
}

func (c *Cache) subscribeLocked(msg *gc.SOCacheSubscribed, events []Event) []Event {
	owner := ownerOf(msg.OwnerSOID, msg.Owner)
	sub := c.subs[owner]
	if sub == nil {
		sub = &subscription{types: make(map[gc.SOType]struct{})}
		c.subs[owner] = sub
	}
	sub.version = msg.Version
	for _, bundle := range msg.Objects {
		if !supported(bundle.TypeId) {
			c.log.Debug("ignoring unsupported shared object type", zap.Stringer("type", bundle.TypeId))
			continue
		}
		sub.types[bundle.TypeId] = struct{}{}
		for _, data := range bundle.ObjectData {
			events = c.createLocked(bundle.TypeId, data, events)
		}
	}
	return events
}

func (c *Cache) unsubscribeLocked(owner gc.SOIDOwner, events []Event) []Event {
	sub := c.subs[owner]
	if sub == nil {
		return events
	}
	delete(c.subs, owner)
	for t := range sub.types {
		if keyed(t) {
			for _, entry := range c.items[t] {
				events = append(events, Event{Op: OpRemoved, Type: t, Entry: entry})
			}
			delete(c.items, t)
		} else if entry, ok := c.singles[t]; ok {
			events = append(events, Event{Op: OpRemoved, Type: t, Entry: entry})
			delete(c.singles, t)
		}
	}
	return events
}

// Get returns the entry with the given key for a keyed object type.
func (c *Cache) Get(t gc.SOType, key uint64) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.items[t][key]
	return entry, ok
}

// GetOne returns the entry of a singleton object type.
func (c *Cache) GetOne(t gc.SOType) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.singles[t]
	return entry, ok
}

// GetAll returns all entries of a type, ordered by key.
func (c *Cache) GetAll(t gc.SOType) []*Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !keyed(t) {
		if entry, ok := c.singles[t]; ok {
			return []*Entry{entry}
		}
		return nil
	}
	entries := make([]*Entry, 0, len(c.items[t]))
	for _, entry := range c.items[t] {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// Versions lists the known subscription versions, ordered by owner. The
// client sends them with the next hello so the GC can skip caches that did
// not change.
func (c *Cache) Versions() []gc.SOCacheHaveVersion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	versions := make([]gc.SOCacheHaveVersion, 0, len(c.subs))
	for owner, sub := range c.subs {
		versions = append(versions, gc.SOCacheHaveVersion{Owner: owner, Version: sub.version})
	}
	sort.Slice(versions, func(i, j int) bool {
		if versions[i].Owner.Type != versions[j].Owner.Type {
			return versions[i].Owner.Type < versions[j].Owner.Type
		}
		return versions[i].Owner.Id < versions[j].Owner.Id
	})
	return versions
}

// On registers a callback for one change kind on one object type.
func (c *Cache) On(op Op, t gc.SOType, cb EventCallback) CallbackId {
	key := listenerKey{op: op, typ: t}
	id := CallbackId(uuid.New())
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listeners[key] == nil {
		c.listeners[key] = make(map[CallbackId]EventCallback)
	}
	c.listeners[key][id] = cb
	c.byId[id] = key
	return id
}

// RemoveCallback unregisters a callback returned by On.
func (c *Cache) RemoveCallback(id CallbackId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key, ok := c.byId[id]
	if !ok {
		return
	}
	delete(c.byId, id)
	delete(c.listeners[key], id)
}

func (c *Cache) emit(events []Event) {
	for _, event := range events {
		key := listenerKey{op: event.Op, typ: event.Type}
		c.mu.RLock()
		cbs := make([]EventCallback, 0, len(c.listeners[key]))
		for _, cb := range c.listeners[key] {
			cbs = append(cbs, cb)
		}
		c.mu.RUnlock()
		for _, cb := range cbs {
			cb(event)
		}
	}
}
