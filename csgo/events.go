package csgo

import (
	"context"

	"github.com/google/uuid"

	"github.com/gckit/go-csgo/csgo/gc"
)

// EventName identifies a type of client event.
type EventName string

// Events emitted by the client. The Data type listed on each event is what
// callbacks receive in Event.Data.
const (
	// EventConnectionStatus fires whenever the GC connection status
	// changes. Data: gc.ConnectionStatus.
	EventConnectionStatus EventName = "connection_status"
	// EventReady fires when a GC session is established. Data: nil.
	EventReady EventName = "ready"
	// EventNotReady fires when the GC session is lost. Data: nil.
	EventNotReady EventName = "notready"
	// EventWelcome fires with the game specific part of the GC welcome.
	// Data: *gc.CStrike15Welcome.
	EventWelcome EventName = "csgo_welcome"

	// EventMatchmakingStats answers RequestMatchmakingStats.
	// Data: *gc.MatchmakingGC2ClientHello.
	EventMatchmakingStats EventName = "matchmaking_stats"
	// EventCurrentLiveGames answers RequestCurrentLiveGames.
	// Data: *gc.MatchList.
	EventCurrentLiveGames EventName = "current_live_games"
	// EventLiveGameForUser answers RequestLiveGameForUser.
	// Data: *gc.MatchList.
	EventLiveGameForUser EventName = "live_game_for_user"
	// EventRecentUserGames answers RequestRecentUserGames.
	// Data: *gc.MatchList.
	EventRecentUserGames EventName = "recent_user_games"
	// EventFullMatchInfo answers RequestFullMatchInfo.
	// Data: *gc.MatchList.
	EventFullMatchInfo EventName = "full_match_info"
	// EventWatchInfo answers RequestWatchInfoFriends.
	// Data: *gc.WatchInfoUsers.
	EventWatchInfo EventName = "watch_info"

	// EventPlayersProfile answers RequestPlayersProfile.
	// Data: *gc.PlayersProfile.
	EventPlayersProfile EventName = "players_profile"
	// EventRankUpdate fires when the GC pushes new skill group standings.
	// Data: *gc.ClientGCRankUpdate.
	EventRankUpdate EventName = "rank_update"
	// EventItemPreview answers RequestItemPreview. Data is nil when the GC
	// did not find the item. Data: *gc.EconItemPreview.
	EventItemPreview EventName = "item_preview"
)

// Event is delivered to callbacks registered with On, Once or WaitEvent.
type Event struct {
	Name EventName
	Data any
}

// EventCallback runs on the client dispatch goroutine and must not block.
type EventCallback func(e Event)

// PacketCallback receives every packet of one GC message type. decoded is
// the parsed form for message types the gc package has a codec for and nil
// otherwise. Callbacks run on the client dispatch goroutine.
type PacketCallback func(p *gc.Packet, decoded gc.Message)

// CallbackId identifies a registered callback.
type CallbackId uuid.UUID

// On registers cb for every occurrence of the named event.
func (c *Client) On(name EventName, cb EventCallback) CallbackId {
	id := CallbackId(uuid.New())
	c.addListener(name, id, cb)
	return id
}

// Once registers cb for the next occurrence of the named event only.
func (c *Client) Once(name EventName, cb EventCallback) CallbackId {
	id := CallbackId(uuid.New())
	c.addListener(name, id, func(e Event) {
		c.RemoveCallback(id)
		cb(e)
	})
	return id
}

func (c *Client) addListener(name EventName, id CallbackId, cb EventCallback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listeners[name] == nil {
		c.listeners[name] = make(map[CallbackId]EventCallback)
	}
	c.listeners[name][id] = cb
	c.byId[id] = name
}

// OnPacket registers cb for every inbound packet of the given message type,
// including types the client handles itself.
func (c *Client) OnPacket(t gc.EMsg, cb PacketCallback) CallbackId {
	id := CallbackId(uuid.New())
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.packetListeners[t] == nil {
		c.packetListeners[t] = make(map[CallbackId]PacketCallback)
	}
	c.packetListeners[t][id] = cb
	c.packetById[id] = t
	return id
}

// RemoveCallback unregisters a callback returned by On, Once or OnPacket.
func (c *Client) RemoveCallback(id CallbackId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name, ok := c.byId[id]; ok {
		delete(c.byId, id)
		delete(c.listeners[name], id)
		return
	}
	if t, ok := c.packetById[id]; ok {
		delete(c.packetById, id)
		delete(c.packetListeners[t], id)
	}
}

// WaitEvent blocks until the named event fires or ctx is done. It must not
// be called from an event callback, those run on the dispatch goroutine the
// event would have to come from.
func (c *Client) WaitEvent(ctx context.Context, name EventName) (Event, error) {
	ch := make(chan Event, 1)
	id := c.Once(name, func(e Event) {
		ch <- e
	})
	defer c.RemoveCallback(id)
	select {
	case e := <-ch:
		return e, nil
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

func (c *Client) emit(name EventName, data any) {
	c.mu.RLock()
	cbs := make([]EventCallback, 0, len(c.listeners[name]))
	for _, cb := range c.listeners[name] {
		cbs = append(cbs, cb)
	}
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(Event{Name: name, Data: data})
	}
}
