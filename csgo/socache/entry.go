package socache

import (
	"github.com/google/uuid"

	"github.com/gckit/go-csgo/csgo/gc"
)

// Op names the kind of change a cache event reports.
type Op string

const (
	OpNew     Op = "new"
	OpUpdated Op = "updated"
	OpRemoved Op = "removed"
)

// CallbackId identifies a registered event callback.
type CallbackId uuid.UUID

// Entry is one shared object held in the cache. The pointer stays the same
// across updates, so callers can hold on to it and observe changes.
//
// Data is the raw object payload. Object is the decoded form for types this
// module has a codec for and nil otherwise. Entries must be treated as read
// only.
type Entry struct {
	Type   gc.SOType
	Key    uint64
	Data   []byte
	Object gc.Message
}

// EconItem returns the decoded item for entries of type SOTypeEconItem.
func (e *Entry) EconItem() (*gc.EconItem, bool) {
	item, ok := e.Object.(*gc.EconItem)
	return item, ok
}

// GameAccount returns the decoded account singleton for entries of type
// SOTypeGameAccountClient.
func (e *Entry) GameAccount() (*gc.GameAccountClient, bool) {
	acc, ok := e.Object.(*gc.GameAccountClient)
	return acc, ok
}

// PersonaData returns the decoded persona singleton for entries of type
// SOTypePersonaDataPublic.
func (e *Entry) PersonaData() (*gc.PersonaDataPublic, bool) {
	p, ok := e.Object.(*gc.PersonaDataPublic)
	return p, ok
}

// Event describes one cache change.
type Event struct {
	Op    Op
	Type  gc.SOType
	Entry *Entry
}

// EventCallback is called for cache changes the callback was registered
// for. Callbacks run on the client dispatch goroutine and must not block.
type EventCallback func(e Event)
