package csgo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Session is the state persisted between runs for one account. The cache
// versions let the next hello tell the GC which shared object caches are
// already known, sparing a full resend.
type Session struct {
	AccountId     uint32         `json:"account_id"`
	CacheVersions []CacheVersion `json:"cache_versions,omitempty"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// CacheVersion is the stored version of one shared object cache.
type CacheVersion struct {
	OwnerType int32  `json:"owner_type"`
	OwnerId   uint64 `json:"owner_id"`
	Version   uint64 `json:"version"`
}

// SessionStore persists sessions as JSON files, one per account.
type SessionStore struct {
	dir string
}

// NewSessionStore returns a store in the user's XDG cache directory.
func NewSessionStore() *SessionStore {
	return NewSessionStoreAt(filepath.Join(xdg.CacheHome, "go-csgo"))
}

// NewSessionStoreAt returns a store rooted at the given directory.
func NewSessionStoreAt(dir string) *SessionStore {
	return &SessionStore{dir: dir}
}

func (s *SessionStore) path(accountId uint32) string {
	return filepath.Join(s.dir, strconv.FormatUint(uint64(accountId), 10)+".json")
}

// Load reads the session of the given account. The error wraps
// os.ErrNotExist if no session was saved.
func (s *SessionStore) Load(accountId uint32) (*Session, error) {
	data, err := os.ReadFile(s.path(accountId))
	if err != nil {
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return &session, nil
}

// Save writes the session, creating the store directory if needed.
func (s *SessionStore) Save(session *Session) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(session.AccountId), data, 0644)
}

// Remove deletes the stored session of the given account, if any.
func (s *SessionStore) Remove(accountId uint32) error {
	err := os.Remove(s.path(accountId))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
