package csgo

import (
	"context"
	"errors"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/gckit/go-csgo/csgo/gc"
)

func defaultKnockWait(n int) time.Duration {
	return (3 + time.Duration(uint64(1)<<n)) * time.Second
}

// knock sends hellos until the GC grants a session, then watches for the
// session to drop and starts over. The wait between hellos grows with
// every unanswered one and resets once a session was held.
func (c *Client) knock(ctx context.Context) {
	n := 1
	for {
		if ctx.Err() != nil {
			return
		}
		if !c.Ready() {
			ready := make(chan struct{}, 1)
			readyId := c.Once(EventReady, func(Event) { ready <- struct{}{} })
			if err := c.sendHello(); err != nil {
				c.log.Warn("failed to send hello", zap.Error(err))
			}
			timer := time.NewTimer(c.knockWait(n))
			select {
			case <-ctx.Done():
				timer.Stop()
				c.RemoveCallback(readyId)
				return
			case <-timer.C:
				c.RemoveCallback(readyId)
				if n < 4 {
					n++
				}
				continue
			case <-ready:
				timer.Stop()
			}
		}
		down := make(chan struct{}, 1)
		downId := c.Once(EventNotReady, func(Event) { down <- struct{}{} })
		if !c.Ready() {
			c.RemoveCallback(downId)
			continue
		}
		select {
		case <-ctx.Done():
			c.RemoveCallback(downId)
			return
		case <-down:
		}
		n = 1
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

func (c *Client) sendHello() error {
	versions := c.resumeVersions()
	if c.launcher == gc.LauncherPerfectWorld {
		return c.SendMessage(gc.EMsgClientHelloPW, &gc.ClientHello{
			CacheVersions: versions,
			Launcher:      c.launcher,
		})
	}
	return c.SendMessage(gc.EMsgClientHello, &gc.ClientHello{
		Version:       c.helloVersion,
		CacheVersions: versions,
	})
}

// resumeVersions returns the shared object cache versions to announce in a
// hello. Live cache state wins, a stored session from an earlier run is
// the fallback.
func (c *Client) resumeVersions() []gc.SOCacheHaveVersion {
	if have := c.SOCache.Versions(); len(have) > 0 {
		return have
	}
	if c.store == nil {
		return nil
	}
	accountId := c.AccountId()
	if accountId == 0 {
		return nil
	}
	session, err := c.store.Load(accountId)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.log.Warn("failed to load stored session", zap.Error(err))
		}
		return nil
	}
	versions := make([]gc.SOCacheHaveVersion, 0, len(session.CacheVersions))
	for _, v := range session.CacheVersions {
		versions = append(versions, gc.SOCacheHaveVersion{
			Owner:   gc.SOIDOwner{Type: v.OwnerType, Id: v.OwnerId},
			Version: v.Version,
		})
	}
	return versions
}

func (c *Client) saveSession() {
	if c.store == nil {
		return
	}
	accountId := c.AccountId()
	if accountId == 0 {
		return
	}
	session := &Session{
		AccountId: accountId,
		UpdatedAt: time.Now().UTC(),
	}
	for _, v := range c.SOCache.Versions() {
		session.CacheVersions = append(session.CacheVersions, CacheVersion{
			OwnerType: v.Owner.Type,
			OwnerId:   v.Owner.Id,
			Version:   v.Version,
		})
	}
	if err := c.store.Save(session); err != nil {
		c.log.Warn("failed to save session", zap.Error(err))
	}
}
