package csgo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gckit/go-csgo/csgo/gc"
)

func TestSendMessage(t *testing.T) {
	c, tr := newTestClient(t)

	err := c.SendMessage(gc.EMsgClientRequestPlayersProfile,
		&gc.ClientRequestPlayersProfile{AccountId: 42, RequestLevel: 32})
	require.NoError(t, err)

	p := tr.lastSent()
	require.Equal(t, AppId, p.AppId)
	require.Equal(t, gc.EMsgClientRequestPlayersProfile, p.Type)
	require.Equal(t, gc.JobIdNone, p.TargetJobId)
	require.Equal(t, gc.JobIdNone, p.SourceJobId)

	var req gc.ClientRequestPlayersProfile
	require.NoError(t, req.Unmarshal(p.Body))
	require.Equal(t, uint32(42), req.AccountId)
}

func TestSendMessageWriteError(t *testing.T) {
	c, tr := newTestClient(t)
	tr.writeErr = errors.New("socket gone")

	err := c.SendMessage(gc.EMsgClientHello, nil)
	require.ErrorIs(t, err, tr.writeErr)
}

func TestJobRoundTrip(t *testing.T) {
	c, tr := newTestClient(t)

	id, err := c.SendJob(gc.EMsgClientRequestPlayersProfile,
		&gc.ClientRequestPlayersProfile{AccountId: 42})
	require.NoError(t, err)
	require.NotZero(t, id)
	require.Equal(t, id, tr.lastSent().SourceJobId)

	resp := packetOf(t, gc.EMsgPlayersProfile, &gc.PlayersProfile{RequestId: 1})
	resp.TargetJobId = id
	c.HandlePacket(resp)

	got, err := c.WaitJob(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, gc.EMsgPlayersProfile, got.Type)

	// A delivered job is gone.
	_, err = c.WaitJob(context.Background(), id)
	require.ErrorIs(t, err, ErrUnknownJob)
}

func TestWaitJobContextEnds(t *testing.T) {
	c, _ := newTestClient(t)

	id, err := c.SendJob(gc.EMsgMatchListRequestCurrentLiveGames,
		&gc.MatchListRequestCurrentLiveGames{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.WaitJob(ctx, id)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// A canceled wait discards the job.
	_, err = c.WaitJob(context.Background(), id)
	require.ErrorIs(t, err, ErrUnknownJob)
}

func TestWaitJobUnknown(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.WaitJob(context.Background(), 77)
	require.ErrorIs(t, err, ErrUnknownJob)
}

func TestJobIdsCycle(t *testing.T) {
	c, _ := newTestClient(t)

	c.mu.Lock()
	c.jobId = 9999
	c.mu.Unlock()

	id, err := c.SendJob(gc.EMsgClientHello, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)
}

func TestSendJobWriteError(t *testing.T) {
	c, tr := newTestClient(t)
	tr.writeErr = errors.New("socket gone")

	_, err := c.SendJob(gc.EMsgClientHello, nil)
	require.ErrorIs(t, err, tr.writeErr)

	// The failed job must not linger.
	c.mu.RLock()
	require.Empty(t, c.jobs)
	c.mu.RUnlock()
}
