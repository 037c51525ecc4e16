package csgo

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gckit/go-csgo/csgo/gc"
)

// ErrUnknownJob is returned by WaitJob for a job id without a pending
// response, either never issued or already delivered.
var ErrUnknownJob = errors.New("csgo: unknown job id")

// SendMessage serializes and sends a GC message.
func (c *Client) SendMessage(t gc.EMsg, m gc.Message) error {
	return c.send(t, m, gc.JobIdNone)
}

// SendJob sends a GC message tagged with a fresh job id and returns the
// id. The response arrives through WaitJob.
func (c *Client) SendJob(t gc.EMsg, m gc.Message) (uint64, error) {
	c.mu.Lock()
	c.jobId = (c.jobId + 1) % 10000
	if c.jobId == 0 {
		c.jobId = 1
	}
	id := c.jobId
	c.jobs[id] = make(chan *gc.Packet, 1)
	c.mu.Unlock()

	if err := c.send(t, m, id); err != nil {
		c.mu.Lock()
		delete(c.jobs, id)
		c.mu.Unlock()
		return 0, err
	}
	return id, nil
}

// WaitJob blocks until the response packet for the given job arrives or
// the context ends. Waiting consumes the job, successful or not.
func (c *Client) WaitJob(ctx context.Context, id uint64) (*gc.Packet, error) {
	c.mu.RLock()
	ch := c.jobs[id]
	c.mu.RUnlock()
	if ch == nil {
		return nil, ErrUnknownJob
	}
	defer func() {
		c.mu.Lock()
		if c.jobs[id] == ch {
			delete(c.jobs, id)
		}
		c.mu.Unlock()
	}()
	select {
	case p := <-ch:
		return p, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) send(t gc.EMsg, m gc.Message, jobId uint64) error {
	var body []byte
	if m != nil {
		var err error
		body, err = m.Marshal()
		if err != nil {
			return fmt.Errorf("failed to serialize %s: %w", t, err)
		}
	}
	p := gc.NewPacket(c.appId, t, body)
	if jobId != gc.JobIdNone {
		p.SourceJobId = jobId
	}
	fields := []zap.Field{zap.Stringer("type", t), zap.Int("size", len(body))}
	if c.verbose && m != nil {
		fields = append(fields, zap.Any("message", m))
	}
	c.log.Debug("sending GC message", fields...)
	return c.transport.WriteMessage(c.appId, p)
}
