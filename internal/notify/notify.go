// Package notify delivers transient user notifications.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jekabolt/store-console/internal/entity"
)

const defaultCapacity = 64

// Center logs every notification and buffers the most recent ones until the
// widget layer drains them.
type Center struct {
	mu       sync.Mutex
	pending  []entity.Notification
	capacity int
	now      func() time.Time
}

func New(capacity int) *Center {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Center{capacity: capacity, now: time.Now}
}

func (c *Center) Notify(ctx context.Context, level entity.NotificationLevel, msg string) {
	n := entity.Notification{
		ID:      uuid.NewString(),
		Level:   level,
		Message: msg,
		At:      c.now(),
	}
	slog.Default().Log(ctx, slogLevel(level), "notification",
		slog.String("level", string(level)),
		slog.String("message", msg),
		slog.String("id", n.ID),
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, n)
	if over := len(c.pending) - c.capacity; over > 0 {
		c.pending = c.pending[over:]
	}
}

// Drain returns the buffered notifications oldest first and empties the buffer.
func (c *Center) Drain() []entity.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pending
	c.pending = nil
	return out
}

func slogLevel(l entity.NotificationLevel) slog.Level {
	switch l {
	case entity.NotificationError:
		return slog.LevelError
	case entity.NotificationWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
