package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	categories atomic.Int32
	reloads    atomic.Int32
}

func (c *counter) RefreshCategories(context.Context) { c.categories.Add(1) }

func (c *counter) Reload(context.Context) error {
	c.reloads.Add(1)
	return errors.New("backend down")
}

func TestWorkerTicks(t *testing.T) {
	c := &counter{}
	w := New(&Config{WorkerInterval: 5 * time.Millisecond, Dashboard: true}, c, c)

	require.NoError(t, w.Start(context.Background()))
	assert.Error(t, w.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return c.categories.Load() >= 2 && c.reloads.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, w.Stop())
	assert.Error(t, w.Stop())
}

func TestTickWithoutDashboard(t *testing.T) {
	c := &counter{}
	w := New(&Config{WorkerInterval: time.Hour}, c, c)

	w.tick(context.Background())
	assert.Equal(t, int32(1), c.categories.Load())
	assert.Equal(t, int32(0), c.reloads.Load())
}

func TestDefaults(t *testing.T) {
	w := New(nil, &counter{}, nil)
	assert.Equal(t, 5*time.Minute, w.c.WorkerInterval)
}
